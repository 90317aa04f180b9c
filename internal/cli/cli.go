package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/tourwatch/internal/config"
	"github.com/pfrederiksen/tourwatch/internal/logger"
	"github.com/pfrederiksen/tourwatch/internal/monitor"
	"github.com/pfrederiksen/tourwatch/internal/source"
	"github.com/pfrederiksen/tourwatch/internal/storage"
)

const (
	ExitSuccess   = 0
	ExitError     = 1
	ExitNewEvents = 2
)

var (
	flagConfig  string
	flagFormat  string
	flagSort    string
	flagDryRun  bool
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tourwatch",
		Short: "Check for newly-announced tour dates",
		Long: `A watcher for an artist's tour page.
Fetches the current listing, reports only dates not seen before, and
announces them to the configured destinations.`,
		SilenceUsage: true,
		RunE:         runCheck,
	}

	// Shared by every subcommand
	cmd.PersistentFlags().StringVar(&flagConfig, "config", "tourwatch.yaml", "Path to the YAML config file")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.Flags().StringVar(&flagSort, "sort", "date", "Sort order for new dates: date or venue")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print announcements instead of delivering them")

	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newReplayCmd())
	cmd.AddCommand(newStatusCmd())

	return cmd
}

// runCheck is the one-shot check: fetch, reconcile, persist, announce
func runCheck(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	order := SortOrder(strings.ToLower(flagSort))
	if order != SortByDate && order != SortByVenue {
		return fmt.Errorf("invalid sort order: %s (must be 'date' or 'venue')", flagSort)
	}

	// Keep stdout clean for the result unless asked for more
	setupLogging(logger.LevelWarn)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("resolving timezone: %w", err)
	}

	store, err := storage.Open(cfg.Database.Path, loc)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	src, err := source.NewFromConfig(cfg.Source)
	if err != nil {
		store.Close()
		return fmt.Errorf("building source: %w", err)
	}

	notifiers, err := buildNotifiers(&cfg, flagDryRun)
	if err != nil {
		store.Close()
		return fmt.Errorf("building notifiers: %w", err)
	}

	mon := monitor.New(src, store, loc, asMonitorNotifiers(notifiers)...)
	res := mon.RunCheck(cmd.Context())

	if res.Outcome == monitor.Failed {
		store.Close()
		return fmt.Errorf("check failed: %s", res.Reason)
	}

	sortEvents(res.NewEvents, order)

	result := &OutputResult{
		CheckedAt:    time.Now().UTC(),
		Artist:       cfg.Artist,
		Outcome:      res.Outcome,
		NewEvents:    res.NewEvents,
		EventCount:   res.NewCount,
		TotalFetched: res.Total,
		Skipped:      res.Skipped,
	}

	if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
		store.Close()
		return fmt.Errorf("writing output: %w", err)
	}

	store.Close()

	// Exit code signals whether new dates were found
	if res.NewCount > 0 {
		os.Exit(ExitNewEvents)
	}
	os.Exit(ExitSuccess)

	return nil
}

// setupLogging points the default logger at stderr with the given floor;
// --verbose always wins
func setupLogging(level logger.Level) {
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
