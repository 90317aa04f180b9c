package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/tourwatch/internal/config"
	"github.com/pfrederiksen/tourwatch/internal/logger"
	"github.com/pfrederiksen/tourwatch/internal/monitor"
	"github.com/pfrederiksen/tourwatch/internal/source"
	"github.com/pfrederiksen/tourwatch/internal/storage"
)

var (
	flagReplayDate   string
	flagReplayDryRun bool
)

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-announce a stored day's shows",
		Long: `Re-posts the stored shows for one calendar day to the configured
destinations, or prints them with --dry-run. Days resolve in the
reference timezone from the config.`,
		RunE: runReplay,
	}

	cmd.Flags().StringVar(&flagReplayDate, "date", "", "Day to replay, YYYY-MM-DD (required)")
	cmd.Flags().BoolVar(&flagReplayDryRun, "dry-run", false, "Print announcements instead of delivering them")

	cmd.MarkFlagRequired("date")

	return cmd
}

func runReplay(cmd *cobra.Command, args []string) error {
	if _, err := time.Parse("2006-01-02", flagReplayDate); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", flagReplayDate)
	}

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
	defer store.Close()

	src, err := source.NewFromConfig(cfg.Source)
	if err != nil {
		return fmt.Errorf("building source: %w", err)
	}

	notifiers, err := buildNotifiers(&cfg, flagReplayDryRun)
	if err != nil {
		return fmt.Errorf("building notifiers: %w", err)
	}
	if len(notifiers) == 0 {
		return fmt.Errorf("no notifiers enabled; enable one in the config or pass --dry-run")
	}

	mon := monitor.New(src, store, loc, asMonitorNotifiers(notifiers)...)

	n, err := mon.ReplayDate(cmd.Context(), flagReplayDate)
	if err != nil {
		return fmt.Errorf("replaying %s: %w", flagReplayDate, err)
	}

	if n == 0 {
		fmt.Printf("No stored shows on %s.\n", flagReplayDate)
		return nil
	}
	fmt.Printf("Replayed %d show(s) from %s.\n", n, flagReplayDate)

	return nil
}
