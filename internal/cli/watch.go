package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/tourwatch/internal/config"
	"github.com/pfrederiksen/tourwatch/internal/discord"
	"github.com/pfrederiksen/tourwatch/internal/httpapi"
	"github.com/pfrederiksen/tourwatch/internal/logger"
	"github.com/pfrederiksen/tourwatch/internal/monitor"
	"github.com/pfrederiksen/tourwatch/internal/source"
	"github.com/pfrederiksen/tourwatch/internal/storage"
)

// shutdownTimeout bounds the graceful HTTP drain on exit
const shutdownTimeout = 10 * time.Second

var flagOnce bool

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the watcher daemon",
		Long: `Runs the scheduler and the HTTP server until interrupted.
Checks once immediately, then on every interval tick. Registers the
Discord slash commands when Discord is configured.`,
		RunE: runWatch,
	}

	cmd.Flags().BoolVar(&flagOnce, "once", false, "Run a single check and exit")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	setupLogging(logger.LevelInfo)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("resolving timezone: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(cfg.Database.Path, loc)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	src, err := source.NewFromConfig(cfg.Source)
	if err != nil {
		return fmt.Errorf("building source: %w", err)
	}

	notifiers, err := buildNotifiers(&cfg, false)
	if err != nil {
		return fmt.Errorf("building notifiers: %w", err)
	}

	mon := monitor.New(src, store, loc, asMonitorNotifiers(notifiers)...)

	if flagOnce {
		res := mon.RunCheck(ctx)
		store.Close()
		if res.Outcome == monitor.Failed {
			return fmt.Errorf("check failed: %s", res.Reason)
		}
		fmt.Println(res.Summary())
		if res.NewCount > 0 {
			os.Exit(ExitNewEvents)
		}
		os.Exit(ExitSuccess)
	}

	// Registration is best-effort; the daemon still watches and announces
	// if Discord rejects it.
	var inter httpapi.Interactions
	if cfg.Discord.Enabled {
		client, cerr := discord.NewClient(cfg.Discord.Token, cfg.Discord.ApplicationID)
		if cerr != nil {
			return fmt.Errorf("creating discord client: %w", cerr)
		}
		inter = discord.NewCommands(client, mon, &cfg)

		if rerr := client.RegisterCommands(ctx, cfg.Discord.GuildID, discord.CommandDefinitions()); rerr != nil {
			logger.Error("failed to register discord commands", nil, rerr)
		} else {
			logger.Info("discord commands registered", logger.Fields{
				"guild_id": cfg.Discord.GuildID,
			})
		}
	}

	api := httpapi.NewServer(mon, inter, cfg.Discord.PublicKey, cfg.Artist)
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", logger.Fields{"addr": cfg.HTTP.Addr})
		if serr := srv.ListenAndServe(); serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			logger.Error("http server failed", nil, serr)
			stop()
		}
	}()

	// Blocks until the context is cancelled by a signal
	mon.Watch(ctx, cfg.Schedule.Interval)

	logger.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		logger.Error("http shutdown failed", nil, serr)
	}

	return nil
}
