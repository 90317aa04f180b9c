package cli

import (
	"fmt"

	"github.com/pfrederiksen/tourwatch/internal/config"
	"github.com/pfrederiksen/tourwatch/internal/discord"
	"github.com/pfrederiksen/tourwatch/internal/monitor"
	"github.com/pfrederiksen/tourwatch/internal/notifier"
)

// buildNotifiers assembles the delivery destinations from config. Dry-run
// replaces all of them with a printer. An empty slice is valid: the check
// still runs and reports, it just announces nowhere.
func buildNotifiers(cfg *config.Config, dryRun bool) ([]notifier.Notifier, error) {
	if dryRun {
		return []notifier.Notifier{notifier.NewDryRunNotifier(cfg.Artist)}, nil
	}

	var notifiers []notifier.Notifier

	if cfg.Discord.Enabled {
		client, err := discord.NewClient(cfg.Discord.Token, cfg.Discord.ApplicationID)
		if err != nil {
			return nil, fmt.Errorf("creating discord client: %w", err)
		}
		dn, err := notifier.NewDiscordNotifier(client, cfg.Discord.ChannelID, cfg.Artist)
		if err != nil {
			return nil, fmt.Errorf("creating discord notifier: %w", err)
		}
		notifiers = append(notifiers, dn)
	}

	if cfg.Twitter.Enabled {
		tn, err := notifier.NewTwitterNotifier(cfg.Artist)
		if err != nil {
			return nil, fmt.Errorf("creating twitter notifier: %w", err)
		}
		notifiers = append(notifiers, tn)
	}

	return notifiers, nil
}

// asMonitorNotifiers adapts the notifier implementations to the monitor's
// consumer interface
func asMonitorNotifiers(ns []notifier.Notifier) []monitor.Notifier {
	out := make([]monitor.Notifier, len(ns))
	for i, n := range ns {
		out[i] = n
	}
	return out
}
