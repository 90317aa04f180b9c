package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pfrederiksen/tourwatch/internal/config"
	"github.com/pfrederiksen/tourwatch/internal/event"
	"github.com/pfrederiksen/tourwatch/internal/logger"
	"github.com/pfrederiksen/tourwatch/internal/monitor"
)

// Slash command names
const (
	CommandScrape    = "scrape"
	CommandStatus    = "status"
	CommandReplay    = "replay"
	CommandTourDates = "tourdates"
)

// deferredTimeout bounds the background work finishing a deferred response
const deferredTimeout = 2 * time.Minute

// CommandDefinitions returns the slash commands the watcher registers
func CommandDefinitions() []Command {
	return []Command{
		{
			Name:        CommandScrape,
			Description: "Manually trigger the scraper to check for new tour dates",
		},
		{
			Name:        CommandStatus,
			Description: "Check the status of the bot and system",
		},
		{
			Name:        CommandReplay,
			Description: "Re-post a day's stored shows to the channel",
			Options: []CommandOption{
				{Type: OptionString, Name: "date", Description: "Day to replay (YYYY-MM-DD)", Required: true},
			},
		},
		{
			Name:        CommandTourDates,
			Description: "Get upcoming tour dates",
			Options: []CommandOption{
				{Type: OptionString, Name: "month", Description: "Limit to one month (e.g. June 2025)"},
			},
		},
	}
}

// Runner is the subset of the check orchestration the slash commands drive
type Runner interface {
	TryRunCheck(ctx context.Context) (*monitor.Result, bool)
	ReplayDate(ctx context.Context, day string) (int, error)
	Events(ctx context.Context) ([]*event.Event, error)
	StatusReport(ctx context.Context) monitor.Status
	Location() *time.Location
}

// Commands answers slash commands. Fast commands respond synchronously;
// slow ones acknowledge with a deferred response and finish through the
// webhook edit endpoint in the background.
type Commands struct {
	client *Client
	runner Runner
	artist string

	authorizedUsers map[string]bool
	allowedRoles    map[string]bool

	cooldowns *cooldownTracker
	now       func() time.Time
}

// NewCommands wires the command handlers to the run orchestration
func NewCommands(client *Client, runner Runner, cfg *config.Config) *Commands {
	users := make(map[string]bool, len(cfg.Discord.AuthorizedUserIDs))
	for _, id := range cfg.Discord.AuthorizedUserIDs {
		users[id] = true
	}
	roles := make(map[string]bool, len(cfg.Discord.AllowedRoleIDs))
	for _, id := range cfg.Discord.AllowedRoleIDs {
		roles[id] = true
	}

	return &Commands{
		client:          client,
		runner:          runner,
		artist:          cfg.Artist,
		authorizedUsers: users,
		allowedRoles:    roles,
		cooldowns: newCooldownTracker(map[string]time.Duration{
			CommandScrape: cfg.Cooldowns.Scrape,
			CommandStatus: cfg.Cooldowns.Status,
		}),
		now: time.Now,
	}
}

// Handle produces the synchronous response for one interaction. Any
// deferred work continues in a goroutine after the response is written.
func (c *Commands) Handle(ctx context.Context, inter *Interaction) *InteractionResponse {
	switch inter.Type {
	case InteractionPing:
		return Pong()
	case InteractionApplicationCommand:
		return c.dispatch(ctx, inter)
	default:
		return Ephemeral("Unsupported interaction.")
	}
}

func (c *Commands) dispatch(ctx context.Context, inter *Interaction) *InteractionResponse {
	if inter.Data == nil {
		return Ephemeral("Unsupported interaction.")
	}

	logger.Info("command received", logger.Fields{
		"command": inter.Data.Name,
		"user_id": inter.UserID(),
	})

	switch inter.Data.Name {
	case CommandScrape:
		return c.handleScrape(inter)
	case CommandStatus:
		return c.handleStatus(ctx, inter)
	case CommandReplay:
		return c.handleReplay(inter)
	case CommandTourDates:
		return c.handleTourDates(inter)
	default:
		return Ephemeral(fmt.Sprintf("Unknown command: %s", inter.Data.Name))
	}
}

func (c *Commands) handleScrape(inter *Interaction) *InteractionResponse {
	if !c.userAuthorized(inter) {
		return Ephemeral("❌ You are not authorized to use this command.")
	}
	if remaining, ok := c.cooldowns.take(CommandScrape); !ok {
		return cooldownResponse(remaining)
	}

	token := inter.Token
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), deferredTimeout)
		defer cancel()

		c.edit(ctx, token, "🔄 Starting manual scrape...")

		res, started := c.runner.TryRunCheck(ctx)
		if !started {
			c.edit(ctx, token, "ℹ️ A check is already running. Try again shortly.")
			return
		}
		c.edit(ctx, token, FormatOutcome(res))
	}()

	return Deferred(true)
}

func (c *Commands) handleStatus(ctx context.Context, inter *Interaction) *InteractionResponse {
	if !c.userAuthorized(inter) {
		return Ephemeral("❌ You are not authorized to use this command.")
	}
	if remaining, ok := c.cooldowns.take(CommandStatus); !ok {
		return cooldownResponse(remaining)
	}

	return Ephemeral(FormatStatus(c.runner.StatusReport(ctx)))
}

func (c *Commands) handleReplay(inter *Interaction) *InteractionResponse {
	if !c.userAuthorized(inter) {
		return Ephemeral("❌ You are not authorized to use this command.")
	}

	day := inter.Data.StringOption("date")
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return Ephemeral(fmt.Sprintf("❌ Invalid date %q, expected YYYY-MM-DD.", day))
	}

	token := inter.Token
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), deferredTimeout)
		defer cancel()

		n, err := c.runner.ReplayDate(ctx, day)
		switch {
		case err != nil:
			c.edit(ctx, token, "❌ Replay failed: "+err.Error())
		case n == 0:
			c.edit(ctx, token, fmt.Sprintf("ℹ️ No stored shows on %s.", day))
		default:
			c.edit(ctx, token, fmt.Sprintf("✅ Re-posted %d shows from %s.", n, day))
		}
	}()

	return Deferred(true)
}

func (c *Commands) handleTourDates(inter *Interaction) *InteractionResponse {
	if len(c.allowedRoles) == 0 {
		return Ephemeral("Configuration error: Allowed roles not set. Please contact an administrator.")
	}
	if !c.roleAuthorized(inter) {
		return Ephemeral("You don't have permission to use this command.")
	}

	month := inter.Data.StringOption("month")
	token := inter.Token
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), deferredTimeout)
		defer cancel()

		events, err := c.runner.Events(ctx)
		if err != nil {
			c.edit(ctx, token, "An error occurred while fetching tour dates. Please try again later.")
			return
		}

		messages := FormatTourDates(c.artist, events, month, c.runner.Location(), c.now())
		c.edit(ctx, token, messages[0])
		for _, message := range messages[1:] {
			if err := c.client.FollowUp(ctx, token, message, true); err != nil {
				logger.Error("sending follow-up", logger.Fields{"command": CommandTourDates}, err)
				return
			}
		}
	}()

	return Deferred(true)
}

func (c *Commands) edit(ctx context.Context, token, content string) {
	if err := c.client.EditOriginalResponse(ctx, token, content); err != nil {
		logger.Error("editing interaction response", nil, err)
	}
}

func (c *Commands) userAuthorized(inter *Interaction) bool {
	return c.authorizedUsers[inter.UserID()]
}

func (c *Commands) roleAuthorized(inter *Interaction) bool {
	for _, role := range inter.RoleIDs() {
		if c.allowedRoles[role] {
			return true
		}
	}
	return false
}

func cooldownResponse(remaining time.Duration) *InteractionResponse {
	return Ephemeral(fmt.Sprintf("⏰ This command is on cooldown. Try again in %.0f seconds.", remaining.Seconds()))
}

// cooldownTracker enforces one use per window per command, shared across
// users: the commands it guards hit the scrape target and the database.
type cooldownTracker struct {
	mu       sync.Mutex
	windows  map[string]time.Duration
	lastUsed map[string]time.Time
	now      func() time.Time
}

func newCooldownTracker(windows map[string]time.Duration) *cooldownTracker {
	return &cooldownTracker{
		windows:  windows,
		lastUsed: make(map[string]time.Time),
		now:      time.Now,
	}
}

// take records a use of name when its window has elapsed. It returns the
// remaining wait and false while the command is still cooling down.
func (t *cooldownTracker) take(name string) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	window := t.windows[name]
	if window <= 0 {
		return 0, true
	}

	now := t.now()
	if last, ok := t.lastUsed[name]; ok {
		if elapsed := now.Sub(last); elapsed < window {
			return window - elapsed, false
		}
	}
	t.lastUsed[name] = now
	return 0, true
}
