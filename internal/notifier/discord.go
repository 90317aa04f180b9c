package notifier

import (
	"context"
	"fmt"

	"github.com/pfrederiksen/tourwatch/internal/discord"
	"github.com/pfrederiksen/tourwatch/internal/event"
)

// DiscordNotifier posts announcements to a Discord channel
type DiscordNotifier struct {
	client    *discord.Client
	channelID string
	artist    string
}

// NewDiscordNotifier creates a Discord notifier posting to the given channel
func NewDiscordNotifier(client *discord.Client, channelID, artist string) (*DiscordNotifier, error) {
	if channelID == "" {
		return nil, fmt.Errorf("discord channel ID is required")
	}
	return &DiscordNotifier{
		client:    client,
		channelID: channelID,
		artist:    artist,
	}, nil
}

// Name returns the destination name
func (n *DiscordNotifier) Name() string {
	return "discord"
}

// Announce posts the announcement message for one event
func (n *DiscordNotifier) Announce(ctx context.Context, evt *event.Event) error {
	msg := discord.FormatAnnouncement(n.artist, evt)
	if err := n.client.SendMessage(ctx, n.channelID, msg); err != nil {
		return fmt.Errorf("failed to post announcement for %s: %w", evt.Venue, err)
	}
	return nil
}
