package notifier

import (
	"testing"

	"github.com/pfrederiksen/tourwatch/internal/discord"
)

func TestNewDiscordNotifier(t *testing.T) {
	client, err := discord.NewClient("token", "app-id")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	t.Run("missing channel ID", func(t *testing.T) {
		if _, err := NewDiscordNotifier(client, "", "Goose"); err == nil {
			t.Error("NewDiscordNotifier() expected error with empty channel ID")
		}
	})

	t.Run("valid", func(t *testing.T) {
		n, err := NewDiscordNotifier(client, "chan-1", "Goose")
		if err != nil {
			t.Fatalf("NewDiscordNotifier() error = %v", err)
		}
		if n.Name() != "discord" {
			t.Errorf("Name() = %q, want %q", n.Name(), "discord")
		}
	})
}
