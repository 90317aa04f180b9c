package notifier

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pfrederiksen/tourwatch/internal/discord"
	"github.com/pfrederiksen/tourwatch/internal/event"
)

// dryRunOut is where dry-run announcements are printed; tests redirect it
var dryRunOut io.Writer = os.Stdout

// DryRunNotifier prints what would be announced without actually posting
type DryRunNotifier struct {
	artist string
}

// NewDryRunNotifier creates a new dry-run notifier
func NewDryRunNotifier(artist string) *DryRunNotifier {
	return &DryRunNotifier{artist: artist}
}

// Name returns the destination name
func (n *DryRunNotifier) Name() string {
	return "dryrun"
}

// Announce prints the announcement that would be posted
func (n *DryRunNotifier) Announce(_ context.Context, evt *event.Event) error {
	msg := discord.FormatAnnouncement(n.artist, evt)
	fmt.Fprintln(dryRunOut, "--- Announcement ---")
	fmt.Fprintln(dryRunOut, msg)
	fmt.Fprintf(dryRunOut, "\n(Length: %d characters)\n\n", len(msg))
	return nil
}
