package notifier

import (
	"context"

	"github.com/pfrederiksen/tourwatch/internal/event"
)

// Notifier defines the interface for announcing new tour dates
type Notifier interface {
	// Name identifies the destination in logs and error reports
	Name() string

	// Announce delivers a single event. A failure covers only that
	// event; callers continue with the rest of the batch.
	Announce(ctx context.Context, evt *event.Event) error
}
