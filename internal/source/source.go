package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pfrederiksen/tourwatch/internal/config"
	"github.com/pfrederiksen/tourwatch/internal/event"
)

const (
	// UserAgent identifies the watcher to the listing host
	UserAgent = "tourwatch/1.0 (github.com/pfrederiksen/tourwatch)"
	// Timeout bounds one fetch round-trip
	Timeout = 30 * time.Second
)

// Source produces the current set of tour dates from a remote listing.
// Implementations return an empty slice, not an error, when the listing has
// no shows.
type Source interface {
	Name() string
	FetchEvents(ctx context.Context) ([]*event.Event, error)
}

// NewFromConfig selects the fetch implementation for the configured kind.
// The choice is fixed for the life of the process; both kinds yield the
// same record shape.
func NewFromConfig(cfg config.SourceConfig) (Source, error) {
	switch cfg.Kind {
	case config.SourceHTML:
		return NewHTMLSource(cfg.URL), nil
	case config.SourceAPI:
		return NewAPISource(cfg.URL, cfg.APIKey), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: Timeout,
	}
}
