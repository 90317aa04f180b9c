package monitor

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pfrederiksen/tourwatch/internal/event"
)

// Outcome classifies a completed check run
type Outcome int

const (
	// NoNewEvents means the run completed and every fetched show was
	// already known
	NoNewEvents Outcome = iota
	// NewEvents means the run completed and announced at least one show
	NewEvents
	// Failed means the run aborted before its diff could be trusted
	Failed
)

func (o Outcome) String() string {
	switch o {
	case NoNewEvents:
		return "no_new_events"
	case NewEvents:
		return "new_events"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the outcome as its string name
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// Result captures one run of the check workflow
type Result struct {
	RunID      string    `json:"run_id"`
	Outcome    Outcome   `json:"outcome"`
	NewCount   int       `json:"new_count"`
	Total      int       `json:"total_fetched"`
	Skipped    int       `json:"skipped"`
	Reason     string    `json:"reason,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`

	// NewEvents carries the announced events for callers that render them;
	// status surfaces serialize only the counts above.
	NewEvents []*event.Event `json:"-"`
}

// Summary renders a one-line description for logs and CLI output
func (r *Result) Summary() string {
	switch r.Outcome {
	case Failed:
		return "check failed: " + r.Reason
	case NewEvents:
		return fmt.Sprintf("%d new events (fetched %d, skipped %d)", r.NewCount, r.Total, r.Skipped)
	default:
		return fmt.Sprintf("no new events (fetched %d, skipped %d)", r.Total, r.Skipped)
	}
}
