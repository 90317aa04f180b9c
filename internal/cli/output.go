package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/tourwatch/internal/event"
	"github.com/pfrederiksen/tourwatch/internal/monitor"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt    time.Time       `json:"checked_at"`
	Artist       string          `json:"artist"`
	Outcome      monitor.Outcome `json:"outcome"`
	NewEvents    []*event.Event  `json:"new_events"`
	EventCount   int             `json:"event_count"`
	TotalFetched int             `json:"total_fetched"`
	Skipped      int             `json:"skipped,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSONResult(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSONResult outputs results as JSON
func writeJSONResult(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.EventCount == 0 {
		fmt.Fprintln(w, "No new tour dates found.")
		if result.Skipped > 0 {
			fmt.Fprintf(w, "(skipped %d malformed records)\n", result.Skipped)
		}
		return nil
	}

	for _, evt := range result.NewEvents {
		fmt.Fprintf(w, "NEW: %s  %s", event.FormatDateRange(evt.Date, evt.EndDate), evt.Venue)
		if evt.Location != "" {
			fmt.Fprintf(w, " | %s", evt.Location)
		}
		fmt.Fprintln(w)

		if verbose {
			if evt.TicketURL != "" {
				fmt.Fprintf(w, "     Tickets: %s\n", evt.TicketURL)
			}
			if evt.VIPURL != "" {
				fmt.Fprintf(w, "     VIP: %s\n", evt.VIPURL)
			}
			for _, d := range evt.Details {
				fmt.Fprintf(w, "     %s\n", d)
			}
		}
	}

	fmt.Fprintf(w, "\nTotal: %d new (fetched %d", result.EventCount, result.TotalFetched)
	if result.Skipped > 0 {
		fmt.Fprintf(w, ", skipped %d", result.Skipped)
	}
	fmt.Fprintln(w, ")")

	return nil
}
