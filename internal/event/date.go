package event

import (
	"strings"
	"time"
)

// ParseDate attempts to parse a listing date string into a time.Time.
// Returns time.Time{} (zero value) if parsing fails.
// Supports formats: "Jun 10, 2025", "June 10, 2025", "6/10/2025",
// "2025-06-10", and ISO timestamps with or without a zone offset
func ParseDate(text string) time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}
	}

	// Try RFC3339 first (JSON feed timestamps carry zone offsets)
	t, err := time.Parse(time.RFC3339, text)
	if err == nil {
		return t
	}

	// Try "2025-06-10T00:00:00" format (feed timestamps without offsets)
	t, err = time.Parse("2006-01-02T15:04:05", text)
	if err == nil {
		return t
	}

	// Try "Jun 10, 2025" format
	t, err = time.Parse("Jan 2, 2006", text)
	if err == nil {
		return t
	}

	// Try "June 10, 2025" format (full month name)
	t, err = time.Parse("January 2, 2006", text)
	if err == nil {
		return t
	}

	// Try "6/10/2025" format
	t, err = time.Parse("1/2/2006", text)
	if err == nil {
		return t
	}

	// Try "2025-06-10" format
	t, err = time.Parse("2006-01-02", text)
	if err == nil {
		return t
	}

	// Could not parse, return zero time
	return time.Time{}
}

// rangeSeparators splits multi-night runs: "Jun 10, 2025 - Jun 12, 2025",
// "Jun 10, 2025 to Jun 12, 2025"
var rangeSeparators = []string{" - ", " to ", " – "}

// ParseDateRange parses a date string that may describe a multi-night run.
// Single dates return a zero end. An unparseable end keeps the start only.
func ParseDateRange(text string) (start, end time.Time) {
	for _, sep := range rangeSeparators {
		if !strings.Contains(text, sep) {
			continue
		}
		parts := strings.SplitN(text, sep, 2)
		start = ParseDate(parts[0])
		end = ParseDate(parts[1])
		if start.IsZero() {
			return time.Time{}, time.Time{}
		}
		return start, end
	}
	return ParseDate(text), time.Time{}
}

// FormatDate renders a date for terminal output: "Jun 10, 2025"
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// FormatDateRange renders a single date or a run: "Jun 10, 2025 - Jun 12, 2025"
func FormatDateRange(start, end time.Time) string {
	if end.IsZero() || end.Equal(start) {
		return FormatDate(start)
	}
	return FormatDate(start) + " - " + FormatDate(end)
}

// MonthKey returns the grouping label for listings: "June 2025"
func MonthKey(t time.Time) string {
	return t.Format("January 2006")
}

// IsUpcoming reports whether the event is today or later in the reference
// timezone. Unparseable stored dates are included rather than hidden.
func (e *Event) IsUpcoming(now time.Time, loc *time.Location) bool {
	if e.Date.IsZero() {
		return true // Can't determine, include it
	}
	last := e.Date
	if e.IsMultiDay() {
		last = e.EndDate
	}
	return DayKey(last, loc) >= DayKey(now, loc)
}
