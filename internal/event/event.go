package event

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"
)

// Event represents one tour date from the artist's listing
type Event struct {
	Key       string    `json:"key"`                 // Stable identity key, populated on persist
	SourceID  string    `json:"source_id,omitempty"` // Opaque ID from the source, when it provides one
	Venue     string    `json:"venue"`
	Location  string    `json:"location,omitempty"`
	Date      time.Time `json:"date"`
	EndDate   time.Time `json:"end_date,omitempty"` // Last day of a multi-night run, zero for single dates
	Details   []string  `json:"details,omitempty"`
	TicketURL string    `json:"ticket_url,omitempty"`
	VIPURL    string    `json:"vip_url,omitempty"`
	SourceURL string    `json:"source_url,omitempty"`
	FirstSeen time.Time `json:"first_seen,omitempty"`
}

// NormalizeVenue normalizes a venue name for identity comparison:
// lowercase, surrounding whitespace trimmed, inner runs collapsed
func NormalizeVenue(venue string) string {
	return strings.Join(strings.Fields(strings.ToLower(venue)), " ")
}

// DayKey returns the calendar day of t in the reference timezone,
// formatted YYYY-MM-DD. Identity comparisons happen at this granularity.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2006-01-02")
}

// compositeIdentity is the fallback identity for events lacking a source ID:
// normalized venue plus calendar day in the reference timezone. Two shows at
// the same venue on the same day collapse into one.
func compositeIdentity(venue string, date time.Time, loc *time.Location) string {
	return NormalizeVenue(venue) + "|" + DayKey(date, loc)
}

// GenerateKey creates a deterministic identity key for an event. Events
// carrying an opaque source ID are keyed by it; all others are keyed by
// venue + calendar day.
func GenerateKey(sourceID, venue string, date time.Time, loc *time.Location) string {
	h := sha1.New()
	if sourceID != "" {
		h.Write([]byte("src|" + sourceID))
	} else {
		h.Write([]byte("day|" + compositeIdentity(venue, date, loc)))
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// HasSourceID reports whether the source supplied an opaque ID for this event
func (e *Event) HasSourceID() bool {
	return strings.TrimSpace(e.SourceID) != ""
}

// Incomplete reports whether the event is missing the fields identity needs.
// Incomplete events are excluded from reconciliation rather than failing it.
func (e *Event) Incomplete() bool {
	return strings.TrimSpace(e.Venue) == "" || e.Date.IsZero()
}

// IsMultiDay reports whether the event spans more than one calendar day
func (e *Event) IsMultiDay() bool {
	return !e.EndDate.IsZero() && !e.EndDate.Equal(e.Date)
}
