package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/tourwatch/internal/event"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDate  SortOrder = "date"
	SortByVenue SortOrder = "venue"
)

// sortEvents sorts a slice of events based on the specified sort order
func sortEvents(events []*event.Event, sortOrder SortOrder) {
	switch sortOrder {
	case SortByDate:
		sort.Slice(events, func(i, j int) bool {
			return compareByDate(events[i], events[j])
		})
	case SortByVenue:
		sort.Slice(events, func(i, j int) bool {
			vi := strings.ToLower(events[i].Venue)
			vj := strings.ToLower(events[j].Venue)
			if vi != vj {
				return vi < vj
			}
			// If venues are equal, sort by date
			return compareByDate(events[i], events[j])
		})
	}
}

// compareByDate compares two events by their date
// Returns true if event i should come before event j
func compareByDate(i, j *event.Event) bool {
	// If both dates are valid, compare them
	if !i.Date.IsZero() && !j.Date.IsZero() {
		if !i.Date.Equal(j.Date) {
			return i.Date.Before(j.Date)
		}
		return strings.ToLower(i.Venue) < strings.ToLower(j.Venue)
	}

	// If only one date is valid, put the valid one first
	if !i.Date.IsZero() {
		return true
	}
	if !j.Date.IsZero() {
		return false
	}

	// If neither has a valid date, sort by venue
	return strings.ToLower(i.Venue) < strings.ToLower(j.Venue)
}
