package event

import (
	"sort"
	"strings"
	"time"
)

// Result contains the outcome of reconciling a fetched batch against the
// known set
type Result struct {
	NewEvents []*Event `json:"new_events"`
	Total     int      `json:"total_fetched"`
	Skipped   int      `json:"skipped,omitempty"` // records missing venue or date
}

// Reconcile returns the subset of fetched whose identity matches no event in
// known. Records match when they carry the same non-empty source ID, or,
// when either side lacks one, when their venues are equal after
// normalization and their dates fall on the same calendar day in loc. Two
// records carrying different source IDs stay distinct even at the same
// venue and day.
//
// Duplicates within fetched collapse to the first occurrence. Records
// missing venue or date are excluded and counted in Skipped. New events are
// returned sorted by date ascending, ties broken by venue name.
//
// Reconcile is a pure function of its inputs: no I/O, no mutation, safe for
// concurrent use.
func Reconcile(fetched, known []*Event, loc *time.Location) *Result {
	if loc == nil {
		loc = time.UTC
	}

	result := &Result{
		NewEvents: make([]*Event, 0),
		Total:     len(fetched),
	}

	// Known events indexed by source ID and by venue+day. The third index
	// holds venue+day for known records lacking a source ID: an incoming
	// record that has an ID still matches those by the fallback rule.
	byID := make(map[string]struct{})
	byDay := make(map[string]struct{})
	noIDByDay := make(map[string]struct{})

	add := func(evt *Event) {
		day := compositeIdentity(evt.Venue, evt.Date, loc)
		byDay[day] = struct{}{}
		if id := strings.TrimSpace(evt.SourceID); id != "" {
			byID[id] = struct{}{}
		} else {
			noIDByDay[day] = struct{}{}
		}
	}

	for _, evt := range known {
		if evt == nil || evt.Incomplete() {
			continue
		}
		add(evt)
	}

	for _, evt := range fetched {
		if evt == nil {
			continue
		}
		if evt.Incomplete() {
			result.Skipped++
			continue
		}

		day := compositeIdentity(evt.Venue, evt.Date, loc)
		matched := false
		if id := strings.TrimSpace(evt.SourceID); id != "" {
			if _, ok := byID[id]; ok {
				matched = true
			}
			if _, ok := noIDByDay[day]; ok {
				matched = true
			}
		} else {
			if _, ok := byDay[day]; ok {
				matched = true
			}
		}
		if matched {
			continue
		}

		result.NewEvents = append(result.NewEvents, evt)
		// First occurrence wins: later batch duplicates match against it
		add(evt)
	}

	sort.Slice(result.NewEvents, func(i, j int) bool {
		if !result.NewEvents[i].Date.Equal(result.NewEvents[j].Date) {
			return result.NewEvents[i].Date.Before(result.NewEvents[j].Date)
		}
		return result.NewEvents[i].Venue < result.NewEvents[j].Venue
	})

	return result
}
