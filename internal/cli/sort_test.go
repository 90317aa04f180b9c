package cli

import (
	"testing"
	"time"

	"github.com/pfrederiksen/tourwatch/internal/event"
)

func sortFixture() []*event.Event {
	return []*event.Event{
		{Venue: "Red Rocks Amphitheatre", Date: time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)},
		{Venue: "9:30 Club", Date: time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)},
		{Venue: "The Fillmore", Date: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)},
	}
}

func TestSortEvents_ByDate(t *testing.T) {
	events := sortFixture()
	sortEvents(events, SortByDate)

	want := []string{"The Fillmore", "Red Rocks Amphitheatre", "9:30 Club"}
	for i, venue := range want {
		if events[i].Venue != venue {
			t.Errorf("events[%d].Venue = %q, want %q", i, events[i].Venue, venue)
		}
	}
}

func TestSortEvents_ByVenue(t *testing.T) {
	events := sortFixture()
	sortEvents(events, SortByVenue)

	want := []string{"9:30 Club", "Red Rocks Amphitheatre", "The Fillmore"}
	for i, venue := range want {
		if events[i].Venue != venue {
			t.Errorf("events[%d].Venue = %q, want %q", i, events[i].Venue, venue)
		}
	}
}

func TestSortEvents_ZeroDatesLast(t *testing.T) {
	events := []*event.Event{
		{Venue: "Mystery Venue"},
		{Venue: "The Fillmore", Date: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)},
	}
	sortEvents(events, SortByDate)

	if events[0].Venue != "The Fillmore" {
		t.Errorf("dated show should sort before undated, got %q first", events[0].Venue)
	}
}

func TestSortEvents_SameDayFallsBackToVenue(t *testing.T) {
	day := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	events := []*event.Event{
		{Venue: "The Fillmore", Date: day},
		{Venue: "9:30 Club", Date: day},
	}
	sortEvents(events, SortByDate)

	if events[0].Venue != "9:30 Club" {
		t.Errorf("same-day shows should order by venue, got %q first", events[0].Venue)
	}
}
