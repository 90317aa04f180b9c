package event

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func show(id, venue string, date time.Time) *Event {
	return &Event{SourceID: id, Venue: venue, Location: "Somewhere, US", Date: date}
}

func TestReconcile(t *testing.T) {
	eastern, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load timezone: %v", err)
	}

	t.Run("known set against itself yields nothing", func(t *testing.T) {
		known := []*Event{
			show("a", "The Fillmore", day(2025, 5, 1)),
			show("", "9:30 Club", day(2025, 6, 10)),
		}

		result := Reconcile(known, known, time.UTC)
		if len(result.NewEvents) != 0 {
			t.Errorf("expected 0 new events, got %d", len(result.NewEvents))
		}
	})

	t.Run("disjoint batch returns all sorted by date", func(t *testing.T) {
		fetched := []*Event{
			show("c", "Red Rocks", day(2025, 8, 1)),
			show("a", "The Fillmore", day(2025, 5, 1)),
			show("b", "9:30 Club", day(2025, 6, 10)),
		}
		known := []*Event{
			show("z", "The Anthem", day(2025, 4, 1)),
		}

		result := Reconcile(fetched, known, time.UTC)
		if len(result.NewEvents) != 3 {
			t.Fatalf("expected 3 new events, got %d", len(result.NewEvents))
		}

		wantOrder := []string{"The Fillmore", "9:30 Club", "Red Rocks"}
		for i, venue := range wantOrder {
			if result.NewEvents[i].Venue != venue {
				t.Errorf("position %d: got venue %q, want %q", i, result.NewEvents[i].Venue, venue)
			}
		}
	})

	t.Run("date ties sort by venue name", func(t *testing.T) {
		d := day(2025, 6, 10)
		fetched := []*Event{
			show("b", "Zenith Hall", d),
			show("a", "Apollo Theater", d),
		}

		result := Reconcile(fetched, nil, time.UTC)
		if len(result.NewEvents) != 2 {
			t.Fatalf("expected 2 new events, got %d", len(result.NewEvents))
		}
		if result.NewEvents[0].Venue != "Apollo Theater" {
			t.Errorf("expected venue tie-break, got %q first", result.NewEvents[0].Venue)
		}
	})

	t.Run("idempotent after merging new events", func(t *testing.T) {
		fetched := []*Event{
			show("a", "The Fillmore", day(2025, 5, 1)),
			show("", "9:30 Club", day(2025, 6, 10)),
		}
		known := []*Event{
			show("z", "The Anthem", day(2025, 4, 1)),
		}

		first := Reconcile(fetched, known, time.UTC)
		merged := append(append([]*Event{}, known...), first.NewEvents...)

		second := Reconcile(fetched, merged, time.UTC)
		if len(second.NewEvents) != 0 {
			t.Errorf("second pass should find nothing, got %d", len(second.NewEvents))
		}
	})

	t.Run("batch duplicates collapse to first occurrence", func(t *testing.T) {
		first := show("a", "The Fillmore", day(2025, 5, 1))
		first.Details = []string{"w/ Special Guest"}
		second := show("a", "The Fillmore", day(2025, 5, 1))
		second.Details = []string{"VIP Available"}

		result := Reconcile([]*Event{first, second}, nil, time.UTC)
		if len(result.NewEvents) != 1 {
			t.Fatalf("expected 1 new event, got %d", len(result.NewEvents))
		}
		if len(result.NewEvents[0].Details) != 1 || result.NewEvents[0].Details[0] != "w/ Special Guest" {
			t.Error("expected the first occurrence to win")
		}
	})

	t.Run("composite fallback normalizes venue and timezone", func(t *testing.T) {
		// 2025-06-11 01:30 UTC is still 2025-06-10 in Eastern
		fetched := []*Event{
			{Venue: "  the  fillmore ", Date: time.Date(2025, 6, 11, 1, 30, 0, 0, time.UTC)},
		}
		known := []*Event{
			{Venue: "The Fillmore", Date: time.Date(2025, 6, 10, 20, 0, 0, 0, eastern)},
		}

		result := Reconcile(fetched, known, eastern)
		if len(result.NewEvents) != 0 {
			t.Errorf("expected timezone-normalized duplicate to collapse, got %d new", len(result.NewEvents))
		}
	})

	t.Run("announces only the unseen event", func(t *testing.T) {
		known := []*Event{
			show("A", "Fillmore", day(2025, 5, 1)),
		}
		fetched := []*Event{
			show("A", "Fillmore", day(2025, 5, 1)),
			show("B", "9:30 Club", day(2025, 6, 10)),
		}

		result := Reconcile(fetched, known, time.UTC)
		if len(result.NewEvents) != 1 {
			t.Fatalf("expected 1 new event, got %d", len(result.NewEvents))
		}
		if result.NewEvents[0].SourceID != "B" {
			t.Errorf("expected event B, got %q", result.NewEvents[0].SourceID)
		}
	})

	t.Run("fetched id matches known record lacking one", func(t *testing.T) {
		known := []*Event{
			show("", "The Fillmore", day(2025, 5, 1)),
		}
		fetched := []*Event{
			show("a", "The Fillmore", day(2025, 5, 1)),
		}

		result := Reconcile(fetched, known, time.UTC)
		if len(result.NewEvents) != 0 {
			t.Errorf("expected fallback match against known record without ID, got %d new", len(result.NewEvents))
		}
	})

	t.Run("fetched without id matches known record with one", func(t *testing.T) {
		known := []*Event{
			show("a", "The Fillmore", day(2025, 5, 1)),
		}
		fetched := []*Event{
			show("", "The Fillmore", day(2025, 5, 1)),
		}

		result := Reconcile(fetched, known, time.UTC)
		if len(result.NewEvents) != 0 {
			t.Errorf("expected fallback match against known record with ID, got %d new", len(result.NewEvents))
		}
	})

	t.Run("distinct source ids stay distinct at same venue and day", func(t *testing.T) {
		known := []*Event{
			show("matinee", "The Fillmore", day(2025, 5, 1)),
		}
		fetched := []*Event{
			show("evening", "The Fillmore", day(2025, 5, 1)),
		}

		result := Reconcile(fetched, known, time.UTC)
		if len(result.NewEvents) != 1 {
			t.Errorf("expected differing IDs to stay distinct, got %d new", len(result.NewEvents))
		}
	})

	t.Run("skips records missing venue or date", func(t *testing.T) {
		fetched := []*Event{
			{Venue: "The Fillmore"},           // no date
			{Date: day(2025, 5, 1)},           // no venue
			show("a", "9:30 Club", day(2025, 6, 10)),
		}

		result := Reconcile(fetched, nil, time.UTC)
		if len(result.NewEvents) != 1 {
			t.Errorf("expected 1 new event, got %d", len(result.NewEvents))
		}
		if result.Skipped != 2 {
			t.Errorf("expected 2 skipped records, got %d", result.Skipped)
		}
		if result.Total != 3 {
			t.Errorf("expected total 3, got %d", result.Total)
		}
	})

	t.Run("handles nil and empty inputs", func(t *testing.T) {
		result := Reconcile(nil, nil, nil)
		if len(result.NewEvents) != 0 || result.Total != 0 || result.Skipped != 0 {
			t.Errorf("unexpected result for nil inputs: %+v", result)
		}

		result = Reconcile([]*Event{nil, show("a", "The Fillmore", day(2025, 5, 1))}, []*Event{nil}, time.UTC)
		if len(result.NewEvents) != 1 {
			t.Errorf("expected nil entries to be ignored, got %d new", len(result.NewEvents))
		}
	})
}
