package notifier

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/tourwatch/internal/event"
)

func TestFormatTweet(t *testing.T) {
	tests := []struct {
		name     string
		event    *event.Event
		wantLen  int
		contains []string
	}{
		{
			name: "complete event",
			event: &event.Event{
				SourceID:  "evt-8741",
				Venue:     "The Fillmore",
				Location:  "San Francisco, CA",
				Date:      time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
				TicketURL: "https://tickets.example.com/8741",
				SourceURL: "https://example.com/tour",
				FirstSeen: time.Now(),
			},
			wantLen: 280,
			contains: []string{
				"Goose has announced a new show!",
				"The Fillmore",
				"San Francisco, CA",
				"Jun 10, 2026",
				"https://tickets.example.com/8741",
				"#TourDates",
				"🎶",
			},
		},
		{
			name: "event without location",
			event: &event.Event{
				Venue:     "Red Rocks Amphitheatre",
				Date:      time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC),
				SourceURL: "https://example.com/tour",
				FirstSeen: time.Now(),
			},
			wantLen: 280,
			contains: []string{
				"Red Rocks Amphitheatre",
				"Jun 20, 2026",
				"#LiveMusic",
			},
		},
		{
			name: "multi-day run includes both dates",
			event: &event.Event{
				Venue:     "Red Rocks Amphitheatre",
				Location:  "Morrison, CO",
				Date:      time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2026, 6, 22, 0, 0, 0, 0, time.UTC),
				SourceURL: "https://example.com/tour",
				FirstSeen: time.Now(),
			},
			wantLen: 280,
			contains: []string{
				"Jun 20, 2026",
				"Jun 22, 2026",
			},
		},
		{
			name: "very long venue gets truncated",
			event: &event.Event{
				Venue:     "This is an extremely long venue name that goes on and on and will definitely exceed the Twitter character limit of 280 characters when combined with all the other information we want to include in the tweet including emojis and hashtags and a very long ticket link",
				Location:  "A Very Long City Name That Also Contributes To Length, CA",
				Date:      time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
				TicketURL: "https://tickets.example.com/an-extremely-long-path-segment/8741",
				SourceURL: "https://example.com/tour",
				FirstSeen: time.Now(),
			},
			wantLen: 280,
			contains: []string{
				"...",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatTweet("Goose", tt.event)

			if len(got) > tt.wantLen {
				t.Errorf("formatTweet() length = %d, want <= %d", len(got), tt.wantLen)
			}

			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("formatTweet() missing %q in tweet:\n%s", want, got)
				}
			}
		})
	}
}

func TestNewTwitterNotifier(t *testing.T) {
	t.Run("missing credentials", func(t *testing.T) {
		for _, key := range []string{"TWITTER_API_KEY", "TWITTER_API_SECRET", "TWITTER_ACCESS_TOKEN", "TWITTER_ACCESS_SECRET"} {
			t.Setenv(key, "")
		}

		if _, err := NewTwitterNotifier("Goose"); err == nil {
			t.Error("NewTwitterNotifier() expected error with no credentials")
		}
	})

	t.Run("credentials present", func(t *testing.T) {
		t.Setenv("TWITTER_API_KEY", "key")
		t.Setenv("TWITTER_API_SECRET", "secret")
		t.Setenv("TWITTER_ACCESS_TOKEN", "token")
		t.Setenv("TWITTER_ACCESS_SECRET", "token-secret")

		n, err := NewTwitterNotifier("Goose")
		if err != nil {
			t.Fatalf("NewTwitterNotifier() error = %v", err)
		}
		if n.Name() != "twitter" {
			t.Errorf("Name() = %q, want %q", n.Name(), "twitter")
		}
	})
}

func TestDryRunNotifier(t *testing.T) {
	var buf bytes.Buffer
	orig := dryRunOut
	dryRunOut = &buf
	defer func() { dryRunOut = orig }()

	n := NewDryRunNotifier("Goose")
	if n.Name() != "dryrun" {
		t.Errorf("Name() = %q, want %q", n.Name(), "dryrun")
	}

	events := []*event.Event{
		{
			Venue:     "The Fillmore",
			Location:  "San Francisco, CA",
			Date:      time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			SourceURL: "https://example.com/tour",
			FirstSeen: time.Now(),
		},
		{
			Venue:     "9:30 Club",
			Location:  "Washington, DC",
			Date:      time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
			SourceURL: "https://example.com/tour",
			FirstSeen: time.Now(),
		},
	}

	for _, evt := range events {
		if err := n.Announce(context.Background(), evt); err != nil {
			t.Errorf("Announce() error = %v, want nil", err)
		}
	}

	out := buf.String()
	for _, want := range []string{"--- Announcement ---", "The Fillmore", "9:30 Club", "(Length:"} {
		if !strings.Contains(out, want) {
			t.Errorf("dry-run output missing %q:\n%s", want, out)
		}
	}
}
