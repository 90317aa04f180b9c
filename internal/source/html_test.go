package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func TestHTMLSource_ParseEvents(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/tour_page.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	s := NewHTMLSource("https://test.example.com/tour")
	events, err := s.parseEvents(strings.NewReader(string(data)), "https://test.example.com/tour")
	if err != nil {
		t.Fatalf("parseEvents failed: %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("expected 3 events (TBA row skipped), got %d", len(events))
	}

	t.Run("row with widget id", func(t *testing.T) {
		evt := events[0]
		if evt.SourceID != "evt-8741" {
			t.Errorf("SourceID = %q, want %q", evt.SourceID, "evt-8741")
		}
		if evt.Venue != "The Fillmore" {
			t.Errorf("Venue = %q", evt.Venue)
		}
		if evt.Location != "San Francisco, CA" {
			t.Errorf("Location = %q", evt.Location)
		}
		if got := evt.Date.Format("2006-01-02"); got != "2025-06-10" {
			t.Errorf("Date = %s", got)
		}
		if evt.IsMultiDay() {
			t.Error("single date should not be multi-day")
		}
		if evt.TicketURL != "https://link.seated.com/tickets/evt-8741" {
			t.Errorf("TicketURL = %q", evt.TicketURL)
		}
		if evt.VIPURL != "" {
			t.Errorf("VIPURL = %q, want empty", evt.VIPURL)
		}
		if len(evt.Details) != 1 || evt.Details[0] != "An Evening With" {
			t.Errorf("Details = %v", evt.Details)
		}
	})

	t.Run("multi-night run without widget id", func(t *testing.T) {
		evt := events[1]
		if evt.SourceID != "" {
			t.Errorf("SourceID = %q, want empty", evt.SourceID)
		}
		if evt.Venue != "Red Rocks Amphitheatre" {
			t.Errorf("Venue = %q", evt.Venue)
		}
		if got := evt.Date.Format("2006-01-02"); got != "2025-06-20" {
			t.Errorf("Date = %s", got)
		}
		if got := evt.EndDate.Format("2006-01-02"); got != "2025-06-22" {
			t.Errorf("EndDate = %s", got)
		}
		if !evt.IsMultiDay() {
			t.Error("range should be multi-day")
		}
		if evt.VIPURL != "https://example.com/vip/red-rocks-run" {
			t.Errorf("VIPURL = %q", evt.VIPURL)
		}

		wantDetails := []string{"w/ Special Guest", "VIP Available"}
		if len(evt.Details) != len(wantDetails) {
			t.Fatalf("Details = %v, want %v", evt.Details, wantDetails)
		}
		for i, want := range wantDetails {
			if evt.Details[i] != want {
				t.Errorf("Details[%d] = %q, want %q", i, evt.Details[i], want)
			}
		}
	})

	t.Run("date cell spanning lines", func(t *testing.T) {
		evt := events[2]
		if evt.Venue != "9:30 Club" {
			t.Errorf("Venue = %q", evt.Venue)
		}
		if got := evt.Date.Format("2006-01-02"); got != "2025-09-05" {
			t.Errorf("Date = %s, want newline-split date collapsed", got)
		}
	})

	for _, evt := range events {
		if evt.SourceURL != "https://test.example.com/tour" {
			t.Errorf("SourceURL = %q", evt.SourceURL)
		}
	}
}

func TestHTMLSource_FetchEvents(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/tour_page.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.Write(data)
	}))
	defer server.Close()

	s := NewHTMLSource(server.URL)
	events, err := s.FetchEvents(context.Background())
	if err != nil {
		t.Fatalf("FetchEvents failed: %v", err)
	}
	if len(events) != 3 {
		t.Errorf("expected 3 events, got %d", len(events))
	}
	if gotUA != UserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, UserAgent)
	}
}

func TestHTMLSource_FetchEventsErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		s := NewHTMLSource(server.URL)
		if _, err := s.FetchEvents(context.Background()); err == nil {
			t.Error("expected error for 503 response")
		}
	})

	t.Run("unreachable host", func(t *testing.T) {
		s := NewHTMLSource("http://127.0.0.1:1")
		if _, err := s.FetchEvents(context.Background()); err == nil {
			t.Error("expected error for unreachable host")
		}
	})

	t.Run("context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		s := NewHTMLSource(server.URL)
		if _, err := s.FetchEvents(ctx); err == nil {
			t.Error("expected error for cancelled context")
		}
	})

	t.Run("empty page yields empty slice", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html><body><p>No shows announced.</p></body></html>"))
		}))
		defer server.Close()

		s := NewHTMLSource(server.URL)
		events, err := s.FetchEvents(context.Background())
		if err != nil {
			t.Fatalf("FetchEvents failed: %v", err)
		}
		if len(events) != 0 {
			t.Errorf("expected 0 events, got %d", len(events))
		}
	})
}
