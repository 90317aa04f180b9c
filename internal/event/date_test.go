package event

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantYear  int
		wantMonth time.Month
		wantDay   int
		wantZero  bool
	}{
		{
			name:      "Abbreviated month Jun 10, 2025",
			text:      "Jun 10, 2025",
			wantYear:  2025,
			wantMonth: time.June,
			wantDay:   10,
		},
		{
			name:      "Full month June 10, 2025",
			text:      "June 10, 2025",
			wantYear:  2025,
			wantMonth: time.June,
			wantDay:   10,
		},
		{
			name:      "Single digit day Sep 5, 2025",
			text:      "Sep 5, 2025",
			wantYear:  2025,
			wantMonth: time.September,
			wantDay:   5,
		},
		{
			name:      "Slash format 6/10/2025",
			text:      "6/10/2025",
			wantYear:  2025,
			wantMonth: time.June,
			wantDay:   10,
		},
		{
			name:      "ISO format 2025-06-10",
			text:      "2025-06-10",
			wantYear:  2025,
			wantMonth: time.June,
			wantDay:   10,
		},
		{
			name:      "RFC3339 with offset",
			text:      "2025-06-10T20:00:00-04:00",
			wantYear:  2025,
			wantMonth: time.June,
			wantDay:   10,
		},
		{
			name:      "ISO timestamp without offset",
			text:      "2025-06-10T00:00:00",
			wantYear:  2025,
			wantMonth: time.June,
			wantDay:   10,
		},
		{
			name:      "Surrounding whitespace",
			text:      "  Jun 10, 2025  ",
			wantYear:  2025,
			wantMonth: time.June,
			wantDay:   10,
		},
		{
			name:     "Empty string",
			text:     "",
			wantZero: true,
		},
		{
			name:     "Invalid format",
			text:     "Not a date",
			wantZero: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.text)

			if tt.wantZero {
				if !got.IsZero() {
					t.Errorf("ParseDate(%q) = %v, want zero time", tt.text, got)
				}
				return
			}

			if got.Year() != tt.wantYear {
				t.Errorf("ParseDate(%q).Year() = %d, want %d", tt.text, got.Year(), tt.wantYear)
			}
			if got.Month() != tt.wantMonth {
				t.Errorf("ParseDate(%q).Month() = %v, want %v", tt.text, got.Month(), tt.wantMonth)
			}
			if got.Day() != tt.wantDay {
				t.Errorf("ParseDate(%q).Day() = %d, want %d", tt.text, got.Day(), tt.wantDay)
			}
		})
	}
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantStart string
		wantEnd   string
	}{
		{
			name:      "Single date",
			text:      "Jun 10, 2025",
			wantStart: "2025-06-10",
			wantEnd:   "",
		},
		{
			name:      "Hyphen range",
			text:      "Jun 10, 2025 - Jun 12, 2025",
			wantStart: "2025-06-10",
			wantEnd:   "2025-06-12",
		},
		{
			name:      "Word range",
			text:      "Jun 10, 2025 to Jun 12, 2025",
			wantStart: "2025-06-10",
			wantEnd:   "2025-06-12",
		},
		{
			name:      "Unparseable end keeps start",
			text:      "Jun 10, 2025 - TBD",
			wantStart: "2025-06-10",
			wantEnd:   "",
		},
		{
			name:      "Unparseable start drops both",
			text:      "TBD - Jun 12, 2025",
			wantStart: "",
			wantEnd:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ParseDateRange(tt.text)

			gotStart := ""
			if !start.IsZero() {
				gotStart = start.Format("2006-01-02")
			}
			gotEnd := ""
			if !end.IsZero() {
				gotEnd = end.Format("2006-01-02")
			}

			if gotStart != tt.wantStart {
				t.Errorf("ParseDateRange(%q) start = %q, want %q", tt.text, gotStart, tt.wantStart)
			}
			if gotEnd != tt.wantEnd {
				t.Errorf("ParseDateRange(%q) end = %q, want %q", tt.text, gotEnd, tt.wantEnd)
			}
		})
	}
}

func TestDayKey(t *testing.T) {
	eastern, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load timezone: %v", err)
	}

	tests := []struct {
		name string
		t    time.Time
		loc  *time.Location
		want string
	}{
		{
			name: "UTC midnight stays on its day",
			t:    time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			loc:  time.UTC,
			want: "2025-06-10",
		},
		{
			name: "Late UTC evening rolls back a day in Eastern",
			t:    time.Date(2025, 6, 11, 1, 30, 0, 0, time.UTC),
			loc:  eastern,
			want: "2025-06-10",
		},
		{
			name: "Eastern show time keeps its day",
			t:    time.Date(2025, 6, 10, 20, 0, 0, 0, eastern),
			loc:  eastern,
			want: "2025-06-10",
		},
		{
			name: "Nil location falls back to UTC",
			t:    time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC),
			loc:  nil,
			want: "2025-06-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayKey(tt.t, tt.loc); got != tt.want {
				t.Errorf("DayKey(%v, %v) = %q, want %q", tt.t, tt.loc, got, tt.want)
			}
		})
	}
}

func TestFormatDateRange(t *testing.T) {
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	if got := FormatDateRange(start, time.Time{}); got != "Jun 10, 2025" {
		t.Errorf("single date = %q, want %q", got, "Jun 10, 2025")
	}
	if got := FormatDateRange(start, start); got != "Jun 10, 2025" {
		t.Errorf("same start and end = %q, want %q", got, "Jun 10, 2025")
	}
	if got := FormatDateRange(start, end); got != "Jun 10, 2025 - Jun 12, 2025" {
		t.Errorf("range = %q, want %q", got, "Jun 10, 2025 - Jun 12, 2025")
	}
}

func TestEvent_IsUpcoming(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		evt  *Event
		want bool
	}{
		{
			name: "Future event",
			evt:  &Event{Date: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
			want: true,
		},
		{
			name: "Same day counts as upcoming",
			evt:  &Event{Date: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)},
			want: true,
		},
		{
			name: "Past event",
			evt:  &Event{Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
			want: false,
		},
		{
			name: "Run still in progress",
			evt: &Event{
				Date:    time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
				EndDate: time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
			},
			want: true,
		},
		{
			name: "Zero date included",
			evt:  &Event{},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.evt.IsUpcoming(now, time.UTC); got != tt.want {
				t.Errorf("IsUpcoming() = %v, want %v", got, tt.want)
			}
		})
	}
}
