// Package calendar generates iCalendar feeds for stored tour dates.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/tourwatch/internal/event"
)

// GenerateBulkICS generates an iCalendar (.ics) feed containing one all-day
// VEVENT per show. Multi-night runs span from the first night through the
// last. Returns the empty string when there are no events.
func GenerateBulkICS(events []*event.Event, artist, calendarName string, loc *time.Location) string {
	if len(events) == 0 {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}

	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//tourwatch//tourwatch//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	if calendarName != "" {
		ics.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(calendarName)))
	}

	now := time.Now().UTC()
	for _, evt := range events {
		if evt.Date.IsZero() {
			continue
		}
		writeVEvent(&ics, evt, artist, loc, now)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func writeVEvent(ics *strings.Builder, evt *event.Event, artist string, loc *time.Location, now time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")

	// UID - unique identifier for the show
	uid := evt.Key
	if uid == "" {
		uid = event.GenerateKey(evt.SourceID, evt.Venue, evt.Date, loc)
	}
	ics.WriteString(fmt.Sprintf("UID:%s@tourwatch\r\n", uid))

	// DTSTAMP - timestamp when this calendar entry was created
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(now)))

	// DTSTART and DTEND - all-day dates in the reference timezone.
	// DTEND is exclusive, so the day after the last night.
	start := evt.Date.In(loc)
	end := start.AddDate(0, 0, 1)
	if evt.IsMultiDay() {
		end = evt.EndDate.In(loc).AddDate(0, 0, 1)
	}
	ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", formatICSDate(start)))
	ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", formatICSDate(end)))

	// SUMMARY - show title
	summary := evt.Venue
	if artist != "" {
		summary = fmt.Sprintf("%s at %s", artist, evt.Venue)
	}
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	// DESCRIPTION - show details and ticket links
	if desc := eventDescription(evt); desc != "" {
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(desc)))
	}

	// LOCATION - venue and city
	location := evt.Venue
	if evt.Location != "" {
		location = fmt.Sprintf("%s, %s", evt.Venue, evt.Location)
	}
	ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(location)))

	// URL - ticket link when we have one, otherwise the tour page
	if evt.TicketURL != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", evt.TicketURL))
	} else if evt.SourceURL != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", evt.SourceURL))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")

	ics.WriteString("END:VEVENT\r\n")
}

// eventDescription builds the VEVENT description from details and links
func eventDescription(evt *event.Event) string {
	var lines []string
	lines = append(lines, evt.Details...)
	if evt.TicketURL != "" {
		lines = append(lines, fmt.Sprintf("Tickets: %s", evt.TicketURL))
	}
	if evt.VIPURL != "" {
		lines = append(lines, fmt.Sprintf("VIP: %s", evt.VIPURL))
	}
	return strings.Join(lines, "\n")
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// formatICSDate formats a time.Time as an iCalendar all-day date string
func formatICSDate(t time.Time) string {
	return t.Format("20060102")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
