package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/tourwatch/internal/event"
	"github.com/pfrederiksen/tourwatch/internal/monitor"
)

// MessageLimit is the chunk ceiling for outgoing content. Discord caps
// messages at 2000 characters; staying under leaves room for formatting.
const MessageLimit = 1900

// FormatAnnouncement formats the channel post for one newly announced show
func FormatAnnouncement(artist string, evt *event.Event) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("**%s has announced a new show!**\n\n", artist))
	msg.WriteString(eventBlock(evt))

	return msg.String()
}

// eventBlock renders the shared show block: bold date, venue | location,
// ticket and VIP links, then one bullet per detail line
func eventBlock(evt *event.Event) string {
	lines := []string{"**" + formatLongDate(evt) + "**"}

	venueLine := evt.Venue
	if evt.Location != "" {
		venueLine += " | " + evt.Location
	}
	lines = append(lines, venueLine)

	if evt.TicketURL != "" {
		lines = append(lines, "🎫 Tickets: "+evt.TicketURL)
	}
	if evt.VIPURL != "" {
		lines = append(lines, "🎟️ VIP: "+evt.VIPURL)
	}
	for _, d := range evt.Details {
		lines = append(lines, "- "+d)
	}

	return strings.Join(lines, "\n")
}

// formatLongDate renders "June 10, 2025", or "June 20, 2025 to
// June 22, 2025" for multi-night runs
func formatLongDate(evt *event.Event) string {
	const layout = "January 2, 2006"
	if evt.IsMultiDay() {
		return evt.Date.Format(layout) + " to " + evt.EndDate.Format(layout)
	}
	return evt.Date.Format(layout)
}

// FormatTourDates renders upcoming shows grouped by month, chunked to fit
// Discord's message limit. events must be date-sorted (the store returns
// them that way). monthFilter narrows the listing to one "January 2006"
// month when non-empty.
func FormatTourDates(artist string, events []*event.Event, monthFilter string, loc *time.Location, now time.Time) []string {
	upcoming := make([]*event.Event, 0, len(events))
	for _, evt := range events {
		if evt == nil || !evt.IsUpcoming(now, loc) {
			continue
		}
		if monthFilter != "" && !strings.EqualFold(event.MonthKey(evt.Date), monthFilter) {
			continue
		}
		upcoming = append(upcoming, evt)
	}

	if len(upcoming) == 0 {
		if monthFilter != "" {
			return []string{fmt.Sprintf("No tour dates found for %s.", monthFilter)}
		}
		return []string{"No upcoming tour dates found."}
	}

	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("**%s Tour Dates**\n", artist))
	if monthFilter != "" {
		msg.WriteString(fmt.Sprintf("Found %d upcoming shows in %s:", len(upcoming), monthFilter))
	} else {
		msg.WriteString(fmt.Sprintf("Found %d upcoming shows:", len(upcoming)))
	}

	currentMonth := ""
	for _, evt := range upcoming {
		month := event.MonthKey(evt.Date)
		if month != currentMonth {
			msg.WriteString(fmt.Sprintf("\n\n**%s**", month))
			currentMonth = month
		} else {
			msg.WriteString("\n───")
		}
		msg.WriteString("\n" + eventBlock(evt))
	}

	return splitMessage(msg.String(), MessageLimit)
}

// FormatOutcome renders a completed manual check for the invoking user
func FormatOutcome(res *monitor.Result) string {
	switch res.Outcome {
	case monitor.Failed:
		return "❌ Error during scrape: " + res.Reason
	case monitor.NewEvents:
		return fmt.Sprintf("✅ Found %d new concerts! Check the channel for details.", res.NewCount)
	default:
		return "ℹ️ No new concerts found."
	}
}

// FormatStatus renders the status report
func FormatStatus(st monitor.Status) string {
	var msg strings.Builder

	msg.WriteString("🤖 **Bot Status**\n\n")

	msg.WriteString("**Last Run**\n")
	if st.LastRun == nil {
		msg.WriteString("⏰ Never\n\n")
	} else {
		msg.WriteString(fmt.Sprintf("⏰ %s — %s\n\n",
			st.LastRun.StartedAt.UTC().Format("2006-01-02 15:04:05 UTC"),
			st.LastRun.Summary()))
	}

	msg.WriteString(fmt.Sprintf("**Uptime**\n⏱️ %s (since %s)\n\n",
		(time.Duration(st.UptimeSec) * time.Second).String(),
		st.StartedAt.UTC().Format("2006-01-02 15:04:05 UTC")))

	msg.WriteString("**Database**\n")
	if st.StoreSize < 0 {
		msg.WriteString("📦 unavailable\n\n")
	} else {
		msg.WriteString(fmt.Sprintf("📦 %d events stored\n\n", st.StoreSize))
	}

	msg.WriteString(fmt.Sprintf("**Source**\n🌐 %s\n\n", st.Source))

	msg.WriteString("**Counters**\n")
	msg.WriteString(fmt.Sprintf("runs: %d | fetch failures: %d | store failures: %d\n",
		st.Counters["runs"], st.Counters["fetch_failures"], st.Counters["store_failures"]))
	msg.WriteString(fmt.Sprintf("announced: %d | delivery failures: %d | skipped records: %d",
		st.Counters["events_announced"], st.Counters["delivery_failures"], st.Counters["records_skipped"]))

	return msg.String()
}

// splitMessage breaks s into chunks of at most limit bytes, splitting on
// line boundaries. A single line longer than the limit is hard-cut.
func splitMessage(s string, limit int) []string {
	if len(s) <= limit {
		return []string{s}
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, line := range strings.Split(s, "\n") {
		for len(line) > limit {
			flush()
			chunks = append(chunks, line[:limit])
			line = line[limit:]
		}
		if current.Len() > 0 && current.Len()+1+len(line) > limit {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	flush()

	return chunks
}
