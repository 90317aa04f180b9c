package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/tourwatch/internal/calendar"
	"github.com/pfrederiksen/tourwatch/internal/event"
)

func main() {
	// Create a couple of sample shows, including a multi-night run
	events := []*event.Event{
		{
			Key:       "test-show-1",
			Venue:     "The Fillmore",
			Location:  "San Francisco, CA",
			Date:      time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			TicketURL: "https://tickets.example.com/8741",
			SourceURL: "https://example.com/tour",
			FirstSeen: time.Now(),
		},
		{
			Key:       "test-show-2",
			Venue:     "Red Rocks Amphitheatre",
			Location:  "Morrison, CO",
			Date:      time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 6, 22, 0, 0, 0, 0, time.UTC),
			Details:   []string{"w/ Special Guest"},
			SourceURL: "https://example.com/tour",
			FirstSeen: time.Now(),
		},
	}

	// Generate the .ics feed
	icsContent := calendar.GenerateBulkICS(events, "Sample Artist", "Sample Artist Tour Dates", time.UTC)

	// Write to file (owner read/write only for security)
	filename := "test-tourwatch.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
