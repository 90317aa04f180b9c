package storage

import (
	"encoding/json"
	"time"

	"github.com/pfrederiksen/tourwatch/internal/event"
)

// Record is the persisted form of an event. Timestamps are RFC3339 text in
// UTC; day_key is the calendar day in the reference timezone and carries the
// index that ListByDate queries.
type Record struct {
	Key       string `gorm:"column:key;type:text;primaryKey"`
	SourceID  string `gorm:"column:source_id;type:text;index"`
	Venue     string `gorm:"column:venue;type:text;not null"`
	Location  string `gorm:"column:location;type:text"`
	Date      string `gorm:"column:date;type:text;not null"`
	EndDate   string `gorm:"column:end_date;type:text"`
	DayKey    string `gorm:"column:day_key;type:text;not null;index"`
	Details   string `gorm:"column:details;type:text"`
	TicketURL string `gorm:"column:ticket_url;type:text"`
	VIPURL    string `gorm:"column:vip_url;type:text"`
	SourceURL string `gorm:"column:source_url;type:text"`
	FirstSeen string `gorm:"column:first_seen;type:text;not null"`
}

func (Record) TableName() string {
	return "events"
}

// newRecord converts an event for persistence. Events arriving without a
// key or first-seen timestamp get them assigned here, so callers can hand
// freshly fetched events straight to Insert.
func newRecord(evt *event.Event, loc *time.Location, now time.Time) *Record {
	key := evt.Key
	if key == "" {
		key = event.GenerateKey(evt.SourceID, evt.Venue, evt.Date, loc)
	}
	firstSeen := evt.FirstSeen
	if firstSeen.IsZero() {
		firstSeen = now
	}

	rec := &Record{
		Key:       key,
		SourceID:  evt.SourceID,
		Venue:     evt.Venue,
		Location:  evt.Location,
		Date:      evt.Date.UTC().Format(time.RFC3339),
		DayKey:    event.DayKey(evt.Date, loc),
		TicketURL: evt.TicketURL,
		VIPURL:    evt.VIPURL,
		SourceURL: evt.SourceURL,
		FirstSeen: firstSeen.UTC().Format(time.RFC3339),
	}
	if !evt.EndDate.IsZero() {
		rec.EndDate = evt.EndDate.UTC().Format(time.RFC3339)
	}
	if len(evt.Details) > 0 {
		data, _ := json.Marshal(evt.Details)
		rec.Details = string(data)
	}
	return rec
}

func (r *Record) toEvent() *event.Event {
	evt := &event.Event{
		Key:       r.Key,
		SourceID:  r.SourceID,
		Venue:     r.Venue,
		Location:  r.Location,
		TicketURL: r.TicketURL,
		VIPURL:    r.VIPURL,
		SourceURL: r.SourceURL,
	}
	if t, err := time.Parse(time.RFC3339, r.Date); err == nil {
		evt.Date = t
	}
	if r.EndDate != "" {
		if t, err := time.Parse(time.RFC3339, r.EndDate); err == nil {
			evt.EndDate = t
		}
	}
	if r.FirstSeen != "" {
		if t, err := time.Parse(time.RFC3339, r.FirstSeen); err == nil {
			evt.FirstSeen = t
		}
	}
	if r.Details != "" {
		var details []string
		if err := json.Unmarshal([]byte(r.Details), &details); err == nil {
			evt.Details = details
		}
	}
	return evt
}
