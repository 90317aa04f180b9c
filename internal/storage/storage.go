package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pfrederiksen/tourwatch/internal/errs"
	"github.com/pfrederiksen/tourwatch/internal/event"
)

// Store handles persistence of tour dates
type Store struct {
	db  *gorm.DB
	loc *time.Location
}

// Open opens the database at path, creating it and its parent directory if
// needed, and migrates the schema. A leading ~ expands to the home
// directory. loc is the reference timezone for day keys; nil means UTC.
func Open(path string, loc *time.Location) (*Store, error) {
	if loc == nil {
		loc = time.UTC
	}

	// Expand ~ to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("creating data directory: %w", err)
			}
		}
	}

	db, err := gorm.Open(gormsqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, errs.Store(errs.Wrap(err, "opening database"))
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, errs.Store(errs.Wrap(err, "migrating schema"))
	}

	return &Store{db: db, loc: loc}, nil
}

// Close releases the underlying database handle
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ListAll returns every stored event, sorted by date then venue
func (s *Store) ListAll(ctx context.Context) ([]*event.Event, error) {
	var rows []Record
	if err := s.db.WithContext(ctx).
		Order("date asc, venue asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Store(errs.Wrap(err, "listing events"))
	}
	return toEvents(rows), nil
}

// ListByDate returns events whose calendar day in the reference timezone
// matches day (YYYY-MM-DD), sorted by date then venue
func (s *Store) ListByDate(ctx context.Context, day string) ([]*event.Event, error) {
	var rows []Record
	if err := s.db.WithContext(ctx).
		Where("day_key = ?", day).
		Order("date asc, venue asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Store(errs.Wrapf(err, "listing events for %s", day))
	}
	return toEvents(rows), nil
}

// Insert persists a batch of events. Identity conflicts are tolerated: a
// row whose key already exists is left untouched, so retrying a partially
// persisted batch does not fail. Keys and first-seen timestamps are
// assigned to events that lack them.
func (s *Store) Insert(ctx context.Context, events []*event.Event) error {
	if len(events) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows := make([]*Record, 0, len(events))
	for _, evt := range events {
		if evt == nil {
			continue
		}
		rec := newRecord(evt, s.loc, now)
		evt.Key = rec.Key
		if evt.FirstSeen.IsZero() {
			evt.FirstSeen = now
		}
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		return nil
	}

	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error; err != nil {
		return errs.Store(errs.Wrap(err, "inserting events"))
	}
	return nil
}

// Count returns the number of stored events
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&Record{}).Count(&n).Error; err != nil {
		return 0, errs.Store(errs.Wrap(err, "counting events"))
	}
	return n, nil
}

func toEvents(rows []Record) []*event.Event {
	events := make([]*event.Event, 0, len(rows))
	for i := range rows {
		events = append(events, rows[i].toEvent())
	}
	return events
}
