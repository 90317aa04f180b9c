package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pfrederiksen/tourwatch/internal/errs"
	"github.com/pfrederiksen/tourwatch/internal/event"
	"github.com/pfrederiksen/tourwatch/internal/logger"
	"github.com/pfrederiksen/tourwatch/internal/source"
)

// Store is the persistence the check workflow drives
type Store interface {
	ListAll(ctx context.Context) ([]*event.Event, error)
	ListByDate(ctx context.Context, day string) ([]*event.Event, error)
	Insert(ctx context.Context, events []*event.Event) error
	Count(ctx context.Context) (int64, error)
}

// Notifier delivers one announcement per new event
type Notifier interface {
	Name() string
	Announce(ctx context.Context, evt *event.Event) error
}

// Monitor owns the check workflow: fetch, reconcile, persist, announce.
// Runs are strictly serialized; scheduled ticks wait on the run lock while
// manual triggers bail out with busy instead of queueing.
type Monitor struct {
	source    source.Source
	store     Store
	notifiers []Notifier
	loc       *time.Location

	runMu sync.Mutex

	mu        sync.RWMutex
	lastRun   *Result
	startedAt time.Time
}

// New creates a Monitor. loc is the reference timezone for identity
// comparisons; nil means UTC.
func New(src source.Source, store Store, loc *time.Location, notifiers ...Notifier) *Monitor {
	if loc == nil {
		loc = time.UTC
	}
	return &Monitor{
		source:    src,
		store:     store,
		notifiers: notifiers,
		loc:       loc,
		startedAt: time.Now().UTC(),
	}
}

// RunCheck performs one full check, waiting for any in-flight run to finish
func (m *Monitor) RunCheck(ctx context.Context) *Result {
	m.runMu.Lock()
	defer m.runMu.Unlock()
	return m.runLocked(ctx)
}

// TryRunCheck performs a check unless one is already in flight, in which
// case it reports busy without blocking
func (m *Monitor) TryRunCheck(ctx context.Context) (*Result, bool) {
	if !m.runMu.TryLock() {
		return nil, false
	}
	defer m.runMu.Unlock()
	return m.runLocked(ctx), true
}

func (m *Monitor) runLocked(ctx context.Context) *Result {
	runID := uuid.NewString()
	started := time.Now().UTC()

	logger.Info("check started", logger.Fields{"run_id": runID, "source": m.source.Name()})
	logger.IncrCounter("runs")

	res := &Result{RunID: runID, StartedAt: started}

	finish := func() *Result {
		elapsed := time.Since(started)
		res.DurationMS = elapsed.Milliseconds()
		logger.RecordTiming("check", elapsed)
		m.mu.Lock()
		m.lastRun = res
		m.mu.Unlock()
		return res
	}

	fail := func(counter string, err error) *Result {
		logger.IncrCounter(counter)
		res.Outcome = Failed
		res.Reason = err.Error()
		logger.Error("check failed", logger.Fields{"run_id": runID}, err)
		return finish()
	}

	fetched, err := m.source.FetchEvents(ctx)
	if err != nil {
		return fail("fetch_failures", errs.Fetch(err))
	}
	res.Total = len(fetched)

	known, err := m.store.ListAll(ctx)
	if err != nil {
		return fail("store_failures", err)
	}

	diff := event.Reconcile(fetched, known, m.loc)
	res.Skipped = diff.Skipped
	if diff.Skipped > 0 {
		logger.AddCounter("records_skipped", int64(diff.Skipped))
		logger.Warn("skipped malformed records", logger.Fields{"run_id": runID, "count": diff.Skipped})
	}

	if len(diff.NewEvents) == 0 {
		res.Outcome = NoNewEvents
		logger.Info("check finished", logger.Fields{
			"run_id": runID, "outcome": res.Outcome.String(), "fetched": res.Total,
		})
		return finish()
	}

	// Persist before announcing: a delivery failure must not resurface the
	// same events as new on the next run.
	if err := m.store.Insert(ctx, diff.NewEvents); err != nil {
		return fail("store_failures", err)
	}

	res.Outcome = NewEvents
	res.NewCount = len(diff.NewEvents)
	res.NewEvents = diff.NewEvents

	m.announce(ctx, runID, diff.NewEvents)

	logger.Info("check finished", logger.Fields{
		"run_id": runID, "outcome": res.Outcome.String(), "new_events": res.NewCount, "fetched": res.Total,
	})
	return finish()
}

// announce delivers each event to each notifier. Failures are logged and
// counted per event; they never block the rest of the batch.
func (m *Monitor) announce(ctx context.Context, runID string, events []*event.Event) {
	for _, evt := range events {
		for _, n := range m.notifiers {
			if err := n.Announce(ctx, evt); err != nil {
				logger.IncrCounter("delivery_failures")
				logger.Error("announce failed", logger.Fields{
					"run_id": runID, "notifier": n.Name(), "venue": evt.Venue,
				}, errs.Delivery(n.Name(), err))
				continue
			}
			logger.IncrCounter("events_announced")
		}
	}
}

// ReplayDate re-announces the stored shows on day (YYYY-MM-DD in the
// reference timezone) and returns how many it posted. Replays read the
// store and drive the notifiers without taking the run lock.
func (m *Monitor) ReplayDate(ctx context.Context, day string) (int, error) {
	events, err := m.store.ListByDate(ctx, day)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	runID := uuid.NewString()
	logger.Info("replaying stored events", logger.Fields{"run_id": runID, "day": day, "count": len(events)})
	m.announce(ctx, runID, events)
	return len(events), nil
}

// LastRun returns the most recent run result, nil before the first run
func (m *Monitor) LastRun() *Result {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastRun
}

// Events returns all stored events sorted by date
func (m *Monitor) Events(ctx context.Context) ([]*event.Event, error) {
	return m.store.ListAll(ctx)
}

// EventsByDate returns the stored events on day (YYYY-MM-DD)
func (m *Monitor) EventsByDate(ctx context.Context, day string) ([]*event.Event, error) {
	return m.store.ListByDate(ctx, day)
}

// Location returns the reference timezone
func (m *Monitor) Location() *time.Location {
	return m.loc
}

// SourceName identifies the configured source
func (m *Monitor) SourceName() string {
	return m.source.Name()
}

// Status is a point-in-time snapshot for the status surfaces
type Status struct {
	Source    string           `json:"source"`
	LastRun   *Result          `json:"last_run,omitempty"`
	StartedAt time.Time        `json:"started_at"`
	UptimeSec int64            `json:"uptime_seconds"`
	StoreSize int64            `json:"store_size"`
	Counters  map[string]int64 `json:"counters"`
}

// StatusReport assembles the current status. A store failure degrades the
// size to -1 rather than failing the report.
func (m *Monitor) StatusReport(ctx context.Context) Status {
	m.mu.RLock()
	last := m.lastRun
	started := m.startedAt
	m.mu.RUnlock()

	size, err := m.store.Count(ctx)
	if err != nil {
		size = -1
	}
	logger.SetGauge("store_size", float64(size))

	return Status{
		Source:    m.source.Name(),
		LastRun:   last,
		StartedAt: started,
		UptimeSec: int64(time.Since(started).Seconds()),
		StoreSize: size,
		Counters: map[string]int64{
			"runs":              logger.CounterValue("runs"),
			"fetch_failures":    logger.CounterValue("fetch_failures"),
			"store_failures":    logger.CounterValue("store_failures"),
			"delivery_failures": logger.CounterValue("delivery_failures"),
			"events_announced":  logger.CounterValue("events_announced"),
			"records_skipped":   logger.CounterValue("records_skipped"),
		},
	}
}
