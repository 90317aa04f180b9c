package monitor

import (
	"context"
	"time"

	"github.com/pfrederiksen/tourwatch/internal/logger"
)

// Watch runs a check immediately, then one per interval, until ctx is
// done. Each tick blocks on the run lock, so a manually triggered run
// delays the scheduled one instead of overlapping it.
func (m *Monitor) Watch(ctx context.Context, interval time.Duration) {
	logger.Info("watch started", logger.Fields{"interval": interval.String()})

	res := m.RunCheck(ctx)
	logger.Info("scheduled run complete", logger.Fields{"run_id": res.RunID, "summary": res.Summary()})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped", nil)
			return
		case <-ticker.C:
			res := m.RunCheck(ctx)
			logger.Info("scheduled run complete", logger.Fields{"run_id": res.RunID, "summary": res.Summary()})
		}
	}
}
