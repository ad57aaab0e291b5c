package worker

import (
	"context"
	"time"

	"dateTracker/internal/logger"
	"dateTracker/internal/models/task"

	"go.uber.org/zap"
)

const checkTimeout = 5 * time.Second

type Store interface {
	HealthCheck(context.Context) error
	List(context.Context) ([]*task.Task, error)
}

type Gauges interface {
	SetStoreUp(up bool)
	SetLiveTasks(n int)
}

// StoreMonitor periodically checks the task store and publishes its
// availability and the number of live tasks.
type StoreMonitor struct {
	store    Store
	gauges   Gauges
	interval time.Duration
	lastUp   *bool
}

func NewStoreMonitor(store Store, gauges Gauges, interval time.Duration) *StoreMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &StoreMonitor{
		store:    store,
		gauges:   gauges,
		interval: interval,
	}
}

// Start checks once immediately, then on every tick until ctx ends.
func (m *StoreMonitor) Start(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ticker.C:
			m.Check(ctx)
		case <-ctx.Done():
			logger.Info("Worker: store monitor stopped")
			return
		}
	}
}

func (m *StoreMonitor) Check(ctx context.Context) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	up := m.store.HealthCheck(ctx) == nil
	m.gauges.SetStoreUp(up)
	m.logTransition(up)
	if !up {
		return
	}

	tasks, err := m.store.List(ctx)
	if err != nil {
		logger.Warn("Worker: failed to count live tasks", zap.Error(err))
		return
	}
	m.gauges.SetLiveTasks(len(tasks))

	logger.Debug("Worker: store check finished",
		zap.Duration("ms", time.Since(start)),
		zap.Int("live_tasks", len(tasks)))
}

func (m *StoreMonitor) logTransition(up bool) {
	if m.lastUp != nil && *m.lastUp == up {
		return
	}
	if up {
		logger.Info("Worker: task store is available")
	} else {
		logger.Warn("Worker: task store is unavailable")
	}
	m.lastUp = &up
}
