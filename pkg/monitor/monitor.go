package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/ccdash/ccdash/pkg/logger"
	"github.com/ccdash/ccdash/pkg/watcher"
)

// monitor implements the Monitor interface.
type monitor struct {
	config  Config
	logger  logger.Logger
	watcher watcher.Watcher
	refresh RefreshFunc

	mu      sync.Mutex
	running bool
}

// New creates a new watch-mode monitor.
//
// Parameters:
//   - cfg: Monitor configuration
//   - w: Started file watcher supplying change events
//   - refresh: Callback that re-runs the pipeline and repaints
//   - log: Logger instance
//
// Returns:
//   - Configured Monitor
//   - Error if the watcher or callback is missing
func New(cfg Config, w watcher.Watcher, refresh RefreshFunc, log logger.Logger) (Monitor, error) {
	if w == nil {
		return nil, ErrNilWatcher
	}
	if refresh == nil {
		return nil, ErrNilRefresh
	}

	if cfg.Interval == 0 {
		cfg.Interval = time.Minute
	}

	log.Debug("monitor created", "interval", cfg.Interval)

	return &monitor{
		config:  cfg,
		logger:  log,
		watcher: w,
		refresh: refresh,
	}, nil
}

// Run implements Monitor.Run.
func (m *monitor) Run(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return ErrMonitorRunning
	}
	m.running = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
	}()

	// Initial render before the first change arrives.
	if err := m.refresh(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(m.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Debug("monitor stopping", "reason", ctx.Err())
			return nil

		case event, ok := <-m.watcher.Events():
			if !ok {
				m.logger.Debug("watcher events channel closed")
				return nil
			}

			m.logger.Debug("log files changed",
				"path", event.Path,
				"changes", event.Changes)

			if err := m.refresh(ctx); err != nil {
				return err
			}
			ticker.Reset(m.config.Interval)

		case err, ok := <-m.watcher.Errors():
			if !ok {
				m.logger.Debug("watcher errors channel closed")
				return nil
			}
			m.logger.Error("watch error", "error", err)

		case <-ticker.C:
			if err := m.refresh(ctx); err != nil {
				return err
			}
		}
	}
}
