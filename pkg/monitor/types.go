// Package monitor runs the watch-mode refresh loop.
//
// A Monitor ties a file watcher to a refresh callback: every debounced
// change to the log files re-runs the batch report pipeline, and a
// forced interval keeps time-based panels (reset countdowns, burn
// rates) moving between changes. Ingestion itself stays batch; the
// monitor only decides when to run it again.
//
// Example usage:
//
//	m, err := monitor.New(monitor.Config{
//	    Interval: time.Minute,
//	}, w, refresh, logger.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := m.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package monitor

import (
	"context"
	"time"
)

// RefreshFunc re-runs the report pipeline and repaints the output. A
// returned error stops the monitor.
type RefreshFunc func(ctx context.Context) error

// Monitor drives refreshes for watch mode.
type Monitor interface {
	// Run performs one initial refresh and then blocks, refreshing on
	// every watcher event and on the forced interval, until the context
	// is cancelled.
	//
	// Parameters:
	//   - ctx: Context whose cancellation ends the loop
	//
	// Returns nil on cancellation or watcher shutdown, the refresh
	// error if a refresh fails, or ErrMonitorRunning when the monitor
	// is already running.
	Run(ctx context.Context) error
}

// Config contains monitor configuration.
type Config struct {
	// Interval forces a refresh when no file change arrives for this
	// long.
	// Default: 1 minute.
	Interval time.Duration
}
