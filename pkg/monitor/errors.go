package monitor

import "errors"

var (
	// ErrMonitorRunning is returned when Run is called while a run is in progress.
	ErrMonitorRunning = errors.New("monitor is already running")

	// ErrNilRefresh is returned when no refresh callback is configured.
	ErrNilRefresh = errors.New("refresh callback is required")

	// ErrNilWatcher is returned when no watcher is configured.
	ErrNilWatcher = errors.New("watcher is required")
)
