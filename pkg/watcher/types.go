// Package watcher provides file system monitoring for watch mode.
//
// It uses fsnotify to watch Claude Code log directories and coalesces
// bursts of file changes into single refresh events, so a report only
// re-renders once per quiet period.
//
// Example usage:
//
//	w, err := watcher.New(watcher.Config{
//	    Debounce: 500 * time.Millisecond,
//	}, logger.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	ctx := context.Background()
//	paths := []string{"~/.claude/projects"}
//
//	if err := w.Start(ctx, paths); err != nil {
//	    log.Fatal(err)
//	}
//
//	for event := range w.Events() {
//	    fmt.Printf("%d change(s), refreshing\n", event.Changes)
//	}
package watcher

import (
	"context"
	"time"
)

// Event signals that watched log files changed and a refresh is due.
// Bursts of raw file system events within the debounce window collapse
// into one Event.
type Event struct {
	// Path is the file whose change fired the refresh.
	Path string

	// Changes is the number of raw file system events coalesced into
	// this refresh.
	Changes int

	// Timestamp is when the refresh fired.
	Timestamp time.Time
}

// Watcher provides file system monitoring.
type Watcher interface {
	// Start begins watching the specified paths recursively.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - paths: Directories to watch
	//
	// Returns error if watching cannot be started. Paths that do not
	// exist are skipped; Start fails only when no path is watchable.
	Start(ctx context.Context, paths []string) error

	// Stop gracefully shuts down the watcher.
	//
	// Returns error if shutdown fails.
	Stop() error

	// Events returns the channel for receiving refresh events.
	//
	// Events are debounced based on the configured interval.
	// The channel is closed when the watcher is closed.
	Events() <-chan Event

	// Errors returns the channel for receiving watcher errors.
	//
	// Non-fatal errors are sent to this channel.
	// The channel is closed when the watcher is closed.
	Errors() <-chan error

	// Close closes the watcher and releases resources.
	//
	// Returns error if resources cannot be released cleanly.
	Close() error
}

// Config contains watcher configuration.
type Config struct {
	// Debounce is the quiet period required before a refresh event is
	// emitted. Changes arriving within the window re-arm it.
	// Default: 500ms.
	Debounce time.Duration
}
