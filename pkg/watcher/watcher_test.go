package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ccdash/ccdash/pkg/logger"
)

func TestNew(t *testing.T) {
	w, err := New(Config{}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if w == nil {
		t.Error("New() returned nil watcher")
	}

	if closeErr := w.Close(); closeErr != nil {
		t.Errorf("Close() error = %v", closeErr)
	}
}

func TestNewWithConfig(t *testing.T) {
	cfg := Config{
		Debounce: 200 * time.Millisecond,
	}

	w, err := New(cfg, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if closeErr := w.Close(); closeErr != nil {
		t.Errorf("Close() error = %v", closeErr)
	}
}

func TestStart(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := New(Config{
		Debounce: 50 * time.Millisecond,
	}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			t.Logf("Close() error = %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if startErr := w.Start(ctx, []string{tmpDir}); startErr != nil {
		t.Errorf("Start() error = %v", startErr)
	}

	// Give the event loop time to come up, then stop.
	time.Sleep(100 * time.Millisecond)
	cancel()
}

func TestStartInvalidPath(t *testing.T) {
	tmpDir := t.TempDir()
	nonExistent := filepath.Join(tmpDir, "nonexistent")

	w, err := New(Config{}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			t.Logf("Close() error = %v", err)
		}
	}()

	ctx := context.Background()

	// Should skip nonexistent path and return error if all paths are invalid.
	if startErr := w.Start(ctx, []string{nonExistent}); startErr == nil {
		t.Error("Start() error = nil, want error for nonexistent path")
	}
}

func TestStartAlreadyStarted(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := New(Config{}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		if closeErr := w.Close(); closeErr != nil {
			t.Logf("Close() error = %v", closeErr)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if startErr := w.Start(ctx, []string{tmpDir}); startErr != nil {
		t.Fatalf("Start() error = %v", startErr)
	}

	// Try to start again.
	startErr := w.Start(ctx, []string{tmpDir})
	if startErr != ErrAlreadyStarted {
		t.Errorf("Start() error = %v, want ErrAlreadyStarted", startErr)
	}
}

func TestFileCreate(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := New(Config{
		Debounce: 50 * time.Millisecond,
	}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			t.Logf("Close() error = %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if startErr := w.Start(ctx, []string{tmpDir}); startErr != nil {
		t.Fatalf("Start() error = %v", startErr)
	}

	// Give watcher time to start.
	time.Sleep(100 * time.Millisecond)

	// Create a JSONL file.
	testFile := filepath.Join(tmpDir, "test.jsonl")
	if writeErr := os.WriteFile(testFile, []byte("test"), 0600); writeErr != nil {
		t.Fatalf("Failed to create test file: %v", writeErr)
	}

	// Wait for event (with debounce + buffer).
	select {
	case event := <-w.Events():
		if event.Path != testFile {
			t.Errorf("Event path = %s, want %s", event.Path, testFile)
		}
		if event.Changes < 1 {
			t.Errorf("Event changes = %d, want >= 1", event.Changes)
		}
	case <-time.After(2 * time.Second):
		t.Error("Timeout waiting for file create event")
	}
}

func TestFileModify(t *testing.T) {
	tmpDir := t.TempDir()

	// Create file before starting watcher.
	testFile := filepath.Join(tmpDir, "test.jsonl")
	if err := os.WriteFile(testFile, []byte("initial"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	w, err := New(Config{
		Debounce: 50 * time.Millisecond,
	}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			t.Logf("Close() error = %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if startErr := w.Start(ctx, []string{tmpDir}); startErr != nil {
		t.Fatalf("Start() error = %v", startErr)
	}

	// Give watcher time to start.
	time.Sleep(100 * time.Millisecond)

	// Modify the file.
	if writeErr := os.WriteFile(testFile, []byte("modified"), 0600); writeErr != nil {
		t.Fatalf("Failed to modify test file: %v", writeErr)
	}

	// Wait for event.
	select {
	case event := <-w.Events():
		if event.Path != testFile {
			t.Errorf("Event path = %s, want %s", event.Path, testFile)
		}
	case <-time.After(2 * time.Second):
		t.Error("Timeout waiting for file modify event")
	}
}

func TestFileDelete(t *testing.T) {
	tmpDir := t.TempDir()

	// Create file before starting watcher.
	testFile := filepath.Join(tmpDir, "test.jsonl")
	if err := os.WriteFile(testFile, []byte("test"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	w, err := New(Config{
		Debounce: 50 * time.Millisecond,
	}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			t.Logf("Close() error = %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if startErr := w.Start(ctx, []string{tmpDir}); startErr != nil {
		t.Fatalf("Start() error = %v", startErr)
	}

	// Give watcher time to start.
	time.Sleep(100 * time.Millisecond)

	// Delete the file. Removals change the report too.
	if removeErr := os.Remove(testFile); removeErr != nil {
		t.Fatalf("Failed to delete test file: %v", removeErr)
	}

	// Wait for event.
	select {
	case event := <-w.Events():
		if event.Path != testFile {
			t.Errorf("Event path = %s, want %s", event.Path, testFile)
		}
	case <-time.After(2 * time.Second):
		t.Error("Timeout waiting for file delete event")
	}
}

func TestBurstCoalescing(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := New(Config{
		Debounce: 200 * time.Millisecond,
	}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			t.Logf("Close() error = %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if startErr := w.Start(ctx, []string{tmpDir}); startErr != nil {
		t.Fatalf("Start() error = %v", startErr)
	}

	// Give watcher time to start.
	time.Sleep(100 * time.Millisecond)

	// Rapid writes across two files, all inside the debounce window.
	fileA := filepath.Join(tmpDir, "a.jsonl")
	fileB := filepath.Join(tmpDir, "b.jsonl")
	for i := 0; i < 5; i++ {
		if writeErr := os.WriteFile(fileA, []byte("content"), 0600); writeErr != nil {
			t.Fatalf("Failed to write test file: %v", writeErr)
		}
		if writeErr := os.WriteFile(fileB, []byte("content"), 0600); writeErr != nil {
			t.Fatalf("Failed to write test file: %v", writeErr)
		}
		time.Sleep(30 * time.Millisecond) // Less than debounce interval.
	}

	// The burst must collapse into a single refresh.
	var event Event
	select {
	case event = <-w.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for coalesced event")
	}

	if event.Changes < 2 {
		t.Errorf("Event changes = %d, want >= 2 for a burst", event.Changes)
	}

	// No second refresh may follow the quiet period.
	select {
	case extra := <-w.Events():
		t.Errorf("Received extra event after burst: %+v", extra)
	case <-time.After(400 * time.Millisecond):
		// Expected - the burst produced exactly one event.
	}

	t.Logf("Coalescing working: burst collapsed into one event with %d changes", event.Changes)
}

func TestNonJSONLFilesIgnored(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := New(Config{
		Debounce: 50 * time.Millisecond,
	}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			t.Logf("Close() error = %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if startErr := w.Start(ctx, []string{tmpDir}); startErr != nil {
		t.Fatalf("Start() error = %v", startErr)
	}

	// Give watcher time to start.
	time.Sleep(100 * time.Millisecond)

	// Create non-JSONL files.
	txtFile := filepath.Join(tmpDir, "test.txt")
	if writeErr := os.WriteFile(txtFile, []byte("test"), 0600); writeErr != nil {
		t.Fatalf("Failed to create txt file: %v", writeErr)
	}

	// Should not receive any events.
	select {
	case event := <-w.Events():
		t.Errorf("Received unexpected event for non-JSONL file: %v", event)
	case <-time.After(500 * time.Millisecond):
		// Expected - no events.
	}
}

func TestSubdirectoryWatching(t *testing.T) {
	tmpDir := t.TempDir()

	// Create subdirectory.
	subDir := filepath.Join(tmpDir, "subdir")
	if err := os.MkdirAll(subDir, 0700); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}

	w, err := New(Config{
		Debounce: 50 * time.Millisecond,
	}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			t.Logf("Close() error = %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if startErr := w.Start(ctx, []string{tmpDir}); startErr != nil {
		t.Fatalf("Start() error = %v", startErr)
	}

	// Give watcher time to start.
	time.Sleep(100 * time.Millisecond)

	// Create file in subdirectory.
	testFile := filepath.Join(subDir, "test.jsonl")
	if writeErr := os.WriteFile(testFile, []byte("test"), 0600); writeErr != nil {
		t.Fatalf("Failed to create test file: %v", writeErr)
	}

	// Wait for event.
	select {
	case event := <-w.Events():
		if event.Path != testFile {
			t.Errorf("Event path = %s, want %s", event.Path, testFile)
		}
	case <-time.After(2 * time.Second):
		t.Error("Timeout waiting for subdirectory file event")
	}
}

func TestNewDirectoryWatched(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := New(Config{
		Debounce: 50 * time.Millisecond,
	}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			t.Logf("Close() error = %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if startErr := w.Start(ctx, []string{tmpDir}); startErr != nil {
		t.Fatalf("Start() error = %v", startErr)
	}

	// Give watcher time to start.
	time.Sleep(100 * time.Millisecond)

	// A new project directory appears after the watcher started.
	newDir := filepath.Join(tmpDir, "new-project")
	if mkdirErr := os.Mkdir(newDir, 0700); mkdirErr != nil {
		t.Fatalf("Failed to create directory: %v", mkdirErr)
	}

	// Give the watcher time to pick up the new directory.
	time.Sleep(300 * time.Millisecond)

	// Logs in the new directory must trigger refreshes.
	testFile := filepath.Join(newDir, "session.jsonl")
	if writeErr := os.WriteFile(testFile, []byte("test"), 0600); writeErr != nil {
		t.Fatalf("Failed to create test file: %v", writeErr)
	}

	select {
	case event := <-w.Events():
		if event.Path != testFile {
			t.Errorf("Event path = %s, want %s", event.Path, testFile)
		}
	case <-time.After(2 * time.Second):
		t.Error("Timeout waiting for event from new directory")
	}
}

func TestStopNotStarted(t *testing.T) {
	w, err := New(Config{}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		if closeErr := w.Close(); closeErr != nil {
			t.Logf("Close() error = %v", closeErr)
		}
	}()

	stopErr := w.Stop()
	if stopErr != ErrNotStarted {
		t.Errorf("Stop() error = %v, want ErrNotStarted", stopErr)
	}
}

func TestCloseTwice(t *testing.T) {
	w, err := New(Config{}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if closeErr := w.Close(); closeErr != nil {
		t.Errorf("First Close() error = %v", closeErr)
	}

	// Second close should not error.
	if closeErr := w.Close(); closeErr != nil {
		t.Errorf("Second Close() error = %v", closeErr)
	}
}

func TestStartAfterClose(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := New(Config{}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if closeErr := w.Close(); closeErr != nil {
		t.Errorf("Close() error = %v", closeErr)
	}

	ctx := context.Background()
	startErr := w.Start(ctx, []string{tmpDir})
	if startErr != ErrWatcherClosed {
		t.Errorf("Start() error = %v, want ErrWatcherClosed", startErr)
	}
}
