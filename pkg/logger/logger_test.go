package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{
			name: "default config",
			config: Config{
				Level:  "info",
				Output: "stderr",
				Format: "text",
			},
		},
		{
			name: "debug level",
			config: Config{
				Level:  "debug",
				Output: "stderr",
				Format: "text",
			},
		},
		{
			name: "json format",
			config: Config{
				Level:  "info",
				Output: "stderr",
				Format: "json",
			},
		},
		{
			name: "stdout remapped to stderr",
			config: Config{
				Level:  "info",
				Output: "stdout",
				Format: "text",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.config)
			if log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestLogLevels(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "test.log")

	log := New(Config{
		Level:  "debug",
		Output: logFile,
		Format: "text",
	})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message")

	data, err := os.ReadFile(logFile) // nolint:gosec
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	content := string(data)

	for _, msg := range []string{"debug message", "info message", "warn message", "error message"} {
		if !strings.Contains(content, msg) {
			t.Errorf("%q not found in log", msg)
		}
	}
}

func TestLogWithFields(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "test.log")

	log := New(Config{
		Level:  "info",
		Output: logFile,
		Format: "text",
	})

	log.Info("scan complete", "files", 3, "records", 42)

	data, err := os.ReadFile(logFile) // nolint:gosec
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	content := string(data)

	if !strings.Contains(content, "scan complete") {
		t.Error("Message not found in log")
	}
	if !strings.Contains(content, "files") || !strings.Contains(content, "records") {
		t.Error("Fields not found in log")
	}
}

func TestLogWith(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "test.log")

	baseLog := New(Config{
		Level:  "info",
		Output: logFile,
		Format: "text",
	})

	contextLog := baseLog.With("component", "reader")
	contextLog.Info("message with context")

	data, err := os.ReadFile(logFile) // nolint:gosec
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	content := string(data)

	if !strings.Contains(content, "component") {
		t.Error("Context field 'component' not found")
	}
	if !strings.Contains(content, "reader") {
		t.Error("Context value 'reader' not found")
	}
}

func TestLogLevelFiltering(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "test.log")

	log := New(Config{
		Level:  "warn",
		Output: logFile,
		Format: "text",
	})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message")

	data, err := os.ReadFile(logFile) // nolint:gosec
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	content := string(data)

	if strings.Contains(content, "debug message") {
		t.Error("Debug message should be filtered out")
	}
	if strings.Contains(content, "info message") {
		t.Error("Info message should be filtered out")
	}
	if !strings.Contains(content, "warn message") {
		t.Error("Warn message not found")
	}
	if !strings.Contains(content, "error message") {
		t.Error("Error message not found")
	}
}

func TestDefault(t *testing.T) {
	log := Default()
	if log == nil {
		t.Fatal("Default() returned nil")
	}

	// Should be able to log without panic
	log.Info("test message")
}

func TestDefaultEnvLevel(t *testing.T) {
	t.Setenv("CCDASH_LOG_LEVEL", "debug")

	log := Default()
	if log == nil {
		t.Fatal("Default() returned nil")
	}
	log.Debug("visible at debug level")
}

func TestNoop(t *testing.T) {
	log := Noop()
	if log == nil {
		t.Fatal("Noop() returned nil")
	}

	// Should discard all messages without error
	log.Debug("debug")
	log.Info("info")
	log.Warn("warn")
	log.Error("error")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  string
	}{
		{"debug", "debug", "DEBUG"},
		{"info", "info", "INFO"},
		{"warn", "warn", "WARN"},
		{"warning", "warning", "WARN"},
		{"error", "error", "ERROR"},
		{"unknown", "unknown", "INFO"},
		{"empty", "", "INFO"},
		{"uppercase", "DEBUG", "DEBUG"},
		{"mixedcase", "WaRn", "WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := parseLevel(tt.level)
			if level.String() != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.level, level, tt.want)
			}
		})
	}
}

func TestGetWriter(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		wantErr bool
	}{
		{"stderr", "stderr", false},
		{"stdout maps to stderr", "stdout", false},
		{"empty defaults to stderr", "", false},
		{"STDERR uppercase", "STDERR", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer, err := getWriter(tt.output)

			if tt.wantErr {
				if err == nil {
					t.Error("getWriter() error = nil, wantErr = true")
				}
				return
			}

			if err != nil {
				t.Errorf("getWriter() error = %v, wantErr = false", err)
				return
			}

			if writer != os.Stderr {
				t.Errorf("getWriter(%q) did not return stderr", tt.output)
			}
		})
	}
}

func TestJSONOutput(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "test.json")

	log := New(Config{
		Level:  "info",
		Output: logFile,
		Format: "json",
	})

	log.Info("cache hit", "path", "/tmp/a.jsonl", "records", 42)

	data, err := os.ReadFile(logFile) // nolint:gosec
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	var logEntry map[string]interface{}
	if err := json.Unmarshal(data, &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	if msg, ok := logEntry["msg"].(string); !ok || msg != "cache hit" {
		t.Error("Message not found in JSON log")
	}
	if records, ok := logEntry["records"].(float64); !ok || records != 42 {
		t.Error("Field 'records' not found or incorrect in JSON log")
	}
}

func BenchmarkLogWithFields(b *testing.B) {
	log := Noop()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.Info("benchmark message", "key1", "value1", "key2", 42, "key3", true)
	}
}
