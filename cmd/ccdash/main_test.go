package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ccdash/ccdash/pkg/config"
	"github.com/ccdash/ccdash/pkg/logger"
	"github.com/ccdash/ccdash/pkg/parser"
	"github.com/ccdash/ccdash/pkg/reader"
)

// testConfig returns a valid configuration pointing at dir.
func testConfig(dir string) *config.Config {
	cfg := config.Default()
	cfg.DataDirs = []string{dir}
	cfg.Cache.Enabled = false
	return cfg
}

// testReader builds a cache-less reader for pipeline tests.
func testReader(t *testing.T) reader.Reader {
	t.Helper()

	r, err := reader.New(reader.Config{Parser: parser.New()}, logger.Noop())
	if err != nil {
		t.Fatalf("failed to create reader: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })

	return r
}

// TestApplyFlags tests that flags override loaded configuration.
func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name       string
		cmd        reportCommand
		wantDays   int
		wantPlan   string
		wantFormat string
		wantCache  bool
		wantError  bool
	}{
		{
			name:       "no flags keep config values",
			cmd:        reportCommand{},
			wantDays:   30,
			wantPlan:   "pro",
			wantFormat: "dashboard",
			wantCache:  true,
		},
		{
			name:       "days and plan override",
			cmd:        reportCommand{days: 7, plan: "max5"},
			wantDays:   7,
			wantPlan:   "max5",
			wantFormat: "dashboard",
			wantCache:  true,
		},
		{
			name:       "compact switches the format",
			cmd:        reportCommand{compact: true},
			wantDays:   30,
			wantPlan:   "pro",
			wantFormat: "compact",
			wantCache:  true,
		},
		{
			name:       "compact leaves json alone",
			cmd:        reportCommand{format: "json", compact: true},
			wantDays:   30,
			wantPlan:   "pro",
			wantFormat: "json",
			wantCache:  true,
		},
		{
			name:       "no-cache disables the cache",
			cmd:        reportCommand{noCache: true},
			wantDays:   30,
			wantPlan:   "pro",
			wantFormat: "dashboard",
			wantCache:  false,
		},
		{
			name:      "unknown plan rejected",
			cmd:       reportCommand{plan: "enterprise"},
			wantError: true,
		},
		{
			name:      "invalid format rejected",
			cmd:       reportCommand{format: "xml"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t.TempDir())
			cfg.Cache.Enabled = true
			cfg.Cache.Path = filepath.Join(t.TempDir(), "cache.db")

			err := tt.cmd.applyFlags(cfg)
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if cfg.Report.Days != tt.wantDays {
				t.Errorf("days = %d, want %d", cfg.Report.Days, tt.wantDays)
			}
			if cfg.Report.Plan != tt.wantPlan {
				t.Errorf("plan = %q, want %q", cfg.Report.Plan, tt.wantPlan)
			}
			if cfg.Display.Format != tt.wantFormat {
				t.Errorf("format = %q, want %q", cfg.Display.Format, tt.wantFormat)
			}
			if cfg.Cache.Enabled != tt.wantCache {
				t.Errorf("cache enabled = %v, want %v", cfg.Cache.Enabled, tt.wantCache)
			}
		})
	}
}

// TestWindowResolution tests the -days / -period interplay.
func TestWindowResolution(t *testing.T) {
	now := time.Date(2025, 6, 18, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		cmd       reportCommand
		days      int
		wantStart time.Time
		wantAll   bool
		wantError bool
	}{
		{
			name:      "configured day count",
			days:      7,
			wantStart: now.Add(-7 * 24 * time.Hour),
		},
		{
			name:    "zero days covers everything",
			days:    0,
			wantAll: true,
		},
		{
			name:      "today preset",
			cmd:       reportCommand{period: "today"},
			days:      30,
			wantStart: time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "all preset",
			cmd:     reportCommand{period: "all"},
			days:    30,
			wantAll: true,
		},
		{
			name:      "days and period conflict",
			cmd:       reportCommand{period: "today", days: 7},
			days:      30,
			wantError: true,
		},
		{
			name:      "unknown preset",
			cmd:       reportCommand{period: "fortnight"},
			days:      30,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t.TempDir())
			cfg.Report.Days = tt.days

			w, err := tt.cmd.window(cfg, now)
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.wantAll {
				if !w.IsUnbounded() {
					t.Errorf("window = %+v, want unbounded", w)
				}
				return
			}

			if !w.Start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", w.Start, tt.wantStart)
			}
			if !w.End.Equal(now) {
				t.Errorf("end = %v, want %v", w.End, now)
			}
		})
	}
}

// TestCollectNoData tests that an empty data directory yields a nil
// report and no error.
func TestCollectNoData(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cmd := &reportCommand{}

	report, err := cmd.collect(context.Background(), cfg, logger.Noop(), testReader(t), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report != nil {
		t.Errorf("report = %+v, want nil", report)
	}
}

// TestCollectOutsideWindow tests that records outside the window yield
// the same no-data result.
func TestCollectOutsideWindow(t *testing.T) {
	dir := t.TempDir()
	line := `{"timestamp":"2024-01-15T10:00:00Z","sessionId":"s1","message":{"model":"claude-3-5-sonnet-20241022","usage":{"input_tokens":100,"output_tokens":50}}}`
	if err := os.WriteFile(filepath.Join(dir, "old.jsonl"), []byte(line+"\n"), 0600); err != nil {
		t.Fatalf("failed to write log file: %v", err)
	}

	cfg := testConfig(dir)
	cfg.Report.Days = 30
	cmd := &reportCommand{}

	// "now" is long after the record, so a 30 day window excludes it.
	now := time.Date(2025, 6, 18, 15, 0, 0, 0, time.UTC)

	report, err := cmd.collect(context.Background(), cfg, logger.Noop(), testReader(t), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report != nil {
		t.Errorf("report = %+v, want nil", report)
	}
}

// TestCollectFullPipeline tests discovery through report assembly on a
// real temp directory.
func TestCollectFullPipeline(t *testing.T) {
	dir := t.TempDir()
	lines := `{"timestamp":"2025-06-18T10:00:00Z","sessionId":"s1","message":{"model":"claude-3-5-haiku-20241022","usage":{"input_tokens":1000000,"output_tokens":1000000}}}
{"timestamp":"2025-06-18T10:05:00Z","sessionId":"s2","message":{"model":"claude-3-5-haiku-20241022","usage":{"input_tokens":1000000,"output_tokens":1000000}}}
not json at all
{"timestamp":"2025-06-18T10:10:00Z","sessionId":"s1","message":{"model":"claude-3-5-haiku-20241022","usage":{"input_tokens":1000000,"output_tokens":1000000}}}
`
	sub := filepath.Join(dir, "project-a")
	if err := os.MkdirAll(sub, 0750); err != nil {
		t.Fatalf("failed to create project dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "usage.jsonl"), []byte(lines), 0600); err != nil {
		t.Fatalf("failed to write log file: %v", err)
	}

	cfg := testConfig(dir)
	cfg.Report.Days = 30
	cmd := &reportCommand{}

	now := time.Date(2025, 6, 18, 15, 0, 0, 0, time.UTC)

	report, err := cmd.collect(context.Background(), cfg, logger.Noop(), testReader(t), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report == nil {
		t.Fatal("report is nil, want data")
	}

	if report.TotalCalls != 3 {
		t.Errorf("total calls = %d, want 3", report.TotalCalls)
	}
	if report.Sessions != 2 {
		t.Errorf("sessions = %d, want 2", report.Sessions)
	}

	// 3 records, 1M input + 1M output each on Haiku rates.
	wantCost := 3 * (0.25 + 1.25)
	if diff := report.TotalCost - wantCost; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("total cost = %f, want %f", report.TotalCost, wantCost)
	}

	if report.Plan == nil {
		t.Fatal("plan usage is nil")
	}
	if report.Plan.Plan != "pro" {
		t.Errorf("plan = %q, want %q", report.Plan.Plan, "pro")
	}

	if report.Block == nil {
		t.Fatal("block status is nil")
	}
	if report.Block.Calls != 3 {
		t.Errorf("block calls = %d, want 3", report.Block.Calls)
	}
}

// TestCommandRouting tests that commands are routed correctly.
func TestCommandRouting(t *testing.T) {
	tests := []struct {
		name        string
		command     string
		shouldRoute bool
	}{
		{"report command", "report", true},
		{"watch command", "watch", true},
		{"config command", "config", true},
		{"help command", "help", true},
		{"unknown command", "unknown", false},
		{"stats command", "stats", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validCommands := map[string]bool{
				"report": true,
				"watch":  true,
				"config": true,
				"help":   true,
			}

			isValid := validCommands[tt.command]
			if isValid != tt.shouldRoute {
				t.Errorf("command %q validity = %v, want %v", tt.command, isValid, tt.shouldRoute)
			}
		})
	}
}

// TestConfigSearchPaths tests config path precedence.
func TestConfigSearchPaths(t *testing.T) {
	cmd := &configCommand{configPath: "/test/config.yaml"}

	paths := cmd.searchPaths()
	if len(paths) == 0 {
		t.Fatal("no search paths")
	}
	if paths[0] != "/test/config.yaml" {
		t.Errorf("paths[0] = %q, want the explicit -config path first", paths[0])
	}
}
