package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ccdash/ccdash/pkg/aggregator"
	"github.com/ccdash/ccdash/pkg/config"
	"github.com/ccdash/ccdash/pkg/discovery"
	"github.com/ccdash/ccdash/pkg/display"
	"github.com/ccdash/ccdash/pkg/logger"
	"github.com/ccdash/ccdash/pkg/monitor"
	"github.com/ccdash/ccdash/pkg/parser"
	"github.com/ccdash/ccdash/pkg/period"
	"github.com/ccdash/ccdash/pkg/pricing"
	"github.com/ccdash/ccdash/pkg/reader"
	"github.com/ccdash/ccdash/pkg/watcher"
)

// reportCommand renders a usage report for one period.
type reportCommand struct {
	days       int
	period     string
	plan       string
	format     string
	compact    bool
	dataDir    string
	noCache    bool
	live       bool
	configPath string
}

// Execute runs the report command.
func (c *reportCommand) Execute() error {
	// Load configuration and initialize components.
	cfg, log, r, cache, err := c.initialize()
	if err != nil {
		return err
	}
	defer c.cleanup(r, cache, log)

	// Discover, load and aggregate usage data.
	report, err := c.collect(context.Background(), cfg, log, r, time.Now())
	if err != nil {
		return err
	}
	if report == nil {
		fmt.Println("No usage data found")
		return nil
	}

	// Display results.
	return c.render(cfg, *report)
}

// initialize sets up configuration and components.
func (c *reportCommand) initialize() (*config.Config, logger.Logger, reader.Reader, reader.Cache, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	r, cache, err := c.newReader(cfg, log)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return cfg, log, r, cache, nil
}

// loadConfig loads the configuration and applies flag overrides.
func (c *reportCommand) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if c.configPath != "" {
		cfg, err = config.LoadFromFile(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := c.applyFlags(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyFlags merges flag values over the loaded configuration. Flags
// win over file and environment values.
func (c *reportCommand) applyFlags(cfg *config.Config) error {
	if c.days > 0 {
		cfg.Report.Days = c.days
	}
	if c.plan != "" {
		cfg.Report.Plan = c.plan
	}
	if c.format != "" {
		cfg.Display.Format = c.format
	}
	if c.compact && cfg.Display.Format != "json" {
		cfg.Display.Format = "compact"
	}
	if c.dataDir != "" {
		cfg.DataDirs = []string{c.dataDir}
	}
	if c.noCache {
		cfg.Cache.Enabled = false
	}

	if _, ok := pricing.LimitsFor(cfg.Report.Plan); !ok {
		return fmt.Errorf("unknown plan %q (known plans: %s)",
			cfg.Report.Plan, strings.Join(pricing.Plans(), ", "))
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

// newReader builds the batch reader, with the scan cache attached when
// it is enabled. A cache that cannot be opened only costs re-parsing,
// so it is logged and dropped rather than treated as fatal.
func (c *reportCommand) newReader(cfg *config.Config, log logger.Logger) (reader.Reader, reader.Cache, error) {
	var cache reader.Cache
	if cfg.Cache.Enabled {
		boltCache, err := reader.NewBoltCache(cfg.Cache.Path)
		if err != nil {
			log.Warn("scan cache unavailable, parsing without it",
				"path", cfg.Cache.Path,
				"error", err)
		} else {
			cache = boltCache
		}
	}

	r, err := reader.New(reader.Config{
		Parser: parser.New(),
		Cache:  cache,
	}, log)
	if err != nil {
		if cache != nil {
			_ = cache.Close()
		}
		return nil, nil, fmt.Errorf("failed to initialize reader: %w", err)
	}

	return r, cache, nil
}

// cleanup closes resources.
func (c *reportCommand) cleanup(r reader.Reader, cache reader.Cache, log logger.Logger) {
	if r != nil {
		if err := r.Close(); err != nil {
			log.Error("failed to close reader", "error", err)
		}
	}
	if cache != nil {
		if err := cache.Close(); err != nil {
			log.Error("failed to close cache", "error", err)
		}
	}
}

// window resolves the reporting window from the period preset or the
// configured day count.
func (c *reportCommand) window(cfg *config.Config, now time.Time) (period.Window, error) {
	if c.period != "" {
		if c.days > 0 {
			return period.Window{}, fmt.Errorf("cannot combine -days with -period")
		}
		return presetWindow(c.period, now)
	}

	if cfg.Report.Days <= 0 {
		return period.All(), nil
	}
	return period.LastDays(cfg.Report.Days, now), nil
}

// presetWindow maps a named preset to its window.
func presetWindow(name string, now time.Time) (period.Window, error) {
	switch name {
	case "today":
		return period.Today(now), nil
	case "week":
		return period.ThisWeek(now), nil
	case "month":
		return period.ThisMonth(now), nil
	case "all":
		return period.All(), nil
	default:
		return period.Window{}, fmt.Errorf("unknown period %q (known periods: today, week, month, all)", name)
	}
}

// collect discovers, loads, filters and aggregates usage records, then
// assembles the display report. A nil report means no records matched.
func (c *reportCommand) collect(ctx context.Context, cfg *config.Config, log logger.Logger, r reader.Reader, now time.Time) (*display.Report, error) {
	window, err := c.window(cfg, now)
	if err != nil {
		return nil, err
	}

	disc := discovery.New(cfg.DataDirs, log)
	files, err := disc.Discover()
	if err != nil {
		return nil, fmt.Errorf("failed to discover log files: %w", err)
	}
	if len(files) == 0 {
		return nil, nil
	}

	result, err := r.Load(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("failed to load log files: %w", err)
	}

	entries := period.Filter(result.Entries, window)
	if len(entries) == 0 {
		return nil, nil
	}

	stats := aggregator.Aggregate(entries, now)

	usage, err := pricing.EstimatePlanUsage(stats, cfg.Report.Plan)
	if err != nil {
		return nil, err
	}

	// Billing blocks track recent activity, not the report window, so
	// they are assigned over everything that was loaded.
	var status *aggregator.BlockStatus
	if block := aggregator.CurrentBlock(aggregator.AssignBlocks(result.Entries, now)); block != nil {
		limits, _ := pricing.LimitsFor(cfg.Report.Plan)
		st := block.Status(now, limits.CostLimit, pricing.TotalCost)
		status = &st
	}

	report := display.BuildReport(stats, usage, status, now)
	return &report, nil
}

// render writes the report to stdout.
func (c *reportCommand) render(cfg *config.Config, report display.Report) error {
	fd := int(os.Stdout.Fd())

	renderer := display.New(display.Config{
		Format:       display.Format(cfg.Display.Format),
		ColorEnabled: cfg.Display.ColorEnabled && display.IsTerminal(fd),
		Width:        display.TerminalWidth(fd, 0),
		Live:         c.live,
		Compact:      c.compact,
	})

	return renderer.Render(os.Stdout, report)
}

// watchCommand re-renders the report whenever the log files change.
type watchCommand struct {
	reportCommand
	interval time.Duration
}

// Execute runs the watch command.
func (c *watchCommand) Execute() error {
	// Load configuration
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	// Initialize logger (quiet mode, the dashboard owns the terminal)
	log := logger.New(logger.Config{
		Level:  "error",
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	// Initialize the scan cache and reader
	r, cache, err := c.newReader(cfg, log)
	if err != nil {
		return err
	}
	defer c.cleanup(r, cache, log)

	// Initialize watcher
	w, err := watcher.New(watcher.Config{
		Debounce: cfg.Watch.Debounce,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to initialize watcher: %w", err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			log.Error("failed to close watcher", "error", err)
		}
	}()

	// Interrupt cancels the context, which ends the monitor loop.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := w.Start(ctx, cfg.DataDirs); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	// The forced interval keeps the reset countdown moving between
	// file changes.
	m, err := monitor.New(monitor.Config{
		Interval: c.interval,
	}, w, func(ctx context.Context) error {
		return c.refresh(ctx, cfg, log, r)
	}, log)
	if err != nil {
		return fmt.Errorf("failed to initialize monitor: %w", err)
	}

	if err := m.Run(ctx); err != nil {
		return err
	}

	fmt.Println()
	if err := w.Stop(); err != nil {
		log.Error("failed to stop watcher", "error", err)
	}
	return nil
}

// refresh re-runs the report pipeline and repaints the screen.
func (c *watchCommand) refresh(ctx context.Context, cfg *config.Config, log logger.Logger, r reader.Reader) error {
	report, err := c.collect(ctx, cfg, log, r, time.Now())
	if err != nil {
		return err
	}

	// Clear screen and home the cursor.
	fmt.Print("\033[2J\033[H")

	if report == nil {
		fmt.Println("No usage data found")
		return nil
	}

	return c.render(cfg, *report)
}
