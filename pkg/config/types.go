// Package config provides configuration management for ccdash.
//
// Configuration is loaded from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Configuration file
// 4. Default values (lowest priority)
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Data dirs: %v\n", cfg.DataDirs)
package config

import (
	"time"

	"github.com/ccdash/ccdash/pkg/pricing"
)

// Config represents the complete application configuration.
//
// Invariants:
// - DataDirs must have at least one directory
// - Report.Days must be >= 0 (0 means no window)
// - Report.Plan must be a known plan
// - Watch.Debounce must be > 0
// - Cache.Path must be set when the cache is enabled.
type Config struct {
	// Claude Code data directories to scan for JSONL logs
	DataDirs []string `yaml:"data_dirs"`

	// Report settings
	Report ReportConfig `yaml:"report"`

	// Display settings
	Display DisplayConfig `yaml:"display"`

	// Cache settings
	Cache CacheConfig `yaml:"cache"`

	// Watch settings
	Watch WatchConfig `yaml:"watch"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
}

// ReportConfig contains reporting defaults.
type ReportConfig struct {
	// Reporting window in days; 0 covers all records
	Days int `yaml:"days"`

	// Subscription plan to compare against (pro, max5, max20)
	Plan string `yaml:"plan"`
}

// DisplayConfig contains display-related settings.
type DisplayConfig struct {
	// Default output format (dashboard, compact, json)
	Format string `yaml:"format"`

	// Enable colored output
	ColorEnabled bool `yaml:"color_enabled"`
}

// CacheConfig contains parse cache settings.
type CacheConfig struct {
	// Enable caching of parsed records between runs
	Enabled bool `yaml:"enabled"`

	// Path to the BoltDB cache file
	Path string `yaml:"path"`
}

// WatchConfig contains watch mode settings.
type WatchConfig struct {
	// How long to coalesce file change bursts before refreshing
	Debounce time.Duration `yaml:"debounce"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level"`

	// Log output destination (stderr, stdout, file path)
	Output string `yaml:"output"`

	// Log format (text, json)
	Format string `yaml:"format"`
}

// Validate checks if the configuration satisfies all invariants.
//
// Returns an error if any invariant is violated:
//   - No data directories specified
//   - Negative report window
//   - Unknown plan
//   - Invalid output format
//   - Cache enabled without a path
//   - Invalid watch debounce (must be > 0)
//   - Invalid log level or format
//
// Thread-safety: This method is read-only and thread-safe.
func (c *Config) Validate() error {
	if len(c.DataDirs) == 0 {
		return ErrNoDataDirs
	}

	// Validate report config
	if c.Report.Days < 0 {
		return ErrInvalidDays
	}
	if _, ok := pricing.LimitsFor(c.Report.Plan); !ok {
		return ErrInvalidPlan
	}

	// Validate display config
	validFormats := map[string]bool{
		"dashboard": true,
		"compact":   true,
		"json":      true,
	}
	if !validFormats[c.Display.Format] {
		return ErrInvalidFormat
	}

	// Validate cache config
	if c.Cache.Enabled && c.Cache.Path == "" {
		return ErrInvalidCachePath
	}

	// Validate watch config
	if c.Watch.Debounce <= 0 {
		return ErrInvalidDebounce
	}

	// Validate logging config
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.Logging.Format] {
		return ErrInvalidLogFormat
	}

	return nil
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		DataDirs: defaultDataDirs(),
		Report: ReportConfig{
			Days: 30,
			Plan: pricing.DefaultPlan,
		},
		Display: DisplayConfig{
			Format:       "dashboard",
			ColorEnabled: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    defaultCachePath(),
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Output: "stderr",
			Format: "text",
		},
	}
}
