package config

import "errors"

// Common errors returned by the config package.
var (
	// ErrNoDataDirs is returned when no data directories are specified.
	ErrNoDataDirs = errors.New("no data directories specified")

	// ErrInvalidDays is returned when the report window is negative.
	ErrInvalidDays = errors.New("invalid report days: must be >= 0")

	// ErrInvalidPlan is returned when the plan is not recognized.
	ErrInvalidPlan = errors.New("invalid plan: must be pro, max5, or max20")

	// ErrInvalidFormat is returned when the output format is not recognized.
	ErrInvalidFormat = errors.New("invalid output format: must be dashboard, compact, or json")

	// ErrInvalidCachePath is returned when the cache is enabled without a path.
	ErrInvalidCachePath = errors.New("cache enabled but no cache path specified")

	// ErrInvalidDebounce is returned when the watch debounce is <= 0.
	ErrInvalidDebounce = errors.New("invalid watch debounce: must be > 0")

	// ErrInvalidLogLevel is returned when the log level is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level: must be debug, info, warn, or error")

	// ErrInvalidLogFormat is returned when the log format is not recognized.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrConfigNotFound is returned when the config file is not found.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidYAML is returned when the config file has invalid YAML syntax.
	ErrInvalidYAML = errors.New("invalid YAML syntax in config file")
)
