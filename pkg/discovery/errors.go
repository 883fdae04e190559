package discovery

import "errors"

// Common errors returned by the discovery package.
var (
	// ErrInvalidRoot is returned when a data root exists but cannot be
	// read. A missing root is not an error; it yields no files.
	ErrInvalidRoot = errors.New("data root not accessible")
)
