package reader

import "errors"

// Common errors returned by the reader.
var (
	// ErrReaderClosed is returned when using a closed reader.
	ErrReaderClosed = errors.New("reader is closed")
)
