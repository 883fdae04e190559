package parser

import "errors"

// Common errors returned by the parser package.
var (
	// ErrMalformedLine is returned when a line is not valid JSON or a
	// field has the wrong shape.
	ErrMalformedLine = errors.New("malformed JSONL line")

	// ErrInvalidTimestamp is returned when a line that carries usage has
	// a missing or unparseable timestamp.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrNegativeTokenCount is returned when any token counter is negative.
	ErrNegativeTokenCount = errors.New("invalid token count: must be non-negative")

	// ErrFileTooLarge is returned when a file exceeds the maximum size limit.
	ErrFileTooLarge = errors.New("file size exceeds maximum limit")
)
