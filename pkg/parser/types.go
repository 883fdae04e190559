// Package parser decodes Claude Code JSONL usage logs. It extracts
// token usage records from JSONL files and validates them for
// correctness.
//
// The parser is tolerant by design: a line only yields a record when it
// carries a non-empty usage block, and malformed lines are skipped and
// counted rather than aborting the file.
//
// Example usage:
//
//	p := parser.New()
//	entries, skipped, err := p.ParseFile("/path/to/session.jsonl")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, entry := range entries {
//	    fmt.Printf("%s: %d tokens\n", entry.Model, entry.Usage.TotalTokens())
//	}
package parser

import (
	"time"
)

// UnknownValue is substituted for session and model identifiers that
// are absent from a log line.
const UnknownValue = "unknown"

// UsageEntry is one token usage record, corresponding to a single API
// call recorded by Claude Code. Entries are immutable once parsed.
//
// Invariant: Timestamp is never the zero value.
// Invariant: an entry exists only if its source line carried a
// non-empty usage block.
type UsageEntry struct {
	Timestamp time.Time  `json:"timestamp"`
	SessionID string     `json:"session_id"`
	Model     string     `json:"model"`
	Usage     TokenUsage `json:"usage"`
}

// TokenUsage holds the four token counters reported for one API call.
//
// Counter types:
//   - InputTokens: regular input tokens
//   - OutputTokens: generated output tokens
//   - CacheCreationTokens: tokens written to the prompt cache
//   - CacheReadTokens: tokens served from the prompt cache
//
// Invariant: all counters are >= 0.
type TokenUsage struct {
	InputTokens         int64 `json:"input_tokens"`
	OutputTokens        int64 `json:"output_tokens"`
	CacheCreationTokens int64 `json:"cache_creation_input_tokens"`
	CacheReadTokens     int64 `json:"cache_read_input_tokens"`
}

// TotalTokens returns the sum of all four counters.
func (u TokenUsage) TotalTokens() int64 {
	return u.InputTokens + u.OutputTokens +
		u.CacheCreationTokens + u.CacheReadTokens
}

// IsZero reports whether every counter is zero.
func (u TokenUsage) IsZero() bool {
	return u.InputTokens == 0 && u.OutputTokens == 0 &&
		u.CacheCreationTokens == 0 && u.CacheReadTokens == 0
}

// Validate checks that all token counters are non-negative.
func (u TokenUsage) Validate() error {
	if u.InputTokens < 0 || u.OutputTokens < 0 ||
		u.CacheCreationTokens < 0 || u.CacheReadTokens < 0 {
		return ErrNegativeTokenCount
	}
	return nil
}

// Validate checks that the entry satisfies its invariants.
//
// Returns an error if the timestamp is the zero value or any token
// counter is negative. Absent session and model identifiers are not
// errors; they default to UnknownValue during parsing.
func (e *UsageEntry) Validate() error {
	if e.Timestamp.IsZero() {
		return ErrInvalidTimestamp
	}
	return e.Usage.Validate()
}
