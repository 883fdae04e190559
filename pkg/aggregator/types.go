// Package aggregator folds usage records into per-model and per-period
// statistics.
//
// Aggregate is a single-pass batch fold: it walks a time-sorted record
// slice once and produces one PeriodStats. AssignBlocks groups the same
// records into five-hour billing blocks for reset tracking and burn
// rate estimation.
//
// Example usage:
//
//	stats := aggregator.Aggregate(entries, time.Now())
//	fmt.Printf("Total tokens: %d\n", stats.TotalTokens())
//	fmt.Printf("Sessions: %d\n", stats.SessionCount)
package aggregator

import (
	"time"

	"github.com/ccdash/ccdash/pkg/parser"
)

// ModelStats accumulates token usage for one model.
type ModelStats struct {
	// Model is the model identifier as it appears in the logs.
	Model string `json:"model"`

	// InputTokens is the sum of regular input tokens.
	InputTokens int64 `json:"input_tokens"`

	// OutputTokens is the sum of generated output tokens.
	OutputTokens int64 `json:"output_tokens"`

	// CacheCreationTokens is the sum of tokens written to the prompt cache.
	CacheCreationTokens int64 `json:"cache_creation_tokens"`

	// CacheReadTokens is the sum of tokens served from the prompt cache.
	CacheReadTokens int64 `json:"cache_read_tokens"`

	// CallCount is the number of records that contributed.
	CallCount int64 `json:"call_count"`
}

// Add folds one record's usage into the accumulator.
func (m *ModelStats) Add(u parser.TokenUsage) {
	m.InputTokens += u.InputTokens
	m.OutputTokens += u.OutputTokens
	m.CacheCreationTokens += u.CacheCreationTokens
	m.CacheReadTokens += u.CacheReadTokens
	m.CallCount++
}

// TotalTokens returns the sum of all four counters.
func (m *ModelStats) TotalTokens() int64 {
	return m.InputTokens + m.OutputTokens +
		m.CacheCreationTokens + m.CacheReadTokens
}

// PeriodStats is the aggregation result for one reporting window. It is
// built in a single pass and read-only afterwards; it is never written
// to disk.
type PeriodStats struct {
	// Start is the timestamp of the earliest contributing record, or
	// the aggregation instant when there were none.
	Start time.Time `json:"start"`

	// End is the timestamp of the latest contributing record, or the
	// aggregation instant when there were none.
	End time.Time `json:"end"`

	// Models maps model identifier to its accumulated stats.
	Models map[string]*ModelStats `json:"models"`

	// SessionCount is the number of distinct session IDs seen.
	SessionCount int `json:"session_count"`
}

// TotalTokens returns the token total across all models.
func (s *PeriodStats) TotalTokens() int64 {
	var total int64
	for _, m := range s.Models {
		total += m.TotalTokens()
	}
	return total
}

// TotalCalls returns the call total across all models. It equals the
// number of records that were folded in.
func (s *PeriodStats) TotalCalls() int64 {
	var total int64
	for _, m := range s.Models {
		total += m.CallCount
	}
	return total
}

// IsEmpty reports whether no records contributed.
func (s *PeriodStats) IsEmpty() bool {
	return len(s.Models) == 0
}
