package aggregator

import (
	"time"

	"github.com/ccdash/ccdash/pkg/parser"
)

// Aggregate folds usage records into a PeriodStats in one pass.
//
// Parameters:
//   - entries: Usage records, expected in ascending timestamp order
//   - now: The aggregation instant, used as Start and End when entries
//     is empty
//
// Returns a fully populated PeriodStats. An empty input is a valid
// result with zero totals, not an error.
//
// Guarantees:
//   - TotalCalls() equals len(entries)
//   - TotalTokens() equals the sum of the records' token totals
//   - Start and End are the earliest and latest contributing
//     timestamps, even if the input was not sorted
func Aggregate(entries []parser.UsageEntry, now time.Time) *PeriodStats {
	stats := &PeriodStats{
		Start:  now,
		End:    now,
		Models: make(map[string]*ModelStats),
	}

	if len(entries) == 0 {
		return stats
	}

	stats.Start = entries[0].Timestamp
	stats.End = entries[0].Timestamp

	sessions := make(map[string]struct{})

	for i := range entries {
		entry := &entries[i]

		sessions[entry.SessionID] = struct{}{}

		ms, ok := stats.Models[entry.Model]
		if !ok {
			ms = &ModelStats{Model: entry.Model}
			stats.Models[entry.Model] = ms
		}
		ms.Add(entry.Usage)

		if entry.Timestamp.Before(stats.Start) {
			stats.Start = entry.Timestamp
		}
		if entry.Timestamp.After(stats.End) {
			stats.End = entry.Timestamp
		}
	}

	stats.SessionCount = len(sessions)
	return stats
}
