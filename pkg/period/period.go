// Package period selects usage records that fall inside a reporting
// window.
//
// A Window is a pair of inclusive bounds; the zero value on either side
// means that side is unbounded, and the zero Window keeps everything.
// Constructors cover the common cases: a trailing day count, today,
// this week, and this month.
//
// Example usage:
//
//	w := period.LastDays(30, time.Now())
//	recent := period.Filter(entries, w)
package period

import (
	"time"

	"github.com/ccdash/ccdash/pkg/parser"
)

// Window is a reporting window with inclusive bounds. A zero Start or
// End leaves that side unbounded.
type Window struct {
	Start time.Time
	End   time.Time
}

// All returns the unbounded window, which retains every record.
func All() Window {
	return Window{}
}

// LastDays returns the window covering the past n days, ending at now.
// Both bounds derive from the same instant, so the window is exactly
// n*24h long. A non-positive n returns the unbounded window.
func LastDays(n int, now time.Time) Window {
	if n <= 0 {
		return All()
	}
	return Window{
		Start: now.Add(-time.Duration(n) * 24 * time.Hour),
		End:   now,
	}
}

// Today returns the window from local midnight to now.
func Today(now time.Time) Window {
	y, m, d := now.Date()
	return Window{
		Start: time.Date(y, m, d, 0, 0, 0, 0, now.Location()),
		End:   now,
	}
}

// ThisWeek returns the window from Monday local midnight to now.
func ThisWeek(now time.Time) Window {
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	monday := now.AddDate(0, 0, -daysSinceMonday)
	y, m, d := monday.Date()
	return Window{
		Start: time.Date(y, m, d, 0, 0, 0, 0, now.Location()),
		End:   now,
	}
}

// ThisMonth returns the window from the first of the month local
// midnight to now.
func ThisMonth(now time.Time) Window {
	y, m, _ := now.Date()
	return Window{
		Start: time.Date(y, m, 1, 0, 0, 0, 0, now.Location()),
		End:   now,
	}
}

// Contains reports whether ts falls inside the window. Both bounds are
// inclusive.
func (w Window) Contains(ts time.Time) bool {
	if !w.Start.IsZero() && ts.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && ts.After(w.End) {
		return false
	}
	return true
}

// IsUnbounded reports whether the window has no bounds at all.
func (w Window) IsUnbounded() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// Filter returns the records whose timestamps fall inside the window,
// preserving input order. The input slice is never mutated, and
// filtering an already filtered slice with the same window is a no-op.
func Filter(entries []parser.UsageEntry, w Window) []parser.UsageEntry {
	if w.IsUnbounded() {
		return entries
	}

	filtered := make([]parser.UsageEntry, 0, len(entries))
	for _, entry := range entries {
		if w.Contains(entry.Timestamp) {
			filtered = append(filtered, entry)
		}
	}

	return filtered
}
