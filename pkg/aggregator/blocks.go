package aggregator

import (
	"time"

	"github.com/ccdash/ccdash/pkg/parser"
)

// BlockDuration is the length of one billing block. Claude subscription
// usage resets on five-hour boundaries anchored to the first request.
const BlockDuration = 5 * time.Hour

// BillingBlock is one five-hour billing window. Its start is the first
// contributing record's timestamp rounded down to the hour (in UTC).
type BillingBlock struct {
	Start    time.Time
	End      time.Time
	IsActive bool
	Entries  []parser.UsageEntry
	Stats    *PeriodStats
}

// CostFunc prices a PeriodStats in USD. It decouples block bookkeeping
// from the pricing tables.
type CostFunc func(*PeriodStats) float64

// BurnRate is the consumption rate over a block's elapsed time.
type BurnRate struct {
	TokensPerMinute float64
	CostPerHour     float64
}

// BlockStatus summarises the current (or most recent) billing block for
// display.
type BlockStatus struct {
	Start        time.Time
	ResetAt      time.Time
	UntilReset   time.Duration
	Tokens       int64
	Calls        int64
	Cost         float64
	IsActive     bool
	UsagePercent float64
	Rate         BurnRate
}

// AssignBlocks groups time-sorted records into five-hour billing
// blocks.
//
// A new block opens when there is no block yet, when a record falls on
// or after the current block's end, or when five or more hours have
// passed since the block's previous record. Block starts are rounded
// down to the hour.
//
// Parameters:
//   - entries: Usage records in ascending timestamp order
//   - now: The instant used to decide which block is active
//
// Returns the blocks in chronological order, each with its own stats.
func AssignBlocks(entries []parser.UsageEntry, now time.Time) []BillingBlock {
	if len(entries) == 0 {
		return nil
	}

	var blocks []BillingBlock

	for i := range entries {
		entry := &entries[i]

		needNew := len(blocks) == 0
		if !needNew {
			current := &blocks[len(blocks)-1]
			last := current.Entries[len(current.Entries)-1]
			needNew = !entry.Timestamp.Before(current.End) ||
				entry.Timestamp.Sub(last.Timestamp) >= BlockDuration
		}

		if needNew {
			start := entry.Timestamp.UTC().Truncate(time.Hour)
			blocks = append(blocks, BillingBlock{
				Start: start,
				End:   start.Add(BlockDuration),
			})
		}

		current := &blocks[len(blocks)-1]
		current.Entries = append(current.Entries, *entry)
	}

	for i := range blocks {
		b := &blocks[i]
		b.IsActive = b.End.After(now) && !b.Start.After(now)
		b.Stats = Aggregate(b.Entries, now)
	}

	return blocks
}

// CurrentBlock returns the active block, or the most recent one when
// none is active. Returns nil for an empty slice.
func CurrentBlock(blocks []BillingBlock) *BillingBlock {
	for i := range blocks {
		if blocks[i].IsActive {
			return &blocks[i]
		}
	}
	if len(blocks) == 0 {
		return nil
	}
	return &blocks[len(blocks)-1]
}

// Status summarises the block against a plan's cost limit.
//
// Parameters:
//   - now: The instant to measure the reset countdown from
//   - costLimit: The plan's cost ceiling in USD; 0 disables the percent
//   - cost: Pricing function applied to the block's stats
//
// UntilReset is clamped at zero for blocks that already ended, and
// UsagePercent is zero when costLimit is zero.
func (b *BillingBlock) Status(now time.Time, costLimit float64, cost CostFunc) BlockStatus {
	blockCost := cost(b.Stats)

	untilReset := b.End.Sub(now)
	if untilReset < 0 {
		untilReset = 0
	}

	percent := 0.0
	if costLimit > 0 {
		percent = blockCost / costLimit * 100
	}

	return BlockStatus{
		Start:        b.Start,
		ResetAt:      b.End,
		UntilReset:   untilReset,
		Tokens:       b.Stats.TotalTokens(),
		Calls:        b.Stats.TotalCalls(),
		Cost:         blockCost,
		IsActive:     b.IsActive,
		UsagePercent: percent,
		Rate:         b.Rate(now, cost),
	}
}

// Rate computes the burn rate over the block's elapsed time. Elapsed
// time is measured from the block start to now, capped at the block
// end. A block with no elapsed time has a zero rate.
func (b *BillingBlock) Rate(now time.Time, cost CostFunc) BurnRate {
	ref := now
	if ref.After(b.End) {
		ref = b.End
	}

	elapsed := ref.Sub(b.Start)
	if elapsed <= 0 {
		return BurnRate{}
	}

	minutes := elapsed.Minutes()
	hours := elapsed.Hours()

	return BurnRate{
		TokensPerMinute: float64(b.Stats.TotalTokens()) / minutes,
		CostPerHour:     cost(b.Stats) / hours,
	}
}
