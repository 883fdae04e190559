// Package display renders usage reports for the terminal.
//
// It supports three formats: a full lipgloss dashboard with summary,
// plan and billing block panels, a compact single line for status
// bars, and machine-readable JSON. Every renderer consumes the same
// Report, assembled once from the aggregation and pricing results.
//
// Example usage:
//
//	report := display.BuildReport(stats, usage, block, time.Now())
//	renderer := display.New(display.Config{Format: display.FormatDashboard})
//	if err := renderer.Render(os.Stdout, report); err != nil {
//		log.Fatal(err)
//	}
package display

import (
	"io"
	"sort"
	"time"

	"github.com/ccdash/ccdash/pkg/aggregator"
	"github.com/ccdash/ccdash/pkg/pricing"
)

// Format represents an output format.
type Format string

const (
	// FormatDashboard renders the full panel dashboard.
	FormatDashboard Format = "dashboard"

	// FormatCompact renders a single status line.
	FormatCompact Format = "compact"

	// FormatJSON renders the report as JSON.
	FormatJSON Format = "json"
)

// Renderer renders an assembled report.
type Renderer interface {
	// Render writes the formatted report.
	//
	// Parameters:
	//   - w: Output writer
	//   - report: Assembled report data
	//
	// Returns error if writing fails.
	Render(w io.Writer, report Report) error
}

// Config contains renderer configuration.
type Config struct {
	// Format specifies the output format.
	// Default: FormatDashboard.
	Format Format

	// ColorEnabled enables ANSI colors. Callers should leave it off
	// when the output is not an interactive terminal.
	// Default: false.
	ColorEnabled bool

	// Width is the terminal width used for centering.
	// Default: 80.
	Width int

	// Live adds the watch-mode footer hint to the dashboard.
	// Default: false.
	Live bool

	// Compact disables JSON indentation.
	// Default: false.
	Compact bool
}

// ModelReport is one model's row in the report, priced and tiered.
type ModelReport struct {
	Model               string  `json:"model"`
	Tier                string  `json:"tier"`
	Calls               int64   `json:"calls"`
	InputTokens         int64   `json:"input_tokens"`
	OutputTokens        int64   `json:"output_tokens"`
	CacheCreationTokens int64   `json:"cache_creation_tokens"`
	CacheReadTokens     int64   `json:"cache_read_tokens"`
	Cost                float64 `json:"cost"`
}

// BlockReport summarises the current five-hour billing block. The
// JSON form carries the reset instant; consumers derive the countdown
// from it.
type BlockReport struct {
	Start           time.Time     `json:"start"`
	ResetAt         time.Time     `json:"reset_at"`
	UntilReset      time.Duration `json:"-"`
	IsActive        bool          `json:"is_active"`
	Tokens          int64         `json:"tokens"`
	Calls           int64         `json:"calls"`
	Cost            float64       `json:"cost"`
	UsagePercent    float64       `json:"usage_percent"`
	TokensPerMinute float64       `json:"tokens_per_minute"`
	CostPerHour     float64       `json:"cost_per_hour"`
}

// Report is the assembled input for every renderer and the struct the
// JSON format emits.
type Report struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Start       time.Time          `json:"period_start"`
	End         time.Time          `json:"period_end"`
	TotalTokens int64              `json:"total_tokens"`
	TotalCost   float64            `json:"total_cost"`
	TotalCalls  int64              `json:"total_calls"`
	Sessions    int                `json:"sessions"`
	Models      []ModelReport      `json:"models"`
	Plan        *pricing.PlanUsage `json:"plan,omitempty"`
	Block       *BlockReport       `json:"block,omitempty"`
}

// BuildReport assembles the render model from the pipeline results.
//
// Models are priced, tiered and sorted by cost descending with the
// model name as tie breaker. Plan and block are both optional; nil
// leaves the matching section out of the output.
//
// Parameters:
//   - stats: Aggregated period statistics
//   - plan: Plan comparison, or nil when unavailable
//   - block: Current billing block status, or nil without one
//   - generatedAt: Render timestamp shown in the header
//
// Returns the assembled report.
func BuildReport(stats *aggregator.PeriodStats, plan *pricing.PlanUsage, block *aggregator.BlockStatus, generatedAt time.Time) Report {
	report := Report{
		GeneratedAt: generatedAt,
		Start:       stats.Start,
		End:         stats.End,
		TotalTokens: stats.TotalTokens(),
		TotalCost:   pricing.TotalCost(stats),
		TotalCalls:  stats.TotalCalls(),
		Sessions:    stats.SessionCount,
		Models:      make([]ModelReport, 0, len(stats.Models)),
		Plan:        plan,
	}

	for model, ms := range stats.Models {
		report.Models = append(report.Models, ModelReport{
			Model:               model,
			Tier:                pricing.TierOf(model),
			Calls:               ms.CallCount,
			InputTokens:         ms.InputTokens,
			OutputTokens:        ms.OutputTokens,
			CacheCreationTokens: ms.CacheCreationTokens,
			CacheReadTokens:     ms.CacheReadTokens,
			Cost:                pricing.ModelCost(ms),
		})
	}

	sort.Slice(report.Models, func(i, j int) bool {
		if report.Models[i].Cost != report.Models[j].Cost {
			return report.Models[i].Cost > report.Models[j].Cost
		}
		return report.Models[i].Model < report.Models[j].Model
	})

	if block != nil {
		report.Block = &BlockReport{
			Start:           block.Start,
			ResetAt:         block.ResetAt,
			UntilReset:      block.UntilReset,
			IsActive:        block.IsActive,
			Tokens:          block.Tokens,
			Calls:           block.Calls,
			Cost:            block.Cost,
			UsagePercent:    block.UsagePercent,
			TokensPerMinute: block.Rate.TokensPerMinute,
			CostPerHour:     block.Rate.CostPerHour,
		}
	}

	return report
}
