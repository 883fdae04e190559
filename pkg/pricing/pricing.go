// Package pricing converts aggregated token usage into USD cost
// estimates and compares them against subscription plan limits.
//
// The rate table is static and ships with the binary; estimates follow
// published API pricing and need no network access. Models that are not
// listed fall back to the rates of the tier their name suggests, with
// Sonnet as the final default.
//
// Example usage:
//
//	stats := aggregator.Aggregate(entries, time.Now())
//	fmt.Printf("total: $%.4f\n", pricing.TotalCost(stats))
package pricing

import (
	"strings"

	"github.com/ccdash/ccdash/pkg/aggregator"
)

// Tier display names.
const (
	TierOpus   = "Opus"
	TierSonnet = "Sonnet"
	TierHaiku  = "Haiku"
)

// Rates holds USD prices per million tokens.
type Rates struct {
	Input         float64
	Output        float64
	CacheCreation float64
	CacheRead     float64
}

// Per-tier rates, USD per million tokens.
var (
	opusRates   = Rates{Input: 15.0, Output: 75.0, CacheCreation: 18.75, CacheRead: 1.50}
	sonnetRates = Rates{Input: 3.0, Output: 15.0, CacheCreation: 3.75, CacheRead: 0.30}
	haikuRates  = Rates{Input: 0.25, Output: 1.25, CacheCreation: 0.30, CacheRead: 0.03}
)

// modelRates lists the exactly known model identifiers.
var modelRates = map[string]Rates{
	// Opus
	"claude-opus-4-5-20251101": opusRates,
	"claude-3-opus-20240229":   opusRates,
	// Sonnet
	"claude-sonnet-4-5-20250929": sonnetRates,
	"claude-3-5-sonnet-20241022": sonnetRates,
	"claude-3-5-sonnet-20240620": sonnetRates,
	"claude-3-sonnet-20240229":   sonnetRates,
	// Haiku
	"claude-3-5-haiku-20241022": haikuRates,
	"claude-3-haiku-20240307":   haikuRates,
}

// Lookup returns the rates for a model.
//
// Exact identifiers are matched first. Unlisted models fall back on a
// case-insensitive substring check: names containing "opus" get Opus
// rates, names containing "haiku" get Haiku rates, and everything else
// (including the "unknown" placeholder) gets Sonnet rates.
func Lookup(model string) Rates {
	if rates, ok := modelRates[model]; ok {
		return rates
	}

	lower := strings.ToLower(model)
	switch {
	case strings.Contains(lower, "opus"):
		return opusRates
	case strings.Contains(lower, "haiku"):
		return haikuRates
	default:
		return sonnetRates
	}
}

// TierOf classifies a model into its display tier using the same
// substring rules as Lookup.
func TierOf(model string) string {
	lower := strings.ToLower(model)
	switch {
	case strings.Contains(lower, "opus"):
		return TierOpus
	case strings.Contains(lower, "haiku"):
		return TierHaiku
	default:
		return TierSonnet
	}
}

// ModelCost estimates the USD cost of one model's accumulated usage.
// Each counter contributes count/1e6 times its per-million rate. The
// result is a raw float64; rounding is left to the renderer.
func ModelCost(stats *aggregator.ModelStats) float64 {
	rates := Lookup(stats.Model)

	cost := 0.0
	cost += float64(stats.InputTokens) / 1_000_000 * rates.Input
	cost += float64(stats.OutputTokens) / 1_000_000 * rates.Output
	cost += float64(stats.CacheCreationTokens) / 1_000_000 * rates.CacheCreation
	cost += float64(stats.CacheReadTokens) / 1_000_000 * rates.CacheRead

	return cost
}

// PeriodCosts estimates the cost of every model in the period.
func PeriodCosts(stats *aggregator.PeriodStats) map[string]float64 {
	costs := make(map[string]float64, len(stats.Models))
	for model, ms := range stats.Models {
		costs[model] = ModelCost(ms)
	}
	return costs
}

// TotalCost estimates the total cost of a period. It equals the sum of
// the PeriodCosts values and satisfies aggregator.CostFunc.
func TotalCost(stats *aggregator.PeriodStats) float64 {
	total := 0.0
	for _, cost := range PeriodCosts(stats) {
		total += cost
	}
	return total
}
