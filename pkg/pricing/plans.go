package pricing

import (
	"fmt"

	"github.com/ccdash/ccdash/pkg/aggregator"
)

// DefaultPlan is the plan assumed when none is configured.
const DefaultPlan = "pro"

// PlanLimits describes one subscription plan.
//
// TokenLimit is informational only; plan usage is estimated against the
// cost and call ceilings.
type PlanLimits struct {
	TokenLimit int64
	CostLimit  float64
	CallLimit  int64
}

// planLimits holds the known subscription plans.
var planLimits = map[string]PlanLimits{
	"pro":   {TokenLimit: 19_000, CostLimit: 18.0, CallLimit: 250},
	"max5":  {TokenLimit: 88_000, CostLimit: 35.0, CallLimit: 1000},
	"max20": {TokenLimit: 220_000, CostLimit: 140.0, CallLimit: 2000},
}

// PlanUsage compares a period's consumption against one plan.
//
// Percent values are not clamped; 160.0 means sixty percent over the
// ceiling. Renderers clamp for display.
type PlanUsage struct {
	Plan         string  `json:"plan"`
	CostUsed     float64 `json:"cost_used"`
	CostLimit    float64 `json:"cost_limit"`
	CostPercent  float64 `json:"cost_percent"`
	CallsUsed    int64   `json:"calls_used"`
	CallLimit    int64   `json:"call_limit"`
	CallsPercent float64 `json:"calls_percent"`
}

// Plans returns the known plan names in ascending tier order.
func Plans() []string {
	return []string{"pro", "max5", "max20"}
}

// LimitsFor returns the limits of a plan and whether it exists.
func LimitsFor(plan string) (PlanLimits, bool) {
	limits, ok := planLimits[plan]
	return limits, ok
}

// EstimatePlanUsage compares a period's cost and call count against the
// named plan's ceilings.
//
// Parameters:
//   - stats: The aggregated period
//   - plan: Plan name (see Plans)
//
// Returns ErrUnknownPlan for a plan name that is not in the table. A
// zero ceiling yields a zero percent rather than a division by zero.
func EstimatePlanUsage(stats *aggregator.PeriodStats, plan string) (*PlanUsage, error) {
	limits, ok := planLimits[plan]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlan, plan)
	}

	cost := TotalCost(stats)
	calls := stats.TotalCalls()

	usage := &PlanUsage{
		Plan:      plan,
		CostUsed:  cost,
		CostLimit: limits.CostLimit,
		CallsUsed: calls,
		CallLimit: limits.CallLimit,
	}

	if limits.CostLimit > 0 {
		usage.CostPercent = cost / limits.CostLimit * 100
	}
	if limits.CallLimit > 0 {
		usage.CallsPercent = float64(calls) / float64(limits.CallLimit) * 100
	}

	return usage, nil
}
