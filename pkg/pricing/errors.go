package pricing

import "errors"

// Common errors returned by the pricing package.
var (
	// ErrUnknownPlan is returned when a plan name is not in the plan
	// table.
	ErrUnknownPlan = errors.New("unknown plan")
)
