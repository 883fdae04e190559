package display

import (
	"fmt"
	"io"
)

// compactRenderer writes the single-line status summary.
type compactRenderer struct {
	config Config
	styles styles
}

// Render implements Renderer.Render.
//
// With a plan comparison the line is
// "Claude | $6.30 (35%) | 1.50M tokens | 42 calls"; without one the
// percentage and call count are omitted. The cost percentage is not
// clamped, so overruns read as values above 100.
func (r *compactRenderer) Render(w io.Writer, report Report) error {
	name := r.styles.compactName.Render("Claude")
	cost := r.styles.compactCost.Render(fmt.Sprintf("$%.2f", report.TotalCost))
	tokens := r.styles.compactTokens.Render(formatTokens(report.TotalTokens))

	if report.Plan == nil {
		_, err := fmt.Fprintf(w, "%s | %s | %s tokens\n", name, cost, tokens)
		return err
	}

	calls := r.styles.compactCalls.Render(fmt.Sprintf("%d", report.TotalCalls))
	_, err := fmt.Fprintf(w, "%s | %s (%.0f%%) | %s tokens | %s calls\n",
		name, cost, report.Plan.CostPercent, tokens, calls)
	return err
}
