package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// dashboardRenderer draws the full panel dashboard.
type dashboardRenderer struct {
	config Config
	styles styles
}

// modelColumns is the layout of the usage table.
var modelColumns = []struct {
	name  string
	right bool
}{
	{"Model", false},
	{"Tier", false},
	{"Calls", true},
	{"Input", true},
	{"Output", true},
	{"Cache R", true},
	{"Cost", true},
}

// Render implements Renderer.Render.
func (r *dashboardRenderer) Render(w io.Writer, report Report) error {
	sections := []string{
		r.renderHeader(report),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, r.renderSummary(report), " ", r.renderPlan(report)),
		"",
	}

	if report.Block != nil {
		sections = append(sections, r.renderBlock(report.Block), "")
	}

	sections = append(sections, r.renderModels(report))

	if r.config.Live {
		sections = append(sections, "", r.renderFooter())
	}

	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, sections...))
	return err
}

// renderHeader draws the title banner.
func (r *dashboardRenderer) renderHeader(report Report) string {
	title := r.styles.accent.Render("⚡ ") +
		r.styles.title.Render("CLAUDE DASHBOARD") +
		r.styles.accent.Render(" ⚡")
	subtitle := r.styles.dim.Render("Generated: " + report.GeneratedAt.Format("2006-01-02 15:04"))

	return r.styles.headerBox.Render(title + "\n" + subtitle)
}

// renderSummary draws the period totals panel.
func (r *dashboardRenderer) renderSummary(report Report) string {
	rows := [][2]string{
		{"📊 Total Tokens:", formatTokens(report.TotalTokens)},
		{"💰 Total Cost:", formatCost(report.TotalCost)},
		{"📞 API Calls:", formatNumber(report.TotalCalls)},
		{"🔗 Sessions:", formatNumber(int64(report.Sessions))},
		{"📅 Period:", report.Start.Format("01/02") + " - " + report.End.Format("01/02")},
	}

	labelWidth := 0
	for _, row := range rows {
		if w := lipgloss.Width(row[0]); w > labelWidth {
			labelWidth = w
		}
	}

	lines := []string{r.styles.value.Render("📈 Summary"), ""}
	for _, row := range rows {
		gap := strings.Repeat(" ", labelWidth-lipgloss.Width(row[0]))
		lines = append(lines, gap+r.styles.dim.Render(row[0])+"  "+r.styles.value.Render(row[1]))
	}

	return r.styles.summaryBox.Render(strings.Join(lines, "\n"))
}

// renderPlan draws the plan usage panel with cost and call gauges.
func (r *dashboardRenderer) renderPlan(report Report) string {
	if report.Plan == nil {
		content := r.styles.value.Render("📋 Plan Usage") + "\n\nUnknown plan"
		return r.styles.planBox.Render(content)
	}

	u := report.Plan
	lines := []string{r.styles.value.Render("📋 Plan: " + strings.ToUpper(u.Plan)), ""}

	costPct := clampPercent(u.CostPercent)
	costBar := r.styles.gauge(costPct).Render(usageBar(costPct))
	lines = append(lines,
		fmt.Sprintf("💰 Cost:  [%s] %.1f%%", costBar, costPct),
		fmt.Sprintf("         %s / %s", formatCost(u.CostUsed), formatCost(u.CostLimit)),
		"")

	callsPct := clampPercent(u.CallsPercent)
	callsBar := r.styles.gauge(callsPct).Render(usageBar(callsPct))
	lines = append(lines,
		fmt.Sprintf("📞 Calls: [%s] %.1f%%", callsBar, callsPct),
		fmt.Sprintf("         %s / %s", formatNumber(u.CallsUsed), formatNumber(u.CallLimit)))

	return r.styles.planBox.Render(strings.Join(lines, "\n"))
}

// renderBlock draws the five-hour billing block panel.
func (r *dashboardRenderer) renderBlock(block *BlockReport) string {
	title := "🕒 Current Block"
	if !block.IsActive {
		title = "🕒 Last Block"
	}

	var rows [][2]string
	if block.IsActive {
		rows = append(rows, [2]string{
			"⏳ Resets In:",
			fmt.Sprintf("%s (%s)", formatDuration(block.UntilReset), block.ResetAt.Local().Format("15:04")),
		})
	} else {
		rows = append(rows, [2]string{"⏳ Ended:", block.ResetAt.Local().Format("01/02 15:04")})
	}
	rows = append(rows,
		[2]string{"📊 Tokens:", formatTokens(block.Tokens)},
		[2]string{"📞 Calls:", formatNumber(block.Calls)},
		[2]string{"💰 Cost:", formatCost(block.Cost)},
		[2]string{"🔥 Burn Rate:", fmt.Sprintf("%s tok/min, $%.2f/hr", formatTokens(int64(block.TokensPerMinute)), block.CostPerHour)},
	)

	labelWidth := 0
	for _, row := range rows {
		if w := lipgloss.Width(row[0]); w > labelWidth {
			labelWidth = w
		}
	}

	lines := []string{r.styles.value.Render(title), ""}
	for _, row := range rows {
		gap := strings.Repeat(" ", labelWidth-lipgloss.Width(row[0]))
		lines = append(lines, gap+r.styles.dim.Render(row[0])+"  "+r.styles.value.Render(row[1]))
	}

	pct := clampPercent(block.UsagePercent)
	bar := r.styles.gauge(pct).Render(usageBar(pct))
	lines = append(lines, "", fmt.Sprintf("💳 Budget: [%s] %.1f%%", bar, pct))

	return r.styles.blockBox.Render(strings.Join(lines, "\n"))
}

// renderModels draws the per-model usage table sorted by cost.
func (r *dashboardRenderer) renderModels(report Report) string {
	lines := []string{r.styles.tableTitle.Render("🤖 Usage by Model"), ""}

	if len(report.Models) == 0 {
		lines = append(lines, "No data")
		return strings.Join(lines, "\n")
	}

	rows := make([][]string, 0, len(report.Models))
	for _, m := range report.Models {
		rows = append(rows, []string{
			shortModelName(m.Model),
			m.Tier,
			formatNumber(m.Calls),
			formatTokens(m.InputTokens),
			formatTokens(m.OutputTokens),
			formatTokens(m.CacheReadTokens),
			formatCost(m.Cost),
		})
	}

	// Calculate column widths.
	widths := make([]int, len(modelColumns))
	for i, col := range modelColumns {
		widths[i] = lipgloss.Width(col.name)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	header := make([]string, len(modelColumns))
	for i, col := range modelColumns {
		header[i] = r.styles.tableHeader.Render(pad(col.name, widths[i], col.right))
	}
	lines = append(lines, strings.Join(header, "  "))

	separator := make([]string, len(modelColumns))
	for i := range modelColumns {
		separator[i] = strings.Repeat("─", widths[i])
	}
	lines = append(lines, r.styles.dim.Render(strings.Join(separator, "  ")))

	cellStyles := []lipgloss.Style{
		r.styles.colModel,
		r.styles.colTier,
		r.styles.plain,
		r.styles.colInput,
		r.styles.colOutput,
		r.styles.colCache,
		r.styles.colCost,
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cellStyles[i].Render(pad(cell, widths[i], modelColumns[i].right))
		}
		lines = append(lines, strings.Join(cells, "  "))
	}

	return strings.Join(lines, "\n")
}

// renderFooter draws the centered watch-mode hint.
func (r *dashboardRenderer) renderFooter() string {
	text := r.styles.dim.Render("Press Ctrl+C to exit | Data from ~/.claude/projects/*.jsonl")
	return lipgloss.NewStyle().Width(r.config.Width).Align(lipgloss.Center).Render(text)
}

// pad widens s to width display cells, right-aligning numeric columns.
func pad(s string, width int, right bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	fill := strings.Repeat(" ", gap)
	if right {
		return fill + s
	}
	return s + fill
}
