package display

import "github.com/charmbracelet/lipgloss"

// Color definitions for the dashboard theme.
var (
	colorRed     = lipgloss.Color("1")
	colorGreen   = lipgloss.Color("2")
	colorYellow  = lipgloss.Color("3")
	colorBlue    = lipgloss.Color("4")
	colorMagenta = lipgloss.Color("5")
	colorCyan    = lipgloss.Color("6")
	colorGray    = lipgloss.Color("8")
)

// styles bundles the lipgloss styles used by one renderer. The plain
// variant carries no color attributes, so rendered output stays
// byte-stable when colors are off.
type styles struct {
	plain  lipgloss.Style
	title  lipgloss.Style
	accent lipgloss.Style
	dim    lipgloss.Style
	value  lipgloss.Style

	tableTitle  lipgloss.Style
	tableHeader lipgloss.Style
	colModel    lipgloss.Style
	colTier     lipgloss.Style
	colInput    lipgloss.Style
	colOutput   lipgloss.Style
	colCache    lipgloss.Style
	colCost     lipgloss.Style

	headerBox  lipgloss.Style
	summaryBox lipgloss.Style
	planBox    lipgloss.Style
	blockBox   lipgloss.Style

	gaugeGreen  lipgloss.Style
	gaugeYellow lipgloss.Style
	gaugeRed    lipgloss.Style

	compactName   lipgloss.Style
	compactCost   lipgloss.Style
	compactTokens lipgloss.Style
	compactCalls  lipgloss.Style
}

// newStyles builds the style set. Color attributes are only attached
// when colored is true; the box borders are always drawn.
func newStyles(colored bool) styles {
	plain := lipgloss.NewStyle()
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	s := styles{
		plain:  plain,
		title:  plain,
		accent: plain,
		dim:    plain,
		value:  plain,

		tableTitle:  plain,
		tableHeader: plain,
		colModel:    plain,
		colTier:     plain,
		colInput:    plain,
		colOutput:   plain,
		colCache:    plain,
		colCost:     plain,

		headerBox:  lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(0, 1),
		summaryBox: box,
		planBox:    box,
		blockBox:   box,

		gaugeGreen:  plain,
		gaugeYellow: plain,
		gaugeRed:    plain,

		compactName:   plain,
		compactCost:   plain,
		compactTokens: plain,
		compactCalls:  plain,
	}

	if !colored {
		return s
	}

	s.title = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	s.accent = lipgloss.NewStyle().Foreground(colorYellow)
	s.dim = lipgloss.NewStyle().Foreground(colorGray)
	s.value = lipgloss.NewStyle().Bold(true)

	s.tableTitle = lipgloss.NewStyle().Bold(true)
	s.tableHeader = lipgloss.NewStyle().Bold(true).Foreground(colorMagenta)
	s.colModel = lipgloss.NewStyle().Foreground(colorCyan)
	s.colTier = lipgloss.NewStyle().Foreground(colorYellow)
	s.colInput = lipgloss.NewStyle().Foreground(colorGreen)
	s.colOutput = lipgloss.NewStyle().Foreground(colorBlue)
	s.colCache = s.dim
	s.colCost = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)

	s.headerBox = s.headerBox.BorderForeground(colorCyan)
	s.summaryBox = box.BorderForeground(colorGreen)
	s.planBox = box.BorderForeground(colorBlue)
	s.blockBox = box.BorderForeground(colorMagenta)

	s.gaugeGreen = lipgloss.NewStyle().Foreground(colorGreen)
	s.gaugeYellow = lipgloss.NewStyle().Foreground(colorYellow)
	s.gaugeRed = lipgloss.NewStyle().Foreground(colorRed)

	s.compactName = lipgloss.NewStyle().Foreground(colorCyan)
	s.compactCost = lipgloss.NewStyle().Foreground(colorYellow)
	s.compactTokens = lipgloss.NewStyle().Foreground(colorGreen)
	s.compactCalls = lipgloss.NewStyle().Foreground(colorBlue)

	return s
}

// gauge returns the bar style for a usage percentage. Thresholds
// follow the plan panel: green below 70, yellow below 90, red above.
func (s styles) gauge(percent float64) lipgloss.Style {
	switch {
	case percent < 70:
		return s.gaugeGreen
	case percent < 90:
		return s.gaugeYellow
	default:
		return s.gaugeRed
	}
}
