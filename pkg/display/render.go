package display

import (
	"fmt"
	"strings"
	"time"
)

// defaultWidth is the fallback terminal width.
const defaultWidth = 80

// New creates a renderer based on configuration.
//
// Parameters:
//   - cfg: Renderer configuration
//
// Returns a configured Renderer.
func New(cfg Config) Renderer {
	// Set defaults.
	if cfg.Format == "" {
		cfg.Format = FormatDashboard
	}
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}

	switch cfg.Format {
	case FormatJSON:
		return &jsonRenderer{config: cfg}
	case FormatCompact:
		return &compactRenderer{config: cfg, styles: newStyles(cfg.ColorEnabled)}
	case FormatDashboard:
		fallthrough
	default:
		return &dashboardRenderer{config: cfg, styles: newStyles(cfg.ColorEnabled)}
	}
}

// formatTokens renders a token count with a K or M suffix.
func formatTokens(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.2fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// formatCost renders a USD amount at report precision.
func formatCost(cost float64) string {
	return fmt.Sprintf("$%.4f", cost)
}

// formatNumber formats a count with thousand separators.
func formatNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	// Convert to string and add commas.
	s := fmt.Sprintf("%d", n)
	result := ""
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}

// formatDuration renders a countdown as hours and minutes.
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}

	d = d.Round(time.Minute)
	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)

	if hours > 0 {
		return fmt.Sprintf("%dh %02dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// shortModelName compresses a model identifier for table display.
// "claude-3-5-sonnet-20241022" becomes "3-5-sonnet 241022".
func shortModelName(model string) string {
	name := strings.ReplaceAll(model, "claude-", "")
	name = strings.ReplaceAll(name, "-20", " ")
	if runes := []rune(name); len(runes) > 25 {
		name = string(runes[:25])
	}
	return name
}

// usageBar renders a twenty-cell gauge, one cell per five percent.
func usageBar(percent float64) string {
	filled := int(percent / 5)
	if filled < 0 {
		filled = 0
	}
	if filled > 20 {
		filled = 20
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}

// clampPercent limits a percentage to the renderable range. The
// estimator reports overruns as values above 100; the gauges cap them.
func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
