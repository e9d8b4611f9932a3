package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/paisa/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Bar is one row of a horizontal bar chart.
type Bar struct {
	Label string
	Value float64
	// Text is the formatted value printed after the bar.
	Text string
}

// palette cycles through distinct colors for chart rows.
func palette() []lipgloss.Color {
	t := theme.Active
	return []lipgloss.Color{t.Accent, t.Blue, t.Magenta, t.Orange, t.Yellow, t.Green, t.Cyan, t.Red}
}

// HBarChart renders labelled horizontal bars scaled to the largest value.
// Rows beyond maxRows are folded into a final "Other" bar.
func HBarChart(bars []Bar, width, maxRows int) string {
	t := theme.Active
	if len(bars) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No data")
	}

	if maxRows > 0 && len(bars) > maxRows {
		folded := append([]Bar(nil), bars[:maxRows-1]...)
		rest := Bar{Label: "Other"}
		for _, b := range bars[maxRows-1:] {
			rest.Value += b.Value
		}
		rest.Text = formatChartLabel(rest.Value)
		bars = append(folded, rest)
	}

	labelW, textW := 0, 0
	peak := 0.0
	for _, b := range bars {
		labelW = max(labelW, lipgloss.Width(b.Label))
		textW = max(textW, lipgloss.Width(b.Text))
		peak = max(peak, b.Value)
	}
	labelW = min(labelW, 16)
	if peak <= 0 {
		peak = 1
	}

	barW := width - labelW - textW - 2
	if barW < 4 {
		barW = 4
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	trackStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	colors := palette()
	lines := make([]string, len(bars))
	for i, b := range bars {
		filled := int(b.Value / peak * float64(barW))
		if b.Value > 0 && filled == 0 {
			filled = 1
		}
		filled = min(max(filled, 0), barW)

		fill := lipgloss.NewStyle().Foreground(colors[i%len(colors)]).Background(t.Surface)
		label := truncate(b.Label, labelW)
		lines[i] = labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + space +
			fill.Render(strings.Repeat("█", filled)) +
			trackStyle.Render(strings.Repeat("░", barW-filled)) + space +
			textStyle.Render(fmt.Sprintf("%*s", textW, b.Text))
	}
	return strings.Join(lines, "\n")
}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e7:
		return fmt.Sprintf("%.1fCr", v/1e7)
	case v >= 1e5:
		return fmt.Sprintf("%.1fL", v/1e5)
	case v >= 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}
