package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/paisa/internal/controller"
	"github.com/theirongolddev/paisa/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// column describes one column of a selectable list. A zero width column
// takes the space the others leave.
type column struct {
	title string
	width int
	right bool
}

// cell is a rendered value with an optional color.
type cell struct {
	text  string
	color lipgloss.Color
}

func plain(s string) cell { return cell{text: s} }

// renderList draws rows with a highlighted cursor, scrolled so the cursor
// stays visible within height lines (header included).
func renderList(cols []column, rows [][]cell, cursor, width, height int) string {
	t := theme.Active

	fixed := 0
	flex := -1
	for i, c := range cols {
		if c.width == 0 {
			flex = i
			continue
		}
		fixed += c.width + 1
	}
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = c.width
	}
	if flex >= 0 {
		widths[flex] = max(width-fixed-1, 8)
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	var b strings.Builder
	b.WriteString(formatRow(cols, widths, headerCells(cols), headerStyle, headerStyle))

	visible := max(height-1, 1)
	offset := 0
	if cursor >= visible {
		offset = cursor - visible + 1
	}
	end := min(offset+visible, len(rows))

	for i := offset; i < end; i++ {
		base := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
		if i == cursor {
			base = base.Background(t.SurfaceHover).Bold(true)
		}
		b.WriteString("\n")
		b.WriteString(formatRow(cols, widths, rows[i], base, base))
	}
	if len(rows) > visible {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render(fmt.Sprintf("%d-%d of %d", offset+1, end, len(rows))))
	}
	return b.String()
}

func headerCells(cols []column) []cell {
	out := make([]cell, len(cols))
	for i, c := range cols {
		out[i] = plain(c.title)
	}
	return out
}

func formatRow(cols []column, widths []int, cells []cell, base, sep lipgloss.Style) string {
	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteString(sep.Render(" "))
		}
		var v cell
		if i < len(cells) {
			v = cells[i]
		}
		text := truncStr(v.text, widths[i])
		if c.right {
			text = fmt.Sprintf("%*s", widths[i]+len(text)-lipgloss.Width(text), text)
		} else {
			text = fmt.Sprintf("%-*s", widths[i]+len(text)-lipgloss.Width(text), text)
		}
		style := base
		if v.color != "" {
			style = style.Foreground(v.color)
		}
		b.WriteString(style.Render(text))
	}
	return b.String()
}

// placeholder returns what a tab shows instead of data while a list is
// loading, failed, or empty. ok is false when the data should be shown.
func placeholder(state controller.State, err error, empty bool, emptyText string) (string, bool) {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	switch {
	case state == controller.Loading && empty:
		return muted.Render("Loading..."), true
	case state == controller.Errored && empty:
		return lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Render(errorText(err)) +
			"\n" + muted.Render("Press r to retry"), true
	case state == controller.Idle:
		return muted.Render("Press r to load"), true
	case empty:
		return muted.Render(emptyText), true
	}
	return "", false
}

func hint(keys string) string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(keys)
}
