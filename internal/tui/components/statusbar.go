package components

import (
	"github.com/theirongolddev/paisa/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Status is the content of the bottom status bar.
type Status struct {
	// Identity is the signed in user, shown on the right.
	Identity string
	// Message is the last flash message; Error colors it red.
	Message string
	Error   bool
	// Busy is a spinner frame shown while a request is in flight.
	Busy string
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, s Status) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	msgStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	if s.Error {
		msgStyle = msgStyle.Foreground(t.Red)
	}

	left := base.Render(" ") + keyStyle.Render("[?]") + base.Render("help ") +
		keyStyle.Render("[r]") + base.Render("refresh ") +
		keyStyle.Render("[q]") + base.Render("uit")
	if s.Busy != "" {
		left += base.Render("  " + s.Busy)
	}
	if s.Message != "" {
		left += base.Render("  ") + msgStyle.Render(s.Message)
	}

	right := ""
	if s.Identity != "" {
		right = base.Render(s.Identity + " ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		// Drop the identity before the message gets cut.
		right = ""
		padding = width - lipgloss.Width(left)
	}
	if padding < 0 {
		padding = 0
	}

	bar := left + lipgloss.NewStyle().Background(t.Surface).Width(padding).Render("") + right
	return lipgloss.NewStyle().MaxWidth(width).Render(bar)
}
