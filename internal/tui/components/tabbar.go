package components

import (
	"strings"

	"github.com/theirongolddev/paisa/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tab indexes, in display order.
const (
	TabDashboard = iota
	TabAccounts
	TabTransactions
	TabBudget
	TabInsights
	TabAdmin
)

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Dashboard", Key: 'd', KeyPos: 0},
	{Name: "Accounts", Key: 'a', KeyPos: 0},
	{Name: "Transactions", Key: 't', KeyPos: 0},
	{Name: "Budget", Key: 'b', KeyPos: 0},
	{Name: "Insights", Key: 'i', KeyPos: 0},
	{Name: "Admin", Key: 'm', KeyPos: 3},
}

const tabSeparator = " "

// RenderTabBar renders the tab bar on one line. Hidden tabs, such as Admin
// for users without the role, are skipped.
func RenderTabBar(activeIdx int, width int, hidden map[int]bool) string {
	t := theme.Active

	barStyle := lipgloss.NewStyle().Background(t.Surface)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	parts := []string{logoStyle.Render(" ₹ paisa ")}
	for i, tab := range Tabs {
		if hidden[i] {
			continue
		}
		parts = append(parts, renderTab(tab, i == activeIdx))
	}
	row := strings.Join(parts, barStyle.Render(tabSeparator))
	return lipgloss.PlaceHorizontal(width, lipgloss.Left, row,
		lipgloss.WithWhitespaceBackground(t.Surface))
}

func renderTab(tab Tab, active bool) string {
	t := theme.Active

	if active {
		return lipgloss.NewStyle().
			Foreground(t.AccentBright).
			Background(t.AccentDim).
			Bold(true).
			Padding(0, 1).
			Render(tab.Name)
	}

	inactive := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	key := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true).Underline(true)
	pad := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	if tab.KeyPos < 0 || tab.KeyPos >= len(tab.Name) {
		return pad + inactive.Render(tab.Name) + pad
	}
	return pad +
		inactive.Render(tab.Name[:tab.KeyPos]) +
		key.Render(tab.Name[tab.KeyPos:tab.KeyPos+1]) +
		inactive.Render(tab.Name[tab.KeyPos+1:]) +
		pad
}

// LogoWidth is the width of the brand label that precedes the tabs.
func LogoWidth() int {
	return lipgloss.Width(" ₹ paisa ") + len(tabSeparator)
}

// TabVisualWidth returns the rendered width of a tab. Active and inactive
// tabs share the same one column padding on both sides.
func TabVisualWidth(tab Tab) int {
	return lipgloss.Width(tab.Name) + 2
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
