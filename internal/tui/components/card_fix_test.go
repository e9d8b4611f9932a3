package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/theirongolddev/paisa/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("test setup error: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")
	if len(lines) != tallLines {
		t.Errorf("joined height should match tallest card: got %d, want %d", len(lines), tallLines)
	}

	// Padding under the short card must still carry background styling.
	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("line %d has no ANSI codes", i)
		}
	}
}

func TestCardRowWidthConsistency(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "A", 30)
	tallCard := ContentCard("Tall", "A\nB\nC\nD\nE\nF", 20)

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Errorf("line %d width = %d, want %d", i, w, want)
		}
	}
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, tc := range []struct{ total, n int }{{80, 3}, {81, 4}, {10, 1}, {7, 7}} {
		sum := 0
		for _, w := range LayoutRow(tc.total, tc.n) {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestHBarChartFoldsOverflowIntoOther(t *testing.T) {
	bars := []Bar{
		{Label: "Food", Value: 500, Text: "500"},
		{Label: "Bills", Value: 300, Text: "300"},
		{Label: "Transport", Value: 100, Text: "100"},
		{Label: "Other", Value: 50, Text: "50"},
	}
	out := HBarChart(bars, 60, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d rows, want 3", len(lines))
	}
	if !strings.Contains(lines[2], "Other") || !strings.Contains(lines[2], "150") {
		t.Errorf("last row = %q, want folded Other of 150", lines[2])
	}
}

func TestHBarChartEmpty(t *testing.T) {
	if !strings.Contains(HBarChart(nil, 40, 5), "No data") {
		t.Error("empty chart should say No data")
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('m'); got != TabAdmin {
		t.Errorf("m -> %d, want admin", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("z -> %d, want -1", got)
	}
}

func TestUsageBarShowsOverspend(t *testing.T) {
	out := UsageBar("Budget", 1.25, 6, 20)
	if !strings.Contains(out, "125%") {
		t.Errorf("usage bar = %q, want 125%%", out)
	}
}
