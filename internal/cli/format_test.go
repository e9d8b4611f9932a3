package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/paisa/internal/model"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "₹0.00",
		"100.5":      "₹100.50",
		"1234567.5":  "₹1,234,567.50",
		"-42":        "-₹42.00",
		"999.999":    "₹1,000.00",
		"0.004":      "₹0.00",
	}
	for in, want := range cases {
		if got := FormatMoney(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatMoney(%s) = %q, want %q", in, got, want)
		}
	}
	if got := FormatMoneyPtr(nil); got != "—" {
		t.Errorf("FormatMoneyPtr(nil) = %q", got)
	}
}

func TestFormatSigned(t *testing.T) {
	tx := model.Transaction{Type: model.Expense, Amount: decimal.NewFromInt(12)}
	if got := FormatSigned(tx); got != "-₹12.00" {
		t.Errorf("expense = %q", got)
	}
	tx.Type = model.Income
	if got := FormatSigned(tx); got != "+₹12.00" {
		t.Errorf("income = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	for n, want := range map[int64]string{0: "0", 999: "999", 1000: "1,000", -1234567: "-1,234,567"} {
		if got := FormatNumber(n); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(model.Timestamp{}); got != "—" {
		t.Errorf("zero date = %q", got)
	}
	ts := model.NewTimestamp(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC))
	if got := FormatDate(ts); got != "Mar 09, 2024" {
		t.Errorf("date = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("groceries", 20); got != "groceries" {
		t.Errorf("short = %q", got)
	}
	if got := Truncate("weekly groceries run", 8); got != "weekly …" {
		t.Errorf("long = %q", got)
	}
	if got := ShortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("ShortID = %q", got)
	}
}

func TestRenderTableAlignsWideRunes(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Name", "Balance"},
		Rows: [][]string{
			{"Wallet", FormatMoney(decimal.RequireFromString("100.5"))},
			{"Savings", FormatMoney(decimal.NewFromInt(25000))},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	want := lipgloss.Width(lines[0])
	for i, l := range lines {
		if w := lipgloss.Width(l); w != want {
			t.Errorf("line %d width %d, want %d: %q", i, w, want, l)
		}
	}
	if !strings.Contains(lines[3], "   ₹100.50") {
		t.Errorf("balance not right-aligned: %q", lines[3])
	}
}

func TestRenderBudgetBar(t *testing.T) {
	got := RenderBudgetBar(decimal.NewFromInt(50), decimal.NewFromInt(200), 8)
	if !strings.Contains(got, "██░░░░░░") || !strings.Contains(got, "25.0%") {
		t.Errorf("bar = %q", got)
	}
	if got := RenderBudgetBar(decimal.Zero, decimal.Zero, 8); got != "no budget set" {
		t.Errorf("no budget = %q", got)
	}
}

func TestRenderBars(t *testing.T) {
	out := RenderBars([]Bar{
		{Label: "Food", Value: decimal.NewFromInt(100)},
		{Label: "Bills", Value: decimal.NewFromInt(50)},
	}, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d", len(lines))
	}
	if strings.Count(lines[0], "█") != 10 || strings.Count(lines[1], "█") != 5 {
		t.Errorf("bars not scaled:\n%s", out)
	}
}
