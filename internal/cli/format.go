// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/paisa/internal/model"
)

// CurrencySymbol prefixes every money value.
const CurrencySymbol = "₹"

// FormatMoney formats an amount with two decimals and thousands separators.
// e.g., 1234567.5 -> "₹1,234,567.50", -42 -> "-₹42.00"
func FormatMoney(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	n, err := strconv.ParseInt(whole, 10, 64)
	if err == nil {
		whole = FormatNumber(n)
	}

	out := CurrencySymbol + whole + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// FormatMoneyPtr formats an optional amount, "—" when absent.
func FormatMoneyPtr(d *decimal.Decimal) string {
	if d == nil {
		return "—"
	}
	return FormatMoney(*d)
}

// FormatSigned formats a transaction amount with a leading sign,
// "+" for income and "-" for expenses.
func FormatSigned(t model.Transaction) string {
	if t.Type == model.Expense {
		return "-" + FormatMoney(t.Amount)
	}
	return "+" + FormatMoney(t.Amount)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDate renders a timestamp as "Jan 02, 2006", or "—" when unset.
func FormatDate(ts model.Timestamp) string {
	if ts.IsZero() {
		return "—"
	}
	return ts.Format("Jan 02, 2006")
}

// FormatBool renders a yes/no flag for table cells.
func FormatBool(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

// Truncate shortens s to at most n runes, marking the cut with "…".
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

// ShortID returns the first 8 characters of an id for compact tables.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
