package tui

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/paisa/internal/cli"
	"github.com/theirongolddev/paisa/internal/controller"
	"github.com/theirongolddev/paisa/internal/tui/components"
	"github.com/theirongolddev/paisa/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderBudgetTab(cw int) string {
	t := theme.Active
	budget := a.opts.Budget
	current := budget.Current()

	// A missing budget loads as an empty list, which is a normal state here.
	if current == nil && budget.State() != controller.Loaded {
		msg, _ := placeholder(budget.State(), budget.Err(), true, "")
		return components.ContentCard("Monthly budget", msg, cw)
	}

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if current == nil {
		body := muted.Render("You have not set a monthly budget.") + "\n\n" + hint("[e] set budget")
		return components.ContentCard("Monthly budget", body, cw)
	}

	spent := decimal.Zero
	if sum := a.opts.Dashboard.Summary(); sum != nil && sum.BudgetSpent != nil {
		spent = *sum.BudgetSpent
	}
	usage := 0.0
	if current.Amount.IsPositive() {
		usage = spent.Div(current.Amount).InexactFloat64()
	}
	remaining := current.Amount.Sub(spent)

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Budget", Value: cli.FormatMoney(current.Amount)},
		{Label: "Spent this month", Value: cli.FormatMoney(spent), Color: t.Expense()},
		{Label: "Remaining", Value: cli.FormatMoney(remaining), Color: remainingColor(remaining)},
	}, cw))
	b.WriteString("\n")

	barW := max(components.CardInnerWidth(cw)-12, 10)
	body := components.UsageBar("", usage, 0, barW)
	switch {
	case usage >= 1:
		body += "\n" + lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Render("Over budget")
	case usage >= 0.8:
		body += "\n" + lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Render("Close to the limit")
	}
	if !current.LastAlertSent.IsZero() {
		body += "\n" + muted.Render("Last alert sent "+cli.FormatDate(current.LastAlertSent))
	}
	body += "\n\n" + hint("[e]dit  [x] remove")
	b.WriteString(components.ContentCard("Usage", body, cw))
	return b.String()
}

func remainingColor(d decimal.Decimal) lipgloss.Color {
	if d.IsNegative() {
		return theme.Active.Expense()
	}
	return theme.Active.Income()
}
