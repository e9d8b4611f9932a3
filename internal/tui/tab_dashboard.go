package tui

import (
	"strings"

	"github.com/theirongolddev/paisa/internal/cli"
	"github.com/theirongolddev/paisa/internal/model"
	"github.com/theirongolddev/paisa/internal/tui/components"
	"github.com/theirongolddev/paisa/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderDashboardTab(cw int) string {
	t := theme.Active
	dash := a.opts.Dashboard
	sum := dash.Summary()

	if msg, ok := placeholder(dash.State(), dash.Err(), sum == nil, "No data yet"); ok {
		return components.ContentCard("Dashboard", msg, cw)
	}

	budgetNote := "no budget set"
	budgetValue := "—"
	budgetColor := t.TextMuted
	if sum.BudgetAmount != nil {
		usage := dash.BudgetUsage()
		budgetValue = cli.FormatPercent(usage)
		budgetNote = cli.FormatMoneyPtr(sum.BudgetSpent) + " of " + cli.FormatMoney(*sum.BudgetAmount)
		budgetColor = t.Usage(usage)
	}

	net := sum.MonthlyIncome.Sub(sum.MonthlyExpense)

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Total balance", Value: cli.FormatMoney(sum.TotalBalance), Note: pluralAccounts(len(sum.Accounts))},
		{Label: "Income this month", Value: cli.FormatMoney(sum.MonthlyIncome), Color: t.Income()},
		{Label: "Expenses this month", Value: cli.FormatMoney(sum.MonthlyExpense), Color: t.Expense(),
			Note: "net " + cli.FormatMoney(net)},
		{Label: "Budget used", Value: budgetValue, Note: budgetNote, Color: budgetColor},
	}, cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)

	slices := dash.Categories()
	bars := make([]components.Bar, len(slices))
	for i, s := range slices {
		bars[i] = components.Bar{Label: s.Label, Value: s.Value.InexactFloat64(), Text: cli.FormatMoney(s.Value)}
	}
	chart := components.ContentCard("Spending by category",
		components.HBarChart(bars, components.CardInnerWidth(halves[0]), 8), halves[0])

	recent := a.renderRecent(dash.Recent(a.opts.RecentLimit), components.CardInnerWidth(halves[1]))
	b.WriteString(components.CardRow([]string{
		chart,
		components.ContentCard("Recent transactions", recent, halves[1]),
	}))

	if sum.BudgetAmount != nil {
		b.WriteString("\n")
		barW := components.CardInnerWidth(cw) - 16
		b.WriteString(components.ContentCard("Monthly budget",
			components.UsageBar("Spent", dash.BudgetUsage(), 6, max(barW, 10)), cw))
	}
	return b.String()
}

func (a App) renderRecent(txs []model.Transaction, width int) string {
	t := theme.Active
	if len(txs) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No transactions yet")
	}

	dateStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	lines := make([]string, len(txs))
	for i, tx := range txs {
		amount := cli.FormatSigned(tx)
		color := t.Income()
		if tx.Type == model.Expense {
			color = t.Expense()
		}
		label := tx.Description
		if label == "" {
			label = tx.Category
		}
		labelW := width - lipgloss.Width(cli.FormatDate(tx.Date)) - lipgloss.Width(amount) - 2
		lines[i] = dateStyle.Render(cli.FormatDate(tx.Date)) + space +
			textStyle.Render(padRight(truncStr(label, labelW), labelW)) + space +
			lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(amount)
	}
	return strings.Join(lines, "\n")
}

func pluralAccounts(n int) string {
	switch n {
	case 0:
		return ""
	case 1:
		return "1 account"
	}
	return cli.FormatNumber(int64(n)) + " accounts"
}

func padRight(s string, w int) string {
	gap := w - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
