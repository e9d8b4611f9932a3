package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/paisa/internal/cli"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Balances, this month's cash flow and recent activity",
	Args:    cobra.NoArgs,
	RunE:    runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireLogin(); err != nil {
		return err
	}
	return showDashboard(cmd.Context(), a)
}

func showDashboard(ctx context.Context, a *app) error {
	if err := a.dashboard.Refresh(ctx); err != nil {
		return userError(err)
	}
	sum := a.dashboard.Summary()
	if sum == nil {
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("PAISA  " + strings.ToUpper(time.Now().Format("January 2006"))))
	fmt.Println()

	net := sum.MonthlyIncome.Sub(sum.MonthlyExpense)
	rows := [][]string{
		{"Total balance", cli.FormatMoney(sum.TotalBalance)},
		{"---"},
		{"Income this month", cli.FormatMoney(sum.MonthlyIncome)},
		{"Expenses this month", cli.FormatMoney(sum.MonthlyExpense)},
		{"Net", cli.FormatMoney(net)},
	}
	if sum.BudgetAmount != nil {
		rows = append(rows,
			[]string{"---"},
			[]string{"Budget", cli.FormatMoneyPtr(sum.BudgetAmount)},
			[]string{"Budget used", cli.FormatPercent(a.dashboard.BudgetUsage())},
		)
	}
	fmt.Print(cli.RenderTable(cli.Table{Title: "Overview", Rows: rows}))

	if sum.BudgetAmount != nil {
		spent := decimal.Zero
		if sum.BudgetSpent != nil {
			spent = *sum.BudgetSpent
		}
		fmt.Println()
		fmt.Println("  " + cli.RenderBudgetBar(spent, *sum.BudgetAmount, 30))
	}

	series := a.dashboard.Categories()
	if len(series) > 0 {
		bars := make([]cli.Bar, len(series))
		for i, s := range series {
			bars[i] = cli.Bar{Label: s.Label, Value: s.Value}
		}
		fmt.Println()
		fmt.Println("  " + cli.RenderMuted("Spending by category"))
		fmt.Print(cli.RenderBars(bars, 30))
	}

	recent := a.dashboard.Recent(a.cfg.Client.RecentLimit)
	if len(recent) > 0 {
		fmt.Println()
		fmt.Print(renderTransactions(recent, accountNames(sum.Accounts)))
	} else {
		fmt.Println()
		fmt.Println("  " + cli.RenderMuted("No transactions yet."))
	}
	fmt.Println()
	return nil
}
