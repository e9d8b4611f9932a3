package cmd

import (
	"fmt"

	"github.com/theirongolddev/paisa/internal/cli"
	"github.com/theirongolddev/paisa/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show or change the monthly budget",
	Args:  cobra.NoArgs,
	RunE:  runBudgetShow,
}

var budgetShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the budget and this month's spending",
	Args:  cobra.NoArgs,
	RunE:  runBudgetShow,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <amount>",
	Short: "Create or replace the monthly budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetSet,
}

var budgetRmCmd = &cobra.Command{
	Use:     "rm",
	Aliases: []string{"delete"},
	Short:   "Remove the monthly budget",
	Args:    cobra.NoArgs,
	RunE:    runBudgetRm,
}

func init() {
	budgetCmd.AddCommand(budgetShowCmd, budgetSetCmd, budgetRmCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetShow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireLogin(); err != nil {
		return err
	}

	var g errgroup.Group
	g.Go(func() error { return a.budget.Refresh(ctx) })
	g.Go(func() error { return a.dashboard.Refresh(ctx) })
	if err := g.Wait(); err != nil {
		return userError(err)
	}

	current := a.budget.Current()
	if current == nil {
		fmt.Println("\n  You have not set a monthly budget.")
		fmt.Println("  Set one with `paisa budget set 20000`.")
		return nil
	}

	spent := decimal.Zero
	if sum := a.dashboard.Summary(); sum != nil && sum.BudgetSpent != nil {
		spent = *sum.BudgetSpent
	}

	fmt.Println()
	fmt.Print(renderBudget(*current, spent))
	fmt.Println()
	return nil
}

func renderBudget(b model.Budget, spent decimal.Decimal) string {
	rows := [][]string{
		{"Monthly budget", cli.FormatMoney(b.Amount)},
		{"Spent this month", cli.FormatMoney(spent)},
		{"Remaining", cli.FormatMoney(b.Amount.Sub(spent))},
	}
	if !b.LastAlertSent.IsZero() {
		rows = append(rows, []string{"Last alert", cli.FormatDate(b.LastAlertSent)})
	}

	out := cli.RenderTable(cli.Table{Title: "Budget", Rows: rows})
	out += "\n  " + cli.RenderBudgetBar(spent, b.Amount, 30) + "\n"
	if b.Amount.IsPositive() && spent.GreaterThanOrEqual(b.Amount) {
		out += "  " + cli.RenderWarning("Over budget") + "\n"
	}
	return out
}

func runBudgetSet(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireLogin(); err != nil {
		return err
	}

	if err := a.budget.Save(cmd.Context(), model.BudgetDraft{Amount: args[0]}); err != nil {
		return userError(err)
	}
	if b := a.budget.Current(); b != nil {
		info("Monthly budget set to %s", cli.FormatMoney(b.Amount))
	}
	return nil
}

func runBudgetRm(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireLogin(); err != nil {
		return err
	}

	if err := a.budget.Delete(cmd.Context()); err != nil {
		return userError(err)
	}
	info("Budget removed")
	return nil
}
