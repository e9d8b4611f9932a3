package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/paisa/internal/cli"
	"github.com/theirongolddev/paisa/internal/model"
	"github.com/theirongolddev/paisa/internal/session"

	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Read-only view of every user's data (admins only)",
	Args:  cobra.NoArgs,
	RunE:  runAdminUsers,
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List all users",
	Args:  cobra.NoArgs,
	RunE:  runAdminUsers,
}

var adminAccountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List all accounts with their owners",
	Args:  cobra.NoArgs,
	RunE:  runAdminAccounts,
}

var adminTransactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "List all transactions with their owners",
	Args:  cobra.NoArgs,
	RunE:  runAdminTransactions,
}

func init() {
	adminCmd.AddCommand(adminUsersCmd, adminAccountsCmd, adminTransactionsCmd)
	rootCmd.AddCommand(adminCmd)
}

// openAdmin checks the role locally before any request is sent, then loads
// the admin collections.
func openAdmin(ctx context.Context) (*app, error) {
	a, err := openApp(ctx)
	if err != nil {
		return nil, err
	}
	if err := session.NewGuard(a.sess).Require(model.RoleAdmin); err != nil {
		a.Close()
		return nil, userError(err)
	}
	if err := a.admin.Refresh(ctx); err != nil {
		a.Close()
		return nil, userError(err)
	}
	return a, nil
}

func runAdminUsers(cmd *cobra.Command, _ []string) error {
	a, err := openAdmin(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	users := a.admin.Users()
	rows := make([][]string, len(users))
	for i, u := range users {
		rows[i] = []string{u.Email, u.Name, string(u.Role), cli.FormatDate(u.CreatedAt)}
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    fmt.Sprintf("Users (%d)", len(users)),
		Headers:  []string{"Email", "Name", "Role", "Joined"},
		Rows:     rows,
		LeftCols: 4,
	}))
	fmt.Println()
	return nil
}

func runAdminAccounts(cmd *cobra.Command, _ []string) error {
	a, err := openAdmin(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	accts := a.admin.Accounts()
	if len(accts) == 0 {
		fmt.Println("\n  No accounts.")
		return nil
	}
	rows := make([][]string, len(accts))
	for i, acct := range accts {
		rows[i] = []string{
			acct.UserEmail,
			acct.Name,
			accountTypeName(acct.Type),
			cli.FormatBool(acct.IsDefault),
			cli.FormatMoney(acct.Balance),
		}
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    fmt.Sprintf("Accounts (%d)", len(accts)),
		Headers:  []string{"Owner", "Account", "Type", "Default", "Balance"},
		Rows:     rows,
		LeftCols: 4,
	}))
	fmt.Println()
	return nil
}

func runAdminTransactions(cmd *cobra.Command, _ []string) error {
	a, err := openAdmin(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	txs := a.admin.Transactions()
	if len(txs) == 0 {
		fmt.Println("\n  No transactions.")
		return nil
	}
	rows := make([][]string, len(txs))
	for i, tx := range txs {
		rows[i] = []string{
			cli.FormatDate(tx.Date),
			tx.UserEmail,
			tx.Category,
			cli.Truncate(tx.Description, 28),
			cli.RenderAmount(tx.Transaction),
		}
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    fmt.Sprintf("Transactions (%d)", len(txs)),
		Headers:  []string{"Date", "Owner", "Category", "Description", "Amount"},
		Rows:     rows,
		LeftCols: 4,
	}))
	fmt.Println()
	return nil
}
