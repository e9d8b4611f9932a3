package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/paisa/internal/cli"
	"github.com/theirongolddev/paisa/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagAcctName    string
	flagAcctType    string
	flagAcctBalance string
	flagAcctDefault bool
)

var accountsCmd = &cobra.Command{
	Use:     "accounts",
	Aliases: []string{"account", "acct"},
	Short:   "List and manage accounts",
	Args:    cobra.NoArgs,
	RunE:    runAccountsList,
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts with balances",
	Args:  cobra.NoArgs,
	RunE:  runAccountsList,
}

var accountsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE:  runAccountsAdd,
}

var accountsEditCmd = &cobra.Command{
	Use:   "edit <id|name>",
	Short: "Change an account's name, type or default flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountsEdit,
}

var accountsRmCmd = &cobra.Command{
	Use:     "rm <id|name>",
	Aliases: []string{"delete"},
	Short:   "Delete an account and its transactions",
	Args:    cobra.ExactArgs(1),
	RunE:    runAccountsRm,
}

func init() {
	accountsAddCmd.Flags().StringVar(&flagAcctName, "name", "", "Account name")
	accountsAddCmd.Flags().StringVar(&flagAcctType, "type", string(model.AccountCurrent), "CURRENT or SAVINGS")
	accountsAddCmd.Flags().StringVar(&flagAcctBalance, "balance", "0", "Opening balance")
	accountsAddCmd.Flags().BoolVar(&flagAcctDefault, "default", false, "Make this the default account")

	accountsEditCmd.Flags().StringVar(&flagAcctName, "name", "", "New name")
	accountsEditCmd.Flags().StringVar(&flagAcctType, "type", "", "CURRENT or SAVINGS")
	accountsEditCmd.Flags().BoolVar(&flagAcctDefault, "default", false, "Make this the default account")

	accountsCmd.AddCommand(accountsListCmd, accountsAddCmd, accountsEditCmd, accountsRmCmd)
	rootCmd.AddCommand(accountsCmd)
}

// openAccounts opens the app and loads the account list.
func openAccounts(ctx context.Context) (*app, error) {
	a, err := openApp(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.requireLogin(); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.accounts.Refresh(ctx); err != nil {
		a.Close()
		return nil, userError(err)
	}
	return a, nil
}

func runAccountsList(cmd *cobra.Command, _ []string) error {
	a, err := openAccounts(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	accts := a.accounts.Items()
	if len(accts) == 0 {
		fmt.Println("\n  No accounts yet. Add one with `paisa accounts add --name Wallet`.")
		return nil
	}

	fmt.Println()
	fmt.Print(renderAccounts(accts))
	fmt.Println()
	return nil
}

func renderAccounts(accts []model.Account) string {
	rows := make([][]string, 0, len(accts)+2)
	total := decimal.Zero
	for _, acct := range accts {
		total = total.Add(acct.Balance)
		marker := ""
		if acct.IsDefault {
			marker = "★"
		}
		rows = append(rows, []string{
			cli.ShortID(acct.ID),
			acct.Name,
			marker,
			accountTypeName(acct.Type),
			cli.FormatMoney(acct.Balance),
		})
	}
	rows = append(rows, []string{"---"}, []string{"", "Total", "", "", cli.FormatMoney(total)})

	return cli.RenderTable(cli.Table{
		Title:    fmt.Sprintf("Accounts (%d)", len(accts)),
		Headers:  []string{"ID", "Name", "", "Type", "Balance"},
		Rows:     rows,
		LeftCols: 4,
	})
}

func accountTypeName(t model.AccountType) string {
	if t == "" {
		return ""
	}
	s := strings.ToLower(string(t))
	return strings.ToUpper(s[:1]) + s[1:]
}

func runAccountsAdd(cmd *cobra.Command, _ []string) error {
	a, err := openAccounts(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	draft := model.AccountDraft{
		Name:      flagAcctName,
		Type:      model.AccountType(strings.ToUpper(flagAcctType)),
		Balance:   flagAcctBalance,
		IsDefault: flagAcctDefault,
	}
	if err := a.accounts.Create(cmd.Context(), draft); err != nil {
		return userError(err)
	}
	info("Account %q created", strings.TrimSpace(flagAcctName))
	return nil
}

func runAccountsEdit(cmd *cobra.Command, args []string) error {
	a, err := openAccounts(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	acct, err := findAccount(a.accounts.Items(), args[0])
	if err != nil {
		return err
	}

	draft := model.DraftFromAccount(acct)
	flags := cmd.Flags()
	if flags.Changed("name") {
		draft.Name = flagAcctName
	}
	if flags.Changed("type") {
		draft.Type = model.AccountType(strings.ToUpper(flagAcctType))
	}
	if flags.Changed("default") {
		draft.IsDefault = flagAcctDefault
	}

	if err := a.accounts.Update(cmd.Context(), acct.ID, draft); err != nil {
		return userError(err)
	}
	info("Account %q updated", strings.TrimSpace(draft.Name))
	return nil
}

func runAccountsRm(cmd *cobra.Command, args []string) error {
	a, err := openAccounts(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	acct, err := findAccount(a.accounts.Items(), args[0])
	if err != nil {
		return err
	}
	if err := a.accounts.Delete(cmd.Context(), acct.ID); err != nil {
		return userError(err)
	}
	info("Account %q deleted", acct.Name)
	return nil
}

// findAccount matches ref against account ids, id prefixes and names.
func findAccount(accts []model.Account, ref string) (model.Account, error) {
	ids := make([]string, len(accts))
	names := make([]string, len(accts))
	for i, acct := range accts {
		ids[i], names[i] = acct.ID, acct.Name
	}
	i, err := resolveRef("account", ref, ids, names)
	if err != nil {
		return model.Account{}, err
	}
	return accts[i], nil
}

// resolveRef returns the index of the single entry whose id equals ref,
// starts with ref, or whose name equals ref case-insensitively.
func resolveRef(kind, ref string, ids, names []string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, fmt.Errorf("no %s given", kind)
	}

	for i, id := range ids {
		if id == ref {
			return i, nil
		}
	}

	match := -1
	for i := range ids {
		byName := names != nil && strings.EqualFold(names[i], ref)
		if strings.HasPrefix(ids[i], ref) || byName {
			if match >= 0 && match != i {
				return -1, fmt.Errorf("%q matches more than one %s", ref, kind)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("no %s matches %q", kind, ref)
	}
	return match, nil
}
