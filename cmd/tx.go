package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/paisa/internal/cli"
	"github.com/theirongolddev/paisa/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagTxType      string
	flagTxAmount    string
	flagTxCategory  string
	flagTxAccount   string
	flagTxDate      string
	flagTxDesc      string
	flagTxRecurring bool
	flagTxLimit     int
	flagTxFilter    string
)

var txCmd = &cobra.Command{
	Use:     "tx",
	Aliases: []string{"transactions"},
	Short:   "List and manage transactions",
	Args:    cobra.NoArgs,
	RunE:    runTxList,
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, newest first",
	Args:  cobra.NoArgs,
	RunE:  runTxList,
}

var txAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an income or expense",
	Args:  cobra.NoArgs,
}

var txEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxEdit,
}

var txRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a transaction",
	Args:    cobra.ExactArgs(1),
	RunE:    runTxRm,
}

func init() {
	// Wired here because applyTxFlags refers to txAddCmd (initialization cycle).
	txAddCmd.RunE = runTxAdd
	for _, c := range []*cobra.Command{txAddCmd, txEditCmd} {
		f := c.Flags()
		f.StringVar(&flagTxType, "type", string(model.Expense), "INCOME or EXPENSE")
		f.StringVarP(&flagTxAmount, "amount", "a", "", "Amount, positive")
		f.StringVarP(&flagTxCategory, "category", "c", "", "One of: "+strings.Join(model.Categories, ", "))
		f.StringVar(&flagTxAccount, "account", "", "Account id or name (default account when empty)")
		f.StringVar(&flagTxDate, "date", "", "Date as YYYY-MM-DD (today when empty)")
		f.StringVarP(&flagTxDesc, "desc", "d", "", "Description")
		f.BoolVar(&flagTxRecurring, "recurring", false, "Mark as recurring")
	}
	txListCmd.Flags().IntVarP(&flagTxLimit, "limit", "n", 0, "Show at most n transactions")
	txListCmd.Flags().StringVarP(&flagTxFilter, "category", "c", "", "Only this category")
	txCmd.Flags().AddFlagSet(txListCmd.Flags())

	txCmd.AddCommand(txListCmd, txAddCmd, txEditCmd, txRmCmd)
	rootCmd.AddCommand(txCmd)
}

// openTransactions opens the app and loads transactions with their account
// choices.
func openTransactions(ctx context.Context) (*app, error) {
	a, err := openApp(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.requireLogin(); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.transactions.Refresh(ctx); err != nil {
		a.Close()
		return nil, userError(err)
	}
	return a, nil
}

func runTxList(cmd *cobra.Command, _ []string) error {
	a, err := openTransactions(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	txs := filterTransactions(a.transactions.Items(), flagTxFilter, flagTxLimit)
	if len(txs) == 0 {
		fmt.Println("\n  No transactions found.")
		return nil
	}

	fmt.Println()
	fmt.Print(renderTransactions(txs, accountNames(a.transactions.AccountChoices())))
	fmt.Println()
	return nil
}

func filterTransactions(txs []model.Transaction, category string, limit int) []model.Transaction {
	out := txs
	if category != "" {
		out = make([]model.Transaction, 0, len(txs))
		for _, tx := range txs {
			if strings.EqualFold(tx.Category, category) {
				out = append(out, tx)
			}
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func accountNames(accts []model.Account) map[string]string {
	m := make(map[string]string, len(accts))
	for _, acct := range accts {
		m[acct.ID] = acct.Name
	}
	return m
}

func renderTransactions(txs []model.Transaction, names map[string]string) string {
	rows := make([][]string, len(txs))
	for i, tx := range txs {
		account := tx.AccountName
		if account == "" {
			account = names[tx.AccountID]
		}
		recurring := ""
		if tx.IsRecurring {
			recurring = "↻"
		}
		rows[i] = []string{
			cli.ShortID(tx.ID),
			cli.FormatDate(tx.Date),
			cli.Truncate(tx.Description, 28),
			tx.Category,
			account,
			recurring,
			cli.RenderAmount(tx),
		}
	}
	return cli.RenderTable(cli.Table{
		Title:    fmt.Sprintf("Transactions (%d)", len(txs)),
		Headers:  []string{"ID", "Date", "Description", "Category", "Account", "", "Amount"},
		Rows:     rows,
		LeftCols: 6,
	})
}

func runTxAdd(cmd *cobra.Command, _ []string) error {
	a, err := openTransactions(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if len(a.transactions.AccountChoices()) == 0 {
		return fmt.Errorf("create an account first with `paisa accounts add`")
	}

	draft := a.transactions.NewDraft()
	for _, acct := range a.transactions.AccountChoices() {
		if acct.IsDefault {
			draft.AccountID = acct.ID
		}
	}
	if err := applyTxFlags(cmd, a, &draft); err != nil {
		return err
	}
	if err := a.transactions.Create(cmd.Context(), draft); err != nil {
		return userError(err)
	}
	info("Transaction added")
	return nil
}

func runTxEdit(cmd *cobra.Command, args []string) error {
	a, err := openTransactions(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	tx, err := findTransaction(a.transactions.Items(), args[0])
	if err != nil {
		return err
	}
	draft := model.DraftFromTransaction(tx)
	if err := applyTxFlags(cmd, a, &draft); err != nil {
		return err
	}
	if err := a.transactions.Update(cmd.Context(), tx.ID, draft); err != nil {
		return userError(err)
	}
	info("Transaction updated")
	return nil
}

func runTxRm(cmd *cobra.Command, args []string) error {
	a, err := openTransactions(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	tx, err := findTransaction(a.transactions.Items(), args[0])
	if err != nil {
		return err
	}
	if err := a.transactions.Delete(cmd.Context(), tx.ID); err != nil {
		return userError(err)
	}
	info("Transaction deleted")
	return nil
}

// applyTxFlags overlays the flags the user set onto d. On add every flag
// counts, so the defaults of --type apply.
func applyTxFlags(cmd *cobra.Command, a *app, d *model.TransactionDraft) error {
	flags := cmd.Flags()
	adding := cmd == txAddCmd
	set := func(name string) bool { return adding || flags.Changed(name) }

	if set("type") {
		d.Type = model.TransactionType(strings.ToUpper(flagTxType))
	}
	if flags.Changed("amount") {
		d.Amount = flagTxAmount
	}
	if flags.Changed("category") {
		d.Category = matchCategory(flagTxCategory)
	}
	if flags.Changed("date") {
		d.Date = flagTxDate
	}
	if flags.Changed("desc") {
		d.Description = flagTxDesc
	}
	if flags.Changed("recurring") {
		d.IsRecurring = flagTxRecurring
	}
	if flags.Changed("account") {
		acct, err := findAccount(a.transactions.AccountChoices(), flagTxAccount)
		if err != nil {
			return err
		}
		d.AccountID = acct.ID
	}
	return nil
}

// matchCategory normalizes the case of a known category and leaves unknown
// names for the validator to reject.
func matchCategory(name string) string {
	for _, c := range model.Categories {
		if strings.EqualFold(c, strings.TrimSpace(name)) {
			return c
		}
	}
	return name
}

func findTransaction(txs []model.Transaction, ref string) (model.Transaction, error) {
	ids := make([]string, len(txs))
	for i, tx := range txs {
		ids[i] = tx.ID
	}
	i, err := resolveRef("transaction", ref, ids, nil)
	if err != nil {
		return model.Transaction{}, err
	}
	return txs[i], nil
}
