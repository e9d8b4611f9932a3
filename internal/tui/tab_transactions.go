package tui

import (
	"github.com/theirongolddev/paisa/internal/cli"
	"github.com/theirongolddev/paisa/internal/model"
	"github.com/theirongolddev/paisa/internal/tui/components"
	"github.com/theirongolddev/paisa/internal/tui/theme"
)

func (a App) renderTransactionsTab(cw, h int) string {
	t := theme.Active
	txs := a.opts.Transactions
	items := txs.Items()

	if msg, ok := placeholder(txs.State(), txs.Err(), len(items) == 0, "No transactions yet. Press n to record one."); ok {
		return components.ContentCard("Transactions", msg+"\n\n"+hint("[n]ew"), cw)
	}

	names := make(map[string]string)
	for _, acct := range txs.AccountChoices() {
		names[acct.ID] = acct.Name
	}

	rows := make([][]cell, len(items))
	for i, tx := range items {
		color := t.Income()
		if tx.Type == model.Expense {
			color = t.Expense()
		}
		account := tx.AccountName
		if account == "" {
			account = names[tx.AccountID]
		}
		recurring := ""
		if tx.IsRecurring {
			recurring = "↻"
		}
		rows[i] = []cell{
			plain(cli.FormatDate(tx.Date)),
			plain(tx.Description),
			plain(tx.Category),
			plain(account),
			{text: recurring, color: t.Cyan},
			{text: cli.FormatSigned(tx), color: color},
		}
	}

	cols := []column{
		{title: "Date", width: 12},
		{title: "Description"},
		{title: "Category", width: 13},
		{title: "Account", width: 14},
		{title: "", width: 1},
		{title: "Amount", width: 16, right: true},
	}

	innerW := components.CardInnerWidth(cw)
	listH := max(h-6, 3)
	body := renderList(cols, rows, a.cursors[components.TabTransactions], innerW, listH) +
		"\n\n" + hint("[n]ew  [e]dit  [x] delete  [j/k] move")

	return components.ContentCard("Transactions", body, cw)
}
