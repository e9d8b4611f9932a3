package tui

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/paisa/internal/cli"
	"github.com/theirongolddev/paisa/internal/model"
	"github.com/theirongolddev/paisa/internal/tui/components"
	"github.com/theirongolddev/paisa/internal/tui/theme"
)

func (a App) renderAccountsTab(cw, h int) string {
	t := theme.Active
	accts := a.opts.Accounts
	items := accts.Items()

	if msg, ok := placeholder(accts.State(), accts.Err(), len(items) == 0, "No accounts yet. Press n to add one."); ok {
		return components.ContentCard("Accounts", msg+"\n\n"+hint("[n]ew"), cw)
	}

	total := decimal.Zero
	rows := make([][]cell, len(items))
	for i, acct := range items {
		total = total.Add(acct.Balance)
		balance := cell{text: cli.FormatMoney(acct.Balance)}
		if acct.Balance.IsNegative() {
			balance.color = t.Expense()
		}
		def := ""
		if acct.IsDefault {
			def = "★"
		}
		rows[i] = []cell{
			{text: def, color: t.Yellow},
			plain(acct.Name),
			plain(accountTypeLabel(acct.Type)),
			balance,
			plain(cli.FormatDate(acct.CreatedAt)),
		}
	}

	cols := []column{
		{title: "", width: 1},
		{title: "Name"},
		{title: "Type", width: 8},
		{title: "Balance", width: 16, right: true},
		{title: "Opened", width: 12},
	}

	innerW := components.CardInnerWidth(cw)
	listH := max(h-6, 3)
	body := renderList(cols, rows, a.cursors[components.TabAccounts], innerW, listH) +
		"\n\n" + hint("[n]ew  [e]dit  [x] delete  [j/k] move")

	title := "Accounts · " + cli.FormatMoney(total)
	return components.ContentCard(title, body, cw)
}

func accountTypeLabel(t model.AccountType) string {
	s := strings.ToLower(string(t))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
