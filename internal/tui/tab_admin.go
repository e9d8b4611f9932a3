package tui

import (
	"strings"

	"github.com/theirongolddev/paisa/internal/cli"
	"github.com/theirongolddev/paisa/internal/model"
	"github.com/theirongolddev/paisa/internal/session"
	"github.com/theirongolddev/paisa/internal/tui/components"
	"github.com/theirongolddev/paisa/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const (
	adminUsers = iota
	adminAccounts
	adminTransactions
)

var adminViewNames = []string{"Users", "Accounts", "Transactions"}

func (a App) renderAdminTab(cw, h int) string {
	t := theme.Active

	if err := session.NewGuard(a.sess).Require(model.RoleAdmin); err != nil {
		return components.ContentCard("Admin",
			lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Render(errorText(err)), cw)
	}

	admin := a.opts.Admin
	if msg, ok := placeholder(admin.State(), admin.Err(), admin.Len() == 0, "No users"); ok {
		return components.ContentCard("Admin", msg, cw)
	}

	var cols []column
	var rows [][]cell
	switch a.adminView {
	case adminAccounts:
		cols, rows = adminAccountRows(admin.Accounts())
	case adminTransactions:
		cols, rows = adminTransactionRows(admin.Transactions())
	default:
		cols, rows = adminUserRows(admin.Users())
	}

	innerW := components.CardInnerWidth(cw)
	body := a.adminSwitcher() + "\n\n" +
		renderList(cols, rows, a.cursors[components.TabAdmin], innerW, max(h-8, 3)) +
		"\n\n" + hint("[1] users  [2] accounts  [3] transactions  read only")
	return components.ContentCard("Admin", body, cw)
}

func (a App) adminSwitcher() string {
	t := theme.Active
	on := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.AccentDim).Bold(true).Padding(0, 1)
	off := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 1)

	admin := a.opts.Admin
	counts := []int{admin.Len(), len(admin.Accounts()), len(admin.Transactions())}

	parts := make([]string, len(adminViewNames))
	for i, name := range adminViewNames {
		label := name + " " + cli.FormatNumber(int64(counts[i]))
		if i == a.adminView {
			parts[i] = on.Render(label)
		} else {
			parts[i] = off.Render(label)
		}
	}
	return strings.Join(parts, " ")
}

func adminUserRows(users []model.AdminUser) ([]column, [][]cell) {
	t := theme.Active
	rows := make([][]cell, len(users))
	for i, u := range users {
		role := plain(string(u.Role))
		if u.Role == model.RoleAdmin {
			role.color = t.Magenta
		}
		rows[i] = []cell{plain(u.Email), plain(u.Name), role, plain(cli.FormatDate(u.CreatedAt))}
	}
	return []column{
		{title: "Email"},
		{title: "Name", width: 20},
		{title: "Role", width: 6},
		{title: "Joined", width: 12},
	}, rows
}

func adminAccountRows(accts []model.AdminAccount) ([]column, [][]cell) {
	rows := make([][]cell, len(accts))
	for i, acct := range accts {
		rows[i] = []cell{
			plain(acct.UserEmail),
			plain(acct.Name),
			plain(accountTypeLabel(acct.Type)),
			plain(cli.FormatMoney(acct.Balance)),
			plain(cli.FormatBool(acct.IsDefault)),
		}
	}
	return []column{
		{title: "Owner"},
		{title: "Account", width: 18},
		{title: "Type", width: 8},
		{title: "Balance", width: 16, right: true},
		{title: "Default", width: 7},
	}, rows
}

func adminTransactionRows(txs []model.AdminTransaction) ([]column, [][]cell) {
	t := theme.Active
	rows := make([][]cell, len(txs))
	for i, tx := range txs {
		color := t.Income()
		if tx.Type == model.Expense {
			color = t.Expense()
		}
		rows[i] = []cell{
			plain(cli.FormatDate(tx.Date)),
			plain(tx.UserEmail),
			plain(tx.Category),
			plain(tx.Description),
			{text: cli.FormatSigned(tx.Transaction), color: color},
		}
	}
	return []column{
		{title: "Date", width: 12},
		{title: "Owner", width: 24},
		{title: "Category", width: 13},
		{title: "Description"},
		{title: "Amount", width: 16, right: true},
	}, rows
}
