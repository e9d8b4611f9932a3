package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/theirongolddev/paisa/internal/model"
	"github.com/theirongolddev/paisa/internal/tui/components"
	"github.com/theirongolddev/paisa/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type formKind int

const (
	formAuth formKind = iota + 1
	formAccount
	formTransaction
	formBudget
	formDelete
)

const (
	modeLogin    = "login"
	modeRegister = "register"
)

// formValues backs the fields of the open form. The App holds it by pointer
// so huh's bound values survive the model being copied on every Update.
type formValues struct {
	kind   formKind
	target int // tab a delete applies to
	editID string

	mode     string
	email    string
	password string
	name     string

	account     model.AccountDraft
	transaction model.TransactionDraft
	budget      model.BudgetDraft
	confirm     bool
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func (a App) formWidth() int {
	w := a.width - 8
	if w > 72 {
		w = 72
	}
	if w < 40 {
		w = 40
	}
	return w
}

func (a *App) showForm(kind formKind, groups ...*huh.Group) tea.Cmd {
	a.vals.kind = kind
	a.form = huh.NewForm(groups...).
		WithWidth(a.formWidth()).
		WithShowHelp(true)
	return a.form.Init()
}

func (a *App) closeForm() {
	a.form = nil
	a.vals.password = ""
}

// openAuthForm asks for credentials. The email of a failed attempt is kept.
func (a *App) openAuthForm() tea.Cmd {
	v := a.vals
	*v = formValues{mode: modeLogin, email: v.email, name: v.name}

	return a.showForm(formAuth,
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Welcome to paisa").
				Options(
					huh.NewOption("Sign in", modeLogin),
					huh.NewOption("Create an account", modeRegister),
				).
				Value(&v.mode),
		),
		huh.NewGroup(
			huh.NewInput().Title("Email").Value(&v.email).Validate(required("email")),
			huh.NewInput().Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&v.password).
				Validate(required("password")),
		),
		huh.NewGroup(
			huh.NewInput().Title("Your name").Value(&v.name).Validate(required("name")),
		).WithHideFunc(func() bool { return v.mode != modeRegister }),
	)
}

func (a *App) openAccountForm(id string) tea.Cmd {
	v := a.vals
	*v = formValues{editID: id, account: model.AccountDraft{Type: model.AccountCurrent, Balance: "0"}}

	title := "New account"
	if id != "" {
		acct, ok := a.opts.Accounts.Find(id)
		if !ok {
			a.flash, a.flashErr = "Account no longer exists", true
			return nil
		}
		v.account = model.DraftFromAccount(acct)
		title = "Edit " + acct.Name
	}

	fields := []huh.Field{
		huh.NewInput().Title(title).Description("Name").Value(&v.account.Name).Validate(required("name")),
		huh.NewSelect[model.AccountType]().
			Title("Type").
			Options(
				huh.NewOption("Current", model.AccountCurrent),
				huh.NewOption("Savings", model.AccountSavings),
			).
			Value(&v.account.Type),
	}
	if id == "" {
		// Balances move only through transactions once the account exists.
		fields = append(fields,
			huh.NewInput().Title("Opening balance").Value(&v.account.Balance).Validate(required("balance")))
	}
	fields = append(fields, huh.NewConfirm().Title("Default account?").Value(&v.account.IsDefault))

	return a.showForm(formAccount, huh.NewGroup(fields...))
}

func (a *App) openTransactionForm(id string) tea.Cmd {
	accts := a.opts.Transactions.AccountChoices()
	if len(accts) == 0 {
		a.flash, a.flashErr = "Create an account first", true
		return nil
	}

	v := a.vals
	*v = formValues{editID: id, transaction: a.opts.Transactions.NewDraft()}
	title := "New transaction"
	if id != "" {
		tx, ok := a.opts.Transactions.Find(id)
		if !ok {
			a.flash, a.flashErr = "Transaction no longer exists", true
			return nil
		}
		v.transaction = model.DraftFromTransaction(tx)
		title = "Edit transaction"
	}

	acctOpts := make([]huh.Option[string], len(accts))
	for i, acct := range accts {
		acctOpts[i] = huh.NewOption(acct.Name, acct.ID)
	}

	return a.showForm(formTransaction,
		huh.NewGroup(
			huh.NewSelect[model.TransactionType]().
				Title(title).
				Options(
					huh.NewOption("Expense", model.Expense),
					huh.NewOption("Income", model.Income),
				).
				Value(&v.transaction.Type),
			huh.NewInput().Title("Amount").Value(&v.transaction.Amount).Validate(required("amount")),
			huh.NewInput().Title("Description").Value(&v.transaction.Description),
			huh.NewInput().Title("Date").Placeholder(model.DateLayout).Value(&v.transaction.Date),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(huh.NewOptions(model.Categories...)...).
				Value(&v.transaction.Category),
			huh.NewSelect[string]().Title("Account").Options(acctOpts...).Value(&v.transaction.AccountID),
			huh.NewConfirm().Title("Recurring?").Value(&v.transaction.IsRecurring),
		),
	)
}

func (a *App) openBudgetForm() tea.Cmd {
	v := a.vals
	*v = formValues{}
	if b := a.opts.Budget.Current(); b != nil {
		v.budget.Amount = b.Amount.String()
	}
	return a.showForm(formBudget,
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly budget").
				Description("Spending limit for the calendar month").
				Value(&v.budget.Amount).
				Validate(required("amount")),
		),
	)
}

func (a *App) openDeleteForm(tab int, id, prompt string) tea.Cmd {
	v := a.vals
	*v = formValues{target: tab, editID: id}
	return a.showForm(formDelete,
		huh.NewGroup(
			huh.NewConfirm().Title(prompt).Affirmative("Delete").Negative("Cancel").Value(&v.confirm),
		),
	)
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" && a.vals.kind != formAuth {
		a.closeForm()
		return a, nil
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		return a.submitForm()
	case huh.StateAborted:
		if a.vals.kind == formAuth {
			return a, tea.Quit
		}
		a.closeForm()
		return a, nil
	}
	return a, cmd
}

// submitForm hands the completed form to its controller.
func (a App) submitForm() (tea.Model, tea.Cmd) {
	v := *a.vals
	a.closeForm()

	switch v.kind {
	case formAuth:
		a.booting = true
		return a.run(a.authCmd(v))
	case formAccount:
		accounts := a.opts.Accounts
		if v.editID == "" {
			return a.run(a.call(components.TabAccounts, "Account created", func(ctx context.Context) error {
				return accounts.Create(ctx, v.account)
			}))
		}
		return a.run(a.call(components.TabAccounts, "Account updated", func(ctx context.Context) error {
			return accounts.Update(ctx, v.editID, v.account)
		}))
	case formTransaction:
		txs := a.opts.Transactions
		if v.editID == "" {
			return a.run(a.call(components.TabTransactions, "Transaction added", func(ctx context.Context) error {
				return txs.Create(ctx, v.transaction)
			}))
		}
		return a.run(a.call(components.TabTransactions, "Transaction updated", func(ctx context.Context) error {
			return txs.Update(ctx, v.editID, v.transaction)
		}))
	case formBudget:
		budget := a.opts.Budget
		return a.run(a.call(components.TabBudget, "Budget saved", func(ctx context.Context) error {
			return budget.Save(ctx, v.budget)
		}))
	case formDelete:
		if !v.confirm {
			return a, nil
		}
		return a.run(a.deleteCmd(v.target, v.editID))
	}
	return a, nil
}

func (a App) deleteCmd(tab int, id string) tea.Cmd {
	switch tab {
	case components.TabAccounts:
		return a.call(tab, "Account deleted", func(ctx context.Context) error {
			return a.opts.Accounts.Delete(ctx, id)
		})
	case components.TabTransactions:
		return a.call(tab, "Transaction deleted", func(ctx context.Context) error {
			return a.opts.Transactions.Delete(ctx, id)
		})
	case components.TabBudget:
		return a.call(tab, "Budget removed", a.opts.Budget.Delete)
	}
	return nil
}

func (a App) authCmd(v formValues) tea.Cmd {
	sess, parent, timeout := a.sess, a.ctx, a.opts.Timeout
	email := strings.TrimSpace(v.email)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		if v.mode == modeRegister {
			return authMsg{register: true, err: sess.Register(ctx, email, v.password, strings.TrimSpace(v.name))}
		}
		_, err := sess.Login(ctx, email, v.password)
		return authMsg{err: err}
	}
}

// viewForm centers the open form on a card, with the last flash message
// above it.
func (a App) viewForm() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)

	body := a.form.View()
	if a.flash != "" {
		color := t.TextMuted
		if a.flashErr {
			color = t.Red
		}
		body = lipgloss.NewStyle().Foreground(color).Render(a.flash) + "\n\n" + body
	}
	if a.vals.kind != formAuth {
		body += "\n" + lipgloss.NewStyle().Foreground(t.TextDim).Render("esc to cancel")
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}
