package tui

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/theirongolddev/paisa/internal/api"
	"github.com/theirongolddev/paisa/internal/controller"
	"github.com/theirongolddev/paisa/internal/model"
	"github.com/theirongolddev/paisa/internal/sandbox"
	"github.com/theirongolddev/paisa/internal/session"
	"github.com/theirongolddev/paisa/internal/store"
	"github.com/theirongolddev/paisa/internal/tui/components"
)

func newTestOptions(t *testing.T) Options {
	t.Helper()
	srv := sandbox.New(sandbox.WithBcryptCost(bcrypt.MinCost))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	sess, client := session.Connect(ts.URL+"/api", store.NewMemoryStore(), nil, api.WithTimeout(5*time.Second))
	copts := controller.Options{}
	return Options{
		Session:         sess,
		Accounts:        controller.NewAccounts(client, copts),
		Transactions:    controller.NewTransactions(client, copts),
		Budget:          controller.NewBudget(client, copts),
		Dashboard:       controller.NewDashboard(client, copts),
		Recommendations: controller.NewRecommendations(client, copts),
		Admin:           controller.NewAdmin(client, sess, copts),
		Timeout:         5 * time.Second,
	}
}

// drain runs cmd and feeds back the request results it produces. Spinner
// ticks and form housekeeping are dropped so the loop ends.
func drain(t *testing.T, a App, cmd tea.Cmd) App {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100, "command loop did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case resultMsg, authMsg:
			m, next := a.Update(msg)
			a = m.(App)
			if a.form == nil {
				queue = append(queue, next)
			}
		}
	}
	return a
}

func sized(a App) App {
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App)
}

func key(a App, k string) (App, tea.Cmd) {
	var msg tea.KeyMsg
	switch k {
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

func TestNewAppSignedOutShowsAuthForm(t *testing.T) {
	opts := newTestOptions(t)
	a := sized(NewApp(context.Background(), opts))

	require.NotNil(t, a.form)
	assert.Equal(t, formAuth, a.vals.kind)
	assert.False(t, a.booting)
}

func TestLoginFlowLoadsDashboard(t *testing.T) {
	opts := newTestOptions(t)
	require.NoError(t, opts.Session.Register(context.Background(), "user@example.com", "secret", "User"))
	opts.Session.Logout()

	a := sized(NewApp(context.Background(), opts))
	a.vals.mode, a.vals.email, a.vals.password = modeLogin, "user@example.com", "secret"

	m, cmd := a.submitForm()
	a = drain(t, m.(App), cmd)

	assert.True(t, opts.Session.Authenticated())
	assert.False(t, a.booting)
	assert.Nil(t, a.form)
	assert.Empty(t, a.vals.password)
	assert.Equal(t, controller.Loaded, opts.Dashboard.State())
	assert.Contains(t, a.View(), "Total balance")
}

func TestLoginFailureReopensForm(t *testing.T) {
	opts := newTestOptions(t)
	a := sized(NewApp(context.Background(), opts))
	a.vals.mode, a.vals.email, a.vals.password = modeLogin, "nobody@example.com", "wrong"

	m, cmd := a.submitForm()
	a = drain(t, m.(App), cmd)

	assert.False(t, opts.Session.Authenticated())
	require.NotNil(t, a.form)
	assert.Equal(t, "nobody@example.com", a.vals.email)
	assert.True(t, a.flashErr)
	assert.Equal(t, "Invalid email or password", a.flash)
}

func TestRegisterFlowSignsIn(t *testing.T) {
	opts := newTestOptions(t)
	a := sized(NewApp(context.Background(), opts))
	a.vals.mode, a.vals.email, a.vals.password, a.vals.name = modeRegister, "new@example.com", "secret", "New"

	m, cmd := a.submitForm()
	a = drain(t, m.(App), cmd)

	require.True(t, opts.Session.Authenticated())
	assert.True(t, strings.HasPrefix(a.flash, "Account created"))
}

func signedIn(t *testing.T) (App, Options) {
	t.Helper()
	opts := newTestOptions(t)
	require.NoError(t, opts.Session.Register(context.Background(), "user@example.com", "secret", "User"))
	a := sized(NewApp(context.Background(), opts))
	require.True(t, a.booting)
	a = drain(t, a, a.Init())
	require.False(t, a.booting)
	return a, opts
}

func TestAccountAndTransactionForms(t *testing.T) {
	a, opts := signedIn(t)

	a, cmd := key(a, "a")
	a = drain(t, a, cmd)
	assert.Equal(t, components.TabAccounts, a.activeTab)
	assert.Contains(t, a.View(), "No accounts yet")

	a, _ = key(a, "n")
	require.NotNil(t, a.form)
	require.Equal(t, formAccount, a.vals.kind)
	a.vals.account = model.AccountDraft{Name: "Wallet", Type: model.AccountCurrent, Balance: "1000"}
	m, cmd := a.submitForm()
	a = drain(t, m.(App), cmd)

	require.Equal(t, 1, opts.Accounts.Len())
	assert.Equal(t, "Account created", a.flash)
	assert.Contains(t, a.View(), "Wallet")

	a, cmd = key(a, "t")
	a = drain(t, a, cmd)
	a, _ = key(a, "n")
	require.NotNil(t, a.form)
	require.Equal(t, formTransaction, a.vals.kind)
	assert.Equal(t, opts.Accounts.Items()[0].ID, a.vals.transaction.AccountID)

	a.vals.transaction.Amount = "250"
	a.vals.transaction.Category = "Food"
	a.vals.transaction.Description = "Groceries"
	m, cmd = a.submitForm()
	a = drain(t, m.(App), cmd)

	require.Equal(t, 1, opts.Transactions.Len())
	assert.Equal(t, "Transaction added", a.flash)
	// Writes refresh the accounts so balances follow.
	assert.Equal(t, "750", opts.Accounts.Items()[0].Balance.String())
}

func TestValidationErrorShownInStatus(t *testing.T) {
	a, opts := signedIn(t)
	a.activeTab = components.TabAccounts

	a, _ = key(a, "n")
	a.vals.account = model.AccountDraft{Name: "  ", Balance: "0"}
	m, cmd := a.submitForm()
	a = drain(t, m.(App), cmd)

	assert.True(t, a.flashErr)
	assert.Equal(t, "Invalid name: required", a.flash)
	assert.Equal(t, 0, opts.Accounts.Len())
}

func TestTransactionFormNeedsAccount(t *testing.T) {
	a, _ := signedIn(t)
	a.activeTab = components.TabTransactions

	a, _ = key(a, "n")
	assert.Nil(t, a.form)
	assert.Equal(t, "Create an account first", a.flash)
}

func TestBudgetFormAndDelete(t *testing.T) {
	a, opts := signedIn(t)

	a, cmd := key(a, "b")
	a = drain(t, a, cmd)
	assert.Contains(t, a.View(), "not set a monthly budget")

	a, _ = key(a, "e")
	require.Equal(t, formBudget, a.vals.kind)
	a.vals.budget.Amount = "5000"
	m, cmd := a.submitForm()
	a = drain(t, m.(App), cmd)
	require.NotNil(t, opts.Budget.Current())
	assert.Contains(t, a.View(), "Remaining")

	a, _ = key(a, "x")
	require.Equal(t, formDelete, a.vals.kind)
	a.vals.confirm = true
	m, cmd = a.submitForm()
	a = drain(t, m.(App), cmd)
	assert.Nil(t, opts.Budget.Current())
	assert.Equal(t, "Budget removed", a.flash)
}

func TestDeclinedDeleteSendsNothing(t *testing.T) {
	a, _ := signedIn(t)
	a.activeTab = components.TabBudget
	a.vals = &formValues{kind: formDelete, target: components.TabBudget}

	m, cmd := a.submitForm()
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.(App).pending)
}

func TestAdminTabHiddenForRegularUsers(t *testing.T) {
	a, _ := signedIn(t)

	a, cmd := key(a, "m")
	assert.Nil(t, cmd)
	assert.Equal(t, components.TabDashboard, a.activeTab)
	assert.NotContains(t, a.View(), "Admin")

	// Cycling left from the first tab skips the hidden admin tab.
	a, _ = key(a, "left")
	assert.Equal(t, components.TabInsights, a.activeTab)
}

func TestAdminTabForAdmins(t *testing.T) {
	opts := newTestOptions(t)
	_, err := opts.Session.Login(context.Background(), sandbox.AdminEmail, sandbox.AdminPassword)
	require.NoError(t, err)
	a := sized(NewApp(context.Background(), opts))
	a = drain(t, a, a.Init())

	a, cmd := key(a, "m")
	a = drain(t, a, cmd)
	require.Equal(t, components.TabAdmin, a.activeTab)
	assert.Equal(t, controller.Loaded, opts.Admin.State())
	assert.Contains(t, a.View(), sandbox.AdminEmail)

	a, _ = key(a, "2")
	assert.Equal(t, adminAccounts, a.adminView)
}

func TestInsightsGenerateOnDemand(t *testing.T) {
	a, opts := signedIn(t)

	a, cmd := key(a, "i")
	assert.Nil(t, cmd, "insights must not load on tab switch")
	assert.Equal(t, controller.Idle, opts.Recommendations.State())

	a, cmd = key(a, "g")
	a = drain(t, a, cmd)
	require.NotNil(t, opts.Recommendations.Result())
	assert.Contains(t, a.View(), "Recommendations")
}

func TestLogoutKeyReturnsToAuthForm(t *testing.T) {
	a, opts := signedIn(t)

	a, _ = key(a, "L")
	assert.False(t, opts.Session.Authenticated())
	require.NotNil(t, a.form)
	assert.Equal(t, formAuth, a.vals.kind)
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "Admin access required", errorText(session.ErrForbidden))
	assert.Equal(t, "Request timed out", errorText(context.DeadlineExceeded))
	assert.Equal(t, "Invalid amount: required", errorText(&controller.ValidationError{Field: "amount", Reason: "required"}))
}

func TestNextUserNeverSeesPreviousUsersAccounts(t *testing.T) {
	a, opts := signedIn(t)
	ctx := context.Background()
	require.NoError(t, opts.Accounts.Create(ctx, model.AccountDraft{
		Name: "AliceSecret", Type: model.AccountSavings, Balance: "999",
	}))

	a, cmd := key(a, "a")
	a = drain(t, a, cmd)
	require.Contains(t, a.View(), "AliceSecret")
	a, cmd = key(a, "t")
	a = drain(t, a, cmd)
	require.Len(t, opts.Transactions.AccountChoices(), 1)

	a, _ = key(a, "L")
	assert.Zero(t, opts.Accounts.Len())
	assert.Empty(t, opts.Transactions.AccountChoices())

	a.vals.mode, a.vals.email, a.vals.password, a.vals.name = modeRegister, "bob@example.com", "secret", "Bob"
	m, cmd := a.submitForm()
	a = drain(t, m.(App), cmd)
	require.True(t, opts.Session.Authenticated())

	a, cmd = key(a, "a")
	a = drain(t, a, cmd)
	assert.Equal(t, components.TabAccounts, a.activeTab)
	assert.Equal(t, controller.Loaded, opts.Accounts.State())
	assert.Zero(t, opts.Accounts.Len())
	assert.NotContains(t, a.View(), "AliceSecret")
	assert.Contains(t, a.View(), "No accounts yet")
}
