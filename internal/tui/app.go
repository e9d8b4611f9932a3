// Package tui provides the interactive Bubble Tea client for paisa.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/theirongolddev/paisa/internal/api"
	"github.com/theirongolddev/paisa/internal/controller"
	"github.com/theirongolddev/paisa/internal/model"
	"github.com/theirongolddev/paisa/internal/session"
	"github.com/theirongolddev/paisa/internal/tui/components"
	"github.com/theirongolddev/paisa/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Options wires the app to a session and its controllers.
type Options struct {
	Session         *session.Store
	Accounts        *controller.Accounts
	Transactions    *controller.Transactions
	Budget          *controller.Budget
	Dashboard       *controller.Dashboard
	Recommendations *controller.Recommendations
	Admin           *controller.Admin

	Logger *slog.Logger
	// RecentLimit is how many recent transactions the dashboard lists.
	RecentLimit int
	Theme       string
	// Timeout bounds each request started from the UI.
	Timeout time.Duration
}

// resultMsg reports a finished controller call. verb is empty for plain
// refreshes and otherwise names the mutation for the status bar.
type resultMsg struct {
	tab  int
	verb string
	err  error
}

// authMsg reports a finished login or registration.
type authMsg struct {
	register bool
	err      error
}

// App is the root Bubble Tea model.
type App struct {
	ctx  context.Context
	opts Options
	sess *session.Store
	log  *slog.Logger

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	booting   bool

	// Per-tab list cursors and the admin sub-view.
	cursors   [6]int
	adminView int

	// Open form, if any. vals is shared with the form's bound fields.
	form *huh.Form
	vals *formValues

	// Status bar
	flash    string
	flashErr bool

	spinner spinner.Model
	pending int
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5

	defaultTimeout     = 15 * time.Second
	defaultRecentLimit = 5
)

// NewApp builds the app. ctx bounds every request it starts.
func NewApp(ctx context.Context, opts Options) App {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = defaultRecentLimit
	}
	if opts.Theme != "" {
		theme.SetActive(opts.Theme)
	}
	controller.FollowSession(opts.Session, opts.Accounts, opts.Transactions, opts.Budget,
		opts.Dashboard, opts.Recommendations, opts.Admin)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	a := App{
		ctx:     ctx,
		opts:    opts,
		sess:    opts.Session,
		log:     opts.Logger,
		spinner: sp,
		vals:    &formValues{},
	}
	// Bubble Tea drops model changes made in Init, so the first screen is
	// decided here.
	if a.sess.Authenticated() {
		a.booting = true
		a.pending = 1
	} else {
		a.openAuthForm()
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.form != nil {
		return a.form.Init()
	}
	return tea.Batch(a.refreshCmd(components.TabDashboard), a.spinner.Tick)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth())
		}
		return a, nil

	case spinner.TickMsg:
		if a.pending == 0 {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case authMsg:
		return a.handleAuth(msg)

	case resultMsg:
		return a.handleResult(msg)

	case tea.MouseMsg:
		if a.form != nil || a.showHelp {
			return a, nil
		}
		return a.handleMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.form != nil {
			return a.updateForm(msg)
		}
		if a.booting {
			return a, nil
		}
		return a.handleKey(msg)
	}

	// Forward unhandled messages to the form (cursor blinks, field focus).
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		a.flash = ""
		return a.run(a.refreshCmd(a.activeTab))
	case "L":
		a.sess.Logout()
		a.log.Info("signed out from tui")
		a.flash, a.flashErr = "Signed out", false
		cmd := a.openAuthForm()
		return a, cmd
	case "left", "shift+tab":
		return a.switchTab(a.stepTab(-1))
	case "right", "tab":
		return a.switchTab(a.stepTab(1))
	case "up", "k":
		a.moveCursor(-1)
		return a, nil
	case "down", "j":
		a.moveCursor(1)
		return a, nil
	case "home":
		a.cursors[a.activeTab] = 0
		return a, nil
	case "end":
		a.moveCursor(1 << 20)
		return a, nil
	}

	if m, cmd, ok := a.handleTabKey(key); ok {
		return m, cmd
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 && !a.hiddenTabs()[idx] {
			return a.switchTab(idx)
		}
	}
	return a, nil
}

// handleTabKey dispatches the action keys of the active tab.
func (a App) handleTabKey(key string) (tea.Model, tea.Cmd, bool) {
	var cmd tea.Cmd
	switch a.activeTab {
	case components.TabAccounts:
		switch key {
		case "n":
			cmd = a.openAccountForm("")
		case "e", "enter":
			acct, ok := a.selectedAccount()
			if !ok {
				return a, nil, true
			}
			cmd = a.openAccountForm(acct.ID)
		case "x":
			acct, ok := a.selectedAccount()
			if !ok {
				return a, nil, true
			}
			cmd = a.openDeleteForm(components.TabAccounts, acct.ID,
				fmt.Sprintf("Delete account %q and its transactions?", acct.Name))
		default:
			return a, nil, false
		}
	case components.TabTransactions:
		switch key {
		case "n":
			cmd = a.openTransactionForm("")
		case "e", "enter":
			tx, ok := a.selectedTransaction()
			if !ok {
				return a, nil, true
			}
			cmd = a.openTransactionForm(tx.ID)
		case "x":
			tx, ok := a.selectedTransaction()
			if !ok {
				return a, nil, true
			}
			cmd = a.openDeleteForm(components.TabTransactions, tx.ID,
				fmt.Sprintf("Delete %s of %s?", strings.ToLower(string(tx.Type)), tx.Amount.StringFixed(2)))
		default:
			return a, nil, false
		}
	case components.TabBudget:
		switch key {
		case "e", "n", "enter":
			cmd = a.openBudgetForm()
		case "x":
			if a.opts.Budget.Current() == nil {
				return a, nil, true
			}
			cmd = a.openDeleteForm(components.TabBudget, "", "Remove the monthly budget?")
		default:
			return a, nil, false
		}
	case components.TabInsights:
		if key != "g" && key != "enter" {
			return a, nil, false
		}
		m, cmd := a.run(a.call(components.TabInsights, "", a.opts.Recommendations.Generate))
		return m, cmd, true
	case components.TabAdmin:
		switch key {
		case "1", "2", "3":
			a.adminView = int(key[0] - '1')
			a.cursors[components.TabAdmin] = 0
			return a, nil, true
		}
		return a, nil, false
	default:
		return a, nil, false
	}
	return a, cmd, true
}

func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.moveCursor(-1)
	case tea.MouseButtonWheelDown:
		a.moveCursor(1)
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				return a.switchTab(tab)
			}
		}
	}
	return a, nil
}

func (a App) handleAuth(msg authMsg) (tea.Model, tea.Cmd) {
	a.pending--
	if msg.err != nil {
		a.booting = false
		a.flash, a.flashErr = errorText(msg.err), true
		cmd := a.openAuthForm()
		return a, cmd
	}

	a.vals.password = ""
	a.flash, a.flashErr = "Welcome, "+a.displayName(), false
	if msg.register {
		a.flash = "Account created. " + a.flash
	}
	a.activeTab = components.TabDashboard
	a.cursors = [6]int{}
	a.booting = true
	return a.run(a.refreshCmd(components.TabDashboard))
}

func (a App) handleResult(msg resultMsg) (tea.Model, tea.Cmd) {
	a.pending--
	if msg.tab == components.TabDashboard {
		a.booting = false
	}

	if !a.sess.Authenticated() {
		// The admin controller ends the session when the server rejects the role.
		a.booting = false
		a.flash, a.flashErr = "Session ended, please sign in again", true
		cmd := a.openAuthForm()
		return a, cmd
	}

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return a, nil
		}
		a.flash, a.flashErr = errorText(msg.err), true
		return a, nil
	}

	a.clampCursor(msg.tab)
	if msg.verb == "" {
		return a, nil
	}

	// Balances and the summary move with every write.
	a.flash, a.flashErr = msg.verb, false
	cmds := []tea.Cmd{a.refreshCmd(components.TabDashboard)}
	if msg.tab == components.TabTransactions {
		cmds = append(cmds, a.refreshCmd(components.TabAccounts))
	}
	return a.run(cmds...)
}

// run counts the given requests as pending and starts the spinner when it
// was idle.
func (a App) run(cmds ...tea.Cmd) (App, tea.Cmd) {
	n := 0
	for _, c := range cmds {
		if c != nil {
			n++
		}
	}
	if n == 0 {
		return a, nil
	}
	if a.pending == 0 {
		cmds = append(cmds, a.spinner.Tick)
	}
	a.pending += n
	return a, tea.Batch(cmds...)
}

// call runs fn against a request-scoped context and reports the outcome.
func (a App) call(tab int, verb string, fn func(context.Context) error) tea.Cmd {
	parent, timeout := a.ctx, a.opts.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		return resultMsg{tab: tab, verb: verb, err: fn(ctx)}
	}
}

// refreshCmd re-lists the data behind tab. It returns one command; the
// budget tab reads both the budget and the summary that carries spending.
func (a App) refreshCmd(tab int) tea.Cmd {
	switch tab {
	case components.TabDashboard:
		return a.call(tab, "", a.opts.Dashboard.Refresh)
	case components.TabAccounts:
		return a.call(tab, "", a.opts.Accounts.Refresh)
	case components.TabTransactions:
		return a.call(tab, "", a.opts.Transactions.Refresh)
	case components.TabBudget:
		budget, dash := a.opts.Budget, a.opts.Dashboard
		return a.call(tab, "", func(ctx context.Context) error {
			if err := budget.Refresh(ctx); err != nil {
				return err
			}
			return dash.Refresh(ctx)
		})
	case components.TabInsights:
		// Advice is generated on demand only.
		return nil
	case components.TabAdmin:
		return a.call(tab, "", a.opts.Admin.Refresh)
	}
	return nil
}

func (a App) switchTab(idx int) (tea.Model, tea.Cmd) {
	if idx == a.activeTab {
		return a, nil
	}
	a.activeTab = idx
	if a.tabState(idx) == controller.Idle {
		return a.run(a.refreshCmd(idx))
	}
	return a, nil
}

// stepTab returns the next visible tab in direction dir.
func (a App) stepTab(dir int) int {
	hidden := a.hiddenTabs()
	n := len(components.Tabs)
	idx := a.activeTab
	for range n {
		idx = (idx + dir + n) % n
		if !hidden[idx] {
			return idx
		}
	}
	return a.activeTab
}

func (a App) hiddenTabs() map[int]bool {
	if a.sess.HasRole(model.RoleAdmin) {
		return nil
	}
	return map[int]bool{components.TabAdmin: true}
}

func (a App) tabState(tab int) controller.State {
	switch tab {
	case components.TabDashboard:
		return a.opts.Dashboard.State()
	case components.TabAccounts:
		return a.opts.Accounts.State()
	case components.TabTransactions:
		return a.opts.Transactions.State()
	case components.TabBudget:
		return a.opts.Budget.State()
	case components.TabInsights:
		return a.opts.Recommendations.State()
	case components.TabAdmin:
		return a.opts.Admin.State()
	}
	return controller.Idle
}

func (a App) rowCount(tab int) int {
	switch tab {
	case components.TabAccounts:
		return a.opts.Accounts.Len()
	case components.TabTransactions:
		return a.opts.Transactions.Len()
	case components.TabAdmin:
		switch a.adminView {
		case adminAccounts:
			return len(a.opts.Admin.Accounts())
		case adminTransactions:
			return len(a.opts.Admin.Transactions())
		}
		return a.opts.Admin.Len()
	}
	return 0
}

func (a *App) moveCursor(delta int) {
	a.cursors[a.activeTab] += delta
	a.clampCursor(a.activeTab)
}

func (a *App) clampCursor(tab int) {
	n := a.rowCount(tab)
	c := a.cursors[tab]
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	a.cursors[tab] = c
}

func (a App) selectedAccount() (model.Account, bool) {
	items := a.opts.Accounts.Items()
	c := a.cursors[components.TabAccounts]
	if c < 0 || c >= len(items) {
		return model.Account{}, false
	}
	return items[c], true
}

func (a App) selectedTransaction() (model.Transaction, bool) {
	items := a.opts.Transactions.Items()
	c := a.cursors[components.TabTransactions]
	if c < 0 || c >= len(items) {
		return model.Transaction{}, false
	}
	return items[c], true
}

func (a App) displayName() string {
	snap := a.sess.Snapshot()
	if snap.User == nil {
		return ""
	}
	if snap.User.Name != "" {
		return snap.User.Name
	}
	return snap.User.Email
}

func (a App) identity() string {
	snap := a.sess.Snapshot()
	if snap.User == nil {
		return ""
	}
	return fmt.Sprintf("%s · %s", snap.User.Email, strings.ToLower(snap.User.Role.String()))
}

// errorText turns a controller or session error into a status line.
func errorText(err error) string {
	var ve *controller.ValidationError
	switch {
	case errors.As(err, &ve):
		return strings.ToUpper(ve.Error()[:1]) + ve.Error()[1:]
	case errors.Is(err, session.ErrForbidden):
		return "Admin access required"
	case errors.Is(err, session.ErrRoleUnknown):
		return "Role unknown, press L and sign in again"
	case errors.Is(err, session.ErrNotAuthenticated):
		return "Not signed in"
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out"
	}
	return api.MessageOf(err, "")
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.form != nil {
		return a.viewForm()
	}

	if a.booting {
		return a.viewLoading()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  paisa needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("₹ paisa"))
	b.WriteString(subtitleStyle.Render(" · personal finance"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	if a.sess.Authenticated() {
		b.WriteString(subtitleStyle.Render(" Loading your dashboard..."))
	} else {
		b.WriteString(subtitleStyle.Render(" Signing in..."))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	section := func(b *strings.Builder, name string, binds []struct{ key, desc string }) {
		b.WriteString(sectionStyle.Render(name))
		b.WriteString("\n")
		for _, bind := range binds {
			fmt.Fprintf(b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
		b.WriteString("\n")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("₹ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	section(&b, "Navigation", []struct{ key, desc string }{
		{"d a t b i", "Jump to tab"},
		{"m", "Admin (admins only)"},
		{"← →", "Previous / Next tab"},
		{"j k", "Move in lists"},
		{"1 2 3", "Admin users / accounts / transactions"},
	})
	section(&b, "Actions", []struct{ key, desc string }{
		{"n", "New account or transaction"},
		{"e Enter", "Edit selection / set budget"},
		{"x", "Delete selection"},
		{"g", "Generate insights"},
		{"r", "Refresh tab"},
		{"L", "Sign out"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	})
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w, a.hiddenTabs())

	status := components.Status{
		Identity: a.identity(),
		Message:  a.flash,
		Error:    a.flashErr,
	}
	if a.pending > 0 {
		status.Busy = a.spinner.View()
	}
	statusBar := components.RenderStatusBar(w, status)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case components.TabDashboard:
		content = a.renderDashboardTab(cw)
	case components.TabAccounts:
		content = a.renderAccountsTab(cw, contentH)
	case components.TabTransactions:
		content = a.renderTransactionsTab(cw, contentH)
	case components.TabBudget:
		content = a.renderBudgetTab(cw)
	case components.TabInsights:
		content = a.renderInsightsTab(cw)
	case components.TabAdmin:
		content = a.renderAdminTab(cw, contentH)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// tabAtX returns the tab index at the given X coordinate of the tab bar, or
// -1 if none. Hitboxes follow the widths RenderTabBar uses.
func (a App) tabAtX(x int) int {
	hidden := a.hiddenTabs()
	pos := components.LogoWidth()
	for i, tab := range components.Tabs {
		if hidden[i] {
			continue
		}
		tabW := components.TabVisualWidth(tab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}
