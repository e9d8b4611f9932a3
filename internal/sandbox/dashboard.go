package sandbox

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/paisa/internal/model"
)

const recentLimit = 10

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// between reports whether ts falls in [from, to]. Wire dates carry no zone,
// so the comparison is done on wall-clock fields.
func between(ts model.Timestamp, from, to time.Time) bool {
	wall := time.Date(ts.Year(), ts.Month(), ts.Day(), ts.Hour(), ts.Minute(), ts.Second(), 0, from.Location())
	return !wall.Before(from) && !wall.After(to)
}

func (s *Server) dashboard(c *gin.Context) {
	u := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := s.userAccounts(u.id)
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}

	now := s.now()
	from := startOfMonth(now)
	income, expense := decimal.Zero, decimal.Zero
	byCategory := make(map[string]decimal.Decimal)

	all := s.userTransactions(u.id)
	for _, t := range all {
		if !between(t.Date, from, now) {
			continue
		}
		switch t.Type {
		case model.Income:
			income = income.Add(t.Amount)
		case model.Expense:
			expense = expense.Add(t.Amount)
			byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
		}
	}

	recent := all
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	summary := model.DashboardSummary{
		TotalBalance:       total,
		MonthlyIncome:      income,
		MonthlyExpense:     expense,
		ExpensesByCategory: byCategory,
		RecentTransactions: recent,
		Accounts:           accounts,
	}
	if b, ok := s.budgets[u.id]; ok {
		amount, spent := b.Amount, expense
		summary.BudgetAmount = &amount
		summary.BudgetSpent = &spent
	}
	c.JSON(http.StatusOK, summary)
}

var defaultRecommendations = model.Recommendations{
	Summary: "Start tracking your finances to get personalized recommendations",
	Recommendations: []string{
		"Track your expenses regularly to identify spending patterns",
		"Set up a monthly budget and stick to it",
		"Review your subscriptions and cancel unused services",
		"Build an emergency fund covering 3-6 months of expenses",
	},
}

// recommendations returns canned advice shaped by the last three months of
// the user's spending. The real backend asks a language model instead.
func (s *Server) recommendations(c *gin.Context) {
	u := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	from := now.AddDate(0, -3, 0)
	income, expense := decimal.Zero, decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	n := 0
	for _, t := range s.userTransactions(u.id) {
		if !between(t.Date, from, now) {
			continue
		}
		n++
		if t.Type == model.Income {
			income = income.Add(t.Amount)
			continue
		}
		expense = expense.Add(t.Amount)
		byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
	}
	if n == 0 {
		c.JSON(http.StatusOK, defaultRecommendations)
		return
	}

	cats := make([]string, 0, len(byCategory))
	for k := range byCategory {
		cats = append(cats, k)
	}
	sort.Slice(cats, func(i, j int) bool {
		if d := byCategory[cats[i]].Cmp(byCategory[cats[j]]); d != 0 {
			return d > 0
		}
		return cats[i] < cats[j]
	})

	out := model.Recommendations{
		Summary: fmt.Sprintf("Over the last three months you earned %s and spent %s across %d categories.",
			income.StringFixed(2), expense.StringFixed(2), len(cats)),
	}
	if len(cats) > 0 {
		top := cats[0]
		out.Recommendations = append(out.Recommendations,
			fmt.Sprintf("%s is your largest expense at %s; look for ways to trim it.", top, byCategory[top].StringFixed(2)))
	}
	if expense.GreaterThan(income) {
		out.Recommendations = append(out.Recommendations,
			"You are spending more than you earn; pause non-essential purchases until that reverses.")
	} else if income.IsPositive() {
		rate := income.Sub(expense).Div(income).Mul(decimal.NewFromInt(100)).Round(0)
		out.Recommendations = append(out.Recommendations,
			fmt.Sprintf("You are saving about %s%% of your income; automate a transfer to savings to keep it up.", rate))
	}
	if _, ok := s.budgets[u.id]; !ok {
		out.Recommendations = append(out.Recommendations, "Set a monthly budget so overspending is flagged early.")
	}
	out.Recommendations = append(out.Recommendations, defaultRecommendations.Recommendations[2])
	c.JSON(http.StatusOK, out)
}

// --- admin ---

func (s *Server) adminUsers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.AdminUser, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, model.AdminUser{
			ID:        u.id,
			Email:     u.email,
			Name:      u.name,
			Role:      u.role,
			CreatedAt: model.NewTimestamp(u.createdAt),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	c.JSON(http.StatusOK, out)
}

func (s *Server) emailOf(userID string) string {
	for _, u := range s.users {
		if u.id == userID {
			return u.email
		}
	}
	return ""
}

func (s *Server) adminAccounts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.AdminAccount, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, model.AdminAccount{
			ID:        a.ID,
			Name:      a.Name,
			Type:      a.Type,
			Balance:   a.Balance,
			IsDefault: a.IsDefault,
			UserID:    a.userID,
			UserEmail: s.emailOf(a.userID),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) adminTransactions(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.AdminTransaction, 0, len(s.transactions))
	for _, t := range s.sortedTransactions() {
		out = append(out, model.AdminTransaction{
			Transaction: t.Transaction,
			UserID:      t.userID,
			UserEmail:   s.emailOf(t.userID),
		})
	}
	c.JSON(http.StatusOK, out)
}
