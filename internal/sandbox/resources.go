package sandbox

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/paisa/internal/model"
)

const statusCompleted = "COMPLETED"

// --- accounts ---

func (s *Server) userAccounts(userID string) []model.Account {
	out := make([]model.Account, 0)
	for _, a := range s.accounts {
		if a.userID == userID {
			out = append(out, a.Account)
		}
	}
	return out
}

func (s *Server) findAccount(id, userID string) *account {
	for _, a := range s.accounts {
		if a.ID == id && a.userID == userID {
			return a
		}
	}
	return nil
}

// clearDefault unsets the default flag on every account of userID but keep.
func (s *Server) clearDefault(userID string, keep *account) {
	for _, a := range s.accounts {
		if a.userID == userID && a != keep {
			a.IsDefault = false
		}
	}
}

func (s *Server) listAccounts(c *gin.Context) {
	u := currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.userAccounts(u.id))
}

func bindAccount(c *gin.Context) (model.Account, bool) {
	var in model.Account
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return in, false
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		fail(c, http.StatusBadRequest, "Account name is required")
		return in, false
	}
	if !in.Type.Valid() {
		fail(c, http.StatusBadRequest, "Account type must be CURRENT or SAVINGS")
		return in, false
	}
	return in, true
}

func (s *Server) createAccount(c *gin.Context) {
	in, ok := bindAccount(c)
	if !ok {
		return
	}
	u := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := model.NewTimestamp(s.now())
	a := &account{
		Account: model.Account{
			ID:        uuid.NewString(),
			Name:      in.Name,
			Type:      in.Type,
			Balance:   in.Balance,
			IsDefault: in.IsDefault,
			CreatedAt: now,
			UpdatedAt: now,
		},
		userID: u.id,
	}
	s.accounts = append(s.accounts, a)
	if a.IsDefault {
		s.clearDefault(u.id, a)
	}
	c.JSON(http.StatusOK, a.Account)
}

// updateAccount changes name, type and the default flag. The balance is
// owned by the transactions booked against the account and is not editable.
func (s *Server) updateAccount(c *gin.Context) {
	in, ok := bindAccount(c)
	if !ok {
		return
	}
	u := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.findAccount(c.Param("id"), u.id)
	if a == nil {
		fail(c, http.StatusNotFound, "Account not found")
		return
	}
	a.Name = in.Name
	a.Type = in.Type
	if in.IsDefault && !a.IsDefault {
		s.clearDefault(u.id, a)
		a.IsDefault = true
	}
	a.UpdatedAt = model.NewTimestamp(s.now())
	c.JSON(http.StatusOK, a.Account)
}

func (s *Server) deleteAccount(c *gin.Context) {
	u := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.findAccount(c.Param("id"), u.id)
	if a == nil {
		fail(c, http.StatusNotFound, "Account not found")
		return
	}
	s.accounts = slices.DeleteFunc(s.accounts, func(x *account) bool { return x == a })
	s.transactions = slices.DeleteFunc(s.transactions, func(t *transaction) bool { return t.AccountID == a.ID })
	c.Status(http.StatusNoContent)
}

// --- transactions ---

func (s *Server) userTransactions(userID string) []model.Transaction {
	out := make([]model.Transaction, 0)
	for _, t := range s.sortedTransactions() {
		if t.userID == userID {
			out = append(out, t.Transaction)
		}
	}
	return out
}

// sortedTransactions returns every transaction, newest date first.
func (s *Server) sortedTransactions() []*transaction {
	out := slices.Clone(s.transactions)
	slices.SortStableFunc(out, func(a, b *transaction) int {
		return b.Date.Compare(a.Date.Time)
	})
	return out
}

func (s *Server) findTransaction(id, userID string) *transaction {
	for _, t := range s.transactions {
		if t.ID == id && t.userID == userID {
			return t
		}
	}
	return nil
}

// applyBalance books t on a (sign 1) or reverses it (sign -1).
func applyBalance(a *account, typ model.TransactionType, amount decimal.Decimal, sign int64) {
	delta := amount.Mul(decimal.NewFromInt(sign))
	if typ == model.Expense {
		delta = delta.Neg()
	}
	a.Balance = a.Balance.Add(delta)
}

func (s *Server) listTransactions(c *gin.Context) {
	u := currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.userTransactions(u.id))
}

func bindTransaction(c *gin.Context) (model.Transaction, bool) {
	var in model.Transaction
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return in, false
	}
	if !in.Type.Valid() {
		fail(c, http.StatusBadRequest, "Transaction type must be INCOME or EXPENSE")
		return in, false
	}
	if strings.TrimSpace(in.Category) == "" {
		fail(c, http.StatusBadRequest, "Category is required")
		return in, false
	}
	if in.Amount.IsNegative() {
		fail(c, http.StatusBadRequest, "Amount must not be negative")
		return in, false
	}
	return in, true
}

func (s *Server) createTransaction(c *gin.Context) {
	in, ok := bindTransaction(c)
	if !ok {
		return
	}
	u := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.findAccount(in.AccountID, u.id)
	if a == nil {
		fail(c, http.StatusNotFound, "Account not found")
		return
	}
	now := s.now()
	if in.Date.IsZero() {
		in.Date = model.NewTimestamp(now)
	}
	t := &transaction{
		Transaction: model.Transaction{
			ID:                uuid.NewString(),
			Type:              in.Type,
			Amount:            in.Amount,
			Description:       in.Description,
			Date:              in.Date,
			Category:          in.Category,
			AccountID:         a.ID,
			AccountName:       a.Name,
			IsRecurring:       in.IsRecurring,
			RecurringInterval: in.RecurringInterval,
			Status:            statusCompleted,
			CreatedAt:         model.NewTimestamp(now),
		},
		userID: u.id,
	}
	s.transactions = append(s.transactions, t)
	applyBalance(a, t.Type, t.Amount, 1)
	c.JSON(http.StatusOK, t.Transaction)
}

func (s *Server) updateTransaction(c *gin.Context) {
	in, ok := bindTransaction(c)
	if !ok {
		return
	}
	u := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTransaction(c.Param("id"), u.id)
	if t == nil {
		fail(c, http.StatusNotFound, "Transaction not found")
		return
	}
	target := s.findAccount(in.AccountID, u.id)
	if target == nil {
		fail(c, http.StatusNotFound, "Account not found")
		return
	}

	if old := s.findAccount(t.AccountID, u.id); old != nil {
		applyBalance(old, t.Type, t.Amount, -1)
	}
	t.Type = in.Type
	t.Amount = in.Amount
	t.Description = in.Description
	if !in.Date.IsZero() {
		t.Date = in.Date
	}
	t.Category = in.Category
	t.AccountID = target.ID
	t.AccountName = target.Name
	t.IsRecurring = in.IsRecurring
	t.RecurringInterval = in.RecurringInterval
	applyBalance(target, t.Type, t.Amount, 1)

	c.JSON(http.StatusOK, t.Transaction)
}

func (s *Server) deleteTransaction(c *gin.Context) {
	u := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTransaction(c.Param("id"), u.id)
	if t == nil {
		fail(c, http.StatusNotFound, "Transaction not found")
		return
	}
	if a := s.findAccount(t.AccountID, u.id); a != nil {
		applyBalance(a, t.Type, t.Amount, -1)
	}
	s.transactions = slices.DeleteFunc(s.transactions, func(x *transaction) bool { return x == t })
	c.Status(http.StatusNoContent)
}

// --- budget ---

func (s *Server) getBudget(c *gin.Context) {
	u := currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.budgets[u.id]
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (s *Server) saveBudget(c *gin.Context) {
	var in model.Budget
	if err := c.ShouldBindJSON(&in); err != nil || !in.Amount.IsPositive() {
		c.Status(http.StatusBadRequest)
		return
	}
	u := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.budgets[u.id]
	if !ok {
		b.ID = uuid.NewString()
	}
	b.Amount = in.Amount
	s.budgets[u.id] = b
	c.JSON(http.StatusOK, b)
}

func (s *Server) deleteBudget(c *gin.Context) {
	u := currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.budgets[u.id]; !ok {
		c.Status(http.StatusNotFound)
		return
	}
	delete(s.budgets, u.id)
	c.Status(http.StatusNoContent)
}
