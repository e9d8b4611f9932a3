package api

import (
	"context"
	"net/url"

	"github.com/theirongolddev/paisa/internal/model"
)

// Login exchanges credentials for a token and identity.
func (c *Client) Login(ctx context.Context, email, password string) (model.AuthResponse, error) {
	var resp model.AuthResponse
	err := c.Post(ctx, "/auth/login", model.Credentials{Email: email, Password: password}, &resp)
	return resp, err
}

// Register creates a user and returns its token and identity.
func (c *Client) Register(ctx context.Context, email, password, name string) (model.AuthResponse, error) {
	var resp model.AuthResponse
	err := c.Post(ctx, "/auth/register", model.Credentials{Email: email, Password: password, Name: name}, &resp)
	return resp, err
}

// ListAccounts returns the current user's accounts.
func (c *Client) ListAccounts(ctx context.Context) ([]model.Account, error) {
	var out []model.Account
	if err := c.Get(ctx, "/accounts", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAccount creates an account.
func (c *Client) CreateAccount(ctx context.Context, a model.Account) (model.Account, error) {
	var out model.Account
	err := c.Post(ctx, "/accounts", a, &out)
	return out, err
}

// UpdateAccount replaces the account with the given id.
func (c *Client) UpdateAccount(ctx context.Context, id string, a model.Account) (model.Account, error) {
	var out model.Account
	err := c.Put(ctx, "/accounts/"+url.PathEscape(id), a, &out)
	return out, err
}

// DeleteAccount removes the account with the given id.
func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	return c.Delete(ctx, "/accounts/"+url.PathEscape(id))
}

// ListTransactions returns the current user's transactions.
func (c *Client) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	var out []model.Transaction
	if err := c.Get(ctx, "/transactions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTransaction records a transaction.
func (c *Client) CreateTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	var out model.Transaction
	err := c.Post(ctx, "/transactions", t, &out)
	return out, err
}

// UpdateTransaction replaces the transaction with the given id.
func (c *Client) UpdateTransaction(ctx context.Context, id string, t model.Transaction) (model.Transaction, error) {
	var out model.Transaction
	err := c.Put(ctx, "/transactions/"+url.PathEscape(id), t, &out)
	return out, err
}

// DeleteTransaction removes the transaction with the given id.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.Delete(ctx, "/transactions/"+url.PathEscape(id))
}

// GetBudget returns the user's budget. A missing budget is a KindNotFound error.
func (c *Client) GetBudget(ctx context.Context) (model.Budget, error) {
	var out model.Budget
	err := c.Get(ctx, "/budgets", &out)
	return out, err
}

// SaveBudget creates or replaces the user's budget.
func (c *Client) SaveBudget(ctx context.Context, b model.Budget) (model.Budget, error) {
	var out model.Budget
	err := c.Post(ctx, "/budgets", b, &out)
	return out, err
}

// DeleteBudget removes the user's budget.
func (c *Client) DeleteBudget(ctx context.Context) error {
	return c.Delete(ctx, "/budgets")
}

// Dashboard returns the server-aggregated summary.
func (c *Client) Dashboard(ctx context.Context) (model.DashboardSummary, error) {
	var out model.DashboardSummary
	err := c.Get(ctx, "/dashboard", &out)
	return out, err
}

// Recommendations asks the backend for AI spending advice.
func (c *Client) Recommendations(ctx context.Context) (model.Recommendations, error) {
	var out model.Recommendations
	err := c.Post(ctx, "/ai/recommendations", nil, &out)
	return out, err
}

// AdminUsers lists every user. Requires the admin role.
func (c *Client) AdminUsers(ctx context.Context) ([]model.AdminUser, error) {
	var out []model.AdminUser
	if err := c.Get(ctx, "/admin/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminAccounts lists every account. Requires the admin role.
func (c *Client) AdminAccounts(ctx context.Context) ([]model.AdminAccount, error) {
	var out []model.AdminAccount
	if err := c.Get(ctx, "/admin/accounts", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminTransactions lists every transaction. Requires the admin role.
func (c *Client) AdminTransactions(ctx context.Context) ([]model.AdminTransaction, error) {
	var out []model.AdminTransaction
	if err := c.Get(ctx, "/admin/transactions", &out); err != nil {
		return nil, err
	}
	return out, nil
}
