package controller

import (
	"context"
	"strings"

	"github.com/theirongolddev/paisa/internal/model"
)

// AccountsAPI is the slice of the gateway the accounts controller uses.
type AccountsAPI interface {
	ListAccounts(ctx context.Context) ([]model.Account, error)
	CreateAccount(ctx context.Context, a model.Account) (model.Account, error)
	UpdateAccount(ctx context.Context, id string, a model.Account) (model.Account, error)
	DeleteAccount(ctx context.Context, id string) error
}

// Accounts manages the current user's accounts.
type Accounts struct {
	List[model.Account]
	api  AccountsAPI
	opts Options
}

// NewAccounts returns an Idle accounts controller.
func NewAccounts(gw AccountsAPI, opts Options) *Accounts {
	return &Accounts{api: gw, opts: opts}
}

// Refresh re-lists accounts from the server.
func (c *Accounts) Refresh(ctx context.Context) error {
	return c.load(ctx, c.api.ListAccounts)
}

// Create validates d, creates the account and re-lists.
func (c *Accounts) Create(ctx context.Context, d model.AccountDraft) error {
	a, err := c.fromDraft(d)
	if err != nil {
		c.fail(err)
		return err
	}
	if _, err := c.api.CreateAccount(ctx, a); err != nil {
		c.opts.logger().WarnContext(ctx, "create account failed", "error", err)
		c.fail(err)
		return err
	}
	return c.Refresh(ctx)
}

// Update validates d, replaces account id and re-lists.
func (c *Accounts) Update(ctx context.Context, id string, d model.AccountDraft) error {
	if strings.TrimSpace(id) == "" {
		err := invalid("id", "required")
		c.fail(err)
		return err
	}
	a, err := c.fromDraft(d)
	if err != nil {
		c.fail(err)
		return err
	}
	if _, err := c.api.UpdateAccount(ctx, id, a); err != nil {
		c.opts.logger().WarnContext(ctx, "update account failed", "id", id, "error", err)
		c.fail(err)
		return err
	}
	return c.Refresh(ctx)
}

// Delete removes account id and re-lists.
func (c *Accounts) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		err := invalid("id", "required")
		c.fail(err)
		return err
	}
	if err := c.api.DeleteAccount(ctx, id); err != nil {
		c.opts.logger().WarnContext(ctx, "delete account failed", "id", id, "error", err)
		c.fail(err)
		return err
	}
	return c.Refresh(ctx)
}

// Find returns the listed account with the given id.
func (c *Accounts) Find(id string) (model.Account, bool) {
	for _, a := range c.Items() {
		if a.ID == id {
			return a, true
		}
	}
	return model.Account{}, false
}

func (c *Accounts) fromDraft(d model.AccountDraft) (model.Account, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return model.Account{}, invalid("name", "required")
	}
	typ := model.AccountType(strings.ToUpper(strings.TrimSpace(string(d.Type))))
	if typ == "" {
		typ = model.AccountCurrent
	}
	if !typ.Valid() {
		return model.Account{}, invalid("type", "must be CURRENT or SAVINGS")
	}
	balance, err := c.opts.parseAmount("balance", d.Balance, false)
	if err != nil {
		return model.Account{}, err
	}
	return model.Account{Name: name, Type: typ, Balance: balance, IsDefault: d.IsDefault}, nil
}
