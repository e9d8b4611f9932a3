package controller

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/paisa/internal/api"
	"github.com/theirongolddev/paisa/internal/model"
	"github.com/theirongolddev/paisa/internal/session"
)

// AdminAPI is the slice of the gateway the admin panel uses.
type AdminAPI interface {
	AdminUsers(ctx context.Context) ([]model.AdminUser, error)
	AdminAccounts(ctx context.Context) ([]model.AdminAccount, error)
	AdminTransactions(ctx context.Context) ([]model.AdminTransaction, error)
}

// Admin is the read-only, role-gated view over every user's data. The list
// holds users; accounts and transactions load in the same transition.
type Admin struct {
	List[model.AdminUser]
	accounts     []model.AdminAccount
	transactions []model.AdminTransaction

	api   AdminAPI
	sess  *session.Store
	guard session.Guard
	opts  Options
}

// NewAdmin returns an Idle admin controller gated on sess.
func NewAdmin(gw AdminAPI, sess *session.Store, opts Options) *Admin {
	return &Admin{api: gw, sess: sess, guard: session.NewGuard(sess), opts: opts}
}

// Refresh loads the three collections in parallel. Without the admin role
// no request is sent. An authorization failure from the server ends the
// session.
func (c *Admin) Refresh(ctx context.Context) error {
	if err := c.guard.Require(model.RoleAdmin); err != nil {
		c.revoke(err)
		return err
	}

	gen := c.begin()
	var (
		users []model.AdminUser
		accts []model.AdminAccount
		txs   []model.AdminTransaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = c.api.AdminUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		accts, err = c.api.AdminAccounts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = c.api.AdminTransactions(gctx)
		return err
	})
	err := g.Wait()

	if api.IsAuth(err) {
		c.opts.logger().WarnContext(ctx, "admin access rejected, ending session", "error", err)
		c.sess.Logout()
		c.revoke(err)
		return err
	}

	applied := c.finish(ctx, gen, users, err, func() {
		if accts == nil {
			accts = []model.AdminAccount{}
		}
		if txs == nil {
			txs = []model.AdminTransaction{}
		}
		c.accounts = accts
		c.transactions = txs
	})
	if !applied {
		return ctx.Err()
	}
	return err
}

// Users returns the listed users.
func (c *Admin) Users() []model.AdminUser {
	return c.Items()
}

// Accounts returns every listed account.
func (c *Admin) Accounts() []model.AdminAccount {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.AdminAccount, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// Transactions returns every listed transaction.
func (c *Admin) Transactions() []model.AdminTransaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.AdminTransaction, len(c.transactions))
	copy(out, c.transactions)
	return out
}

// Reset drops all three collections and returns to Idle.
func (c *Admin) Reset() {
	c.reset(func() {
		c.accounts = nil
		c.transactions = nil
	})
}

// revoke drops everything held and records err. It also supersedes any
// fetch still in flight.
func (c *Admin) revoke(err error) {
	c.mu.Lock()
	c.gen++
	c.items = nil
	c.accounts = nil
	c.transactions = nil
	c.state = Errored
	c.err = err
	notify := c.onChange
	c.mu.Unlock()

	if notify != nil {
		notify()
	}
}
