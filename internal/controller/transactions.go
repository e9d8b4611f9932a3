package controller

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/paisa/internal/model"
)

// TransactionsAPI is the slice of the gateway the transactions controller uses.
type TransactionsAPI interface {
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	CreateTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, t model.Transaction) (model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	ListAccounts(ctx context.Context) ([]model.Account, error)
}

// Transactions manages the current user's transactions together with the
// accounts a new transaction can be booked against.
type Transactions struct {
	List[model.Transaction]
	accounts []model.Account
	api      TransactionsAPI
	opts     Options
}

// NewTransactions returns an Idle transactions controller.
func NewTransactions(gw TransactionsAPI, opts Options) *Transactions {
	return &Transactions{api: gw, opts: opts}
}

// Refresh fetches transactions and accounts in parallel and commits both at once.
func (c *Transactions) Refresh(ctx context.Context) error {
	gen := c.begin()

	var (
		txs   []model.Transaction
		accts []model.Account
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = c.api.ListTransactions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		accts, err = c.api.ListAccounts(gctx)
		return err
	})
	err := g.Wait()

	applied := c.finish(ctx, gen, txs, err, func() {
		if accts == nil {
			accts = []model.Account{}
		}
		c.accounts = accts
	})
	if !applied {
		return ctx.Err()
	}
	return err
}

// Reset drops the transactions and the account choices.
func (c *Transactions) Reset() {
	c.reset(func() { c.accounts = nil })
}

// AccountChoices returns the accounts loaded by the last Refresh.
func (c *Transactions) AccountChoices() []model.Account {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// NewDraft returns a blank expense dated today on the first account.
func (c *Transactions) NewDraft() model.TransactionDraft {
	d := model.TransactionDraft{
		Type: model.Expense,
		Date: c.opts.now().Format(model.DateLayout),
	}
	if accts := c.AccountChoices(); len(accts) > 0 {
		d.AccountID = accts[0].ID
	}
	return d
}

// Create validates d, records the transaction and re-lists.
func (c *Transactions) Create(ctx context.Context, d model.TransactionDraft) error {
	t, err := c.fromDraft(d)
	if err != nil {
		c.fail(err)
		return err
	}
	if _, err := c.api.CreateTransaction(ctx, t); err != nil {
		c.opts.logger().WarnContext(ctx, "create transaction failed", "error", err)
		c.fail(err)
		return err
	}
	return c.Refresh(ctx)
}

// Update validates d, replaces transaction id and re-lists.
func (c *Transactions) Update(ctx context.Context, id string, d model.TransactionDraft) error {
	if strings.TrimSpace(id) == "" {
		err := invalid("id", "required")
		c.fail(err)
		return err
	}
	t, err := c.fromDraft(d)
	if err != nil {
		c.fail(err)
		return err
	}
	if _, err := c.api.UpdateTransaction(ctx, id, t); err != nil {
		c.opts.logger().WarnContext(ctx, "update transaction failed", "id", id, "error", err)
		c.fail(err)
		return err
	}
	return c.Refresh(ctx)
}

// Delete removes transaction id and re-lists.
func (c *Transactions) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		err := invalid("id", "required")
		c.fail(err)
		return err
	}
	if err := c.api.DeleteTransaction(ctx, id); err != nil {
		c.opts.logger().WarnContext(ctx, "delete transaction failed", "id", id, "error", err)
		c.fail(err)
		return err
	}
	return c.Refresh(ctx)
}

// Find returns the listed transaction with the given id.
func (c *Transactions) Find(id string) (model.Transaction, bool) {
	for _, t := range c.Items() {
		if t.ID == id {
			return t, true
		}
	}
	return model.Transaction{}, false
}

func (c *Transactions) fromDraft(d model.TransactionDraft) (model.Transaction, error) {
	typ := model.TransactionType(strings.ToUpper(strings.TrimSpace(string(d.Type))))
	if !typ.Valid() {
		return model.Transaction{}, invalid("type", "must be INCOME or EXPENSE")
	}
	amount, err := c.opts.parseAmount("amount", d.Amount, true)
	if err != nil {
		return model.Transaction{}, err
	}
	if strings.TrimSpace(d.Category) == "" {
		return model.Transaction{}, invalid("category", "required")
	}
	if strings.TrimSpace(d.AccountID) == "" {
		return model.Transaction{}, invalid("account", "required")
	}

	var date model.Timestamp
	if raw := strings.TrimSpace(d.Date); raw == "" {
		date = model.NewTimestamp(truncateDay(c.opts.now()))
	} else {
		parsed, err := time.Parse(model.DateLayout, raw)
		if err != nil {
			return model.Transaction{}, invalid("date", "must be YYYY-MM-DD")
		}
		date = model.NewTimestamp(parsed)
	}

	return model.Transaction{
		Type:        typ,
		Amount:      amount,
		Description: strings.TrimSpace(d.Description),
		Date:        date,
		Category:    strings.TrimSpace(d.Category),
		AccountID:   strings.TrimSpace(d.AccountID),
		IsRecurring: d.IsRecurring,
	}, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
