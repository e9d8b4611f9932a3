package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/paisa/internal/model"
)

func seedAccount(t *testing.T, h *harness, name, balance string) model.Account {
	t.Helper()
	a, err := h.client.CreateAccount(context.Background(), model.Account{
		Name: name, Type: model.AccountCurrent, Balance: decimal.RequireFromString(balance),
	})
	require.NoError(t, err)
	return a
}

func TestTransactionsLoadAccountsAlongside(t *testing.T) {
	h := newHarness(t)
	first := seedAccount(t, h, "Main", "0")
	seedAccount(t, h, "Second", "0")

	fixed := time.Date(2024, 5, 17, 15, 4, 0, 0, time.Local)
	c := NewTransactions(h.client, Options{Now: func() time.Time { return fixed }})
	require.NoError(t, c.Refresh(context.Background()))

	assert.Equal(t, Loaded, c.State())
	assert.Empty(t, c.Items())
	require.Len(t, c.AccountChoices(), 2)

	d := c.NewDraft()
	assert.Equal(t, first.ID, d.AccountID)
	assert.Equal(t, "2024-05-17", d.Date)
	assert.Equal(t, model.Expense, d.Type)
}

func TestTransactionCreateUpdatesBalanceAfterRefetch(t *testing.T) {
	h := newHarness(t)
	acct := seedAccount(t, h, "Main", "100")
	c := NewTransactions(h.client, Options{})
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	d := c.NewDraft()
	d.Amount = "30.25"
	d.Category = "Food"
	d.Description = "groceries"
	require.NoError(t, c.Create(ctx, d))

	items := c.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].Amount.Equal(decimal.RequireFromString("30.25")))
	assert.Equal(t, "Main", items[0].AccountName)

	choices := c.AccountChoices()
	require.Len(t, choices, 1)
	assert.Equal(t, acct.ID, choices[0].ID)
	assert.True(t, choices[0].Balance.Equal(decimal.RequireFromString("69.75")), "balance %s", choices[0].Balance)

	edit := model.DraftFromTransaction(items[0])
	edit.Type = model.Income
	require.NoError(t, c.Update(ctx, items[0].ID, edit))
	assert.True(t, c.AccountChoices()[0].Balance.Equal(decimal.RequireFromString("130.25")))

	require.NoError(t, c.Delete(ctx, items[0].ID))
	assert.Empty(t, c.Items())
	assert.True(t, c.AccountChoices()[0].Balance.Equal(decimal.RequireFromString("100")))

	fresh, err := h.client.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh, c.Items())
}

func TestTransactionUnparsableAmount(t *testing.T) {
	ctx := context.Background()

	t.Run("strict rejects", func(t *testing.T) {
		h := newHarness(t)
		seedAccount(t, h, "Main", "0")
		c := NewTransactions(h.client, Options{})
		require.NoError(t, c.Refresh(ctx))

		d := c.NewDraft()
		d.Amount = "abc"
		d.Category = "Other"
		err := c.Create(ctx, d)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "amount", verr.Field)

		fresh, err := h.client.ListTransactions(ctx)
		require.NoError(t, err)
		assert.Empty(t, fresh, "nothing was sent")
	})

	t.Run("lenient stores zero", func(t *testing.T) {
		h := newHarness(t)
		seedAccount(t, h, "Main", "0")
		c := NewTransactions(h.client, Options{LenientAmounts: true})
		require.NoError(t, c.Refresh(ctx))

		d := c.NewDraft()
		d.Amount = "abc"
		d.Category = "Other"
		require.NoError(t, c.Create(ctx, d))

		items := c.Items()
		require.Len(t, items, 1)
		assert.True(t, items[0].Amount.IsZero())
	})
}

func TestTransactionValidation(t *testing.T) {
	h := newHarness(t)
	c := NewTransactions(h.client, Options{})

	base := model.TransactionDraft{Type: model.Expense, Amount: "5", Category: "Food", AccountID: "acc", Date: "2024-01-02"}
	cases := map[string]func(d *model.TransactionDraft){
		"type":     func(d *model.TransactionDraft) { d.Type = "TRANSFER" },
		"amount":   func(d *model.TransactionDraft) { d.Amount = "-3" },
		"category": func(d *model.TransactionDraft) { d.Category = "" },
		"account":  func(d *model.TransactionDraft) { d.AccountID = "" },
		"date":     func(d *model.TransactionDraft) { d.Date = "02/01/2024" },
	}
	for field, mutate := range cases {
		d := base
		mutate(&d)
		err := c.Create(context.Background(), d)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), field)
		assert.Equal(t, field, verr.Field)
	}
}

func TestTransactionUnknownAccount(t *testing.T) {
	h := newHarness(t)
	c := NewTransactions(h.client, Options{})

	err := c.Create(context.Background(), model.TransactionDraft{
		Type: model.Income, Amount: "5", Category: "Other", AccountID: "missing",
	})
	require.Error(t, err)
	assert.Equal(t, Errored, c.State())
	assert.Empty(t, c.Items())
}
