package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/paisa/internal/api"
	"github.com/theirongolddev/paisa/internal/model"
)

func TestAccountsEmptyListIsLoaded(t *testing.T) {
	h := newHarness(t)
	c := NewAccounts(h.client, Options{})
	assert.Equal(t, Idle, c.State())

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, Loaded, c.State())
	assert.NoError(t, c.Err())
	assert.NotNil(t, c.Items())
	assert.Empty(t, c.Items())
}

func TestCreateWalletAccount(t *testing.T) {
	h := newHarness(t)
	c := NewAccounts(h.client, Options{})
	ctx := context.Background()

	require.NoError(t, c.Create(ctx, model.AccountDraft{Name: "Wallet", Type: model.AccountSavings, Balance: "100.50"}))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Wallet", items[0].Name)
	assert.Equal(t, model.AccountSavings, items[0].Type)
	assert.True(t, items[0].Balance.Equal(decimal.RequireFromString("100.50")), "balance %s", items[0].Balance)
	assert.Equal(t, Loaded, c.State())
}

func TestAccountsListMatchesFreshFetchAfterEveryMutation(t *testing.T) {
	h := newHarness(t)
	c := NewAccounts(h.client, Options{})
	ctx := context.Background()

	check := func() {
		t.Helper()
		fresh, err := h.client.ListAccounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, fresh, c.Items())
	}

	require.NoError(t, c.Create(ctx, model.AccountDraft{Name: "Main", Type: model.AccountCurrent, Balance: "10", IsDefault: true}))
	check()
	require.NoError(t, c.Create(ctx, model.AccountDraft{Name: "Rainy day", Type: model.AccountSavings, Balance: "0", IsDefault: true}))
	check()

	items := c.Items()
	require.Len(t, items, 2)
	assert.False(t, items[0].IsDefault, "new default clears the old one")

	require.NoError(t, c.Update(ctx, items[0].ID, model.AccountDraft{Name: "Main renamed", Type: model.AccountCurrent, Balance: "10"}))
	check()

	require.NoError(t, c.Delete(ctx, items[1].ID))
	check()
	require.Len(t, c.Items(), 1)
	assert.Equal(t, "Main renamed", c.Items()[0].Name)
}

func TestAccountValidation(t *testing.T) {
	h := newHarness(t)
	c := NewAccounts(h.client, Options{})
	ctx := context.Background()
	require.NoError(t, c.Create(ctx, model.AccountDraft{Name: "Keep", Balance: "1"}))

	cases := []struct {
		draft model.AccountDraft
		field string
	}{
		{model.AccountDraft{Name: "  ", Balance: "1"}, "name"},
		{model.AccountDraft{Name: "X", Type: "BROKERAGE", Balance: "1"}, "type"},
		{model.AccountDraft{Name: "X", Balance: "abc"}, "balance"},
		{model.AccountDraft{Name: "X", Balance: ""}, "balance"},
	}
	for _, tc := range cases {
		err := c.Create(ctx, tc.draft)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "draft %+v", tc.draft)
		assert.Equal(t, tc.field, verr.Field)
		assert.Equal(t, Errored, c.State())
		assert.Len(t, c.Items(), 1, "prior list kept")
	}
}

func TestAccountLenientBalance(t *testing.T) {
	h := newHarness(t)
	c := NewAccounts(h.client, Options{LenientAmounts: true})

	require.NoError(t, c.Create(context.Background(), model.AccountDraft{Name: "Jar", Balance: "abc"}))
	require.Len(t, c.Items(), 1)
	assert.True(t, c.Items()[0].Balance.IsZero())
	assert.Equal(t, model.AccountCurrent, c.Items()[0].Type)
}

func TestAccountServerFailureKeepsList(t *testing.T) {
	h := newHarness(t)
	c := NewAccounts(h.client, Options{})
	ctx := context.Background()
	require.NoError(t, c.Create(ctx, model.AccountDraft{Name: "A", Balance: "1"}))

	err := c.Delete(ctx, "does-not-exist")
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
	assert.Equal(t, Errored, c.State())
	assert.Len(t, c.Items(), 1)

	require.NoError(t, c.Refresh(ctx))
	assert.Equal(t, Loaded, c.State())
	assert.NoError(t, c.Err())
}

func TestAccountsAfterLogoutAreUnauthorized(t *testing.T) {
	h := newHarness(t)
	c := NewAccounts(h.client, Options{})
	h.sess.Logout()

	err := c.Refresh(context.Background())
	assert.True(t, api.IsAuth(err))
	assert.Equal(t, Errored, c.State())
}
