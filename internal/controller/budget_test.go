package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/paisa/internal/api"
	"github.com/theirongolddev/paisa/internal/model"
)

func TestBudgetAbsentIsNotAnError(t *testing.T) {
	h := newHarness(t)
	c := NewBudget(h.client, Options{})

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, Loaded, c.State())
	assert.Nil(t, c.Current())
	assert.NoError(t, c.Err())
}

func TestBudgetSaveAndDelete(t *testing.T) {
	h := newHarness(t)
	c := NewBudget(h.client, Options{})
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, model.BudgetDraft{Amount: "500"}))
	require.NotNil(t, c.Current())
	assert.True(t, c.Current().Amount.Equal(decimal.NewFromInt(500)))
	id := c.Current().ID

	require.NoError(t, c.Save(ctx, model.BudgetDraft{Amount: "750.5"}))
	assert.Equal(t, id, c.Current().ID, "upsert keeps the singleton")
	assert.True(t, c.Current().Amount.Equal(decimal.RequireFromString("750.5")))

	require.NoError(t, c.Delete(ctx))
	assert.Nil(t, c.Current())
	assert.Equal(t, Loaded, c.State())

	err := c.Delete(ctx)
	assert.True(t, api.IsNotFound(err))
	assert.Equal(t, Errored, c.State())
}

func TestBudgetValidation(t *testing.T) {
	h := newHarness(t)
	c := NewBudget(h.client, Options{})

	for _, amount := range []string{"", "0", "-10", "ten"} {
		var verr *ValidationError
		assert.ErrorAs(t, c.Save(context.Background(), model.BudgetDraft{Amount: amount}), &verr, amount)
	}
}

// budgetServer answers GET /budgets with each status in turn.
func budgetServer(t *testing.T, statuses ...int) *api.Client {
	t.Helper()
	i := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		status := statuses[i]
		if i < len(statuses)-1 {
			i++
		}
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(`{"id":"b1","amount":300}`))
		}
	}))
	t.Cleanup(srv.Close)
	return api.New(srv.URL, nil)
}

func TestBudgetOtherFailureKeepsPriorBudget(t *testing.T) {
	c := NewBudget(budgetServer(t, http.StatusOK, http.StatusInternalServerError), Options{})
	ctx := context.Background()

	require.NoError(t, c.Refresh(ctx))
	require.NotNil(t, c.Current())

	err := c.Refresh(ctx)
	require.Error(t, err)
	assert.Equal(t, Errored, c.State())
	require.NotNil(t, c.Current(), "budget unchanged")
	assert.True(t, c.Current().Amount.Equal(decimal.NewFromInt(300)))
}

func TestBudgetNotFoundClearsPriorBudget(t *testing.T) {
	c := NewBudget(budgetServer(t, http.StatusOK, http.StatusNotFound), Options{})
	ctx := context.Background()

	require.NoError(t, c.Refresh(ctx))
	require.NotNil(t, c.Current())
	require.NoError(t, c.Refresh(ctx))
	assert.Nil(t, c.Current())
	assert.Equal(t, Loaded, c.State())
}
