package controller

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/paisa/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestChartSeriesEmpty(t *testing.T) {
	assert.Equal(t, []Slice{}, ChartSeries(map[string]decimal.Decimal{}))
	assert.Equal(t, []Slice{}, ChartSeries(nil))
}

func TestChartSeriesOrder(t *testing.T) {
	got := ChartSeries(map[string]decimal.Decimal{
		"Bills": dec("40"),
		"Food":  dec("120.5"),
		"Other": dec("40"),
		"Fun":   dec("7"),
	})
	labels := make([]string, len(got))
	for i, s := range got {
		labels[i] = s.Label
	}
	assert.Equal(t, []string{"Food", "Bills", "Other", "Fun"}, labels)
	assert.True(t, got[0].Value.Equal(dec("120.5")))
}

func TestDashboardBeforeRefresh(t *testing.T) {
	c := NewDashboard(nil, Options{})
	assert.Nil(t, c.Summary())
	assert.Equal(t, []Slice{}, c.Categories())
	assert.Empty(t, c.Recent(5))
	assert.Zero(t, c.BudgetUsage())
}

func TestDashboardShowsServerFigures(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	acct := seedAccount(t, h, "Main", "1000")

	txs := NewTransactions(h.client, Options{})
	require.NoError(t, txs.Refresh(ctx))
	for i, row := range []struct {
		typ      model.TransactionType
		amount   string
		category string
	}{
		{model.Expense, "100", "Food"},
		{model.Expense, "50", "Transport"},
		{model.Income, "400", "Other"},
		{model.Expense, "25", "Food"},
		{model.Expense, "5", "Bills"},
		{model.Expense, "1", "Bills"},
	} {
		d := txs.NewDraft()
		d.Type = row.typ
		d.Amount = row.amount
		d.Category = row.category
		d.AccountID = acct.ID
		d.Description = fmt.Sprintf("tx %d", i)
		require.NoError(t, txs.Create(ctx, d))
	}

	budget := NewBudget(h.client, Options{})
	require.NoError(t, budget.Save(ctx, model.BudgetDraft{Amount: "362"}))

	c := NewDashboard(h.client, Options{})
	require.NoError(t, c.Refresh(ctx))
	s := c.Summary()
	require.NotNil(t, s)

	assert.True(t, s.TotalBalance.Equal(dec("1219")), "total %s", s.TotalBalance)
	assert.True(t, s.MonthlyIncome.Equal(dec("400")))
	assert.True(t, s.MonthlyExpense.Equal(dec("181")))
	require.NotNil(t, s.BudgetAmount)
	assert.InDelta(t, 0.5, c.BudgetUsage(), 0.0001)

	series := c.Categories()
	require.Len(t, series, 3)
	assert.Equal(t, "Food", series[0].Label)
	assert.True(t, series[0].Value.Equal(dec("125")))

	assert.Len(t, c.Recent(5), 5)
	assert.Len(t, c.Recent(50), 6)
}

func TestDashboardWithoutData(t *testing.T) {
	h := newHarness(t)
	c := NewDashboard(h.client, Options{})
	require.NoError(t, c.Refresh(context.Background()))

	assert.Equal(t, []Slice{}, c.Categories())
	assert.Zero(t, c.BudgetUsage())
	assert.Empty(t, c.Recent(5))
}

func TestRecommendations(t *testing.T) {
	h := newHarness(t)
	c := NewRecommendations(h.client, Options{})
	assert.Nil(t, c.Result())

	require.NoError(t, c.Generate(context.Background()))
	r := c.Result()
	require.NotNil(t, r)
	assert.NotEmpty(t, r.Summary)
	assert.NotEmpty(t, r.Recommendations)

	h.sess.Logout()
	require.Error(t, c.Generate(context.Background()))
	assert.Equal(t, Errored, c.State())
	assert.Equal(t, r, c.Result(), "last advice kept")
}
