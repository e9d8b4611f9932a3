package controller

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/paisa/internal/model"
)

// DashboardAPI is the slice of the gateway the dashboard uses.
type DashboardAPI interface {
	Dashboard(ctx context.Context) (model.DashboardSummary, error)
}

// Slice is one labelled value of a chart series.
type Slice struct {
	Label string
	Value decimal.Decimal
}

// Dashboard holds the server-computed summary. Totals are displayed as
// received and never recomputed here.
type Dashboard struct {
	List[model.DashboardSummary]
	api  DashboardAPI
	opts Options
}

// NewDashboard returns an Idle dashboard controller.
func NewDashboard(gw DashboardAPI, opts Options) *Dashboard {
	return &Dashboard{api: gw, opts: opts}
}

// Refresh fetches the summary.
func (c *Dashboard) Refresh(ctx context.Context) error {
	return c.load(ctx, func(ctx context.Context) ([]model.DashboardSummary, error) {
		s, err := c.api.Dashboard(ctx)
		if err != nil {
			return nil, err
		}
		return []model.DashboardSummary{s}, nil
	})
}

// Summary returns the last fetched summary, or nil.
func (c *Dashboard) Summary() *model.DashboardSummary {
	items := c.Items()
	if len(items) == 0 {
		return nil
	}
	s := items[0]
	return &s
}

// Categories returns the expense breakdown of the last summary as a chart series.
func (c *Dashboard) Categories() []Slice {
	s := c.Summary()
	if s == nil {
		return []Slice{}
	}
	return ChartSeries(s.ExpensesByCategory)
}

// Recent returns at most n of the summary's recent transactions.
func (c *Dashboard) Recent(n int) []model.Transaction {
	s := c.Summary()
	if s == nil || n <= 0 {
		return []model.Transaction{}
	}
	txs := s.RecentTransactions
	if len(txs) > n {
		txs = txs[:n]
	}
	out := make([]model.Transaction, len(txs))
	copy(out, txs)
	return out
}

// BudgetUsage returns spent/amount of the summary's budget, or 0 when the
// user has no budget. The value is not clamped; above 1 means overspent.
func (c *Dashboard) BudgetUsage() float64 {
	s := c.Summary()
	if s == nil || s.BudgetAmount == nil || !s.BudgetAmount.IsPositive() {
		return 0
	}
	spent := decimal.Zero
	if s.BudgetSpent != nil {
		spent = *s.BudgetSpent
	}
	return spent.Div(*s.BudgetAmount).InexactFloat64()
}

// ChartSeries turns a category mapping into an ordered series, largest value
// first and ties by label. A nil or empty mapping yields an empty series.
func ChartSeries(m map[string]decimal.Decimal) []Slice {
	out := make([]Slice, 0, len(m))
	for label, v := range m {
		out = append(out, Slice{Label: label, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Value.Cmp(out[j].Value); c != 0 {
			return c > 0
		}
		return out[i].Label < out[j].Label
	})
	return out
}
