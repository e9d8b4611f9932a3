package controller

import (
	"context"

	"github.com/theirongolddev/paisa/internal/api"
	"github.com/theirongolddev/paisa/internal/model"
)

// BudgetAPI is the slice of the gateway the budget controller uses.
type BudgetAPI interface {
	GetBudget(ctx context.Context) (model.Budget, error)
	SaveBudget(ctx context.Context, b model.Budget) (model.Budget, error)
	DeleteBudget(ctx context.Context) error
}

// Budget manages the user's single budget. The underlying list holds zero
// or one record; zero means the user has no budget.
type Budget struct {
	List[model.Budget]
	api  BudgetAPI
	opts Options
}

// NewBudget returns an Idle budget controller.
func NewBudget(gw BudgetAPI, opts Options) *Budget {
	return &Budget{api: gw, opts: opts}
}

// Current returns the budget, or nil when none exists or none was fetched yet.
func (c *Budget) Current() *model.Budget {
	items := c.Items()
	if len(items) == 0 {
		return nil
	}
	b := items[0]
	return &b
}

// Refresh fetches the budget. A 404 is a successful load of "no budget";
// any other failure leaves the previous budget in place.
func (c *Budget) Refresh(ctx context.Context) error {
	return c.load(ctx, func(ctx context.Context) ([]model.Budget, error) {
		b, err := c.api.GetBudget(ctx)
		if api.IsNotFound(err) {
			return []model.Budget{}, nil
		}
		if err != nil {
			return nil, err
		}
		return []model.Budget{b}, nil
	})
}

// Save creates or replaces the budget and re-fetches it.
func (c *Budget) Save(ctx context.Context, d model.BudgetDraft) error {
	amount, err := c.opts.parseAmount("amount", d.Amount, true)
	if err != nil {
		c.fail(err)
		return err
	}
	if _, err := c.api.SaveBudget(ctx, model.Budget{Amount: amount}); err != nil {
		c.opts.logger().WarnContext(ctx, "save budget failed", "error", err)
		c.fail(err)
		return err
	}
	return c.Refresh(ctx)
}

// Delete removes the budget and re-fetches.
func (c *Budget) Delete(ctx context.Context) error {
	if err := c.api.DeleteBudget(ctx); err != nil {
		c.opts.logger().WarnContext(ctx, "delete budget failed", "error", err)
		c.fail(err)
		return err
	}
	return c.Refresh(ctx)
}
