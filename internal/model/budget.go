package model

import "github.com/shopspring/decimal"

// Budget is the per-user monthly budget. A user has at most one.
type Budget struct {
	ID            string          `json:"id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	LastAlertSent Timestamp       `json:"lastAlertSent,omitempty"`
}

// BudgetDraft is the raw form input for the budget amount.
type BudgetDraft struct {
	Amount string
}
