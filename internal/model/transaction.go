package model

import "github.com/shopspring/decimal"

// TransactionType is the direction of a transaction.
type TransactionType string

// Transaction types accepted by the backend.
const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Categories lists the transaction categories offered by the client.
var Categories = []string{
	"Food",
	"Transport",
	"Shopping",
	"Bills",
	"Entertainment",
	"Healthcare",
	"Education",
	"Other",
}

// IsCategory reports whether name is one of Categories.
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Transaction is a single income or expense entry on an account.
type Transaction struct {
	ID                string          `json:"id,omitempty"`
	Type              TransactionType `json:"type"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description,omitempty"`
	Date              Timestamp       `json:"date"`
	Category          string          `json:"category"`
	AccountID         string          `json:"accountId"`
	AccountName       string          `json:"accountName,omitempty"`
	IsRecurring       bool            `json:"isRecurring"`
	RecurringInterval string          `json:"recurringInterval,omitempty"`
	Status            string          `json:"status,omitempty"`
	CreatedAt         Timestamp       `json:"createdAt,omitempty"`
}

// Signed returns the amount with expenses negated, for display.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionDraft is the raw form input for a transaction.
type TransactionDraft struct {
	Type        TransactionType
	Amount      string
	Description string
	Date        string
	Category    string
	AccountID   string
	IsRecurring bool
}

// DraftFromTransaction pre-fills an edit form from an existing transaction.
func DraftFromTransaction(t Transaction) TransactionDraft {
	return TransactionDraft{
		Type:        t.Type,
		Amount:      t.Amount.String(),
		Description: t.Description,
		Date:        t.Date.Date(),
		Category:    t.Category,
		AccountID:   t.AccountID,
		IsRecurring: t.IsRecurring,
	}
}
