package model

import "github.com/shopspring/decimal"

// AccountType distinguishes current and savings accounts.
type AccountType string

// Account types accepted by the backend.
const (
	AccountCurrent AccountType = "CURRENT"
	AccountSavings AccountType = "SAVINGS"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	return t == AccountCurrent || t == AccountSavings
}

// Account is a user's money account.
type Account struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	Type      AccountType     `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	IsDefault bool            `json:"isDefault"`
	CreatedAt Timestamp       `json:"createdAt,omitempty"`
	UpdatedAt Timestamp       `json:"updatedAt,omitempty"`
}

// AccountDraft is the raw form input for creating or editing an account.
type AccountDraft struct {
	Name      string
	Type      AccountType
	Balance   string
	IsDefault bool
}

// DraftFromAccount pre-fills an edit form from an existing account.
func DraftFromAccount(a Account) AccountDraft {
	return AccountDraft{
		Name:      a.Name,
		Type:      a.Type,
		Balance:   a.Balance.String(),
		IsDefault: a.IsDefault,
	}
}
