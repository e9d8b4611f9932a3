package model

import "github.com/shopspring/decimal"

// AdminUser is a user row in the admin panel.
type AdminUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt Timestamp `json:"createdAt"`
}

// AdminAccount is an account row in the admin panel, with its owner.
type AdminAccount struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      AccountType     `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	IsDefault bool            `json:"isDefault"`
	UserID    string          `json:"userId"`
	UserEmail string          `json:"userEmail"`
}

// AdminTransaction is a transaction row in the admin panel, with its owner.
type AdminTransaction struct {
	Transaction
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
}
