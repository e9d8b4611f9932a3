package model

import "github.com/shopspring/decimal"

// DashboardSummary is the server-computed overview. Clients display it as is.
type DashboardSummary struct {
	TotalBalance       decimal.Decimal            `json:"totalBalance"`
	MonthlyIncome      decimal.Decimal            `json:"monthlyIncome"`
	MonthlyExpense     decimal.Decimal            `json:"monthlyExpense"`
	BudgetAmount       *decimal.Decimal           `json:"budgetAmount"`
	BudgetSpent        *decimal.Decimal           `json:"budgetSpent"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expensesByCategory"`
	RecentTransactions []Transaction              `json:"recentTransactions"`
	Accounts           []Account                  `json:"accounts,omitempty"`
}

// Recommendations is the AI advice payload.
type Recommendations struct {
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
}
