package report

import "github.com/shopspring/decimal"

// MonthlyBalance is the derived summary of a principal's ledger for one
// month. It is recomputed from the store on every query and never persisted
// or cached.
type MonthlyBalance struct {
	Month             int                        `json:"month"`
	Year              int                        `json:"year"`
	TotalIncome       decimal.Decimal            `json:"total_income"`
	TotalExpense      decimal.Decimal            `json:"total_expense"`
	Balance           decimal.Decimal            `json:"balance"`
	IncomeByCategory  map[string]decimal.Decimal `json:"income_by_category"`
	ExpenseByCategory map[string]decimal.Decimal `json:"expense_by_category"`
}
