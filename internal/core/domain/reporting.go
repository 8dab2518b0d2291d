package domain

import "github.com/shopspring/decimal"

// CashflowSummary is the aggregate view over a filtered entry window.
// TotalExpenses is reported as a positive magnitude; NetBalance is
// TotalIncome minus TotalExpenses.
type CashflowSummary struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetBalance    decimal.Decimal `json:"netBalance"`

	// Nil when expenses are zero, the ratio is undefined.
	IncomeExpenseRatio *decimal.Decimal `json:"incomeExpenseRatio,omitempty"`

	Entries []LedgerEntry `json:"entries"`
}

// CategoryTotal is one grouping bucket of an aggregation, sorted descending
// by amount in every report that carries it.
type CategoryTotal struct {
	Key    string          `json:"key"`
	Amount decimal.Decimal `json:"amount"`
}

// MonthlyTotal is one month's aggregate of a filtered entry set.
type MonthlyTotal struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}
