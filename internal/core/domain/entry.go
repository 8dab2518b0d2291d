package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies a ledger entry as income or one of the expense buckets.
type EntryType string

const (
	EntryTypeIncome   EntryType = "INCOME"
	EntryTypeFixed    EntryType = "FIXED"
	EntryTypeVariable EntryType = "VARIABLE"
	EntryTypeDebt     EntryType = "DEBT"
)

// IsExpense reports whether the type belongs to the expense side of the ledger.
func (t EntryType) IsExpense() bool {
	return t == EntryTypeFixed || t == EntryTypeVariable || t == EntryTypeDebt
}

// IsValid reports whether the type is one of the known entry types.
func (t EntryType) IsValid() bool {
	return t == EntryTypeIncome || t.IsExpense()
}

// ExpenseTypes lists the expense buckets in display order.
func ExpenseTypes() []EntryType {
	return []EntryType{EntryTypeFixed, EntryTypeVariable, EntryTypeDebt}
}

// DeletionMode selects how far a delete reaches into a recurring series.
type DeletionMode string

const (
	// DeletionSingle removes only the addressed entry.
	DeletionSingle DeletionMode = "SINGLE"
	// DeletionSeries removes every entry sharing the series.
	DeletionSeries DeletionMode = "SERIES"
	// DeletionFuture removes the addressed entry and all later entries of its series.
	DeletionFuture DeletionMode = "FUTURE"
)

// IsValid reports whether the mode is one of the known deletion modes.
func (m DeletionMode) IsValid() bool {
	return m == DeletionSingle || m == DeletionSeries || m == DeletionFuture
}

// LedgerEntry represents a single income or expense record.
// Amounts are signed: income positive, expenses negative. An entry is
// immutable once rendered into a report; reports load the full window.
type LedgerEntry struct {
	EntryID     string          `json:"entryID"` // Primary Key (e.g., UUID)
	UserID      string          `json:"userID"`
	Type        EntryType       `json:"type"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Note        string          `json:"note,omitempty"` // Free text or link

	// Recurrence: clones of a recurring or installment entry share a SeriesID.
	SeriesID      string `json:"seriesID,omitempty"`
	Installment   int    `json:"installment,omitempty"`   // k in "k of n", 0 when not an installment
	InstallmentOf int    `json:"installmentOf,omitempty"` // n in "k of n"

	AuditFields
}

// EntryFilter narrows a reporting window to a type/category/subcategory path.
// Levels cascade downward: setting a level clears everything beneath it, so a
// subcategory can never be selected without its category, nor a category
// that does not belong to the selected type. Zero values mean "all".
type EntryFilter struct {
	Type        EntryType
	Category    string
	Subcategory string
}

// SetType selects a type and clears the dependent category and subcategory.
func (f *EntryFilter) SetType(t EntryType) {
	f.Type = t
	f.Category = ""
	f.Subcategory = ""
}

// SetCategory selects a category and clears the dependent subcategory.
func (f *EntryFilter) SetCategory(category string) {
	f.Category = category
	f.Subcategory = ""
}

// SetSubcategory selects a subcategory leaf.
func (f *EntryFilter) SetSubcategory(subcategory string) {
	f.Subcategory = subcategory
}

// Matches reports whether the entry satisfies every selected level.
func (f EntryFilter) Matches(e LedgerEntry) bool {
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Subcategory != "" && e.Subcategory != f.Subcategory {
		return false
	}
	return true
}

// ReportingWindow bounds a report to a year and optionally a single month.
// A zero Year means the full history.
type ReportingWindow struct {
	Year  int
	Month time.Month // 0 means the whole year
}

// Contains reports whether the date falls inside the window.
func (w ReportingWindow) Contains(date time.Time) bool {
	if w.Year == 0 {
		return true
	}
	if date.Year() != w.Year {
		return false
	}
	if w.Month != 0 && date.Month() != w.Month {
		return false
	}
	return true
}
