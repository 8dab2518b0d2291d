package domain_test

import (
	"testing"
	"time"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEntryFilter_CascadingResets(t *testing.T) {
	f := domain.EntryFilter{}
	f.SetType(domain.EntryTypeVariable)
	f.SetCategory("Groceries")
	f.SetSubcategory("Vegetables")

	assert.Equal(t, domain.EntryTypeVariable, f.Type)
	assert.Equal(t, "Groceries", f.Category)
	assert.Equal(t, "Vegetables", f.Subcategory)

	// Re-selecting the category must clear the subcategory.
	f.SetCategory("Transport")
	assert.Equal(t, domain.EntryTypeVariable, f.Type)
	assert.Equal(t, "Transport", f.Category)
	assert.Empty(t, f.Subcategory)

	f.SetSubcategory("Fuel")
	assert.Equal(t, "Fuel", f.Subcategory)

	// Re-selecting the type must clear both dependent levels.
	f.SetType(domain.EntryTypeFixed)
	assert.Equal(t, domain.EntryTypeFixed, f.Type)
	assert.Empty(t, f.Category)
	assert.Empty(t, f.Subcategory)
}

func TestEntryFilter_Matches(t *testing.T) {
	entry := domain.LedgerEntry{
		Type:        domain.EntryTypeVariable,
		Category:    "Groceries",
		Subcategory: "Vegetables",
		Amount:      decimal.NewFromInt(-25),
	}

	tests := []struct {
		name   string
		filter domain.EntryFilter
		want   bool
	}{
		{
			name:   "empty filter matches everything",
			filter: domain.EntryFilter{},
			want:   true,
		},
		{
			name:   "matching type",
			filter: domain.EntryFilter{Type: domain.EntryTypeVariable},
			want:   true,
		},
		{
			name:   "mismatching type",
			filter: domain.EntryFilter{Type: domain.EntryTypeFixed},
			want:   false,
		},
		{
			name:   "matching full path",
			filter: domain.EntryFilter{Type: domain.EntryTypeVariable, Category: "Groceries", Subcategory: "Vegetables"},
			want:   true,
		},
		{
			name:   "mismatching subcategory",
			filter: domain.EntryFilter{Type: domain.EntryTypeVariable, Category: "Groceries", Subcategory: "Fruit"},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(entry))
		})
	}
}

func TestReportingWindow_Contains(t *testing.T) {
	march := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		window domain.ReportingWindow
		want   bool
	}{
		{"zero window contains everything", domain.ReportingWindow{}, true},
		{"matching year", domain.ReportingWindow{Year: 2025}, true},
		{"other year", domain.ReportingWindow{Year: 2024}, false},
		{"matching year and month", domain.ReportingWindow{Year: 2025, Month: time.March}, true},
		{"matching year, other month", domain.ReportingWindow{Year: 2025, Month: time.April}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.window.Contains(march))
		})
	}
}

func TestEntryType_IsExpense(t *testing.T) {
	assert.False(t, domain.EntryTypeIncome.IsExpense())
	assert.True(t, domain.EntryTypeFixed.IsExpense())
	assert.True(t, domain.EntryTypeVariable.IsExpense())
	assert.True(t, domain.EntryTypeDebt.IsExpense())
	assert.False(t, domain.EntryType("BOGUS").IsValid())
}

func TestMonthKey_NormalizesToFirstOfMonth(t *testing.T) {
	key := domain.MonthKey(time.Date(2025, time.July, 23, 14, 5, 0, 0, time.FixedZone("CET", 3600)))
	assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), key)
}
