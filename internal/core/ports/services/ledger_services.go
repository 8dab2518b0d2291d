package services

import (
	"context"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/dto"
)

// LedgerReaderSvc defines read operations for ledger entries
type LedgerReaderSvc interface {
	// GetEntryByID retrieves a specific entry owned by the user.
	GetEntryByID(ctx context.Context, userID string, entryID string) (*domain.LedgerEntry, error)

	// ListEntries retrieves the user's entries inside the window, narrowed by
	// the cascading type/category/subcategory filter. A positive limit cuts
	// the page and returns a cursor token that resumes after the last entry;
	// a zero limit returns everything.
	ListEntries(ctx context.Context, userID string, window domain.ReportingWindow, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// Summarize returns the filtered entries plus the four aggregate scalars:
	// total income, total expenses, net balance and income/expense ratio.
	Summarize(ctx context.Context, userID string, window domain.ReportingWindow, filter domain.EntryFilter) (*domain.CashflowSummary, error)

	// CategoryTotals aggregates the filtered entries per category, sorted
	// descending by absolute amount.
	CategoryTotals(ctx context.Context, userID string, window domain.ReportingWindow, filter domain.EntryFilter) ([]domain.CategoryTotal, error)

	// MonthlyTotals aggregates the filtered entries per month.
	MonthlyTotals(ctx context.Context, userID string, window domain.ReportingWindow, filter domain.EntryFilter) ([]domain.MonthlyTotal, error)
}

// LedgerWriterSvc defines write operations for ledger entries
type LedgerWriterSvc interface {
	// CreateEntry persists a new entry, expanding recurrence or installment
	// requests into monthly clones sharing a series. It returns every entry created.
	CreateEntry(ctx context.Context, userID string, req dto.CreateEntryRequest) ([]domain.LedgerEntry, error)

	// UpdateEntry applies a partial update to an existing entry.
	UpdateEntry(ctx context.Context, userID string, entryID string, req dto.UpdateEntryRequest) (*domain.LedgerEntry, error)

	// DeleteEntry removes an entry according to the deletion mode: just the
	// entry, its whole series, or the entry and all later entries of its
	// series. It returns the number of entries removed.
	DeleteEntry(ctx context.Context, userID string, entryID string, mode domain.DeletionMode) (int, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
// This is a facade for clients that need access to all operations
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
