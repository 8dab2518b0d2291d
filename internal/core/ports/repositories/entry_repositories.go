package repositories

import (
	"context"
	"time"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
)

// EntryReader defines read operations for ledger entries
type EntryReader interface {
	// FindEntryByID retrieves a specific ledger entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// FindEntriesByUser retrieves every entry of a user inside the reporting
	// window, ordered by entry date. A zero window loads the full history.
	FindEntriesByUser(ctx context.Context, userID string, window domain.ReportingWindow) ([]domain.LedgerEntry, error)

	// FindEntriesBySeries retrieves every entry sharing a series, ordered by entry date.
	FindEntriesBySeries(ctx context.Context, userID string, seriesID string) ([]domain.LedgerEntry, error)
}

// EntryWriter defines write operations for ledger entries
type EntryWriter interface {
	// SaveEntries persists a batch of new entries. Recurring and installment
	// creation produce several clones at once, so the batch form is the only one.
	SaveEntries(ctx context.Context, entries []domain.LedgerEntry) error

	// UpdateEntry updates an existing entry's details.
	UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error

	// DeleteEntry removes a single entry.
	DeleteEntry(ctx context.Context, userID string, entryID string) error

	// DeleteEntriesBySeries removes every entry of a series dated at or after
	// the cutoff. A zero cutoff removes the whole series. Deletes are issued
	// as sequential single-row statements, not a transaction.
	DeleteEntriesBySeries(ctx context.Context, userID string, seriesID string, notBefore time.Time) (int, error)
}

// EntryRepositoryFacade combines all entry-related repository interfaces
// This is a facade for clients that need access to all operations
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
