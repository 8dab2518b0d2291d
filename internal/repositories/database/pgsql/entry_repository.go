package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/apperrors"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	portsrepo "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/repositories"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/models"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEntryRepository struct {
	db *pgxpool.Pool
}

func newPgxEntryRepository(db *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{db: db}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryFacade
var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

const entryColumns = `entry_id, user_id, entry_type, category, subcategory, amount, entry_date, note,
		series_id, installment, installment_of,
		created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.UserID,
		&m.EntryType,
		&m.Category,
		&m.Subcategory,
		&m.Amount,
		&m.EntryDate,
		&m.Note,
		&m.SeriesID,
		&m.Installment,
		&m.InstallmentOf,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func collectEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	defer rows.Close()
	ms := []models.LedgerEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		ms = append(ms, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", rows.Err())
	}
	return mapping.ToDomainLedgerEntrySlice(ms), nil
}

func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE entry_id = $1;`
	m, err := scanEntry(r.db.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}
	d := mapping.ToDomainLedgerEntry(m)
	return &d, nil
}

// FindEntriesByUser bounds the query to the reporting window when one is
// set; a zero window loads the user's full history.
func (r *PgxEntryRepository) FindEntriesByUser(ctx context.Context, userID string, window domain.ReportingWindow) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE user_id = $1`
	args := []any{userID}

	if window.Year != 0 {
		from := time.Date(window.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(1, 0, 0)
		if window.Month != 0 {
			from = time.Date(window.Year, window.Month, 1, 0, 0, 0, 0, time.UTC)
			to = from.AddDate(0, 1, 0)
		}
		query += ` AND entry_date >= $2 AND entry_date < $3`
		args = append(args, from, to)
	}
	query += ` ORDER BY entry_date, created_at;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	return collectEntries(rows)
}

func (r *PgxEntryRepository) FindEntriesBySeries(ctx context.Context, userID string, seriesID string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE user_id = $1 AND series_id = $2 ORDER BY entry_date;`
	rows, err := r.db.Query(ctx, query, userID, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to query series entries: %w", err)
	}
	return collectEntries(rows)
}

// SaveEntries persists the batch with a single round trip. Recurring and
// installment creation insert the whole series at once.
func (r *PgxEntryRepository) SaveEntries(ctx context.Context, entries []domain.LedgerEntry) error {
	query := `
        INSERT INTO ledger_entries (entry_id, user_id, entry_type, category, subcategory, amount, entry_date, note,
            series_id, installment, installment_of,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	batch := &pgx.Batch{}
	for _, entry := range entries {
		m := mapping.ToModelLedgerEntry(entry)
		batch.Queue(query,
			m.EntryID,
			m.UserID,
			m.EntryType,
			m.Category,
			m.Subcategory,
			m.Amount,
			m.EntryDate,
			m.Note,
			m.SeriesID,
			m.Installment,
			m.InstallmentOf,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for range entries {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save entries: %w", err)
		}
	}
	return nil
}

func (r *PgxEntryRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
        UPDATE ledger_entries
        SET entry_type = $1, category = $2, subcategory = $3, amount = $4, entry_date = $5, note = $6,
            last_updated_at = $7, last_updated_by = $8
        WHERE entry_id = $9 AND user_id = $10;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.EntryType,
		m.Category,
		m.Subcategory,
		m.Amount,
		m.EntryDate,
		m.Note,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.EntryID,
		m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update entry query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("entry not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, userID string, entryID string) error {
	query := `DELETE FROM ledger_entries WHERE entry_id = $1 AND user_id = $2;`
	cmdTag, err := r.db.Exec(ctx, query, entryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("entry not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// DeleteEntriesBySeries issues one single-row delete per series member
// rather than wrapping the batch in a transaction; a partial failure keeps
// the rows already deleted.
func (r *PgxEntryRepository) DeleteEntriesBySeries(ctx context.Context, userID string, seriesID string, notBefore time.Time) (int, error) {
	entries, err := r.FindEntriesBySeries(ctx, userID, seriesID)
	if err != nil {
		return 0, err
	}

	query := `DELETE FROM ledger_entries WHERE entry_id = $1 AND user_id = $2;`
	batch := &pgx.Batch{}
	queued := 0
	for _, entry := range entries {
		if !notBefore.IsZero() && entry.Date.Before(notBefore) {
			continue
		}
		batch.Queue(query, entry.EntryID, userID)
		queued++
	}
	if queued == 0 {
		return 0, nil
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	deleted := 0
	for i := 0; i < queued; i++ {
		cmdTag, err := results.Exec()
		if err != nil {
			return deleted, fmt.Errorf("failed to delete series entries: %w", err)
		}
		deleted += int(cmdTag.RowsAffected())
	}
	return deleted, nil
}
