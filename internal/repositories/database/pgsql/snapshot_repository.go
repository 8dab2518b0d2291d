package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	portsrepo "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/repositories"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/models"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSnapshotRepository struct {
	BaseRepository
}

func newPgxSnapshotRepository(db *pgxpool.Pool) portsrepo.SnapshotRepositoryFacade {
	return &PgxSnapshotRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxSnapshotRepository implements portsrepo.SnapshotRepositoryFacade
var _ portsrepo.SnapshotRepositoryFacade = (*PgxSnapshotRepository)(nil)

const snapshotColumns = `snapshot_id, user_id, asset_id, ticker, name, kind, month, quantity, unit_price, deleted,
		created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxSnapshotRepository) FindSnapshotsByUser(ctx context.Context, userID string, from time.Time) ([]domain.AssetSnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM asset_snapshots WHERE user_id = $1`
	args := []any{userID}
	if !from.IsZero() {
		query += ` AND month >= $2`
		args = append(args, domain.MonthKey(from))
	}
	query += ` ORDER BY month, ticker;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	ms := []models.AssetSnapshot{}
	for rows.Next() {
		var m models.AssetSnapshot
		err := rows.Scan(
			&m.SnapshotID,
			&m.UserID,
			&m.AssetID,
			&m.Ticker,
			&m.Name,
			&m.Kind,
			&m.Month,
			&m.Quantity,
			&m.UnitPrice,
			&m.Deleted,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		ms = append(ms, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", rows.Err())
	}

	return mapping.ToDomainAssetSnapshotSlice(ms), nil
}

// UpsertSnapshots writes the batch inside one transaction so a re-capture of
// a month either fully replaces it or leaves it untouched. The (asset, month)
// unique constraint makes the operation idempotent.
func (r *PgxSnapshotRepository) UpsertSnapshots(ctx context.Context, snapshots []domain.AssetSnapshot) error {
	query := `
        INSERT INTO asset_snapshots (snapshot_id, user_id, asset_id, ticker, name, kind, month, quantity, unit_price, deleted,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        ON CONFLICT (asset_id, month) DO UPDATE SET
            ticker = EXCLUDED.ticker,
            name = EXCLUDED.name,
            kind = EXCLUDED.kind,
            quantity = EXCLUDED.quantity,
            unit_price = EXCLUDED.unit_price,
            deleted = EXCLUDED.deleted,
            last_updated_at = EXCLUDED.last_updated_at,
            last_updated_by = EXCLUDED.last_updated_by;
    `
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, snapshot := range snapshots {
		m := mapping.ToModelAssetSnapshot(snapshot)
		batch.Queue(query,
			m.SnapshotID,
			m.UserID,
			m.AssetID,
			m.Ticker,
			m.Name,
			m.Kind,
			m.Month,
			m.Quantity,
			m.UnitPrice,
			m.Deleted,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range snapshots {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to upsert snapshots: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot batch: %w", err)
	}

	return r.Commit(ctx, tx)
}
