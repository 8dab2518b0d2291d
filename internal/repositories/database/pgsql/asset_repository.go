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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAssetRepository struct {
	db *pgxpool.Pool
}

func newPgxAssetRepository(db *pgxpool.Pool) portsrepo.AssetRepositoryFacade {
	return &PgxAssetRepository{db: db}
}

// Ensure PgxAssetRepository implements portsrepo.AssetRepositoryFacade
var _ portsrepo.AssetRepositoryFacade = (*PgxAssetRepository)(nil)

const assetColumns = `asset_id, user_id, ticker, name, kind, quantity, avg_buy_price, current_price, currency,
		composition, deleted, created_at, created_by, last_updated_at, last_updated_by`

func scanAsset(row pgx.Row) (models.Asset, error) {
	var m models.Asset
	err := row.Scan(
		&m.AssetID,
		&m.UserID,
		&m.Ticker,
		&m.Name,
		&m.Kind,
		&m.Quantity,
		&m.AvgBuyPrice,
		&m.CurrentPrice,
		&m.Currency,
		&m.Composition,
		&m.Deleted,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE asset_id = $1 AND deleted = FALSE;`
	m, err := scanAsset(r.db.QueryRow(ctx, query, assetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find asset by ID %s: %w", assetID, err)
	}
	d, err := mapping.ToDomainAsset(m)
	if err != nil {
		return nil, fmt.Errorf("failed to map asset %s: %w", assetID, err)
	}
	return &d, nil
}

func (r *PgxAssetRepository) ListAssets(ctx context.Context, userID string, includeDeleted bool) ([]domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE user_id = $1`
	if !includeDeleted {
		query += ` AND deleted = FALSE`
	}
	query += ` ORDER BY ticker;`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	ms := []models.Asset{}
	for rows.Next() {
		m, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset row: %w", err)
		}
		ms = append(ms, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating asset rows: %w", rows.Err())
	}

	ds, err := mapping.ToDomainAssetSlice(ms)
	if err != nil {
		return nil, fmt.Errorf("failed to map assets: %w", err)
	}
	return ds, nil
}

func (r *PgxAssetRepository) SaveAsset(ctx context.Context, asset domain.Asset) error {
	m, err := mapping.ToModelAsset(asset)
	if err != nil {
		return fmt.Errorf("failed to map asset for save: %w", err)
	}
	query := `
        INSERT INTO assets (asset_id, user_id, ticker, name, kind, quantity, avg_buy_price, current_price, currency,
            composition, deleted, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err = r.db.Exec(ctx, query,
		m.AssetID,
		m.UserID,
		m.Ticker,
		m.Name,
		m.Kind,
		m.Quantity,
		m.AvgBuyPrice,
		m.CurrentPrice,
		m.Currency,
		m.Composition,
		m.Deleted,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: asset with ID %s already exists", apperrors.ErrDuplicate, asset.AssetID)
		}
		return fmt.Errorf("failed to save asset: %w", err)
	}
	return nil
}

func (r *PgxAssetRepository) UpdateAsset(ctx context.Context, asset domain.Asset) error {
	m, err := mapping.ToModelAsset(asset)
	if err != nil {
		return fmt.Errorf("failed to map asset for update: %w", err)
	}
	query := `
        UPDATE assets
        SET name = $1, quantity = $2, avg_buy_price = $3, current_price = $4, composition = $5,
            last_updated_at = $6, last_updated_by = $7
        WHERE asset_id = $8 AND deleted = FALSE;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.Name,
		m.Quantity,
		m.AvgBuyPrice,
		m.CurrentPrice,
		m.Composition,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.AssetID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update asset query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("asset not found or deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxAssetRepository) UpdateAssetPrice(ctx context.Context, assetID string, price decimal.Decimal, updatedBy string, now time.Time) error {
	query := `
        UPDATE assets
        SET current_price = $1, last_updated_at = $2, last_updated_by = $3
        WHERE asset_id = $4 AND deleted = FALSE;
    `
	cmdTag, err := r.db.Exec(ctx, query, price, now, updatedBy, assetID)
	if err != nil {
		return fmt.Errorf("failed to update asset price: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("asset not found or deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxAssetRepository) MarkAssetDeleted(ctx context.Context, assetID string, deletedBy string, now time.Time) error {
	query := `
        UPDATE assets
        SET deleted = TRUE, last_updated_at = $1, last_updated_by = $2
        WHERE asset_id = $3 AND deleted = FALSE;
    `
	cmdTag, err := r.db.Exec(ctx, query, now, deletedBy, assetID)
	if err != nil {
		return fmt.Errorf("failed to mark asset as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("asset not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
