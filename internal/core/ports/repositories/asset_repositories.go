package repositories

import (
	"context"
	"time"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AssetReader defines read operations for portfolio assets
type AssetReader interface {
	// FindAssetByID retrieves a specific asset by its unique identifier.
	FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error)

	// ListAssets retrieves a user's assets ordered by ticker. Soft-deleted
	// assets are included only when includeDeleted is set.
	ListAssets(ctx context.Context, userID string, includeDeleted bool) ([]domain.Asset, error)
}

// AssetWriter defines write operations for portfolio assets
type AssetWriter interface {
	// SaveAsset persists a new asset.
	SaveAsset(ctx context.Context, asset domain.Asset) error

	// UpdateAsset updates an existing asset's details.
	UpdateAsset(ctx context.Context, asset domain.Asset) error

	// UpdateAssetPrice writes a freshly fetched price onto the asset row.
	UpdateAssetPrice(ctx context.Context, assetID string, price decimal.Decimal, updatedBy string, now time.Time) error

	// MarkAssetDeleted soft-deletes an asset so its snapshots keep rendering.
	MarkAssetDeleted(ctx context.Context, assetID string, deletedBy string, now time.Time) error
}

// AssetRepositoryFacade combines all asset-related repository interfaces
// This is a facade for clients that need access to all operations
type AssetRepositoryFacade interface {
	AssetReader
	AssetWriter
}
