package services

import (
	"context"
	"time"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/dto"
)

// AssetReaderSvc defines read operations for portfolio assets
type AssetReaderSvc interface {
	// GetAssetByID retrieves a specific asset owned by the user.
	GetAssetByID(ctx context.Context, userID string, assetID string) (*domain.Asset, error)

	// ListAssets retrieves the user's assets, optionally including soft-deleted ones.
	ListAssets(ctx context.Context, userID string, includeDeleted bool) ([]domain.Asset, error)
}

// AssetWriterSvc defines write operations for portfolio assets
type AssetWriterSvc interface {
	// CreateAsset persists a new asset after validating the ticker, the
	// quantity and the composition percent-sum rule.
	CreateAsset(ctx context.Context, userID string, req dto.CreateAssetRequest) (*domain.Asset, error)

	// UpdateAsset applies a partial update to an existing asset.
	UpdateAsset(ctx context.Context, userID string, assetID string, req dto.UpdateAssetRequest) (*domain.Asset, error)

	// DeleteAsset soft-deletes an asset; its snapshots keep rendering in reports.
	DeleteAsset(ctx context.Context, userID string, assetID string) error
}

// SnapshotSvc defines operations around monthly portfolio snapshots
type SnapshotSvc interface {
	// CaptureSnapshots records one snapshot per non-deleted asset at the month
	// boundary. Re-capturing the same month overwrites the previous capture.
	CaptureSnapshots(ctx context.Context, userID string, month time.Time) ([]domain.AssetSnapshot, error)

	// ListSnapshots retrieves the user's snapshots from the given start, the
	// input of the price-history transformer.
	ListSnapshots(ctx context.Context, userID string, from time.Time) ([]domain.AssetSnapshot, error)
}

// SaleSimulatorSvc defines the tax-gain sale simulation
type SaleSimulatorSvc interface {
	// SimulateSale computes sale value, cost basis, gain, tax and net proceeds
	// for selling part of a holding. A requested quantity above the owned one
	// is clamped and flagged, never rejected.
	SimulateSale(ctx context.Context, userID string, assetID string, req dto.TaxSimulationRequest) (*domain.TaxSimulation, error)
}

// AssetSvcFacade combines all asset-related service interfaces
// This is a facade for clients that need access to all operations
type AssetSvcFacade interface {
	AssetReaderSvc
	AssetWriterSvc
	SnapshotSvc
	SaleSimulatorSvc
}
