package services

import (
	"context"
	"fmt"
	"time"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/apperrors"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	portsrepo "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/repositories"
	portssvc "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/services"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/dto"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/utils/taxcalc"
	"github.com/google/uuid"
)

// assetService implements the AssetSvcFacade interface
type assetService struct {
	BaseService
	assetRepo    portsrepo.AssetRepositoryFacade
	snapshotRepo portsrepo.SnapshotRepositoryFacade
}

// NewAssetService creates a new asset service
func NewAssetService(assetRepo portsrepo.AssetRepositoryFacade, snapshotRepo portsrepo.SnapshotRepositoryFacade) portssvc.AssetSvcFacade {
	return &assetService{assetRepo: assetRepo, snapshotRepo: snapshotRepo}
}

// Ensure assetService implements the AssetSvcFacade interface
var _ portssvc.AssetSvcFacade = (*assetService)(nil)

// findOwnedAsset loads an asset and hides other users' assets behind not-found.
func (s *assetService) findOwnedAsset(ctx context.Context, userID string, assetID string) (*domain.Asset, error) {
	asset, err := s.assetRepo.FindAssetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return asset, nil
}

func (s *assetService) GetAssetByID(ctx context.Context, userID string, assetID string) (*domain.Asset, error) {
	asset, err := s.findOwnedAsset(ctx, userID, assetID)
	if err != nil {
		s.LogError(ctx, err, "Failed to get asset", "asset_id", assetID)
		return nil, err
	}
	return asset, nil
}

func (s *assetService) ListAssets(ctx context.Context, userID string, includeDeleted bool) ([]domain.Asset, error) {
	assets, err := s.assetRepo.ListAssets(ctx, userID, includeDeleted)
	if err != nil {
		s.LogError(ctx, err, "Failed to list assets")
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, nil
}

func (s *assetService) CreateAsset(ctx context.Context, userID string, req dto.CreateAssetRequest) (*domain.Asset, error) {
	if req.Quantity.IsNegative() {
		return nil, fmt.Errorf("%w: quantity cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	asset := domain.Asset{
		AssetID:      uuid.NewString(),
		UserID:       userID,
		Ticker:       req.Ticker,
		Name:         req.Name,
		Kind:         req.Kind,
		Quantity:     req.Quantity,
		AvgBuyPrice:  req.AvgBuyPrice,
		CurrentPrice: req.CurrentPrice,
		Currency:     req.Currency,
		Composition:  dto.ToDomainComponents(req.Composition),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if !asset.ValidateComposition() {
		return nil, fmt.Errorf("%w: composition percentages must sum to 100", apperrors.ErrValidation)
	}

	if err := s.assetRepo.SaveAsset(ctx, asset); err != nil {
		s.LogError(ctx, err, "Failed to save asset", "ticker", req.Ticker)
		return nil, fmt.Errorf("failed to save asset: %w", err)
	}

	s.LogInfo(ctx, "Asset created", "asset_id", asset.AssetID, "ticker", asset.Ticker)
	return &asset, nil
}

func (s *assetService) UpdateAsset(ctx context.Context, userID string, assetID string, req dto.UpdateAssetRequest) (*domain.Asset, error) {
	asset, err := s.findOwnedAsset(ctx, userID, assetID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.Quantity != nil {
		if req.Quantity.IsNegative() {
			return nil, fmt.Errorf("%w: quantity cannot be negative", apperrors.ErrValidation)
		}
		asset.Quantity = *req.Quantity
	}
	if req.AvgBuyPrice != nil {
		asset.AvgBuyPrice = *req.AvgBuyPrice
	}
	if req.CurrentPrice != nil {
		asset.CurrentPrice = *req.CurrentPrice
	}
	if req.Composition != nil {
		asset.Composition = dto.ToDomainComponents(*req.Composition)
	}
	if !asset.ValidateComposition() {
		return nil, fmt.Errorf("%w: composition percentages must sum to 100", apperrors.ErrValidation)
	}

	asset.LastUpdatedAt = time.Now()
	asset.LastUpdatedBy = userID

	if err := s.assetRepo.UpdateAsset(ctx, *asset); err != nil {
		s.LogError(ctx, err, "Failed to update asset", "asset_id", assetID)
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}
	return asset, nil
}

func (s *assetService) DeleteAsset(ctx context.Context, userID string, assetID string) error {
	if _, err := s.findOwnedAsset(ctx, userID, assetID); err != nil {
		return err
	}
	if err := s.assetRepo.MarkAssetDeleted(ctx, assetID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to delete asset", "asset_id", assetID)
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	s.LogInfo(ctx, "Asset deleted", "asset_id", assetID)
	return nil
}

// CaptureSnapshots records the current state of every non-deleted asset at
// the month boundary. Re-capturing a month overwrites that month's rows, so
// the operation is idempotent per (asset, month).
func (s *assetService) CaptureSnapshots(ctx context.Context, userID string, month time.Time) ([]domain.AssetSnapshot, error) {
	assets, err := s.assetRepo.ListAssets(ctx, userID, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to list assets for snapshot capture")
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	monthKey := domain.MonthKey(month)
	now := time.Now()
	snapshots := make([]domain.AssetSnapshot, 0, len(assets))
	for _, asset := range assets {
		snap := domain.AssetSnapshot{
			SnapshotID: uuid.NewString(),
			UserID:     userID,
			AssetID:    asset.AssetID,
			Ticker:     asset.Ticker,
			Name:       asset.Name,
			Kind:       asset.Kind,
			Month:      monthKey,
			Quantity:   asset.Quantity,
			UnitPrice:  asset.CurrentPrice,
			HasPrice:   asset.CurrentPrice.IsPositive(),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		snapshots = append(snapshots, snap)
	}

	if len(snapshots) > 0 {
		if err := s.snapshotRepo.UpsertSnapshots(ctx, snapshots); err != nil {
			s.LogError(ctx, err, "Failed to upsert snapshots", "month", monthKey)
			return nil, fmt.Errorf("failed to save snapshots: %w", err)
		}
	}

	s.LogInfo(ctx, "Snapshots captured", "month", monthKey, "count", len(snapshots))
	return snapshots, nil
}

func (s *assetService) ListSnapshots(ctx context.Context, userID string, from time.Time) ([]domain.AssetSnapshot, error) {
	snapshots, err := s.snapshotRepo.FindSnapshotsByUser(ctx, userID, from)
	if err != nil {
		s.LogError(ctx, err, "Failed to list snapshots")
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}

func (s *assetService) SimulateSale(ctx context.Context, userID string, assetID string, req dto.TaxSimulationRequest) (*domain.TaxSimulation, error) {
	asset, err := s.findOwnedAsset(ctx, userID, assetID)
	if err != nil {
		return nil, err
	}
	if req.Quantity.Sign() <= 0 && req.TargetValue.Sign() <= 0 {
		return nil, fmt.Errorf("%w: either quantity or targetValue must be positive", apperrors.ErrValidation)
	}
	if req.TaxRatePercent.IsNegative() {
		return nil, fmt.Errorf("%w: tax rate cannot be negative", apperrors.ErrValidation)
	}

	sim := taxcalc.Simulate(taxcalc.SaleInput{
		Quantity:       req.Quantity,
		TargetValue:    req.TargetValue,
		CurrentPrice:   asset.CurrentPrice,
		AvgBuyPrice:    asset.AvgBuyPrice,
		TaxRatePercent: req.TaxRatePercent,
		OwnedQuantity:  asset.Quantity,
	})
	return &sim, nil
}
