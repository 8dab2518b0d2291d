package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/models"
)

// ToModelAsset converts a domain Asset to a model Asset, serializing the
// composition breakdown to JSON for the JSONB column.
func ToModelAsset(d domain.Asset) (models.Asset, error) {
	m := models.Asset{
		AssetID:      d.AssetID,
		UserID:       d.UserID,
		Ticker:       d.Ticker,
		Name:         d.Name,
		Kind:         string(d.Kind),
		Quantity:     d.Quantity,
		AvgBuyPrice:  d.AvgBuyPrice,
		CurrentPrice: d.CurrentPrice,
		Currency:     d.Currency,
		Deleted:      d.Deleted,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
	if len(d.Composition) > 0 {
		raw, err := json.Marshal(d.Composition)
		if err != nil {
			return models.Asset{}, fmt.Errorf("failed to marshal asset composition: %w", err)
		}
		m.Composition = raw
	}
	return m, nil
}

// ToDomainAsset converts a model Asset to a domain Asset.
func ToDomainAsset(m models.Asset) (domain.Asset, error) {
	d := domain.Asset{
		AssetID:      m.AssetID,
		UserID:       m.UserID,
		Ticker:       m.Ticker,
		Name:         m.Name,
		Kind:         domain.AssetKind(m.Kind),
		Quantity:     m.Quantity,
		AvgBuyPrice:  m.AvgBuyPrice,
		CurrentPrice: m.CurrentPrice,
		Currency:     m.Currency,
		Deleted:      m.Deleted,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if len(m.Composition) > 0 {
		if err := json.Unmarshal(m.Composition, &d.Composition); err != nil {
			return domain.Asset{}, fmt.Errorf("failed to unmarshal asset composition: %w", err)
		}
	}
	return d, nil
}

// ToDomainAssetSlice converts a slice of model Assets to domain Assets.
func ToDomainAssetSlice(ms []models.Asset) ([]domain.Asset, error) {
	ds := make([]domain.Asset, len(ms))
	for i, m := range ms {
		d, err := ToDomainAsset(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
