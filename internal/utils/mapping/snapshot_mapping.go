package mapping

import (
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelAssetSnapshot converts a domain AssetSnapshot to a model
// AssetSnapshot. A snapshot without a price maps to a NULL unit_price.
func ToModelAssetSnapshot(d domain.AssetSnapshot) models.AssetSnapshot {
	m := models.AssetSnapshot{
		SnapshotID:  d.SnapshotID,
		UserID:      d.UserID,
		AssetID:     d.AssetID,
		Ticker:      d.Ticker,
		Name:        d.Name,
		Kind:        string(d.Kind),
		Month:       d.Month,
		Quantity:    d.Quantity,
		Deleted:     d.Deleted,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.HasPrice {
		m.UnitPrice = decimal.NullDecimal{Decimal: d.UnitPrice, Valid: true}
	}
	return m
}

// ToDomainAssetSnapshot converts a model AssetSnapshot to a domain AssetSnapshot
func ToDomainAssetSnapshot(m models.AssetSnapshot) domain.AssetSnapshot {
	d := domain.AssetSnapshot{
		SnapshotID:  m.SnapshotID,
		UserID:      m.UserID,
		AssetID:     m.AssetID,
		Ticker:      m.Ticker,
		Name:        m.Name,
		Kind:        domain.AssetKind(m.Kind),
		Month:       m.Month,
		Quantity:    m.Quantity,
		Deleted:     m.Deleted,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.UnitPrice.Valid {
		d.UnitPrice = m.UnitPrice.Decimal
		d.HasPrice = true
	}
	return d
}

// ToDomainAssetSnapshotSlice converts a slice of model snapshots to domain snapshots
func ToDomainAssetSnapshotSlice(ms []models.AssetSnapshot) []domain.AssetSnapshot {
	ds := make([]domain.AssetSnapshot, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAssetSnapshot(m)
	}
	return ds
}
