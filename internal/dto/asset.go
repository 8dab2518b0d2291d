package dto

import (
	"time"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/utils"
	"github.com/shopspring/decimal"
)

// AssetComponentDTO is one slice of the allocation breakdown.
type AssetComponentDTO struct {
	Name    string          `json:"name" binding:"required"`
	Percent decimal.Decimal `json:"percent" binding:"required"`
}

// CreateAssetRequest defines the data needed to create a new asset.
// Composition, when provided, must sum to exactly 100 percent.
type CreateAssetRequest struct {
	Ticker       string              `json:"ticker" binding:"required"`
	Name         string              `json:"name" binding:"required"`
	Kind         domain.AssetKind    `json:"kind" binding:"required,oneof=SECURITY CASH"`
	Quantity     decimal.Decimal     `json:"quantity" binding:"required"`
	AvgBuyPrice  decimal.Decimal     `json:"avgBuyPrice"`
	CurrentPrice decimal.Decimal     `json:"currentPrice"`
	Currency     string              `json:"currency" binding:"required,len=3"`
	Composition  []AssetComponentDTO `json:"composition"`
}

// UpdateAssetRequest defines the data allowed for updating an asset.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAssetRequest struct {
	Name         *string              `json:"name"`
	Quantity     *decimal.Decimal     `json:"quantity"`
	AvgBuyPrice  *decimal.Decimal     `json:"avgBuyPrice"`
	CurrentPrice *decimal.Decimal     `json:"currentPrice"`
	Composition  *[]AssetComponentDTO `json:"composition"`
}

// AssetResponse defines the data returned for an asset.
type AssetResponse struct {
	AssetID       string              `json:"assetID"`
	Ticker        string              `json:"ticker"`
	Name          string              `json:"name"`
	Kind          domain.AssetKind    `json:"kind"`
	Quantity      decimal.Decimal     `json:"quantity"`
	AvgBuyPrice   decimal.Decimal     `json:"avgBuyPrice"`
	CurrentPrice  decimal.Decimal     `json:"currentPrice"`
	Currency      string              `json:"currency"`
	TotalValue    decimal.Decimal     `json:"totalValue"`
	DisplayValue  string              `json:"displayValue"` // Locale-formatted total value
	Composition   []AssetComponentDTO `json:"composition,omitempty"`
	Deleted       bool                `json:"deleted"`
	CreatedAt     time.Time           `json:"createdAt"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
}

// ToAssetResponse converts a domain.Asset to AssetResponse DTO. displayValue
// is the locale-formatted total position value in the asset's currency.
func ToAssetResponse(a *domain.Asset, displayValue string) AssetResponse {
	return AssetResponse{
		AssetID:       a.AssetID,
		Ticker:        a.Ticker,
		Name:          a.Name,
		Kind:          a.Kind,
		Quantity:      a.Quantity,
		AvgBuyPrice:   a.AvgBuyPrice,
		CurrentPrice:  a.CurrentPrice,
		Currency:      a.Currency,
		TotalValue:    a.Quantity.Mul(a.CurrentPrice),
		DisplayValue:  displayValue,
		Composition:   toComponentDTOs(a.Composition),
		Deleted:       a.Deleted,
		CreatedAt:     a.CreatedAt,
		LastUpdatedAt: a.LastUpdatedAt,
	}
}

// ListAssetsParams defines query parameters for listing assets.
type ListAssetsParams struct {
	IncludeDeleted bool `form:"includeDeleted,default=false"`
}

// ListAssetsResponse wraps the list of assets.
type ListAssetsResponse struct {
	Assets []AssetResponse `json:"assets"`
}

// TaxSimulationRequest defines the inputs of a sale simulation. Either
// Quantity or TargetValue drives the simulated quantity; Quantity wins when
// both are set.
type TaxSimulationRequest struct {
	Quantity       decimal.Decimal `json:"quantity"`
	TargetValue    decimal.Decimal `json:"targetValue"`
	TaxRatePercent decimal.Decimal `json:"taxRatePercent" binding:"required"`
}

// TaxSimulationResponse defines the outcome of a sale simulation.
type TaxSimulationResponse struct {
	Quantity           decimal.Decimal `json:"quantity"`
	SaleValue          decimal.Decimal `json:"saleValue"`
	CostBasis          decimal.Decimal `json:"costBasis"`
	Gain               decimal.Decimal `json:"gain"`
	Tax                decimal.Decimal `json:"tax"`
	NetProceeds        decimal.Decimal `json:"netProceeds"`
	DisplayNetProceeds string          `json:"displayNetProceeds"`
	ExceedsOwned       bool            `json:"exceedsOwned"`
}

// ToTaxSimulationResponse converts a domain.TaxSimulation to its DTO form.
func ToTaxSimulationResponse(s *domain.TaxSimulation, currencyCode string) TaxSimulationResponse {
	return TaxSimulationResponse{
		Quantity:           s.Quantity,
		SaleValue:          s.SaleValue,
		CostBasis:          s.CostBasis,
		Gain:               s.Gain,
		Tax:                s.Tax,
		NetProceeds:        s.NetProceeds,
		DisplayNetProceeds: utils.FormatMoney(s.NetProceeds, currencyCode),
		ExceedsOwned:       s.ExceedsOwned,
	}
}

// CaptureSnapshotsRequest selects the month boundary for a snapshot capture.
// A zero month defaults to the current month.
type CaptureSnapshotsRequest struct {
	Month time.Time `json:"month"`
}

// SnapshotResponse defines the data returned for one asset snapshot.
type SnapshotResponse struct {
	SnapshotID string           `json:"snapshotID"`
	AssetID    string           `json:"assetID"`
	Ticker     string           `json:"ticker"`
	Name       string           `json:"name"`
	Kind       domain.AssetKind `json:"kind"`
	Month      time.Time        `json:"month"`
	Quantity   decimal.Decimal  `json:"quantity"`
	UnitPrice  *decimal.Decimal `json:"unitPrice,omitempty"` // Nil when the month has no price
	Deleted    bool             `json:"deleted"`
}

// ToSnapshotResponse converts a domain.AssetSnapshot to SnapshotResponse DTO
func ToSnapshotResponse(s *domain.AssetSnapshot) SnapshotResponse {
	resp := SnapshotResponse{
		SnapshotID: s.SnapshotID,
		AssetID:    s.AssetID,
		Ticker:     s.Ticker,
		Name:       s.Name,
		Kind:       s.Kind,
		Month:      s.Month,
		Quantity:   s.Quantity,
		Deleted:    s.Deleted,
	}
	if s.HasPrice {
		price := s.UnitPrice
		resp.UnitPrice = &price
	}
	return resp
}

// ListSnapshotsResponse wraps the list of snapshots.
type ListSnapshotsResponse struct {
	Snapshots []SnapshotResponse `json:"snapshots"`
}

func toComponentDTOs(components []domain.AssetComponent) []AssetComponentDTO {
	if len(components) == 0 {
		return nil
	}
	res := make([]AssetComponentDTO, len(components))
	for i, c := range components {
		res[i] = AssetComponentDTO{Name: c.Name, Percent: c.Percent}
	}
	return res
}

// ToDomainComponents converts component DTOs to their domain form.
func ToDomainComponents(components []AssetComponentDTO) []domain.AssetComponent {
	if len(components) == 0 {
		return nil
	}
	res := make([]domain.AssetComponent, len(components))
	for i, c := range components {
		res[i] = domain.AssetComponent{Name: c.Name, Percent: c.Percent}
	}
	return res
}
