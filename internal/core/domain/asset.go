package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetKind distinguishes priced securities from cash-equivalent holdings.
// Cash positions always display total value; their unit price is pegged at 1.
type AssetKind string

const (
	AssetKindSecurity AssetKind = "SECURITY"
	AssetKindCash     AssetKind = "CASH"
)

// IsValid reports whether the kind is one of the known asset kinds.
func (k AssetKind) IsValid() bool {
	return k == AssetKindSecurity || k == AssetKindCash
}

// AssetComponent is one slice of an asset's allocation breakdown.
type AssetComponent struct {
	Name    string          `json:"name"`
	Percent decimal.Decimal `json:"percent"`
}

// Asset represents one portfolio holding.
type Asset struct {
	AssetID      string          `json:"assetID"` // Primary Key (e.g., UUID)
	UserID       string          `json:"userID"`
	Ticker       string          `json:"ticker"`
	Name         string          `json:"name"`
	Kind         AssetKind       `json:"kind"`
	Quantity     decimal.Decimal `json:"quantity"`
	AvgBuyPrice  decimal.Decimal `json:"avgBuyPrice"` // Average acquisition price per unit
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	Currency     string          `json:"currency"`

	// Optional allocation breakdown; percents must sum to exactly 100 when present.
	Composition []AssetComponent `json:"composition,omitempty"`

	// Soft delete: historical snapshots of deleted assets keep rendering.
	Deleted bool `json:"deleted"`
	AuditFields
}

// ValidateComposition checks the percent-sum rule for the allocation breakdown.
// An empty composition is valid; a non-empty one must sum to exactly 100.
func (a Asset) ValidateComposition() bool {
	if len(a.Composition) == 0 {
		return true
	}
	sum := decimal.Zero
	for _, c := range a.Composition {
		sum = sum.Add(c.Percent)
	}
	return sum.Equal(decimal.NewFromInt(100))
}

// AssetSnapshot records one holding's state at a month boundary. Snapshots
// are produced by the capture operation and consumed read-only by reports.
type AssetSnapshot struct {
	SnapshotID string          `json:"snapshotID"` // Primary Key (e.g., UUID)
	UserID     string          `json:"userID"`
	AssetID    string          `json:"assetID"`
	Ticker     string          `json:"ticker"`
	Name       string          `json:"name"`
	Kind       AssetKind       `json:"kind"`
	Month      time.Time       `json:"month"` // Normalized to the first of the month, UTC
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	HasPrice   bool            `json:"hasPrice"` // False renders as "no data", never as zero
	Deleted    bool            `json:"deleted"`
	AuditFields
}

// TotalValue is the position value at the snapshot month.
func (s AssetSnapshot) TotalValue() decimal.Decimal {
	if !s.HasPrice {
		return decimal.Zero
	}
	return s.Quantity.Mul(s.UnitPrice)
}

// MonthKey normalizes a date to its month boundary in UTC.
func MonthKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
