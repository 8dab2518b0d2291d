package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceDisplayMode selects whether price-history cells show unit prices or
// total position values. Cash-equivalent holdings always show total value.
type PriceDisplayMode string

const (
	PriceDisplayUnit  PriceDisplayMode = "UNIT"
	PriceDisplayTotal PriceDisplayMode = "TOTAL"
)

// PriceTrend is the month-over-month direction of a cell relative to the
// nearest strictly earlier month with a known price for the same asset.
type PriceTrend string

const (
	PriceTrendUp   PriceTrend = "UP"
	PriceTrendDown PriceTrend = "DOWN"
	PriceTrendFlat PriceTrend = "FLAT"
)

// PriceCell is one asset-month intersection of the price-history table.
// HasData false marks a month with no snapshot price; such cells render an
// explicit no-data marker and never participate in trend comparisons.
type PriceCell struct {
	Month    time.Time       `json:"month"`
	HasData  bool            `json:"hasData"`
	Price    decimal.Decimal `json:"price"`    // Unit price as recorded
	Value    decimal.Decimal `json:"value"`    // What the cell displays per mode
	Total    decimal.Decimal `json:"total"`    // Quantity x price
	Quantity decimal.Decimal `json:"quantity"` //
	Trend    PriceTrend      `json:"trend"`
}

// PriceHistoryRow is one asset's row across every month in range. Rows exist
// for deleted assets too, so history keeps rendering after removal.
type PriceHistoryRow struct {
	AssetID string      `json:"assetID"`
	Ticker  string      `json:"ticker"`
	Name    string      `json:"name"`
	Kind    AssetKind   `json:"kind"`
	Deleted bool        `json:"deleted"`
	Cells   []PriceCell `json:"cells"`

	// Nil when fewer than two qualifying months exist.
	YTDPercent       *decimal.Decimal `json:"ytdPercent,omitempty"`
	FromStartPercent *decimal.Decimal `json:"fromStartPercent,omitempty"`
}

// MonthColumn labels one reporting period of the table, e.g. "01/25".
type MonthColumn struct {
	Month time.Time `json:"month"`
	Label string    `json:"label"`
}

// PriceHistoryTable is the derived asset-by-month table, never persisted.
type PriceHistoryTable struct {
	Mode    PriceDisplayMode  `json:"mode"`
	Columns []MonthColumn     `json:"columns"`
	Rows    []PriceHistoryRow `json:"rows"`
	Totals  *PriceHistoryRow  `json:"totals,omitempty"` // Aggregate row over asset totals
}
