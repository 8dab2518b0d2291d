package models

import (
	"github.com/shopspring/decimal"
)

// Asset represents one assets row. Composition is a JSONB document holding
// the allocation breakdown, nil when none was provided.
type Asset struct {
	AssetID      string          `db:"asset_id"`
	UserID       string          `db:"user_id"`
	Ticker       string          `db:"ticker"`
	Name         string          `db:"name"`
	Kind         string          `db:"kind"`
	Quantity     decimal.Decimal `db:"quantity"`
	AvgBuyPrice  decimal.Decimal `db:"avg_buy_price"`
	CurrentPrice decimal.Decimal `db:"current_price"`
	Currency     string          `db:"currency"`
	Composition  []byte          `db:"composition"`
	Deleted      bool            `db:"deleted"`
	AuditFields
}
