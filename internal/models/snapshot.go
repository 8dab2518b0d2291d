package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetSnapshot represents one asset_snapshots row. UnitPrice is nullable;
// a NULL price is a month with no data, distinct from a zero price.
type AssetSnapshot struct {
	SnapshotID string              `db:"snapshot_id"`
	UserID     string              `db:"user_id"`
	AssetID    string              `db:"asset_id"`
	Ticker     string              `db:"ticker"`
	Name       string              `db:"name"`
	Kind       string              `db:"kind"`
	Month      time.Time           `db:"month"`
	Quantity   decimal.Decimal     `db:"quantity"`
	UnitPrice  decimal.NullDecimal `db:"unit_price"`
	Deleted    bool                `db:"deleted"`
	AuditFields
}
