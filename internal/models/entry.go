package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry represents one ledger_entries row. Amounts are signed, income
// positive and expenses negative, stored as NUMERIC.
type LedgerEntry struct {
	EntryID     string          `db:"entry_id"`
	UserID      string          `db:"user_id"`
	EntryType   string          `db:"entry_type"`
	Category    string          `db:"category"`
	Subcategory sql.NullString  `db:"subcategory"`
	Amount      decimal.Decimal `db:"amount"`
	EntryDate   time.Time       `db:"entry_date"`
	Note        sql.NullString  `db:"note"`

	// Recurrence columns; series_id groups recurring or installment clones.
	SeriesID      sql.NullString `db:"series_id"`
	Installment   sql.NullInt32  `db:"installment"`
	InstallmentOf sql.NullInt32  `db:"installment_of"`

	AuditFields
}
