package mapping

import (
	"database/sql"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	m := models.LedgerEntry{
		EntryID:     d.EntryID,
		UserID:      d.UserID,
		EntryType:   string(d.Type),
		Category:    d.Category,
		Amount:      d.Amount,
		EntryDate:   d.Date,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.Subcategory != "" {
		m.Subcategory = sql.NullString{String: d.Subcategory, Valid: true}
	}
	if d.Note != "" {
		m.Note = sql.NullString{String: d.Note, Valid: true}
	}
	if d.SeriesID != "" {
		m.SeriesID = sql.NullString{String: d.SeriesID, Valid: true}
	}
	if d.InstallmentOf > 0 {
		m.Installment = sql.NullInt32{Int32: int32(d.Installment), Valid: true}
		m.InstallmentOf = sql.NullInt32{Int32: int32(d.InstallmentOf), Valid: true}
	}
	return m
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	d := domain.LedgerEntry{
		EntryID:     m.EntryID,
		UserID:      m.UserID,
		Type:        domain.EntryType(m.EntryType),
		Category:    m.Category,
		Amount:      m.Amount,
		Date:        m.EntryDate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.Subcategory.Valid {
		d.Subcategory = m.Subcategory.String
	}
	if m.Note.Valid {
		d.Note = m.Note.String
	}
	if m.SeriesID.Valid {
		d.SeriesID = m.SeriesID.String
	}
	if m.Installment.Valid {
		d.Installment = int(m.Installment.Int32)
	}
	if m.InstallmentOf.Valid {
		d.InstallmentOf = int(m.InstallmentOf.Int32)
	}
	return d
}

// ToDomainLedgerEntrySlice converts a slice of model entries to domain entries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
