package dto

import (
	"time"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest defines the data needed to create a ledger entry.
// Amount may be sent as a magnitude; the service signs it by convention
// (income positive, expense types negative). RecurrenceMonths creates that
// many monthly clones sharing a series; Installments splits the amount
// across that many monthly entries tagged "k of n". The two are exclusive.
type CreateEntryRequest struct {
	Type             domain.EntryType `json:"type" binding:"required,oneof=INCOME FIXED VARIABLE DEBT"`
	Category         string           `json:"category" binding:"required"`
	Subcategory      string           `json:"subcategory"`
	Amount           decimal.Decimal  `json:"amount" binding:"required"`
	Date             time.Time        `json:"date" binding:"required"`
	Note             string           `json:"note"`
	RecurrenceMonths int              `json:"recurrenceMonths" binding:"omitempty,min=2,max=120"`
	Installments     int              `json:"installments" binding:"omitempty,min=2,max=120"`
}

// UpdateEntryRequest defines the data allowed for updating an entry.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateEntryRequest struct {
	Category    *string          `json:"category"`
	Subcategory *string          `json:"subcategory"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *time.Time       `json:"date"`
	Note        *string          `json:"note"`
}

// ListEntriesParams defines query parameters for listing entries. The
// hierarchical filter cascades server-side: a category without a type, or a
// subcategory without a category, is rejected as unrepresentable.
type ListEntriesParams struct {
	Year        int     `form:"year"`
	Month       int     `form:"month" binding:"omitempty,min=1,max=12"`
	Type        string  `form:"type" binding:"omitempty,oneof=INCOME FIXED VARIABLE DEBT"`
	Category    string  `form:"category"`
	Subcategory string  `form:"subcategory"`
	Limit       int     `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken   *string `form:"nextToken"`
}

// DeleteEntryParams selects how far a delete reaches into a series.
type DeleteEntryParams struct {
	Mode string `form:"mode,default=SINGLE" binding:"omitempty,oneof=SINGLE SERIES FUTURE"`
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID       string           `json:"entryID"`
	Type          domain.EntryType `json:"type"`
	Category      string           `json:"category"`
	Subcategory   string           `json:"subcategory,omitempty"`
	Amount        decimal.Decimal  `json:"amount"`
	Date          time.Time        `json:"date"`
	Note          string           `json:"note,omitempty"`
	SeriesID      string           `json:"seriesID,omitempty"`
	Installment   int              `json:"installment,omitempty"`
	InstallmentOf int              `json:"installmentOf,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
}

// ToEntryResponse converts a domain.LedgerEntry to EntryResponse DTO
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:       e.EntryID,
		Type:          e.Type,
		Category:      e.Category,
		Subcategory:   e.Subcategory,
		Amount:        e.Amount,
		Date:          e.Date,
		Note:          e.Note,
		SeriesID:      e.SeriesID,
		Installment:   e.Installment,
		InstallmentOf: e.InstallmentOf,
		CreatedAt:     e.CreatedAt,
		LastUpdatedAt: e.LastUpdatedAt,
	}
}

// ToEntryResponseList converts a slice of domain entries to DTOs
func ToEntryResponseList(entries []domain.LedgerEntry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i := range entries {
		res[i] = ToEntryResponse(&entries[i])
	}
	return res
}

// ListEntriesResponse wraps the list of entries. NextToken is set when the
// page was cut off by the limit; passing it back resumes after the last entry.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// DeleteEntriesResponse reports how many entries a smart delete removed.
type DeleteEntriesResponse struct {
	Deleted int `json:"deleted"`
}
