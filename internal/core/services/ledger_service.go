package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/apperrors"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	portsrepo "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/repositories"
	portssvc "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/services"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/dto"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerService implements the LedgerSvcFacade interface
type ledgerService struct {
	BaseService
	entryRepo portsrepo.EntryRepositoryFacade
}

// NewLedgerService creates a new ledger service
func NewLedgerService(entryRepo portsrepo.EntryRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{entryRepo: entryRepo}
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// signAmount applies the ledger sign convention: income positive, expense
// types negative. Clients may send either a magnitude or an already signed
// amount; both normalize to the same stored value.
func signAmount(t domain.EntryType, amount decimal.Decimal) decimal.Decimal {
	if t == domain.EntryTypeIncome {
		return amount.Abs()
	}
	return amount.Abs().Neg()
}

func (s *ledgerService) CreateEntry(ctx context.Context, userID string, req dto.CreateEntryRequest) ([]domain.LedgerEntry, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("unknown entry type %q: %w", req.Type, apperrors.ErrValidation)
	}
	if req.RecurrenceMonths > 0 && req.Installments > 0 {
		return nil, fmt.Errorf("recurrence and installments are mutually exclusive: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	amount := signAmount(req.Type, req.Amount)

	base := domain.LedgerEntry{
		UserID:      userID,
		Type:        req.Type,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Date:        req.Date,
		Note:        req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	var entries []domain.LedgerEntry
	switch {
	case req.RecurrenceMonths > 0:
		// Monthly clones of the same amount sharing a series.
		seriesID := uuid.NewString()
		entries = make([]domain.LedgerEntry, req.RecurrenceMonths)
		for i := 0; i < req.RecurrenceMonths; i++ {
			e := base
			e.EntryID = uuid.NewString()
			e.SeriesID = seriesID
			e.Amount = amount
			e.Date = req.Date.AddDate(0, i, 0)
			entries[i] = e
		}
	case req.Installments > 0:
		// The amount splits across the installments; the last one absorbs the
		// rounding remainder so the series sums exactly to the original amount.
		seriesID := uuid.NewString()
		per := amount.Div(decimal.NewFromInt(int64(req.Installments))).Round(2)
		entries = make([]domain.LedgerEntry, req.Installments)
		for i := 0; i < req.Installments; i++ {
			e := base
			e.EntryID = uuid.NewString()
			e.SeriesID = seriesID
			e.Installment = i + 1
			e.InstallmentOf = req.Installments
			e.Amount = per
			if i == req.Installments-1 {
				e.Amount = amount.Sub(per.Mul(decimal.NewFromInt(int64(req.Installments - 1))))
			}
			e.Date = req.Date.AddDate(0, i, 0)
			entries[i] = e
		}
	default:
		e := base
		e.EntryID = uuid.NewString()
		e.Amount = amount
		entries = []domain.LedgerEntry{e}
	}

	if err := s.entryRepo.SaveEntries(ctx, entries); err != nil {
		s.LogError(ctx, err, "Failed to save ledger entries", slog.Int("count", len(entries)))
		return nil, fmt.Errorf("failed to save entries: %w", err)
	}

	s.LogInfo(ctx, "Ledger entries created", slog.Int("count", len(entries)), slog.String("type", string(req.Type)))
	return entries, nil
}

func (s *ledgerService) GetEntryByID(ctx context.Context, userID string, entryID string) (*domain.LedgerEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		// Cross-user access reads as not found to obscure existence.
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

func (s *ledgerService) ListEntries(ctx context.Context, userID string, window domain.ReportingWindow, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	entries, err := s.entryRepo.FindEntriesByUser(ctx, userID, window)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entries for window")
		return nil, nil, fmt.Errorf("failed to load entries: %w", err)
	}

	filtered := make([]domain.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if filter.Matches(e) {
			filtered = append(filtered, e)
		}
	}

	// Entries arrive ordered by (entry_date, created_at), the cursor's sort
	// key. A token resumes strictly after the entry it encodes.
	if nextToken != nil && *nextToken != "" {
		cursorDate, cursorCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid nextToken: %w", apperrors.ErrValidation)
		}
		start := len(filtered)
		for i, e := range filtered {
			if e.Date.After(cursorDate) || (e.Date.Equal(cursorDate) && e.CreatedAt.After(cursorCreatedAt)) {
				start = i
				break
			}
		}
		filtered = filtered[start:]
	}

	var token *string
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
		last := filtered[len(filtered)-1]
		t := pagination.EncodeToken(last.Date, last.CreatedAt)
		token = &t
	}
	return filtered, token, nil
}

// Summarize computes the four aggregate scalars over the filtered window.
// TotalIncome - TotalExpenses == NetBalance holds for every filter.
func (s *ledgerService) Summarize(ctx context.Context, userID string, window domain.ReportingWindow, filter domain.EntryFilter) (*domain.CashflowSummary, error) {
	entries, _, err := s.ListEntries(ctx, userID, window, filter, 0, nil)
	if err != nil {
		return nil, err
	}

	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	for _, e := range entries {
		if e.Type == domain.EntryTypeIncome {
			totalIncome = totalIncome.Add(e.Amount)
		} else {
			totalExpenses = totalExpenses.Add(e.Amount.Abs())
		}
	}

	summary := &domain.CashflowSummary{
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		NetBalance:    totalIncome.Sub(totalExpenses),
		Entries:       entries,
	}
	if !totalExpenses.IsZero() {
		ratio := totalIncome.Div(totalExpenses)
		summary.IncomeExpenseRatio = &ratio
	}
	return summary, nil
}

func (s *ledgerService) CategoryTotals(ctx context.Context, userID string, window domain.ReportingWindow, filter domain.EntryFilter) ([]domain.CategoryTotal, error) {
	entries, _, err := s.ListEntries(ctx, userID, window, filter, 0, nil)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal)
	for _, e := range entries {
		sums[e.Category] = sums[e.Category].Add(e.Amount.Abs())
	}

	totals := make([]domain.CategoryTotal, 0, len(sums))
	for key, amount := range sums {
		totals = append(totals, domain.CategoryTotal{Key: key, Amount: amount})
	}
	sort.Slice(totals, func(i, j int) bool {
		if !totals[i].Amount.Equal(totals[j].Amount) {
			return totals[i].Amount.GreaterThan(totals[j].Amount)
		}
		return totals[i].Key < totals[j].Key
	})
	return totals, nil
}

func (s *ledgerService) MonthlyTotals(ctx context.Context, userID string, window domain.ReportingWindow, filter domain.EntryFilter) ([]domain.MonthlyTotal, error) {
	entries, _, err := s.ListEntries(ctx, userID, window, filter, 0, nil)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[time.Time]*domain.MonthlyTotal)
	for _, e := range entries {
		key := domain.MonthKey(e.Date)
		total, ok := byMonth[key]
		if !ok {
			total = &domain.MonthlyTotal{Year: key.Year(), Month: int(key.Month())}
			byMonth[key] = total
		}
		if e.Type == domain.EntryTypeIncome {
			total.Income = total.Income.Add(e.Amount)
		} else {
			total.Expenses = total.Expenses.Add(e.Amount.Abs())
		}
		total.Net = total.Income.Sub(total.Expenses)
	}

	totals := make([]domain.MonthlyTotal, 0, len(byMonth))
	for _, t := range byMonth {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Year != totals[j].Year {
			return totals[i].Year < totals[j].Year
		}
		return totals[i].Month < totals[j].Month
	})
	return totals, nil
}

func (s *ledgerService) UpdateEntry(ctx context.Context, userID string, entryID string, req dto.UpdateEntryRequest) (*domain.LedgerEntry, error) {
	entry, err := s.GetEntryByID(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		entry.Category = *req.Category
	}
	if req.Subcategory != nil {
		entry.Subcategory = *req.Subcategory
	}
	if req.Amount != nil {
		entry.Amount = signAmount(entry.Type, *req.Amount)
	}
	if req.Date != nil {
		entry.Date = *req.Date
	}
	if req.Note != nil {
		entry.Note = *req.Note
	}
	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = userID

	if err := s.entryRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update ledger entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}
	return entry, nil
}

// DeleteEntry applies the smart deletion cascade. SERIES and FUTURE on an
// entry without a series degrade to a single delete.
func (s *ledgerService) DeleteEntry(ctx context.Context, userID string, entryID string, mode domain.DeletionMode) (int, error) {
	if !mode.IsValid() {
		return 0, fmt.Errorf("unknown deletion mode %q: %w", mode, apperrors.ErrValidation)
	}

	entry, err := s.GetEntryByID(ctx, userID, entryID)
	if err != nil {
		return 0, err
	}

	if mode == domain.DeletionSingle || entry.SeriesID == "" {
		if err := s.entryRepo.DeleteEntry(ctx, userID, entryID); err != nil {
			s.LogError(ctx, err, "Failed to delete ledger entry", slog.String("entry_id", entryID))
			return 0, fmt.Errorf("failed to delete entry: %w", err)
		}
		s.LogInfo(ctx, "Ledger entry deleted", slog.String("entry_id", entryID))
		return 1, nil
	}

	notBefore := time.Time{}
	if mode == domain.DeletionFuture {
		notBefore = entry.Date
	}
	deleted, err := s.entryRepo.DeleteEntriesBySeries(ctx, userID, entry.SeriesID, notBefore)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete entry series", slog.String("series_id", entry.SeriesID))
		return 0, fmt.Errorf("failed to delete series: %w", err)
	}
	s.LogInfo(ctx, "Ledger entry series deleted",
		slog.String("series_id", entry.SeriesID),
		slog.String("mode", string(mode)),
		slog.Int("deleted", deleted))
	return deleted, nil
}
