package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/apperrors"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/services"
	portssvc "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/services"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockEntryRepository is a mock type for the EntryRepositoryFacade interface
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) FindEntriesByUser(ctx context.Context, userID string, window domain.ReportingWindow) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) FindEntriesBySeries(ctx context.Context, userID string, seriesID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, seriesID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) SaveEntries(ctx context.Context, entries []domain.LedgerEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) DeleteEntry(ctx context.Context, userID string, entryID string) error {
	args := m.Called(ctx, userID, entryID)
	return args.Error(0)
}

func (m *MockEntryRepository) DeleteEntriesBySeries(ctx context.Context, userID string, seriesID string, notBefore time.Time) (int, error) {
	args := m.Called(ctx, userID, seriesID, notBefore)
	return args.Int(0), args.Error(1)
}

// --- Test Suite Setup ---

type LedgerServiceTestSuite struct {
	suite.Suite
	mockRepo *MockEntryRepository
	service  portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockEntryRepository)
	suite.service = services.NewLedgerService(suite.mockRepo)
}

func entryOn(userID string, t domain.EntryType, category string, amount int64, date time.Time) domain.LedgerEntry {
	signed := decimal.NewFromInt(amount)
	if t != domain.EntryTypeIncome {
		signed = signed.Abs().Neg()
	}
	return domain.LedgerEntry{
		EntryID:  uuid.NewString(),
		UserID:   userID,
		Type:     t,
		Category: category,
		Amount:   signed,
		Date:     date,
	}
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestCreateEntry_SignsExpenseAmounts() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateEntryRequest{
		Type:     domain.EntryTypeVariable,
		Category: "Groceries",
		Amount:   decimal.NewFromInt(80),
		Date:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	var saved []domain.LedgerEntry
	suite.mockRepo.On("SaveEntries", ctx, mock.AnythingOfType("[]domain.LedgerEntry")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).([]domain.LedgerEntry)
		}).Return(nil).Once()

	created, err := suite.service.CreateEntry(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().Len(created, 1)
	suite.True(created[0].Amount.Equal(decimal.NewFromInt(-80)), "expense amounts are stored negative")
	suite.Empty(created[0].SeriesID)
	suite.Require().Len(saved, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_RecurrenceExpandsMonthly() {
	ctx := context.Background()
	userID := uuid.NewString()
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	req := dto.CreateEntryRequest{
		Type:             domain.EntryTypeFixed,
		Category:         "Rent",
		Amount:           decimal.NewFromInt(700),
		Date:             start,
		RecurrenceMonths: 3,
	}

	suite.mockRepo.On("SaveEntries", ctx, mock.AnythingOfType("[]domain.LedgerEntry")).Return(nil).Once()

	created, err := suite.service.CreateEntry(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().Len(created, 3)
	seriesID := created[0].SeriesID
	suite.NotEmpty(seriesID)
	for i, e := range created {
		suite.Equal(seriesID, e.SeriesID)
		suite.True(e.Amount.Equal(decimal.NewFromInt(-700)))
		suite.Equal(start.AddDate(0, i, 0), e.Date)
	}
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_InstallmentsAbsorbRoundingRemainder() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateEntryRequest{
		Type:         domain.EntryTypeDebt,
		Category:     "Laptop",
		Amount:       decimal.NewFromInt(100),
		Date:         time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Installments: 3,
	}

	suite.mockRepo.On("SaveEntries", ctx, mock.AnythingOfType("[]domain.LedgerEntry")).Return(nil).Once()

	created, err := suite.service.CreateEntry(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().Len(created, 3)

	sum := decimal.Zero
	for i, e := range created {
		suite.Equal(i+1, e.Installment)
		suite.Equal(3, e.InstallmentOf)
		sum = sum.Add(e.Amount)
	}
	suite.True(sum.Equal(decimal.NewFromInt(-100)), "series must sum exactly to the signed amount, got %s", sum)
	suite.True(created[0].Amount.Equal(created[1].Amount))
	suite.False(created[2].Amount.Equal(created[0].Amount), "last installment absorbs the remainder")
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_RecurrenceAndInstallmentsExclusive() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		Type:             domain.EntryTypeFixed,
		Category:         "Rent",
		Amount:           decimal.NewFromInt(700),
		Date:             time.Now(),
		RecurrenceMonths: 3,
		Installments:     3,
	}

	_, err := suite.service.CreateEntry(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveEntries")
}

func (suite *LedgerServiceTestSuite) TestSummarize_Aggregates() {
	ctx := context.Background()
	userID := uuid.NewString()
	march := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	entries := []domain.LedgerEntry{
		entryOn(userID, domain.EntryTypeIncome, "Salary", 1000, march),
		entryOn(userID, domain.EntryTypeFixed, "Rent", 400, march),
		entryOn(userID, domain.EntryTypeVariable, "Groceries", 100, march),
	}

	suite.mockRepo.On("FindEntriesByUser", ctx, userID, mock.AnythingOfType("domain.ReportingWindow")).
		Return(entries, nil).Once()

	summary, err := suite.service.Summarize(ctx, userID, domain.ReportingWindow{}, domain.EntryFilter{})

	suite.Require().NoError(err)
	suite.True(summary.TotalIncome.Equal(decimal.NewFromInt(1000)))
	suite.True(summary.TotalExpenses.Equal(decimal.NewFromInt(500)))
	suite.True(summary.NetBalance.Equal(decimal.NewFromInt(500)))
	suite.Require().NotNil(summary.IncomeExpenseRatio)
	suite.True(summary.IncomeExpenseRatio.Equal(decimal.NewFromInt(2)))
}

func (suite *LedgerServiceTestSuite) TestSummarize_NoExpensesLeavesRatioNil() {
	ctx := context.Background()
	userID := uuid.NewString()
	entries := []domain.LedgerEntry{
		entryOn(userID, domain.EntryTypeIncome, "Salary", 1000, time.Now()),
	}

	suite.mockRepo.On("FindEntriesByUser", ctx, userID, mock.AnythingOfType("domain.ReportingWindow")).
		Return(entries, nil).Once()

	summary, err := suite.service.Summarize(ctx, userID, domain.ReportingWindow{}, domain.EntryFilter{})

	suite.Require().NoError(err)
	suite.Nil(summary.IncomeExpenseRatio)
}

func (suite *LedgerServiceTestSuite) TestGetEntryByID_CrossUserReadsAsNotFound() {
	ctx := context.Background()
	owner := uuid.NewString()
	intruder := uuid.NewString()
	entry := entryOn(owner, domain.EntryTypeIncome, "Salary", 100, time.Now())

	suite.mockRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()

	_, err := suite.service.GetEntryByID(ctx, intruder, entry.EntryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestDeleteEntry_SingleMode() {
	ctx := context.Background()
	userID := uuid.NewString()
	entry := entryOn(userID, domain.EntryTypeVariable, "Groceries", 50, time.Now())
	entry.SeriesID = uuid.NewString()

	suite.mockRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()
	suite.mockRepo.On("DeleteEntry", ctx, userID, entry.EntryID).Return(nil).Once()

	deleted, err := suite.service.DeleteEntry(ctx, userID, entry.EntryID, domain.DeletionSingle)

	suite.Require().NoError(err)
	suite.Equal(1, deleted)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteEntriesBySeries")
}

func (suite *LedgerServiceTestSuite) TestDeleteEntry_SeriesMode() {
	ctx := context.Background()
	userID := uuid.NewString()
	entry := entryOn(userID, domain.EntryTypeFixed, "Rent", 700, time.Now())
	entry.SeriesID = uuid.NewString()

	suite.mockRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()
	suite.mockRepo.On("DeleteEntriesBySeries", ctx, userID, entry.SeriesID, time.Time{}).Return(4, nil).Once()

	deleted, err := suite.service.DeleteEntry(ctx, userID, entry.EntryID, domain.DeletionSeries)

	suite.Require().NoError(err)
	suite.Equal(4, deleted)
}

func (suite *LedgerServiceTestSuite) TestDeleteEntry_FutureModePassesEntryDate() {
	ctx := context.Background()
	userID := uuid.NewString()
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	entry := entryOn(userID, domain.EntryTypeFixed, "Rent", 700, date)
	entry.SeriesID = uuid.NewString()

	suite.mockRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()
	suite.mockRepo.On("DeleteEntriesBySeries", ctx, userID, entry.SeriesID, date).Return(2, nil).Once()

	deleted, err := suite.service.DeleteEntry(ctx, userID, entry.EntryID, domain.DeletionFuture)

	suite.Require().NoError(err)
	suite.Equal(2, deleted)
}

func (suite *LedgerServiceTestSuite) TestDeleteEntry_SeriesModeWithoutSeriesDegradesToSingle() {
	ctx := context.Background()
	userID := uuid.NewString()
	entry := entryOn(userID, domain.EntryTypeVariable, "Groceries", 50, time.Now())

	suite.mockRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()
	suite.mockRepo.On("DeleteEntry", ctx, userID, entry.EntryID).Return(nil).Once()

	deleted, err := suite.service.DeleteEntry(ctx, userID, entry.EntryID, domain.DeletionSeries)

	suite.Require().NoError(err)
	suite.Equal(1, deleted)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteEntriesBySeries")
}

func (suite *LedgerServiceTestSuite) TestListEntries_PaginatesWithCursor() {
	ctx := context.Background()
	userID := uuid.NewString()

	entries := make([]domain.LedgerEntry, 3)
	for i := range entries {
		e := entryOn(userID, domain.EntryTypeVariable, "Groceries", 10, time.Date(2025, time.March, 1+i, 0, 0, 0, 0, time.UTC))
		e.CreatedAt = time.Date(2025, time.March, 1+i, 12, 0, 0, 0, time.UTC)
		entries[i] = e
	}

	window := domain.ReportingWindow{Year: 2025, Month: time.March}
	suite.mockRepo.On("FindEntriesByUser", ctx, userID, window).Return(entries, nil).Twice()

	firstPage, token, err := suite.service.ListEntries(ctx, userID, window, domain.EntryFilter{}, 2, nil)
	suite.Require().NoError(err)
	suite.Require().Len(firstPage, 2)
	suite.Require().NotNil(token)
	suite.Equal(entries[0].EntryID, firstPage[0].EntryID)
	suite.Equal(entries[1].EntryID, firstPage[1].EntryID)

	secondPage, token, err := suite.service.ListEntries(ctx, userID, window, domain.EntryFilter{}, 2, token)
	suite.Require().NoError(err)
	suite.Require().Len(secondPage, 1)
	suite.Nil(token)
	suite.Equal(entries[2].EntryID, secondPage[0].EntryID)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestListEntries_RejectsMalformedCursor() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("FindEntriesByUser", ctx, userID, domain.ReportingWindow{}).
		Return([]domain.LedgerEntry{}, nil).Once()

	bogus := "not-a-cursor"
	_, _, err := suite.service.ListEntries(ctx, userID, domain.ReportingWindow{}, domain.EntryFilter{}, 10, &bogus)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
