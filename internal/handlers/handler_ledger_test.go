package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/apperrors"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	portssvc "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/services"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/dto"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetEntryByID(ctx context.Context, userID string, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) ListEntries(ctx context.Context, userID string, window domain.ReportingWindow, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, userID, window, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.LedgerEntry), token, args.Error(2)
}
func (m *MockLedgerService) Summarize(ctx context.Context, userID string, window domain.ReportingWindow, filter domain.EntryFilter) (*domain.CashflowSummary, error) {
	args := m.Called(ctx, userID, window, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashflowSummary), args.Error(1)
}
func (m *MockLedgerService) CategoryTotals(ctx context.Context, userID string, window domain.ReportingWindow, filter domain.EntryFilter) ([]domain.CategoryTotal, error) {
	args := m.Called(ctx, userID, window, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryTotal), args.Error(1)
}
func (m *MockLedgerService) MonthlyTotals(ctx context.Context, userID string, window domain.ReportingWindow, filter domain.EntryFilter) ([]domain.MonthlyTotal, error) {
	args := m.Called(ctx, userID, window, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyTotal), args.Error(1)
}
func (m *MockLedgerService) CreateEntry(ctx context.Context, userID string, req dto.CreateEntryRequest) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) UpdateEntry(ctx context.Context, userID string, entryID string, req dto.UpdateEntryRequest) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, entryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) DeleteEntry(ctx context.Context, userID string, entryID string, mode domain.DeletionMode) (int, error) {
	args := m.Called(ctx, userID, entryID, mode)
	return args.Int(0), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	jwtSecret         string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *LedgerHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "nwt-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockLedgerService = new(MockLedgerService)

	v1 := suite.router.Group("/api/v1")
	registerLedgerRoutes(v1, suite.mockLedgerService)
}

// doRequest runs an authenticated request through the router.
func (suite *LedgerHandlerTestSuite) doRequest(method, url string, body any, userID string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *LedgerHandlerTestSuite) TestCreateEntry_Success() {
	userID := uuid.NewString()
	reqBody := dto.CreateEntryRequest{
		Type:     domain.EntryTypeVariable,
		Category: "Groceries",
		Amount:   decimal.NewFromInt(80),
		Date:     time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
	}
	created := []domain.LedgerEntry{
		{
			EntryID:  uuid.NewString(),
			UserID:   userID,
			Type:     domain.EntryTypeVariable,
			Category: "Groceries",
			Amount:   decimal.NewFromInt(-80),
			Date:     reqBody.Date,
		},
	}

	suite.mockLedgerService.On("CreateEntry",
		mock.Anything,
		userID,
		mock.MatchedBy(func(r dto.CreateEntryRequest) bool {
			return r.Category == "Groceries" && r.Amount.Equal(decimal.NewFromInt(80))
		}),
	).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/entries", reqBody, userID)

	suite.Equal(http.StatusCreated, w.Code)

	var responseBody dto.ListEntriesResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.Require().NoError(err)
	suite.Require().Len(responseBody.Entries, 1)
	suite.Equal(created[0].EntryID, responseBody.Entries[0].EntryID)
	suite.True(responseBody.Entries[0].Amount.Equal(decimal.NewFromInt(-80)))

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestCreateEntry_ValidationErrorReturns400() {
	userID := uuid.NewString()
	reqBody := dto.CreateEntryRequest{
		Type:             domain.EntryTypeFixed,
		Category:         "Rent",
		Amount:           decimal.NewFromInt(900),
		Date:             time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		RecurrenceMonths: 6,
		Installments:     3,
	}

	suite.mockLedgerService.On("CreateEntry", mock.Anything, userID, mock.Anything).
		Return(nil, fmt.Errorf("recurrence and installments are mutually exclusive: %w", apperrors.ErrValidation)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/entries", reqBody, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestListEntries_PassesWindowAndFilter() {
	userID := uuid.NewString()

	suite.mockLedgerService.On("ListEntries",
		mock.Anything,
		userID,
		domain.ReportingWindow{Year: 2025, Month: time.March},
		mock.MatchedBy(func(f domain.EntryFilter) bool {
			return f.Type == domain.EntryTypeVariable && f.Category == "Groceries"
		}),
		0,
		(*string)(nil),
	).Return([]domain.LedgerEntry{}, nil, nil).Once()

	url := "/api/v1/entries?year=2025&month=3&type=VARIABLE&category=Groceries"
	w := suite.doRequest(http.MethodGet, url, nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestListEntries_InvalidTypeReturns400() {
	userID := uuid.NewString()

	w := suite.doRequest(http.MethodGet, "/api/v1/entries?type=BOGUS", nil, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "ListEntries")
}

func (suite *LedgerHandlerTestSuite) TestGetEntry_NotFound() {
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockLedgerService.On("GetEntryByID", mock.Anything, userID, entryID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/entries/"+entryID, nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestDeleteEntry_SeriesModeReportsCount() {
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockLedgerService.On("DeleteEntry", mock.Anything, userID, entryID, domain.DeletionSeries).
		Return(5, nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/entries/"+entryID+"?mode=SERIES", nil, userID)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.DeleteEntriesResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.Require().NoError(err)
	suite.Equal(5, responseBody.Deleted)

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestDeleteEntry_DefaultsToSingleMode() {
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockLedgerService.On("DeleteEntry", mock.Anything, userID, entryID, domain.DeletionSingle).
		Return(1, nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/entries/"+entryID, nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestRequestsWithoutTokenAreRejected() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/entries", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "ListEntries")
}

// --- Run Test Suite ---
func TestLedgerHandler(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
