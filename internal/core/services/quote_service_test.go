package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/apperrors"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	portssvc "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/services"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockQuoteProvider is a mock type for the QuoteProvider interface
type MockQuoteProvider struct {
	mock.Mock
}

func (m *MockQuoteProvider) GetQuote(ctx context.Context, ticker string) (domain.Quote, error) {
	args := m.Called(ctx, ticker)
	return args.Get(0).(domain.Quote), args.Error(1)
}

// --- Test Suite Setup ---

type QuoteServiceTestSuite struct {
	suite.Suite
	mockProvider  *MockQuoteProvider
	mockAssetRepo *MockAssetRepository
	service       portssvc.QuoteSvcFacade
}

func (suite *QuoteServiceTestSuite) SetupTest() {
	suite.mockProvider = new(MockQuoteProvider)
	suite.mockAssetRepo = new(MockAssetRepository)
	suite.service = services.NewQuoteService(suite.mockProvider, suite.mockAssetRepo, 2)
}

// --- Test Cases ---

func (suite *QuoteServiceTestSuite) TestGetQuote_Success() {
	ctx := context.Background()
	suite.mockProvider.On("GetQuote", ctx, "VWCE").
		Return(domain.Quote{Ticker: "VWCE", Price: decimal.NewFromInt(110), Currency: "EUR"}, nil).Once()

	quote, err := suite.service.GetQuote(ctx, "VWCE")

	suite.Require().NoError(err)
	suite.True(quote.Price.Equal(decimal.NewFromInt(110)))
}

func (suite *QuoteServiceTestSuite) TestGetQuote_EmptyTickerRejected() {
	_, err := suite.service.GetQuote(context.Background(), "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProvider.AssertNotCalled(suite.T(), "GetQuote")
}

func (suite *QuoteServiceTestSuite) TestGetQuote_UnavailableMapsToNotFound() {
	ctx := context.Background()
	suite.mockProvider.On("GetQuote", ctx, "GONE").
		Return(domain.Quote{Ticker: "GONE"}, nil).Once()

	_, err := suite.service.GetQuote(ctx, "GONE")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *QuoteServiceTestSuite) TestRefreshPrices_CollectsFailuresWithoutAborting() {
	ctx := context.Background()
	userID := uuid.NewString()
	good := assetFor(userID, "VWCE", domain.AssetKindSecurity, 10, 100)
	bad := assetFor(userID, "GONE", domain.AssetKindSecurity, 5, 50)

	suite.mockAssetRepo.On("ListAssets", ctx, userID, false).
		Return([]domain.Asset{good, bad}, nil).Once()

	suite.mockProvider.On("GetQuote", mock.Anything, "VWCE").
		Return(domain.Quote{Ticker: "VWCE", Price: decimal.NewFromInt(115), Currency: "EUR"}, nil).Once()
	suite.mockProvider.On("GetQuote", mock.Anything, "GONE").
		Return(domain.Quote{}, errors.New("upstream timeout")).Once()

	suite.mockAssetRepo.On("UpdateAssetPrice", mock.Anything, good.AssetID, decimal.NewFromInt(115), userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	result, err := suite.service.RefreshPrices(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(1, result.Updated)
	suite.Equal([]string{"GONE"}, result.Failed)
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *QuoteServiceTestSuite) TestRefreshPrices_SkipsCashHoldings() {
	ctx := context.Background()
	userID := uuid.NewString()
	cash := assetFor(userID, "CASH", domain.AssetKindCash, 1500, 1)

	suite.mockAssetRepo.On("ListAssets", ctx, userID, false).
		Return([]domain.Asset{cash}, nil).Once()

	result, err := suite.service.RefreshPrices(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(0, result.Updated)
	suite.Empty(result.Failed)
	suite.mockProvider.AssertNotCalled(suite.T(), "GetQuote")
}

func (suite *QuoteServiceTestSuite) TestRefreshPrices_UnavailableQuoteCounted() {
	ctx := context.Background()
	userID := uuid.NewString()
	asset := assetFor(userID, "ZERO", domain.AssetKindSecurity, 1, 10)

	suite.mockAssetRepo.On("ListAssets", ctx, userID, false).
		Return([]domain.Asset{asset}, nil).Once()
	suite.mockProvider.On("GetQuote", mock.Anything, "ZERO").
		Return(domain.Quote{Ticker: "ZERO", Price: decimal.Zero}, nil).Once()

	result, err := suite.service.RefreshPrices(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(0, result.Updated)
	suite.Equal([]string{"ZERO"}, result.Failed)
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "UpdateAssetPrice")
}

func TestQuoteService(t *testing.T) {
	suite.Run(t, new(QuoteServiceTestSuite))
}
