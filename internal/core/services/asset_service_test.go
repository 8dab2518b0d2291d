package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/apperrors"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	portssvc "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/services"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/services"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAssetRepository is a mock type for the AssetRepositoryFacade interface
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) ListAssets(ctx context.Context, userID string, includeDeleted bool) ([]domain.Asset, error) {
	args := m.Called(ctx, userID, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) SaveAsset(ctx context.Context, asset domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) UpdateAsset(ctx context.Context, asset domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) UpdateAssetPrice(ctx context.Context, assetID string, price decimal.Decimal, updatedBy string, now time.Time) error {
	args := m.Called(ctx, assetID, price, updatedBy, now)
	return args.Error(0)
}

func (m *MockAssetRepository) MarkAssetDeleted(ctx context.Context, assetID string, deletedBy string, now time.Time) error {
	args := m.Called(ctx, assetID, deletedBy, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AssetServiceTestSuite struct {
	suite.Suite
	mockAssetRepo    *MockAssetRepository
	mockSnapshotRepo *MockSnapshotRepository
	service          portssvc.AssetSvcFacade
}

func (suite *AssetServiceTestSuite) SetupTest() {
	suite.mockAssetRepo = new(MockAssetRepository)
	suite.mockSnapshotRepo = new(MockSnapshotRepository)
	suite.service = services.NewAssetService(suite.mockAssetRepo, suite.mockSnapshotRepo)
}

func assetFor(userID string, ticker string, kind domain.AssetKind, quantity, price int64) domain.Asset {
	return domain.Asset{
		AssetID:      uuid.NewString(),
		UserID:       userID,
		Ticker:       ticker,
		Name:         ticker,
		Kind:         kind,
		Quantity:     decimal.NewFromInt(quantity),
		AvgBuyPrice:  decimal.NewFromInt(price),
		CurrentPrice: decimal.NewFromInt(price),
		Currency:     "EUR",
	}
}

// --- Test Cases ---

func (suite *AssetServiceTestSuite) TestCreateAsset_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateAssetRequest{
		Ticker:       "VWCE",
		Name:         "Vanguard FTSE All-World",
		Kind:         domain.AssetKindSecurity,
		Quantity:     decimal.NewFromInt(10),
		AvgBuyPrice:  decimal.NewFromInt(100),
		CurrentPrice: decimal.NewFromInt(110),
		Currency:     "EUR",
	}

	suite.mockAssetRepo.On("SaveAsset", ctx, mock.AnythingOfType("domain.Asset")).Return(nil).Once()

	asset, err := suite.service.CreateAsset(ctx, userID, req)

	suite.Require().NoError(err)
	suite.NotEmpty(asset.AssetID)
	suite.Equal(userID, asset.UserID)
	suite.Equal("VWCE", asset.Ticker)
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestCreateAsset_CompositionMustSumTo100() {
	ctx := context.Background()
	req := dto.CreateAssetRequest{
		Ticker:   "LS60",
		Name:     "LifeStrategy 60",
		Kind:     domain.AssetKindSecurity,
		Quantity: decimal.NewFromInt(5),
		Currency: "EUR",
		Composition: []dto.AssetComponentDTO{
			{Name: "Stocks", Percent: decimal.NewFromInt(60)},
			{Name: "Bonds", Percent: decimal.NewFromInt(30)},
		},
	}

	_, err := suite.service.CreateAsset(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "SaveAsset")
}

func (suite *AssetServiceTestSuite) TestCreateAsset_NegativeQuantityRejected() {
	ctx := context.Background()
	req := dto.CreateAssetRequest{
		Ticker:   "VWCE",
		Name:     "Vanguard FTSE All-World",
		Kind:     domain.AssetKindSecurity,
		Quantity: decimal.NewFromInt(-1),
		Currency: "EUR",
	}

	_, err := suite.service.CreateAsset(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AssetServiceTestSuite) TestGetAssetByID_CrossUserReadsAsNotFound() {
	ctx := context.Background()
	owner := uuid.NewString()
	asset := assetFor(owner, "VWCE", domain.AssetKindSecurity, 10, 100)

	suite.mockAssetRepo.On("FindAssetByID", ctx, asset.AssetID).Return(&asset, nil).Once()

	_, err := suite.service.GetAssetByID(ctx, uuid.NewString(), asset.AssetID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AssetServiceTestSuite) TestCaptureSnapshots_NormalizesMonthAndFlagsMissingPrices() {
	ctx := context.Background()
	userID := uuid.NewString()
	priced := assetFor(userID, "VWCE", domain.AssetKindSecurity, 10, 100)
	unpriced := assetFor(userID, "OLD", domain.AssetKindSecurity, 3, 0)

	suite.mockAssetRepo.On("ListAssets", ctx, userID, false).
		Return([]domain.Asset{priced, unpriced}, nil).Once()

	var upserted []domain.AssetSnapshot
	suite.mockSnapshotRepo.On("UpsertSnapshots", ctx, mock.AnythingOfType("[]domain.AssetSnapshot")).
		Run(func(args mock.Arguments) {
			upserted = args.Get(1).([]domain.AssetSnapshot)
		}).Return(nil).Once()

	snapshots, err := suite.service.CaptureSnapshots(ctx, userID, time.Date(2025, 7, 19, 14, 30, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.Require().Len(snapshots, 2)
	suite.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), snapshots[0].Month, "capture month normalizes to the month boundary")
	suite.True(snapshots[0].HasPrice)
	suite.False(snapshots[1].HasPrice, "zero current price records a no-data snapshot")
	suite.Len(upserted, 2)
}

func (suite *AssetServiceTestSuite) TestCaptureSnapshots_NoAssetsSkipsUpsert() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockAssetRepo.On("ListAssets", ctx, userID, false).Return([]domain.Asset{}, nil).Once()

	snapshots, err := suite.service.CaptureSnapshots(ctx, userID, time.Now())

	suite.Require().NoError(err)
	suite.Empty(snapshots)
	suite.mockSnapshotRepo.AssertNotCalled(suite.T(), "UpsertSnapshots")
}

func (suite *AssetServiceTestSuite) TestSimulateSale_ClampsToOwnedQuantity() {
	ctx := context.Background()
	userID := uuid.NewString()
	asset := assetFor(userID, "VWCE", domain.AssetKindSecurity, 10, 100)
	asset.AvgBuyPrice = decimal.NewFromInt(80)

	suite.mockAssetRepo.On("FindAssetByID", ctx, asset.AssetID).Return(&asset, nil).Once()

	sim, err := suite.service.SimulateSale(ctx, userID, asset.AssetID, dto.TaxSimulationRequest{
		Quantity:       decimal.NewFromInt(15),
		TaxRatePercent: decimal.NewFromInt(26),
	})

	suite.Require().NoError(err)
	suite.True(sim.ExceedsOwned, "asking for more than owned must be flagged")
	suite.True(sim.Quantity.Equal(decimal.NewFromInt(10)), "simulated quantity clamps to the owned amount")
}

func (suite *AssetServiceTestSuite) TestSimulateSale_RequiresQuantityOrTargetValue() {
	ctx := context.Background()
	userID := uuid.NewString()
	asset := assetFor(userID, "VWCE", domain.AssetKindSecurity, 10, 100)

	suite.mockAssetRepo.On("FindAssetByID", ctx, asset.AssetID).Return(&asset, nil).Once()

	_, err := suite.service.SimulateSale(ctx, userID, asset.AssetID, dto.TaxSimulationRequest{
		TaxRatePercent: decimal.NewFromInt(26),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AssetServiceTestSuite) TestUpdateAsset_PartialUpdate() {
	ctx := context.Background()
	userID := uuid.NewString()
	asset := assetFor(userID, "VWCE", domain.AssetKindSecurity, 10, 100)

	suite.mockAssetRepo.On("FindAssetByID", ctx, asset.AssetID).Return(&asset, nil).Once()
	suite.mockAssetRepo.On("UpdateAsset", ctx, mock.AnythingOfType("domain.Asset")).Return(nil).Once()

	newQuantity := decimal.NewFromInt(12)
	updated, err := suite.service.UpdateAsset(ctx, userID, asset.AssetID, dto.UpdateAssetRequest{
		Quantity: &newQuantity,
	})

	suite.Require().NoError(err)
	suite.True(updated.Quantity.Equal(newQuantity))
	suite.Equal("VWCE", updated.Ticker, "fields not in the request stay untouched")
}

func TestAssetService(t *testing.T) {
	suite.Run(t, new(AssetServiceTestSuite))
}
