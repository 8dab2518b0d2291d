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
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

func localUser(email, password string) *domain.User {
	hash, _ := utils.HashPassword(password)
	return &domain.User{
		UserID:       uuid.NewString(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
	}
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestCreateUser_HashesPassword() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Name: "New User", Email: "new@example.com", Password: "long-enough-pw"}

	var saved domain.User
	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.ProviderLocal, user.AuthProvider)
	suite.NotEqual("long-enough-pw", saved.PasswordHash, "password must never be stored in clear")
	suite.True(utils.CheckPasswordHash("long-enough-pw", saved.PasswordHash))
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	user := localUser("a@example.com", "correct-password")

	suite.mockRepo.On("FindUserByEmail", ctx, "a@example.com").Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, "a@example.com", "correct-password")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_FailuresCollapseToUnauthorized() {
	ctx := context.Background()
	user := localUser("a@example.com", "correct-password")
	googleUser := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "g@example.com",
		AuthProvider: domain.ProviderGoogle,
	}

	suite.mockRepo.On("FindUserByEmail", ctx, "missing@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindUserByEmail", ctx, "a@example.com").Return(user, nil).Once()
	suite.mockRepo.On("FindUserByEmail", ctx, "g@example.com").Return(googleUser, nil).Once()

	_, err := suite.service.AuthenticateUser(ctx, "missing@example.com", "whatever")
	suite.ErrorIs(err, apperrors.ErrUnauthorized, "unknown email")

	_, err = suite.service.AuthenticateUser(ctx, "a@example.com", "wrong-password")
	suite.ErrorIs(err, apperrors.ErrUnauthorized, "wrong password")

	_, err = suite.service.AuthenticateUser(ctx, "g@example.com", "whatever")
	suite.ErrorIs(err, apperrors.ErrUnauthorized, "OAuth-only account has no local login")
}

func (suite *UserServiceTestSuite) TestGetUserByID_DeletedUserReadsAsNotFound() {
	ctx := context.Background()
	deletedAt := time.Now()
	user := localUser("a@example.com", "pw-is-long-enough")
	user.DeletedAt = &deletedAt

	suite.mockRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	_, err := suite.service.GetUserByID(ctx, user.UserID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UserServiceTestSuite) TestUpdateUser_OnlySelf() {
	ctx := context.Background()

	_, err := suite.service.UpdateUser(ctx, uuid.NewString(), dto.UpdateUserRequest{}, uuid.NewString())

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateUser")
}

func (suite *UserServiceTestSuite) TestFindOrProvisionGoogleUser_ExistingProviderID() {
	ctx := context.Background()
	info := domain.GoogleUserInfo{ID: "google-sub", Email: "g@example.com", Name: "G User", VerifiedEmail: true}
	existing := &domain.User{UserID: uuid.NewString(), AuthProvider: domain.ProviderGoogle, ProviderUserID: "google-sub"}

	suite.mockRepo.On("FindUserByProviderID", ctx, domain.ProviderGoogle, "google-sub").Return(existing, nil).Once()

	user, err := suite.service.FindOrProvisionGoogleUser(ctx, info)

	suite.Require().NoError(err)
	suite.Equal(existing.UserID, user.UserID)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser")
}

func (suite *UserServiceTestSuite) TestFindOrProvisionGoogleUser_LinksExistingEmail() {
	ctx := context.Background()
	info := domain.GoogleUserInfo{ID: "google-sub", Email: "a@example.com", Name: "G User", VerifiedEmail: true}
	local := localUser("a@example.com", "pw-is-long-enough")

	suite.mockRepo.On("FindUserByProviderID", ctx, domain.ProviderGoogle, "google-sub").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindUserByEmail", ctx, "a@example.com").Return(local, nil).Once()

	var linked domain.User
	suite.mockRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			linked = args.Get(1).(domain.User)
		}).Return(nil).Once()

	user, err := suite.service.FindOrProvisionGoogleUser(ctx, info)

	suite.Require().NoError(err)
	suite.Equal(local.UserID, user.UserID)
	suite.Equal(domain.ProviderGoogle, linked.AuthProvider)
	suite.Equal("google-sub", linked.ProviderUserID)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser")
}

func (suite *UserServiceTestSuite) TestFindOrProvisionGoogleUser_ProvisionsNewUser() {
	ctx := context.Background()
	info := domain.GoogleUserInfo{ID: "google-sub", Email: "fresh@example.com", Name: "Fresh User", VerifiedEmail: true}

	suite.mockRepo.On("FindUserByProviderID", ctx, domain.ProviderGoogle, "google-sub").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindUserByEmail", ctx, "fresh@example.com").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := suite.service.FindOrProvisionGoogleUser(ctx, info)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.Equal(domain.ProviderGoogle, user.AuthProvider)
	suite.Empty(user.PasswordHash, "provisioned users have no local password")
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
