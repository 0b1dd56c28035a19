package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rental/backend/internal/domain/identity"
	"github.com/rental/backend/internal/domain/shared"
	"github.com/rental/backend/internal/infrastructure/auth"
	"github.com/rental/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, filter identity.UserFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-with-enough-length",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "rental-backend-test",
	})
}

func newTestUser(t *testing.T, username, password string, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser(username, password, "Test User", "test@example.com", "0900000000", role)
	require.NoError(t, err)
	return user
}

func TestAuthService_Login(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, newTestJWTService(), zap.NewNop())

	user := newTestUser(t, "manager1", "password123", identity.RoleManager)
	repo.On("FindByUsername", mock.Anything, "manager1").Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	result, err := svc.Login(context.Background(), LoginInput{Username: "manager1", Password: "password123"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, "manager1", result.User.Username)
	assert.Equal(t, identity.RoleManager, result.User.Role)
	repo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, newTestJWTService(), zap.NewNop())

	user := newTestUser(t, "manager1", "password123", identity.RoleManager)
	repo.On("FindByUsername", mock.Anything, "manager1").Return(user, nil)

	_, err := svc.Login(context.Background(), LoginInput{Username: "manager1", Password: "wrong-password"})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, newTestJWTService(), zap.NewNop())

	repo.On("FindByUsername", mock.Anything, "nobody").Return(nil, nil)

	_, err := svc.Login(context.Background(), LoginInput{Username: "nobody", Password: "password123"})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_DeactivatedAccount(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, newTestJWTService(), zap.NewNop())

	user := newTestUser(t, "resident1", "password123", identity.RoleResident)
	user.Deactivate()
	repo.On("FindByUsername", mock.Anything, "resident1").Return(user, nil)

	_, err := svc.Login(context.Background(), LoginInput{Username: "resident1", Password: "password123"})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
}

func TestAuthService_RefreshToken(t *testing.T) {
	repo := new(MockUserRepository)
	jwtSvc := newTestJWTService()
	svc := NewAuthService(repo, jwtSvc, zap.NewNop())

	user := newTestUser(t, "manager1", "password123", identity.RoleManager)
	tokens, err := jwtSvc.GenerateTokenPair(user.ID, user.Username, user.Role.String())
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	result, err := svc.RefreshToken(context.Background(), tokens.RefreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
}

func TestAuthService_RefreshToken_AccessTokenRejected(t *testing.T) {
	repo := new(MockUserRepository)
	jwtSvc := newTestJWTService()
	svc := NewAuthService(repo, jwtSvc, zap.NewNop())

	user := newTestUser(t, "manager1", "password123", identity.RoleManager)
	tokens, err := jwtSvc.GenerateTokenPair(user.ID, user.Username, user.Role.String())
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), tokens.AccessToken)
	require.Error(t, err)
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, newTestJWTService(), zap.NewNop())

	user := newTestUser(t, "manager1", "password123", identity.RoleManager)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "password123",
		NewPassword: "new-password-456",
	})

	require.NoError(t, err)
	assert.True(t, user.CheckPassword("new-password-456"))
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, newTestJWTService(), zap.NewNop())

	user := newTestUser(t, "manager1", "password123", identity.RoleManager)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "wrong",
		NewPassword: "new-password-456",
	})

	require.Error(t, err)
	assert.True(t, user.CheckPassword("password123"))
}

func TestUserService_CreateUser_DuplicateUsername(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo, zap.NewNop())

	existing := newTestUser(t, "manager1", "password123", identity.RoleManager)
	repo.On("FindByUsername", mock.Anything, "manager1").Return(existing, nil)

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Username: "manager1",
		Password: "password123",
		Role:     identity.RoleManager,
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_USERNAME", domainErr.Code)
}
