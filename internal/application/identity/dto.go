package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/rental/backend/internal/domain/identity"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// CreateUserInput contains the input for account creation
type CreateUserInput struct {
	Username string
	Password string
	FullName string
	Email    string
	Phone    string
	Role     identity.Role
}

// UpdateUserInput contains the input for profile updates
type UpdateUserInput struct {
	UserID   uuid.UUID
	FullName string
	Email    string
	Phone    string
}

// UserInfo contains basic user information returned to clients
type UserInfo struct {
	ID          uuid.UUID
	Username    string
	FullName    string
	Email       string
	Phone       string
	Role        identity.Role
	Active      bool
	LastLoginAt *time.Time
	CreatedAt   time.Time
}

// ListUsersResult contains a page of accounts
type ListUsersResult struct {
	Users    []UserInfo
	Total    int64
	Page     int
	PageSize int
}

func toUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:          user.ID,
		Username:    user.Username,
		FullName:    user.FullName,
		Email:       user.Email,
		Phone:       user.Phone,
		Role:        user.Role,
		Active:      user.Active,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
