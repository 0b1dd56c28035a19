package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserFilter narrows user listing queries
type UserFilter struct {
	Role     *Role
	Search   string
	Page     int
	PageSize int
}

// UserRepository manages account persistence
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindByUsername returns the account, or nil when no such username exists
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context, filter UserFilter) ([]User, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
	Save(ctx context.Context, user *User) error
}
