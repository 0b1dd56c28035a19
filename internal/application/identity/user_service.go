package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rental/backend/internal/domain/identity"
	"github.com/rental/backend/internal/domain/shared"
)

// UserService handles account management
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// CreateUser registers a new account
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*UserInfo, error) {
	existing, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_USERNAME", "Username is already taken")
	}

	user, err := identity.NewUser(input.Username, input.Password, input.FullName, input.Email, input.Phone, input.Role)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("username", user.Username),
		zap.String("role", user.Role.String()),
	)

	info := toUserInfo(user)
	return &info, nil
}

// GetUser returns a single account
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.ErrNotFound
	}
	info := toUserInfo(user)
	return &info, nil
}

// ListUsers returns a page of accounts
func (s *UserService) ListUsers(ctx context.Context, filter identity.UserFilter) (*ListUsersResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, toUserInfo(&users[i]))
	}

	return &ListUsersResult{
		Users:    infos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// UpdateUser changes an account's contact details
func (s *UserService) UpdateUser(ctx context.Context, input UpdateUserInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.ErrNotFound
	}

	user.UpdateProfile(input.FullName, input.Email, input.Phone)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	info := toUserInfo(user)
	return &info, nil
}

// DeactivateUser blocks further sign-ins for an account
func (s *UserService) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return shared.ErrNotFound
	}

	user.Deactivate()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("User deactivated", zap.String("username", user.Username))
	return nil
}
