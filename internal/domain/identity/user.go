package identity

import (
	"time"

	"github.com/rental/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents a user's access level
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleResident Role = "resident"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleResident
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// CanManage reports whether the role may use manager endpoints
func (r Role) CanManage() bool {
	return r == RoleAdmin || r == RoleManager
}

// User is an account that can sign in: a building manager or a resident
type User struct {
	shared.BaseAggregateRoot
	Username     string
	PasswordHash string
	FullName     string
	Email        string
	Phone        string
	Role         Role
	Active       bool
	LastLoginAt  *time.Time
}

// NewUser creates an account with a bcrypt password hash
func NewUser(username, password, fullName, email, phone string, role Role) (*User, error) {
	if username == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		PasswordHash:      string(hash),
		FullName:          fullName,
		Email:             email,
		Phone:             phone,
		Role:              role,
		Active:            true,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored hash
func (u *User) ChangePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// UpdateProfile changes contact details
func (u *User) UpdateProfile(fullName, email, phone string) {
	u.FullName = fullName
	u.Email = email
	u.Phone = phone
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// RecordLogin stamps the last successful sign-in
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
}

// Deactivate blocks further sign-ins
func (u *User) Deactivate() {
	u.Active = false
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}
