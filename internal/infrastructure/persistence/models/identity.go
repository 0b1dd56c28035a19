package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rental/backend/internal/domain/identity"
	"github.com/rental/backend/internal/domain/notification"
)

// UserModel is the persistence model for the User aggregate
type UserModel struct {
	AggregateModel
	Username     string        `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash string        `gorm:"type:varchar(200);not null"`
	FullName     string        `gorm:"type:varchar(200)"`
	Email        string        `gorm:"type:varchar(200)"`
	Phone        string        `gorm:"type:varchar(30)"`
	Role         identity.Role `gorm:"type:varchar(20);not null;index"`
	Active       bool          `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Username:          m.Username,
		PasswordHash:      m.PasswordHash,
		FullName:          m.FullName,
		Email:             m.Email,
		Phone:             m.Phone,
		Role:              m.Role,
		Active:            m.Active,
		LastLoginAt:       m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Username = u.Username
	m.PasswordHash = u.PasswordHash
	m.FullName = u.FullName
	m.Email = u.Email
	m.Phone = u.Phone
	m.Role = u.Role
	m.Active = u.Active
	m.LastLoginAt = u.LastLoginAt
}

// NotificationModel is the persistence model for in-app notifications
type NotificationModel struct {
	BaseModel
	UserID  uuid.UUID           `gorm:"type:uuid;not null;index"`
	Title   string              `gorm:"type:varchar(200);not null"`
	Message string              `gorm:"type:text"`
	Status  notification.Status `gorm:"type:varchar(10);not null;default:'unread';index"`
	ReadAt  *time.Time
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification
func (m *NotificationModel) ToDomain() *notification.Notification {
	return &notification.Notification{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Title:      m.Title,
		Message:    m.Message,
		Status:     m.Status,
		ReadAt:     m.ReadAt,
	}
}

// FromDomain populates the persistence model from a domain Notification
func (m *NotificationModel) FromDomain(n *notification.Notification) {
	m.FromDomainBaseEntity(n.BaseEntity)
	m.UserID = n.UserID
	m.Title = n.Title
	m.Message = n.Message
	m.Status = n.Status
	m.ReadAt = n.ReadAt
}
