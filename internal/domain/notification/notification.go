package notification

import (
	"time"

	"github.com/google/uuid"
	"github.com/rental/backend/internal/domain/shared"
)

// Status represents whether a notification has been seen
type Status string

const (
	StatusUnread Status = "unread"
	StatusRead   Status = "read"
)

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	return s == StatusUnread || s == StatusRead
}

// Notification is an in-app message delivered to one user
type Notification struct {
	shared.BaseEntity
	UserID  uuid.UUID
	Title   string
	Message string
	Status  Status
	ReadAt  *time.Time
}

// New creates an unread notification for a user
func New(userID uuid.UUID, title, message string) (*Notification, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot be empty")
	}

	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Title:      title,
		Message:    message,
		Status:     StatusUnread,
	}, nil
}

// MarkRead flags the notification as seen. Re-reading is a no-op.
func (n *Notification) MarkRead(at time.Time) {
	if n.Status == StatusRead {
		return
	}
	n.Status = StatusRead
	n.ReadAt = &at
	n.UpdatedAt = at
}
