package notification

import (
	"context"

	"github.com/google/uuid"
)

// Repository manages notification persistence
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	// FindByUser returns a user's notifications, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	Save(ctx context.Context, n *Notification) error
	SaveAll(ctx context.Context, ns []*Notification) error
}
