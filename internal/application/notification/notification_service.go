package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rental/backend/internal/domain/notification"
	"github.com/rental/backend/internal/domain/property"
	"github.com/rental/backend/internal/domain/shared"
)

// Service exposes a user's in-app notifications
type Service struct {
	repo         notification.Repository
	residentRepo property.RoomResidentRepository
	logger       *zap.Logger
}

// NewService creates a new notification Service
func NewService(repo notification.Repository, residentRepo property.RoomResidentRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, residentRepo: residentRepo, logger: logger}
}

// BroadcastInput targets either one user or every current resident of a room
type BroadcastInput struct {
	UserID  *uuid.UUID
	RoomID  string
	Title   string
	Message string
}

// Broadcast delivers a manager announcement to a user or a room's residents.
// Returns the number of notifications created.
func (s *Service) Broadcast(ctx context.Context, input BroadcastInput) (int, error) {
	var targets []uuid.UUID
	switch {
	case input.UserID != nil:
		targets = []uuid.UUID{*input.UserID}
	case input.RoomID != "":
		stays, err := s.residentRepo.FindOpenByRoom(ctx, input.RoomID)
		if err != nil {
			return 0, err
		}
		for i := range stays {
			targets = append(targets, stays[i].UserID)
		}
	default:
		return 0, shared.NewDomainError("INVALID_TARGET", "Either user_id or room_id is required")
	}

	ns := make([]*notification.Notification, 0, len(targets))
	for _, userID := range targets {
		n, err := notification.New(userID, input.Title, input.Message)
		if err != nil {
			return 0, err
		}
		ns = append(ns, n)
	}
	if len(ns) == 0 {
		return 0, nil
	}
	if err := s.repo.SaveAll(ctx, ns); err != nil {
		return 0, err
	}

	s.logger.Info("Notification broadcast sent",
		zap.String("room_id", input.RoomID),
		zap.Int("recipients", len(ns)))
	return len(ns), nil
}

// List returns a user's notifications, newest first
func (s *Service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]notification.Notification, error) {
	return s.repo.FindByUser(ctx, userID, unreadOnly)
}

// CountUnread returns the user's unread badge count
func (s *Service) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead flags one of the user's notifications as seen
func (s *Service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*notification.Notification, error) {
	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, shared.ErrNotFound
	}
	if n.UserID != userID {
		return nil, shared.ErrForbidden
	}

	n.MarkRead(time.Now())
	if err := s.repo.Save(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// MarkAllRead flags every unread notification of the user as seen
func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	unread, err := s.repo.FindByUser(ctx, userID, true)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	ns := make([]*notification.Notification, 0, len(unread))
	for i := range unread {
		unread[i].MarkRead(now)
		ns = append(ns, &unread[i])
	}
	if len(ns) == 0 {
		return 0, nil
	}
	if err := s.repo.SaveAll(ctx, ns); err != nil {
		return 0, err
	}
	return len(ns), nil
}
