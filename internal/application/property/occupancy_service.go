package property

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rental/backend/internal/domain/notification"
	"github.com/rental/backend/internal/domain/property"
	"github.com/rental/backend/internal/domain/shared"
)

// OccupancyService handles moving residents in and out of rooms
type OccupancyService struct {
	roomRepo         property.RoomRepository
	residentRepo     property.RoomResidentRepository
	notificationRepo notification.Repository
	logger           *zap.Logger
}

// NewOccupancyService creates a new OccupancyService
func NewOccupancyService(
	roomRepo property.RoomRepository,
	residentRepo property.RoomResidentRepository,
	notificationRepo notification.Repository,
	logger *zap.Logger,
) *OccupancyService {
	return &OccupancyService{
		roomRepo:         roomRepo,
		residentRepo:     residentRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// AssignResident moves a user into a room. A user can only live in one
// room at a time, so an existing open stay is closed at the new move-in
// date and the old room is freed when the move empties it.
func (s *OccupancyService) AssignResident(ctx context.Context, input AssignResidentInput) (*StayInfo, error) {
	room, err := s.roomRepo.FindByID(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, shared.ErrNotFound
	}

	moveIn := input.MoveInDate
	if moveIn.IsZero() {
		moveIn = time.Now()
	}

	current, err := s.residentRepo.FindOpenByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if current != nil {
		if err := s.closeCurrentStay(ctx, current, moveIn); err != nil {
			return nil, err
		}
	}

	occupants, err := s.residentRepo.CountOpenByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	if err := room.CanAssign(int(occupants)); err != nil {
		return nil, err
	}

	stay, err := property.NewRoomResident(room.ID, input.UserID, moveIn)
	if err != nil {
		return nil, err
	}
	if err := s.residentRepo.Save(ctx, stay); err != nil {
		return nil, err
	}

	room.MarkOccupied()
	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}

	s.notify(ctx, input.UserID, "Moved in",
		fmt.Sprintf("You have been assigned to room %s.", room.ID))

	s.logger.Info("Resident assigned",
		zap.String("room_id", room.ID),
		zap.String("user_id", input.UserID.String()),
	)

	info := toStayInfo(stay)
	return &info, nil
}

// closeCurrentStay ends an open stay at the new move-in date and frees the
// vacated room once no open stays remain in it.
func (s *OccupancyService) closeCurrentStay(ctx context.Context, current *property.RoomResident, moveIn time.Time) error {
	if err := current.Close(moveIn); err != nil {
		return err
	}
	if err := s.residentRepo.Save(ctx, current); err != nil {
		return err
	}

	remaining, err := s.residentRepo.CountOpenByRoom(ctx, current.RoomID)
	if err != nil {
		return err
	}
	if remaining == 0 {
		old, err := s.roomRepo.FindByID(ctx, current.RoomID)
		if err != nil {
			return err
		}
		if old != nil && old.Status == property.RoomStatusOccupied {
			old.MarkAvailable()
			if err := s.roomRepo.Save(ctx, old); err != nil {
				return err
			}
		}
	}
	return nil
}

// LeaveRoom closes the user's open stay. When the last resident leaves,
// the room becomes available again.
func (s *OccupancyService) LeaveRoom(ctx context.Context, input LeaveRoomInput) (*StayInfo, error) {
	stay, err := s.residentRepo.FindOpenByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if stay == nil {
		return nil, shared.NewDomainError("NOT_RESIDENT", "User does not currently live in any room")
	}

	if err := stay.Close(input.MoveOutDate); err != nil {
		return nil, err
	}
	if err := s.residentRepo.Save(ctx, stay); err != nil {
		return nil, err
	}

	remaining, err := s.residentRepo.CountOpenByRoom(ctx, stay.RoomID)
	if err != nil {
		return nil, err
	}
	if remaining == 0 {
		room, err := s.roomRepo.FindByID(ctx, stay.RoomID)
		if err != nil {
			return nil, err
		}
		if room != nil && room.Status == property.RoomStatusOccupied {
			room.MarkAvailable()
			if err := s.roomRepo.Save(ctx, room); err != nil {
				return nil, err
			}
		}
	}

	s.notify(ctx, input.UserID, "Moved out",
		fmt.Sprintf("Your stay in room %s has ended.", stay.RoomID))

	s.logger.Info("Resident left",
		zap.String("room_id", stay.RoomID),
		zap.String("user_id", input.UserID.String()),
	)

	info := toStayInfo(stay)
	return &info, nil
}

// ListRoomResidents returns the open stays of a room
func (s *OccupancyService) ListRoomResidents(ctx context.Context, roomID string) ([]StayInfo, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, shared.ErrNotFound
	}

	stays, err := s.residentRepo.FindOpenByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	infos := make([]StayInfo, 0, len(stays))
	for i := range stays {
		infos = append(infos, toStayInfo(&stays[i]))
	}
	return infos, nil
}

// GetUserStayHistory returns all stays of a user, newest move-in first
func (s *OccupancyService) GetUserStayHistory(ctx context.Context, userID uuid.UUID) ([]StayInfo, error) {
	stays, err := s.residentRepo.FindHistoryByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	infos := make([]StayInfo, 0, len(stays))
	for i := range stays {
		infos = append(infos, toStayInfo(&stays[i]))
	}
	return infos, nil
}

// GetCurrentStay returns the user's open stay, or nil
func (s *OccupancyService) GetCurrentStay(ctx context.Context, userID uuid.UUID) (*StayInfo, error) {
	stay, err := s.residentRepo.FindOpenByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stay == nil {
		return nil, nil
	}
	info := toStayInfo(stay)
	return &info, nil
}

func (s *OccupancyService) notify(ctx context.Context, userID uuid.UUID, title, message string) {
	n, err := notification.New(userID, title, message)
	if err != nil {
		return
	}
	if err := s.notificationRepo.Save(ctx, n); err != nil {
		s.logger.Warn("Failed to save notification",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}
