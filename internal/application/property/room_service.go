package property

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rental/backend/internal/domain/property"
	"github.com/rental/backend/internal/domain/shared"
)

// RoomService handles room management
type RoomService struct {
	roomRepo     property.RoomRepository
	residentRepo property.RoomResidentRepository
	priceRepo    property.RentalPriceRepository
	logger       *zap.Logger
}

// NewRoomService creates a new RoomService
func NewRoomService(
	roomRepo property.RoomRepository,
	residentRepo property.RoomResidentRepository,
	priceRepo property.RentalPriceRepository,
	logger *zap.Logger,
) *RoomService {
	return &RoomService{
		roomRepo:     roomRepo,
		residentRepo: residentRepo,
		priceRepo:    priceRepo,
		logger:       logger,
	}
}

// CreateRoom registers a new room
func (s *RoomService) CreateRoom(ctx context.Context, input CreateRoomInput) (*RoomInfo, error) {
	existing, err := s.roomRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_ROOM", "A room with this number already exists")
	}

	room, err := property.NewRoom(input.ID, input.Area, input.Description, input.MaxOccupants)
	if err != nil {
		return nil, err
	}

	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("Room created", zap.String("room_id", room.ID))
	return s.describe(ctx, room)
}

// GetRoom returns a room with its occupancy and current price
func (s *RoomService) GetRoom(ctx context.Context, id string) (*RoomInfo, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, shared.ErrNotFound
	}
	return s.describe(ctx, room)
}

// ListRooms returns a page of rooms
func (s *RoomService) ListRooms(ctx context.Context, filter property.RoomFilter) (*ListRoomsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	rooms, err := s.roomRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.roomRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]RoomInfo, 0, len(rooms))
	for i := range rooms {
		info, err := s.describe(ctx, &rooms[i])
		if err != nil {
			return nil, err
		}
		infos = append(infos, *info)
	}

	return &ListRoomsResult{
		Rooms:    infos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// UpdateRoom changes a room's attributes and explicit status
func (s *RoomService) UpdateRoom(ctx context.Context, input UpdateRoomInput) (*RoomInfo, error) {
	room, err := s.roomRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, shared.ErrNotFound
	}

	if input.Area.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AREA", "Room area cannot be negative")
	}
	room.Area = input.Area
	room.Description = input.Description
	if input.MaxOccupants > 0 {
		room.MaxOccupants = input.MaxOccupants
	}
	if input.Status != "" {
		if err := room.SetStatus(input.Status); err != nil {
			return nil, err
		}
	}
	room.UpdatedAt = time.Now()

	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}
	return s.describe(ctx, room)
}

// DeleteRoom removes a room that has no residents
func (s *RoomService) DeleteRoom(ctx context.Context, id string) error {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if room == nil {
		return shared.ErrNotFound
	}

	open, err := s.residentRepo.CountOpenByRoom(ctx, id)
	if err != nil {
		return err
	}
	if open > 0 {
		return shared.NewDomainError("ROOM_OCCUPIED", "Cannot delete a room with residents")
	}

	if err := s.roomRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Room deleted", zap.String("room_id", id))
	return nil
}

func (s *RoomService) describe(ctx context.Context, room *property.Room) (*RoomInfo, error) {
	occupants, err := s.residentRepo.CountOpenByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	info := &RoomInfo{
		ID:            room.ID,
		Area:          room.Area,
		Description:   room.Description,
		Status:        room.Status,
		MaxOccupants:  room.MaxOccupants,
		OccupantCount: occupants,
		CreatedAt:     room.CreatedAt,
		UpdatedAt:     room.UpdatedAt,
	}

	price, err := s.priceRepo.FindInEffect(ctx, room.ID, time.Now())
	if err != nil {
		return nil, err
	}
	if price != nil {
		info.CurrentPrice = &price.Price
	}
	return info, nil
}
