package property

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rental/backend/internal/domain/property"
	"github.com/rental/backend/internal/domain/shared"
)

// RentalPriceService manages room price histories
type RentalPriceService struct {
	roomRepo  property.RoomRepository
	priceRepo property.RentalPriceRepository
	logger    *zap.Logger
}

// NewRentalPriceService creates a new RentalPriceService
func NewRentalPriceService(
	roomRepo property.RoomRepository,
	priceRepo property.RentalPriceRepository,
	logger *zap.Logger,
) *RentalPriceService {
	return &RentalPriceService{
		roomRepo:  roomRepo,
		priceRepo: priceRepo,
		logger:    logger,
	}
}

// SetPrice adds a new entry to a room's price history
func (s *RentalPriceService) SetPrice(ctx context.Context, input SetRentalPriceInput) (*RentalPriceInfo, error) {
	room, err := s.roomRepo.FindByID(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, shared.ErrNotFound
	}

	price, err := property.NewRentalPrice(input.RoomID, input.Price, input.EffectiveDate)
	if err != nil {
		return nil, err
	}

	if err := s.priceRepo.Save(ctx, price); err != nil {
		return nil, err
	}

	s.logger.Info("Rental price set",
		zap.String("room_id", input.RoomID),
		zap.String("price", input.Price.String()),
		zap.Time("effective_date", price.EffectiveDate),
	)

	info := toRentalPriceInfo(price)
	return &info, nil
}

// GetPriceHistory returns a room's full price history, newest first
func (s *RentalPriceService) GetPriceHistory(ctx context.Context, roomID string) ([]RentalPriceInfo, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, shared.ErrNotFound
	}

	history, err := s.priceRepo.FindByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	infos := make([]RentalPriceInfo, 0, len(history))
	for i := range history {
		infos = append(infos, toRentalPriceInfo(&history[i]))
	}
	return infos, nil
}

// UpdatePrice changes an existing price history entry
func (s *RentalPriceService) UpdatePrice(ctx context.Context, id uuid.UUID, input SetRentalPriceInput) (*RentalPriceInfo, error) {
	price, err := s.priceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, shared.ErrNotFound
	}

	if err := price.Update(input.Price, input.EffectiveDate); err != nil {
		return nil, err
	}
	if err := s.priceRepo.Save(ctx, price); err != nil {
		return nil, err
	}

	info := toRentalPriceInfo(price)
	return &info, nil
}

// DeletePrice removes a price history entry
func (s *RentalPriceService) DeletePrice(ctx context.Context, id uuid.UUID) error {
	price, err := s.priceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if price == nil {
		return shared.ErrNotFound
	}
	return s.priceRepo.Delete(ctx, id)
}
