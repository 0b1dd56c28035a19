package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rental/backend/internal/domain/billing"
	"github.com/rental/backend/internal/domain/notification"
	"github.com/rental/backend/internal/domain/property"
	"github.com/rental/backend/internal/domain/shared"
)

// DraftService builds services drafts and moves drafts through their
// confirmation workflow.
type DraftService struct {
	roomRepo         property.RoomRepository
	residentRepo     property.RoomResidentRepository
	draftRepo        billing.DraftBillRepository
	itemRepo         billing.ServiceItemRepository
	notificationRepo notification.Repository
	logger           *zap.Logger
}

// NewDraftService creates a new DraftService
func NewDraftService(
	roomRepo property.RoomRepository,
	residentRepo property.RoomResidentRepository,
	draftRepo billing.DraftBillRepository,
	itemRepo billing.ServiceItemRepository,
	notificationRepo notification.Repository,
	logger *zap.Logger,
) *DraftService {
	return &DraftService{
		roomRepo:         roomRepo,
		residentRepo:     residentRepo,
		draftRepo:        draftRepo,
		itemRepo:         itemRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// AddService puts a catalog service on the room's monthly services draft,
// creating the draft when it does not exist yet. Per-person services are
// priced by the distinct residents of the billing month.
func (s *DraftService) AddService(ctx context.Context, input AddServiceToDraftInput) (*DraftInfo, error) {
	room, err := s.roomRepo.FindByID(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, shared.ErrNotFound
	}

	item, err := s.itemRepo.FindByID(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, shared.NewDomainError("SERVICE_NOT_FOUND", "Service item does not exist")
	}
	if !item.Active {
		return nil, shared.NewDomainError("SERVICE_INACTIVE", "Service item has been deactivated")
	}

	month := billing.MonthStart(input.Month)

	draft, err := s.draftRepo.FindByRoomMonthType(ctx, input.RoomID, month, billing.DraftTypeServices)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		draft, err = billing.NewServicesDraft(input.RoomID, month)
		if err != nil {
			return nil, err
		}
	}

	// A month with no residents still gets the line, priced at zero.
	numResidents := 0
	if item.PricingType == billing.PricingPerPerson {
		numResidents, err = s.distinctResidents(ctx, input.RoomID, month)
		if err != nil {
			return nil, err
		}
	}

	line, err := billing.NewServiceLine(item, numResidents)
	if err != nil {
		return nil, err
	}
	if err := draft.AddServiceLine(line); err != nil {
		return nil, err
	}

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return nil, err
	}

	s.logger.Info("Service added to draft",
		zap.String("room_id", input.RoomID),
		zap.String("month", month.Format("2006-01")),
		zap.String("service", item.Name),
	)

	info := toDraftInfo(draft)
	return &info, nil
}

// RemoveService drops a service line from a services draft
func (s *DraftService) RemoveService(ctx context.Context, input RemoveServiceFromDraftInput) (*DraftInfo, error) {
	draft, err := s.draftRepo.FindByID(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, shared.ErrNotFound
	}

	if err := draft.RemoveServiceLine(input.ServiceID); err != nil {
		return nil, err
	}
	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return nil, err
	}

	info := toDraftInfo(draft)
	return &info, nil
}

// GetDraft returns one draft by ID
func (s *DraftService) GetDraft(ctx context.Context, id uuid.UUID) (*DraftInfo, error) {
	draft, err := s.draftRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, shared.ErrNotFound
	}
	info := toDraftInfo(draft)
	return &info, nil
}

// ListByRoomAndMonth returns both drafts of a room's month
func (s *DraftService) ListByRoomAndMonth(ctx context.Context, roomID string, month time.Time) ([]DraftInfo, error) {
	drafts, err := s.draftRepo.FindByRoomAndMonth(ctx, roomID, billing.MonthStart(month))
	if err != nil {
		return nil, err
	}
	infos := make([]DraftInfo, 0, len(drafts))
	for i := range drafts {
		infos = append(infos, toDraftInfo(&drafts[i]))
	}
	return infos, nil
}

// ListByMonth returns all drafts of a month, optionally filtered by type
func (s *DraftService) ListByMonth(ctx context.Context, month time.Time, draftType *billing.DraftType) ([]DraftInfo, error) {
	drafts, err := s.draftRepo.FindByMonth(ctx, billing.MonthStart(month), draftType)
	if err != nil {
		return nil, err
	}
	infos := make([]DraftInfo, 0, len(drafts))
	for i := range drafts {
		infos = append(infos, toDraftInfo(&drafts[i]))
	}
	return infos, nil
}

// Transition moves a draft to a new status. Managers may request any move
// the status graph allows; residents may only confirm or reject SENT
// drafts of the room they currently live in. Sending a draft notifies the
// room's residents.
func (s *DraftService) Transition(ctx context.Context, input TransitionDraftInput) (*DraftInfo, error) {
	draft, err := s.draftRepo.FindByID(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, shared.ErrNotFound
	}

	if !input.ActorIsManager {
		if input.Target != billing.DraftStatusConfirmed && input.Target != billing.DraftStatusRejected {
			return nil, shared.ErrForbidden
		}
		stay, err := s.residentRepo.FindOpenByUser(ctx, input.ActorUserID)
		if err != nil {
			return nil, err
		}
		if stay == nil || stay.RoomID != draft.RoomID {
			return nil, shared.ErrForbidden
		}
	}

	if err := draft.TransitionTo(input.Target); err != nil {
		return nil, err
	}
	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return nil, err
	}

	if input.Target == billing.DraftStatusSent {
		s.notifyRoom(ctx, draft)
	}

	s.logger.Info("Draft status changed",
		zap.String("draft_id", draft.ID.String()),
		zap.String("room_id", draft.RoomID),
		zap.String("status", draft.Status.String()),
	)

	info := toDraftInfo(draft)
	return &info, nil
}

func (s *DraftService) distinctResidents(ctx context.Context, roomID string, month time.Time) (int, error) {
	nextMonth := billing.NextMonth(month)
	stays, err := s.residentRepo.FindByRoomOverlapping(ctx, roomID, month, nextMonth)
	if err != nil {
		return 0, err
	}
	return property.DistinctOccupants(stays, month, nextMonth), nil
}

func (s *DraftService) notifyRoom(ctx context.Context, draft *billing.DraftBill) {
	stays, err := s.residentRepo.FindOpenByRoom(ctx, draft.RoomID)
	if err != nil {
		s.logger.Warn("Failed to load residents for draft notification", zap.Error(err))
		return
	}

	title := "New draft bill"
	message := fmt.Sprintf("A %s draft for room %s (%s) is ready for your review.",
		draft.Type, draft.RoomID, draft.Month.Format("2006-01"))

	ns := make([]*notification.Notification, 0, len(stays))
	for i := range stays {
		n, err := notification.New(stays[i].UserID, title, message)
		if err != nil {
			continue
		}
		ns = append(ns, n)
	}
	if len(ns) == 0 {
		return
	}
	if err := s.notificationRepo.SaveAll(ctx, ns); err != nil {
		s.logger.Warn("Failed to save draft notifications", zap.Error(err))
	}
}
