package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rental/backend/internal/domain/billing"
	"github.com/rental/backend/internal/domain/notification"
	"github.com/rental/backend/internal/domain/property"
	"github.com/rental/backend/internal/domain/shared"
)

// BillService finalizes confirmed drafts into bills
type BillService struct {
	roomRepo         property.RoomRepository
	residentRepo     property.RoomResidentRepository
	priceRepo        property.RentalPriceRepository
	draftRepo        billing.DraftBillRepository
	billRepo         billing.BillRepository
	settingRepo      billing.SettingRepository
	notificationRepo notification.Repository
	logger           *zap.Logger
}

// NewBillService creates a new BillService
func NewBillService(
	roomRepo property.RoomRepository,
	residentRepo property.RoomResidentRepository,
	priceRepo property.RentalPriceRepository,
	draftRepo billing.DraftBillRepository,
	billRepo billing.BillRepository,
	settingRepo billing.SettingRepository,
	notificationRepo notification.Repository,
	logger *zap.Logger,
) *BillService {
	return &BillService{
		roomRepo:         roomRepo,
		residentRepo:     residentRepo,
		priceRepo:        priceRepo,
		draftRepo:        draftRepo,
		billRepo:         billRepo,
		settingRepo:      settingRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// GenerateBill produces or regenerates the final bill for one room and
// month: rent in effect plus the two confirmed draft totals. Regeneration
// resets the bill to unpaid and replaces its service lines.
func (s *BillService) GenerateBill(ctx context.Context, input GenerateBillInput) (*BillInfo, error) {
	month := billing.MonthStart(input.Month)

	bill, err := s.generate(ctx, input.RoomID, month, decimal.Zero)
	if err != nil {
		return nil, err
	}

	info := toBillInfo(bill)
	return &info, nil
}

// GenerateForMonth produces bills for every room whose drafts are both
// confirmed, splitting the common-area utility fee evenly across them.
// Rooms without a rental price or with unconfirmed drafts are skipped.
// Implements scheduler.BillGenerator.
func (s *BillService) GenerateForMonth(ctx context.Context, month time.Time) (int, error) {
	result, err := s.GenerateMonth(ctx, month)
	if err != nil {
		return 0, err
	}
	return result.Generated, nil
}

// GenerateMonth is the batch variant of GenerateBill with a detailed result
func (s *BillService) GenerateMonth(ctx context.Context, month time.Time) (*GenerateMonthResult, error) {
	month = billing.MonthStart(month)

	drafts, err := s.draftRepo.FindByMonth(ctx, month, nil)
	if err != nil {
		return nil, err
	}

	// Rooms where both drafts are confirmed
	confirmed := make(map[string]int)
	for i := range drafts {
		if drafts[i].IsConfirmed() {
			confirmed[drafts[i].RoomID]++
		}
	}
	eligible := make([]string, 0, len(confirmed))
	for roomID, count := range confirmed {
		if count == 2 {
			eligible = append(eligible, roomID)
		}
	}

	result := &GenerateMonthResult{Month: month}
	if len(eligible) == 0 {
		return result, nil
	}

	commonShare, err := s.commonAreaShare(ctx, len(eligible))
	if err != nil {
		return nil, err
	}

	for _, roomID := range eligible {
		if _, err := s.generate(ctx, roomID, month, commonShare); err != nil {
			s.logger.Warn("Skipping room during batch bill generation",
				zap.String("room_id", roomID),
				zap.String("month", month.Format("2006-01")),
				zap.Error(err),
			)
			result.SkippedRooms = append(result.SkippedRooms, roomID)
			continue
		}
		result.Generated++
	}

	s.logger.Info("Batch bill generation finished",
		zap.String("month", month.Format("2006-01")),
		zap.Int("generated", result.Generated),
		zap.Int("skipped", len(result.SkippedRooms)),
	)
	return result, nil
}

// GetBill returns one bill
func (s *BillService) GetBill(ctx context.Context, id uuid.UUID) (*BillInfo, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, shared.ErrNotFound
	}
	info := toBillInfo(bill)
	return &info, nil
}

// ListBills returns a page of bills
func (s *BillService) ListBills(ctx context.Context, filter billing.BillFilter) (*ListBillsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	bills, err := s.billRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.billRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]BillInfo, 0, len(bills))
	for i := range bills {
		infos = append(infos, toBillInfo(&bills[i]))
	}
	return &ListBillsResult{
		Bills:    infos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// DeleteBill removes a bill together with its payments and service lines
func (s *BillService) DeleteBill(ctx context.Context, id uuid.UUID) error {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if bill == nil {
		return shared.ErrNotFound
	}
	if err := s.billRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Bill deleted",
		zap.String("bill_id", id.String()),
		zap.String("room_id", bill.RoomID),
	)
	return nil
}

func (s *BillService) generate(ctx context.Context, roomID string, month time.Time, commonShare decimal.Decimal) (*billing.Bill, error) {
	ewDraft, err := s.confirmedDraft(ctx, roomID, month, billing.DraftTypeElectricWater)
	if err != nil {
		return nil, err
	}
	svcDraft, err := s.confirmedDraft(ctx, roomID, month, billing.DraftTypeServices)
	if err != nil {
		return nil, err
	}

	price, err := s.priceRepo.FindInEffect(ctx, roomID, month)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, shared.NewDomainError("NO_RENTAL_PRICE",
			"Room has no rental price effective for this month")
	}

	utilities := billing.UtilityCharges{
		Electricity: decimal.Zero,
		Water:       decimal.Zero,
		Shared:      commonShare,
	}
	if ewDraft.ElectricWater != nil {
		utilities.Electricity = ewDraft.ElectricWater.ElectricityCost
		utilities.Water = ewDraft.ElectricWater.WaterCost
	}
	var lines []billing.ServiceLine
	if svcDraft.Services != nil {
		lines = svcDraft.Services.Services
	}

	bill, err := s.billRepo.FindByRoomAndMonth(ctx, roomID, month)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		bill, err = billing.NewBill(roomID, month, price.Price, utilities, lines)
		if err != nil {
			return nil, err
		}
	} else if err := bill.Regenerate(price.Price, utilities, lines); err != nil {
		return nil, err
	}

	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}

	s.notifyRoom(ctx, bill)

	s.logger.Info("Bill generated",
		zap.String("room_id", roomID),
		zap.String("month", month.Format("2006-01")),
		zap.String("total", bill.TotalAmount.String()),
	)
	return bill, nil
}

func (s *BillService) confirmedDraft(ctx context.Context, roomID string, month time.Time, draftType billing.DraftType) (*billing.DraftBill, error) {
	draft, err := s.draftRepo.FindByRoomMonthType(ctx, roomID, month, draftType)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, shared.NewDomainError("MISSING_DRAFT",
			fmt.Sprintf("Room has no %s draft for this month", draftType))
	}
	if !draft.IsConfirmed() {
		return nil, shared.NewDomainError("DRAFT_NOT_CONFIRMED",
			fmt.Sprintf("The %s draft must be confirmed before billing", draftType))
	}
	return draft, nil
}

// commonAreaShare splits the configured common-area utility fee evenly
// across the billed rooms. A missing setting means no shared charge.
func (s *BillService) commonAreaShare(ctx context.Context, roomCount int) (decimal.Decimal, error) {
	setting, err := s.settingRepo.FindByKey(ctx, billing.SettingCommonAreaUtilityFee)
	if err != nil {
		return decimal.Zero, err
	}
	if setting == nil {
		return decimal.Zero, nil
	}
	fee, err := setting.DecimalValue()
	if err != nil {
		return decimal.Zero, err
	}
	return fee.DivRound(decimal.NewFromInt(int64(roomCount)), 2), nil
}

func (s *BillService) notifyRoom(ctx context.Context, bill *billing.Bill) {
	stays, err := s.residentRepo.FindOpenByRoom(ctx, bill.RoomID)
	if err != nil {
		s.logger.Warn("Failed to load residents for bill notification", zap.Error(err))
		return
	}

	title := "Monthly bill issued"
	message := fmt.Sprintf("Your bill for room %s (%s) totals %s, due %s.",
		bill.RoomID, bill.Month.Format("2006-01"),
		bill.TotalAmount.StringFixed(2), bill.DueDate.Format("2006-01-02"))

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
		s.logger.Warn("Failed to save bill notifications", zap.Error(err))
	}
}
