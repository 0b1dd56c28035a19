package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rental/backend/internal/domain/billing"
	"github.com/rental/backend/internal/domain/property"
	"github.com/rental/backend/internal/domain/shared"
)

// MeterReadingService records monthly meter readings and keeps the
// electric/water draft of the room in sync with them.
type MeterReadingService struct {
	roomRepo    property.RoomRepository
	readingRepo billing.MeterReadingRepository
	totalRepo   billing.UtilityTotalRepository
	draftRepo   billing.DraftBillRepository
	settingRepo billing.SettingRepository
	logger      *zap.Logger
}

// NewMeterReadingService creates a new MeterReadingService
func NewMeterReadingService(
	roomRepo property.RoomRepository,
	readingRepo billing.MeterReadingRepository,
	totalRepo billing.UtilityTotalRepository,
	draftRepo billing.DraftBillRepository,
	settingRepo billing.SettingRepository,
	logger *zap.Logger,
) *MeterReadingService {
	return &MeterReadingService{
		roomRepo:    roomRepo,
		readingRepo: readingRepo,
		totalRepo:   totalRepo,
		draftRepo:   draftRepo,
		settingRepo: settingRepo,
		logger:      logger,
	}
}

// RecordReading upserts a room's reading for a month. The reading is
// validated against the room's previous indexes and against the
// building-wide utility totals before anything is written; on success the
// ELECTRIC_WATER draft is repriced and returned to the resident in SENT.
func (s *MeterReadingService) RecordReading(ctx context.Context, input RecordReadingInput) (*ReadingInfo, error) {
	room, err := s.roomRepo.FindByID(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, shared.ErrNotFound
	}

	month := billing.MonthStart(input.Month)

	total, err := s.totalRepo.FindByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	if total == nil {
		return nil, shared.NewDomainError("NO_UTILITY_TOTAL",
			"Building utility totals for this month must be recorded first")
	}

	reading, err := s.readingRepo.FindByRoomAndMonth(ctx, input.RoomID, month)
	if err != nil {
		return nil, err
	}
	if reading == nil {
		reading, err = billing.NewMeterReading(input.RoomID, month, input.ElectricityIndex, input.WaterIndex)
		if err != nil {
			return nil, err
		}
	} else if err := reading.Record(input.ElectricityIndex, input.WaterIndex); err != nil {
		return nil, err
	}

	prev, err := s.readingRepo.FindLatestBefore(ctx, input.RoomID, month)
	if err != nil {
		return nil, err
	}

	prices, err := s.unitPrices(ctx)
	if err != nil {
		return nil, err
	}

	details, err := billing.PriceElectricWater(prev, reading, prices.electricity, prices.water)
	if err != nil {
		return nil, err
	}

	if err := s.checkBuildingTotals(ctx, month, total, reading); err != nil {
		return nil, err
	}

	draft, err := s.electricWaterDraft(ctx, input.RoomID, month, details)
	if err != nil {
		return nil, err
	}

	// One transaction: the reading never lands without its repriced draft
	if err := s.readingRepo.SaveWithDraft(ctx, reading, draft); err != nil {
		return nil, err
	}

	s.logger.Info("Meter reading recorded",
		zap.String("room_id", input.RoomID),
		zap.String("month", month.Format("2006-01")),
		zap.String("electricity_index", reading.ElectricityIndex.String()),
		zap.String("water_index", reading.WaterIndex.String()),
	)

	info := toReadingInfo(reading)
	return &info, nil
}

// GetReading returns the reading of a room for a month, or nil
func (s *MeterReadingService) GetReading(ctx context.Context, roomID string, month time.Time) (*ReadingInfo, error) {
	reading, err := s.readingRepo.FindByRoomAndMonth(ctx, roomID, billing.MonthStart(month))
	if err != nil {
		return nil, err
	}
	if reading == nil {
		return nil, nil
	}
	info := toReadingInfo(reading)
	return &info, nil
}

// ListReadings returns every room's reading for a month
func (s *MeterReadingService) ListReadings(ctx context.Context, month time.Time) ([]ReadingInfo, error) {
	readings, err := s.readingRepo.FindAllByMonth(ctx, billing.MonthStart(month))
	if err != nil {
		return nil, err
	}
	infos := make([]ReadingInfo, 0, len(readings))
	for i := range readings {
		infos = append(infos, toReadingInfo(&readings[i]))
	}
	return infos, nil
}

// checkBuildingTotals recomputes every room's consumption for the month
// with the candidate reading substituted in, and rejects the save when
// the building-wide totals would be exceeded.
func (s *MeterReadingService) checkBuildingTotals(ctx context.Context, month time.Time, total *billing.UtilityTotal, candidate *billing.MeterReading) error {
	readings, err := s.readingRepo.FindAllByMonth(ctx, month)
	if err != nil {
		return err
	}
	baselines, err := s.readingRepo.FindAllLatestBefore(ctx, month)
	if err != nil {
		return err
	}

	byRoom := make(map[string]*billing.MeterReading, len(readings)+1)
	for i := range readings {
		byRoom[readings[i].RoomID] = &readings[i]
	}
	byRoom[candidate.RoomID] = candidate

	sumElectric := decimal.Zero
	sumWater := decimal.Zero
	for roomID, reading := range byRoom {
		electricity, water, err := reading.ConsumptionSince(baselines[roomID])
		if err != nil {
			return err
		}
		sumElectric = sumElectric.Add(electricity)
		sumWater = sumWater.Add(water)
	}

	return total.AllowsConsumption(sumElectric, sumWater)
}

// electricWaterDraft builds or reprices the room's ELECTRIC_WATER draft
// without saving it; the caller commits it together with the reading.
func (s *MeterReadingService) electricWaterDraft(ctx context.Context, roomID string, month time.Time, details billing.ElectricWaterDetails) (*billing.DraftBill, error) {
	draft, err := s.draftRepo.FindByRoomMonthType(ctx, roomID, month, billing.DraftTypeElectricWater)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return billing.NewElectricWaterDraft(roomID, month, details)
	}
	if err := draft.RepriceElectricWater(details); err != nil {
		return nil, err
	}
	return draft, nil
}

type unitPrices struct {
	electricity decimal.Decimal
	water       decimal.Decimal
}

func (s *MeterReadingService) unitPrices(ctx context.Context) (unitPrices, error) {
	electricity, err := s.settingDecimal(ctx, billing.SettingElectricityUnitPrice)
	if err != nil {
		return unitPrices{}, err
	}
	water, err := s.settingDecimal(ctx, billing.SettingWaterUnitPrice)
	if err != nil {
		return unitPrices{}, err
	}
	return unitPrices{electricity: electricity, water: water}, nil
}

func (s *MeterReadingService) settingDecimal(ctx context.Context, key string) (decimal.Decimal, error) {
	setting, err := s.settingRepo.FindByKey(ctx, key)
	if err != nil {
		return decimal.Zero, err
	}
	if setting == nil {
		return decimal.Zero, shared.NewDomainError("MISSING_SETTING", "Setting "+key+" is not configured")
	}
	return setting.DecimalValue()
}
