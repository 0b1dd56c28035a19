package billing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rental/backend/internal/domain/billing"
	"github.com/rental/backend/internal/domain/property"
	"github.com/rental/backend/internal/domain/shared"
)

func testMonth() time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
}

func testRoom(t *testing.T, id string) *property.Room {
	t.Helper()
	room, err := property.NewRoom(id, decimal.NewFromInt(25), "", 4)
	require.NoError(t, err)
	return room
}

func testUtilityTotal(t *testing.T, electricity, water int64) *billing.UtilityTotal {
	t.Helper()
	total, err := billing.NewUtilityTotal(testMonth(),
		decimal.NewFromInt(electricity), decimal.NewFromInt(water),
		decimal.NewFromInt(electricity*3500), decimal.NewFromInt(water*15000))
	require.NoError(t, err)
	return total
}

func priceSetting(t *testing.T, key, value string) *billing.Setting {
	t.Helper()
	setting, err := billing.NewSetting(key, value, "")
	require.NoError(t, err)
	return setting
}

type readingFixture struct {
	roomRepo    *MockRoomRepository
	readingRepo *MockMeterReadingRepository
	totalRepo   *MockUtilityTotalRepository
	draftRepo   *MockDraftBillRepository
	settingRepo *MockSettingRepository
	svc         *MeterReadingService
}

func newReadingFixture() *readingFixture {
	f := &readingFixture{
		roomRepo:    new(MockRoomRepository),
		readingRepo: new(MockMeterReadingRepository),
		totalRepo:   new(MockUtilityTotalRepository),
		draftRepo:   new(MockDraftBillRepository),
		settingRepo: new(MockSettingRepository),
	}
	f.svc = NewMeterReadingService(f.roomRepo, f.readingRepo, f.totalRepo, f.draftRepo, f.settingRepo, zap.NewNop())
	return f
}

func (f *readingFixture) expectUnitPrices(t *testing.T) {
	f.settingRepo.On("FindByKey", mock.Anything, billing.SettingElectricityUnitPrice).
		Return(priceSetting(t, billing.SettingElectricityUnitPrice, "3500"), nil)
	f.settingRepo.On("FindByKey", mock.Anything, billing.SettingWaterUnitPrice).
		Return(priceSetting(t, billing.SettingWaterUnitPrice, "15000"), nil)
}

func TestMeterReadingService_RecordReading_CreatesSentDraft(t *testing.T) {
	f := newReadingFixture()
	month := testMonth()

	f.roomRepo.On("FindByID", mock.Anything, "P101").Return(testRoom(t, "P101"), nil)
	f.totalRepo.On("FindByMonth", mock.Anything, month).Return(testUtilityTotal(t, 1000, 100), nil)
	f.readingRepo.On("FindByRoomAndMonth", mock.Anything, "P101", month).Return(nil, nil)
	f.readingRepo.On("FindLatestBefore", mock.Anything, "P101", month).Return(nil, nil)
	f.expectUnitPrices(t)
	f.readingRepo.On("FindAllByMonth", mock.Anything, month).Return(nil, nil)
	f.readingRepo.On("FindAllLatestBefore", mock.Anything, month).Return(map[string]*billing.MeterReading{}, nil)
	f.draftRepo.On("FindByRoomMonthType", mock.Anything, "P101", month, billing.DraftTypeElectricWater).Return(nil, nil)

	var savedDraft *billing.DraftBill
	f.readingRepo.On("SaveWithDraft", mock.Anything, mock.AnythingOfType("*billing.MeterReading"), mock.AnythingOfType("*billing.DraftBill")).
		Run(func(args mock.Arguments) { savedDraft = args.Get(2).(*billing.DraftBill) }).
		Return(nil)

	info, err := f.svc.RecordReading(context.Background(), RecordReadingInput{
		RoomID:           "P101",
		Month:            month,
		ElectricityIndex: decimal.NewFromInt(120),
		WaterIndex:       decimal.NewFromInt(30),
	})

	require.NoError(t, err)
	assert.Equal(t, billing.ReadingStatusRecorded, info.Status)

	require.NotNil(t, savedDraft)
	assert.Equal(t, billing.DraftStatusSent, savedDraft.Status)
	assert.Equal(t, billing.DraftTypeElectricWater, savedDraft.Type)
	// 120 kWh * 3500 + 30 m3 * 15000
	assert.True(t, savedDraft.TotalAmount.Equal(decimal.NewFromInt(120*3500+30*15000)),
		"total was %s", savedDraft.TotalAmount)
	// The reading and the draft land in one write, never separately
	f.readingRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.draftRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestMeterReadingService_RecordReading_NoUtilityTotal(t *testing.T) {
	f := newReadingFixture()
	month := testMonth()

	f.roomRepo.On("FindByID", mock.Anything, "P101").Return(testRoom(t, "P101"), nil)
	f.totalRepo.On("FindByMonth", mock.Anything, month).Return(nil, nil)

	_, err := f.svc.RecordReading(context.Background(), RecordReadingInput{
		RoomID:           "P101",
		Month:            month,
		ElectricityIndex: decimal.NewFromInt(120),
		WaterIndex:       decimal.NewFromInt(30),
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_UTILITY_TOTAL", domainErr.Code)
}

func TestMeterReadingService_RecordReading_IndexRegression(t *testing.T) {
	f := newReadingFixture()
	month := testMonth()

	prev, err := billing.NewMeterReading("P101", billing.PreviousMonth(month), decimal.NewFromInt(150), decimal.NewFromInt(40))
	require.NoError(t, err)

	f.roomRepo.On("FindByID", mock.Anything, "P101").Return(testRoom(t, "P101"), nil)
	f.totalRepo.On("FindByMonth", mock.Anything, month).Return(testUtilityTotal(t, 1000, 100), nil)
	f.readingRepo.On("FindByRoomAndMonth", mock.Anything, "P101", month).Return(nil, nil)
	f.readingRepo.On("FindLatestBefore", mock.Anything, "P101", month).Return(prev, nil)
	f.expectUnitPrices(t)

	_, err = f.svc.RecordReading(context.Background(), RecordReadingInput{
		RoomID:           "P101",
		Month:            month,
		ElectricityIndex: decimal.NewFromInt(120), // below previous 150
		WaterIndex:       decimal.NewFromInt(45),
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INDEX_REGRESSION", domainErr.Code)
	f.readingRepo.AssertNotCalled(t, "SaveWithDraft", mock.Anything, mock.Anything, mock.Anything)
}

func TestMeterReadingService_RecordReading_ExceedsBuildingTotal(t *testing.T) {
	f := newReadingFixture()
	month := testMonth()

	// Another room already consumed 80 kWh this month
	other, err := billing.NewMeterReading("P202", month, decimal.NewFromInt(80), decimal.NewFromInt(10))
	require.NoError(t, err)

	f.roomRepo.On("FindByID", mock.Anything, "P101").Return(testRoom(t, "P101"), nil)
	f.totalRepo.On("FindByMonth", mock.Anything, month).Return(testUtilityTotal(t, 150, 100), nil)
	f.readingRepo.On("FindByRoomAndMonth", mock.Anything, "P101", month).Return(nil, nil)
	f.readingRepo.On("FindLatestBefore", mock.Anything, "P101", month).Return(nil, nil)
	f.expectUnitPrices(t)
	f.readingRepo.On("FindAllByMonth", mock.Anything, month).Return([]billing.MeterReading{*other}, nil)
	f.readingRepo.On("FindAllLatestBefore", mock.Anything, month).Return(map[string]*billing.MeterReading{}, nil)

	// 100 + 80 > building total of 150 kWh
	_, err = f.svc.RecordReading(context.Background(), RecordReadingInput{
		RoomID:           "P101",
		Month:            month,
		ElectricityIndex: decimal.NewFromInt(100),
		WaterIndex:       decimal.NewFromInt(5),
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EXCEEDS_BUILDING_TOTAL", domainErr.Code)
	f.readingRepo.AssertNotCalled(t, "SaveWithDraft", mock.Anything, mock.Anything, mock.Anything)
}

func TestMeterReadingService_RecordReading_RepricesExistingDraft(t *testing.T) {
	f := newReadingFixture()
	month := testMonth()

	existing, err := billing.NewMeterReading("P101", month, decimal.NewFromInt(110), decimal.NewFromInt(25))
	require.NoError(t, err)

	draft, err := billing.NewElectricWaterDraft("P101", month, billing.ElectricWaterDetails{
		NewElectricityIndex:    decimal.NewFromInt(110),
		ElectricityConsumption: decimal.NewFromInt(110),
		ElectricityUnitPrice:   decimal.NewFromInt(3500),
		ElectricityCost:        decimal.NewFromInt(385000),
		NewWaterIndex:          decimal.NewFromInt(25),
		WaterConsumption:       decimal.NewFromInt(25),
		WaterUnitPrice:         decimal.NewFromInt(15000),
		WaterCost:              decimal.NewFromInt(375000),
	})
	require.NoError(t, err)
	require.NoError(t, draft.TransitionTo(billing.DraftStatusRejected))

	f.roomRepo.On("FindByID", mock.Anything, "P101").Return(testRoom(t, "P101"), nil)
	f.totalRepo.On("FindByMonth", mock.Anything, month).Return(testUtilityTotal(t, 1000, 100), nil)
	f.readingRepo.On("FindByRoomAndMonth", mock.Anything, "P101", month).Return(existing, nil)
	f.readingRepo.On("FindLatestBefore", mock.Anything, "P101", month).Return(nil, nil)
	f.expectUnitPrices(t)
	f.readingRepo.On("FindAllByMonth", mock.Anything, month).Return([]billing.MeterReading{*existing}, nil)
	f.readingRepo.On("FindAllLatestBefore", mock.Anything, month).Return(map[string]*billing.MeterReading{}, nil)
	f.draftRepo.On("FindByRoomMonthType", mock.Anything, "P101", month, billing.DraftTypeElectricWater).Return(draft, nil)
	f.readingRepo.On("SaveWithDraft", mock.Anything, existing, draft).Return(nil)

	_, err = f.svc.RecordReading(context.Background(), RecordReadingInput{
		RoomID:           "P101",
		Month:            month,
		ElectricityIndex: decimal.NewFromInt(115),
		WaterIndex:       decimal.NewFromInt(26),
	})

	require.NoError(t, err)
	// Corrected reading puts the rejected draft back in front of the resident
	assert.Equal(t, billing.DraftStatusSent, draft.Status)
	assert.Nil(t, draft.ConfirmedAt)
	assert.True(t, draft.TotalAmount.Equal(decimal.NewFromInt(115*3500+26*15000)),
		"total was %s", draft.TotalAmount)
}
