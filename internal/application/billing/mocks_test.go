package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/rental/backend/internal/domain/billing"
	"github.com/rental/backend/internal/domain/notification"
	"github.com/rental/backend/internal/domain/property"
)

// ============================================================
// Property mocks
// ============================================================

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) FindByID(ctx context.Context, id string) (*property.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Room), args.Error(1)
}

func (m *MockRoomRepository) FindAll(ctx context.Context, filter property.RoomFilter) ([]property.Room, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Room), args.Error(1)
}

func (m *MockRoomRepository) Count(ctx context.Context, filter property.RoomFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoomRepository) Save(ctx context.Context, room *property.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRoomResidentRepository struct {
	mock.Mock
}

func (m *MockRoomResidentRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.RoomResident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.RoomResident), args.Error(1)
}

func (m *MockRoomResidentRepository) FindOpenByUser(ctx context.Context, userID uuid.UUID) (*property.RoomResident, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.RoomResident), args.Error(1)
}

func (m *MockRoomResidentRepository) FindOpenByRoom(ctx context.Context, roomID string) ([]property.RoomResident, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.RoomResident), args.Error(1)
}

func (m *MockRoomResidentRepository) CountOpenByRoom(ctx context.Context, roomID string) (int64, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoomResidentRepository) FindByRoomOverlapping(ctx context.Context, roomID string, monthStart, nextMonthStart time.Time) ([]property.RoomResident, error) {
	args := m.Called(ctx, roomID, monthStart, nextMonthStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.RoomResident), args.Error(1)
}

func (m *MockRoomResidentRepository) FindHistoryByUser(ctx context.Context, userID uuid.UUID) ([]property.RoomResident, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.RoomResident), args.Error(1)
}

func (m *MockRoomResidentRepository) Save(ctx context.Context, stay *property.RoomResident) error {
	args := m.Called(ctx, stay)
	return args.Error(0)
}

type MockRentalPriceRepository struct {
	mock.Mock
}

func (m *MockRentalPriceRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.RentalPrice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.RentalPrice), args.Error(1)
}

func (m *MockRentalPriceRepository) FindByRoom(ctx context.Context, roomID string) ([]property.RentalPrice, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.RentalPrice), args.Error(1)
}

func (m *MockRentalPriceRepository) FindInEffect(ctx context.Context, roomID string, target time.Time) (*property.RentalPrice, error) {
	args := m.Called(ctx, roomID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.RentalPrice), args.Error(1)
}

func (m *MockRentalPriceRepository) Save(ctx context.Context, price *property.RentalPrice) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *MockRentalPriceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ============================================================
// Billing mocks
// ============================================================

type MockMeterReadingRepository struct {
	mock.Mock
}

func (m *MockMeterReadingRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.MeterReading, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.MeterReading), args.Error(1)
}

func (m *MockMeterReadingRepository) FindByRoomAndMonth(ctx context.Context, roomID string, month time.Time) (*billing.MeterReading, error) {
	args := m.Called(ctx, roomID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.MeterReading), args.Error(1)
}

func (m *MockMeterReadingRepository) FindLatestBefore(ctx context.Context, roomID string, month time.Time) (*billing.MeterReading, error) {
	args := m.Called(ctx, roomID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.MeterReading), args.Error(1)
}

func (m *MockMeterReadingRepository) FindAllByMonth(ctx context.Context, month time.Time) ([]billing.MeterReading, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.MeterReading), args.Error(1)
}

func (m *MockMeterReadingRepository) FindAllLatestBefore(ctx context.Context, month time.Time) (map[string]*billing.MeterReading, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*billing.MeterReading), args.Error(1)
}

func (m *MockMeterReadingRepository) Save(ctx context.Context, reading *billing.MeterReading) error {
	args := m.Called(ctx, reading)
	return args.Error(0)
}

func (m *MockMeterReadingRepository) SaveWithDraft(ctx context.Context, reading *billing.MeterReading, draft *billing.DraftBill) error {
	args := m.Called(ctx, reading, draft)
	return args.Error(0)
}

type MockUtilityTotalRepository struct {
	mock.Mock
}

func (m *MockUtilityTotalRepository) FindByMonth(ctx context.Context, month time.Time) (*billing.UtilityTotal, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.UtilityTotal), args.Error(1)
}

func (m *MockUtilityTotalRepository) FindAll(ctx context.Context) ([]billing.UtilityTotal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.UtilityTotal), args.Error(1)
}

func (m *MockUtilityTotalRepository) Save(ctx context.Context, total *billing.UtilityTotal) error {
	args := m.Called(ctx, total)
	return args.Error(0)
}

type MockDraftBillRepository struct {
	mock.Mock
}

func (m *MockDraftBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.DraftBill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.DraftBill), args.Error(1)
}

func (m *MockDraftBillRepository) FindByRoomMonthType(ctx context.Context, roomID string, month time.Time, draftType billing.DraftType) (*billing.DraftBill, error) {
	args := m.Called(ctx, roomID, month, draftType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.DraftBill), args.Error(1)
}

func (m *MockDraftBillRepository) FindByRoomAndMonth(ctx context.Context, roomID string, month time.Time) ([]billing.DraftBill, error) {
	args := m.Called(ctx, roomID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.DraftBill), args.Error(1)
}

func (m *MockDraftBillRepository) FindByMonth(ctx context.Context, month time.Time, draftType *billing.DraftType) ([]billing.DraftBill, error) {
	args := m.Called(ctx, month, draftType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.DraftBill), args.Error(1)
}

func (m *MockDraftBillRepository) Save(ctx context.Context, draft *billing.DraftBill) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

type MockServiceItemRepository struct {
	mock.Mock
}

func (m *MockServiceItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.ServiceItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.ServiceItem), args.Error(1)
}

func (m *MockServiceItemRepository) FindAll(ctx context.Context, activeOnly bool) ([]billing.ServiceItem, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.ServiceItem), args.Error(1)
}

func (m *MockServiceItemRepository) Save(ctx context.Context, item *billing.ServiceItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockServiceItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByRoomAndMonth(ctx context.Context, roomID string, month time.Time) (*billing.Bill, error) {
	args := m.Called(ctx, roomID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindAll(ctx context.Context, filter billing.BillFilter) ([]billing.Bill, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) Count(ctx context.Context, filter billing.BillFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBillRepository) FindUnpaidPastDue(ctx context.Context, now time.Time) ([]billing.Bill, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByOrderCode(ctx context.Context, orderCode int64) (*billing.Payment, error) {
	args := m.Called(ctx, orderCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByBill(ctx context.Context, billID uuid.UUID) ([]billing.Payment, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *billing.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) FindByKey(ctx context.Context, key string) (*billing.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Setting), args.Error(1)
}

func (m *MockSettingRepository) FindAll(ctx context.Context) ([]billing.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Setting), args.Error(1)
}

func (m *MockSettingRepository) Save(ctx context.Context, setting *billing.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]notification.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) SaveAll(ctx context.Context, ns []*notification.Notification) error {
	args := m.Called(ctx, ns)
	return args.Error(0)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreatePaymentLink(ctx context.Context, req *billing.CreatePaymentLinkRequest) (*billing.PaymentLink, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.PaymentLink), args.Error(1)
}

func (m *MockPaymentGateway) VerifyWebhook(payload []byte) (*billing.WebhookEvent, error) {
	args := m.Called(payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.WebhookEvent), args.Error(1)
}
