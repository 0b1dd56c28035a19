package property

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rental/backend/internal/domain/notification"
	"github.com/rental/backend/internal/domain/property"
	"github.com/rental/backend/internal/domain/shared"
)

// ============================================================
// Mocks
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

// ============================================================
// Helpers
// ============================================================

func newTestRoom(t *testing.T, id string, maxOccupants int) *property.Room {
	t.Helper()
	room, err := property.NewRoom(id, decimal.NewFromInt(25), "", maxOccupants)
	require.NoError(t, err)
	return room
}

func newOccupancyService(roomRepo *MockRoomRepository, residentRepo *MockRoomResidentRepository, notifRepo *MockNotificationRepository) *OccupancyService {
	return NewOccupancyService(roomRepo, residentRepo, notifRepo, zap.NewNop())
}

// ============================================================
// AssignResident
// ============================================================

func TestOccupancyService_AssignResident(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	residentRepo := new(MockRoomResidentRepository)
	notifRepo := new(MockNotificationRepository)
	svc := newOccupancyService(roomRepo, residentRepo, notifRepo)

	room := newTestRoom(t, "P101", 3)
	userID := uuid.New()

	roomRepo.On("FindByID", mock.Anything, "P101").Return(room, nil)
	residentRepo.On("FindOpenByUser", mock.Anything, userID).Return(nil, nil)
	residentRepo.On("CountOpenByRoom", mock.Anything, "P101").Return(int64(1), nil)
	residentRepo.On("Save", mock.Anything, mock.AnythingOfType("*property.RoomResident")).Return(nil)
	roomRepo.On("Save", mock.Anything, room).Return(nil)
	notifRepo.On("Save", mock.Anything, mock.AnythingOfType("*notification.Notification")).Return(nil)

	stay, err := svc.AssignResident(context.Background(), AssignResidentInput{
		RoomID:     "P101",
		UserID:     userID,
		MoveInDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "P101", stay.RoomID)
	assert.Equal(t, userID, stay.UserID)
	assert.Nil(t, stay.MoveOutDate)
	assert.Equal(t, property.RoomStatusOccupied, room.Status)
	residentRepo.AssertExpectations(t)
}

func TestOccupancyService_AssignResident_RoomFull(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	residentRepo := new(MockRoomResidentRepository)
	svc := newOccupancyService(roomRepo, residentRepo, new(MockNotificationRepository))

	room := newTestRoom(t, "P101", 2)
	userID := uuid.New()

	roomRepo.On("FindByID", mock.Anything, "P101").Return(room, nil)
	residentRepo.On("FindOpenByUser", mock.Anything, userID).Return(nil, nil)
	residentRepo.On("CountOpenByRoom", mock.Anything, "P101").Return(int64(2), nil)

	_, err := svc.AssignResident(context.Background(), AssignResidentInput{RoomID: "P101", UserID: userID})

	assert.ErrorIs(t, err, shared.ErrRoomFull)
}

func TestOccupancyService_AssignResident_RoomUnderMaintenance(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	residentRepo := new(MockRoomResidentRepository)
	svc := newOccupancyService(roomRepo, residentRepo, new(MockNotificationRepository))

	room := newTestRoom(t, "P101", 3)
	require.NoError(t, room.SetStatus(property.RoomStatusMaintenance))
	userID := uuid.New()

	roomRepo.On("FindByID", mock.Anything, "P101").Return(room, nil)
	residentRepo.On("FindOpenByUser", mock.Anything, userID).Return(nil, nil)
	residentRepo.On("CountOpenByRoom", mock.Anything, "P101").Return(int64(0), nil)

	_, err := svc.AssignResident(context.Background(), AssignResidentInput{RoomID: "P101", UserID: userID})

	assert.ErrorIs(t, err, shared.ErrRoomUnavailable)
}

func TestOccupancyService_AssignResident_ReassignClosesOldStay(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	residentRepo := new(MockRoomResidentRepository)
	notifRepo := new(MockNotificationRepository)
	svc := newOccupancyService(roomRepo, residentRepo, notifRepo)

	newRoom := newTestRoom(t, "P202", 3)
	oldRoom := newTestRoom(t, "P101", 3)
	oldRoom.MarkOccupied()
	userID := uuid.New()
	existing, err := property.NewRoomResident("P101", userID, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	roomRepo.On("FindByID", mock.Anything, "P202").Return(newRoom, nil)
	residentRepo.On("FindOpenByUser", mock.Anything, userID).Return(existing, nil)
	residentRepo.On("Save", mock.Anything, mock.AnythingOfType("*property.RoomResident")).Return(nil)
	residentRepo.On("CountOpenByRoom", mock.Anything, "P101").Return(int64(0), nil)
	roomRepo.On("FindByID", mock.Anything, "P101").Return(oldRoom, nil)
	roomRepo.On("Save", mock.Anything, oldRoom).Return(nil)
	residentRepo.On("CountOpenByRoom", mock.Anything, "P202").Return(int64(0), nil)
	roomRepo.On("Save", mock.Anything, newRoom).Return(nil)
	notifRepo.On("Save", mock.Anything, mock.AnythingOfType("*notification.Notification")).Return(nil)

	moveIn := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	stay, err := svc.AssignResident(context.Background(), AssignResidentInput{
		RoomID:     "P202",
		UserID:     userID,
		MoveInDate: moveIn,
	})

	require.NoError(t, err)
	assert.Equal(t, "P202", stay.RoomID)
	require.NotNil(t, existing.MoveOutDate)
	assert.True(t, existing.MoveOutDate.Equal(moveIn))
	assert.Equal(t, property.RoomStatusAvailable, oldRoom.Status)
	assert.Equal(t, property.RoomStatusOccupied, newRoom.Status)
	residentRepo.AssertExpectations(t)
	roomRepo.AssertExpectations(t)
}

func TestOccupancyService_AssignResident_ReassignBeforeOriginalMoveIn(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	residentRepo := new(MockRoomResidentRepository)
	svc := newOccupancyService(roomRepo, residentRepo, new(MockNotificationRepository))

	room := newTestRoom(t, "P202", 3)
	userID := uuid.New()
	existing, err := property.NewRoomResident("P101", userID, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	roomRepo.On("FindByID", mock.Anything, "P202").Return(room, nil)
	residentRepo.On("FindOpenByUser", mock.Anything, userID).Return(existing, nil)

	_, err = svc.AssignResident(context.Background(), AssignResidentInput{
		RoomID:     "P202",
		UserID:     userID,
		MoveInDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_MOVE_OUT", domainErr.Code)
}

// ============================================================
// LeaveRoom
// ============================================================

func TestOccupancyService_LeaveRoom_LastResidentFreesRoom(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	residentRepo := new(MockRoomResidentRepository)
	notifRepo := new(MockNotificationRepository)
	svc := newOccupancyService(roomRepo, residentRepo, notifRepo)

	room := newTestRoom(t, "P101", 3)
	room.MarkOccupied()
	userID := uuid.New()
	stay, err := property.NewRoomResident("P101", userID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	residentRepo.On("FindOpenByUser", mock.Anything, userID).Return(stay, nil)
	residentRepo.On("Save", mock.Anything, stay).Return(nil)
	residentRepo.On("CountOpenByRoom", mock.Anything, "P101").Return(int64(0), nil)
	roomRepo.On("FindByID", mock.Anything, "P101").Return(room, nil)
	roomRepo.On("Save", mock.Anything, room).Return(nil)
	notifRepo.On("Save", mock.Anything, mock.AnythingOfType("*notification.Notification")).Return(nil)

	result, err := svc.LeaveRoom(context.Background(), LeaveRoomInput{
		UserID:      userID,
		MoveOutDate: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.NotNil(t, result.MoveOutDate)
	assert.Equal(t, property.RoomStatusAvailable, room.Status)
}

func TestOccupancyService_LeaveRoom_NotResident(t *testing.T) {
	residentRepo := new(MockRoomResidentRepository)
	svc := newOccupancyService(new(MockRoomRepository), residentRepo, new(MockNotificationRepository))

	userID := uuid.New()
	residentRepo.On("FindOpenByUser", mock.Anything, userID).Return(nil, nil)

	_, err := svc.LeaveRoom(context.Background(), LeaveRoomInput{UserID: userID, MoveOutDate: time.Now()})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_RESIDENT", domainErr.Code)
}

// ============================================================
// RoomService
// ============================================================

func TestRoomService_CreateRoom_Duplicate(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	svc := NewRoomService(roomRepo, new(MockRoomResidentRepository), new(MockRentalPriceRepository), zap.NewNop())

	existing := newTestRoom(t, "P101", 3)
	roomRepo.On("FindByID", mock.Anything, "P101").Return(existing, nil)

	_, err := svc.CreateRoom(context.Background(), CreateRoomInput{ID: "P101", Area: decimal.NewFromInt(25)})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_ROOM", domainErr.Code)
}

func TestRoomService_DeleteRoom_Occupied(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	residentRepo := new(MockRoomResidentRepository)
	svc := NewRoomService(roomRepo, residentRepo, new(MockRentalPriceRepository), zap.NewNop())

	room := newTestRoom(t, "P101", 3)
	roomRepo.On("FindByID", mock.Anything, "P101").Return(room, nil)
	residentRepo.On("CountOpenByRoom", mock.Anything, "P101").Return(int64(2), nil)

	err := svc.DeleteRoom(context.Background(), "P101")

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ROOM_OCCUPIED", domainErr.Code)
}
