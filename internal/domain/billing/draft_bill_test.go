package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func testMonth() time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
}

func createTestUtilityDetails() ElectricWaterDetails {
	return ElectricWaterDetails{
		OldElectricityIndex:    decimal.NewFromInt(100),
		NewElectricityIndex:    decimal.NewFromInt(150),
		ElectricityConsumption: decimal.NewFromInt(50),
		ElectricityUnitPrice:   decimal.NewFromInt(3500),
		ElectricityCost:        decimal.NewFromInt(175000),
		OldWaterIndex:          decimal.NewFromInt(40),
		NewWaterIndex:          decimal.NewFromInt(48),
		WaterConsumption:       decimal.NewFromInt(8),
		WaterUnitPrice:         decimal.NewFromInt(15000),
		WaterCost:              decimal.NewFromInt(120000),
	}
}

func createTestServicesDraft(t *testing.T) *DraftBill {
	draft, err := NewServicesDraft("P101", testMonth())
	require.NoError(t, err)
	return draft
}

func createTestServiceLine(serviceID string) ServiceLine {
	return ServiceLine{
		ServiceID:   serviceID,
		Name:        "Cleaning",
		PricingType: PricingPerRoom,
		UnitPrice:   decimal.NewFromInt(50000),
		Cost:        decimal.NewFromInt(50000),
	}
}

// ============================================
// DraftStatus Tests
// ============================================

func TestDraftStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    DraftStatus
		to      DraftStatus
		allowed bool
	}{
		{DraftStatusDraft, DraftStatusSent, true},
		{DraftStatusDraft, DraftStatusConfirmed, false},
		{DraftStatusDraft, DraftStatusRejected, false},
		{DraftStatusSent, DraftStatusConfirmed, true},
		{DraftStatusSent, DraftStatusRejected, true},
		{DraftStatusSent, DraftStatusDraft, false},
		{DraftStatusConfirmed, DraftStatusSent, false},
		{DraftStatusConfirmed, DraftStatusRejected, false},
		{DraftStatusRejected, DraftStatusSent, true},
		{DraftStatusRejected, DraftStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestDraftStatus_IsValid(t *testing.T) {
	assert.True(t, DraftStatusDraft.IsValid())
	assert.True(t, DraftStatusSent.IsValid())
	assert.True(t, DraftStatusConfirmed.IsValid())
	assert.True(t, DraftStatusRejected.IsValid())
	assert.False(t, DraftStatus("PAID").IsValid())
	assert.False(t, DraftStatus("").IsValid())
}

// ============================================
// DraftBill Creation Tests
// ============================================

func TestNewElectricWaterDraft(t *testing.T) {
	details := createTestUtilityDetails()

	draft, err := NewElectricWaterDraft("P101", testMonth(), details)
	require.NoError(t, err)

	assert.Equal(t, "P101", draft.RoomID)
	assert.Equal(t, DraftTypeElectricWater, draft.Type)
	assert.Equal(t, DraftStatusSent, draft.Status)
	assert.True(t, draft.TotalAmount.Equal(decimal.NewFromInt(295000)))
	require.NotNil(t, draft.ElectricWater)
	assert.Nil(t, draft.Services)
	assert.Nil(t, draft.ConfirmedAt)
}

func TestNewElectricWaterDraft_EmptyRoom(t *testing.T) {
	_, err := NewElectricWaterDraft("", testMonth(), createTestUtilityDetails())
	assert.Error(t, err)
}

func TestNewElectricWaterDraft_RegressedIndex(t *testing.T) {
	details := createTestUtilityDetails()
	details.NewElectricityIndex = decimal.NewFromInt(90)

	_, err := NewElectricWaterDraft("P101", testMonth(), details)
	assert.Error(t, err)
}

func TestNewServicesDraft(t *testing.T) {
	draft := createTestServicesDraft(t)

	assert.Equal(t, DraftTypeServices, draft.Type)
	assert.Equal(t, DraftStatusDraft, draft.Status)
	assert.True(t, draft.TotalAmount.IsZero())
	require.NotNil(t, draft.Services)
	assert.Empty(t, draft.Services.Services)
}

func TestNewDraft_NormalizesMonth(t *testing.T) {
	midMonth := time.Date(2026, 3, 17, 10, 30, 0, 0, time.UTC)
	draft, err := NewServicesDraft("P101", midMonth)
	require.NoError(t, err)
	assert.Equal(t, testMonth(), draft.Month)
}

// ============================================
// Transition Tests
// ============================================

func TestDraftBill_TransitionTo_ConfirmStampsTime(t *testing.T) {
	draft := createTestServicesDraft(t)
	require.NoError(t, draft.TransitionTo(DraftStatusSent))

	err := draft.TransitionTo(DraftStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, DraftStatusConfirmed, draft.Status)
	require.NotNil(t, draft.ConfirmedAt)
	assert.WithinDuration(t, time.Now(), *draft.ConfirmedAt, time.Second)
}

func TestDraftBill_TransitionTo_Invalid(t *testing.T) {
	draft := createTestServicesDraft(t)

	err := draft.TransitionTo(DraftStatusConfirmed)
	assert.Error(t, err)
	assert.Equal(t, DraftStatusDraft, draft.Status)
	assert.Nil(t, draft.ConfirmedAt)
}

func TestDraftBill_RejectThenResend(t *testing.T) {
	draft := createTestServicesDraft(t)
	require.NoError(t, draft.TransitionTo(DraftStatusSent))
	require.NoError(t, draft.TransitionTo(DraftStatusRejected))

	err := draft.TransitionTo(DraftStatusSent)
	require.NoError(t, err)
	assert.Equal(t, DraftStatusSent, draft.Status)
}

// ============================================
// Service Line Tests
// ============================================

func TestDraftBill_AddServiceLine(t *testing.T) {
	draft := createTestServicesDraft(t)

	err := draft.AddServiceLine(createTestServiceLine("svc-1"))
	require.NoError(t, err)

	assert.Len(t, draft.Services.Services, 1)
	assert.True(t, draft.TotalAmount.Equal(decimal.NewFromInt(50000)))
}

func TestDraftBill_AddServiceLine_Duplicate(t *testing.T) {
	draft := createTestServicesDraft(t)
	require.NoError(t, draft.AddServiceLine(createTestServiceLine("svc-1")))

	err := draft.AddServiceLine(createTestServiceLine("svc-1"))
	assert.Error(t, err)
	assert.Len(t, draft.Services.Services, 1)
}

func TestDraftBill_AddServiceLine_WrongType(t *testing.T) {
	draft, err := NewElectricWaterDraft("P101", testMonth(), createTestUtilityDetails())
	require.NoError(t, err)

	err = draft.AddServiceLine(createTestServiceLine("svc-1"))
	assert.Error(t, err)
}

func TestDraftBill_AddServiceLine_Confirmed(t *testing.T) {
	draft := createTestServicesDraft(t)
	require.NoError(t, draft.TransitionTo(DraftStatusSent))
	require.NoError(t, draft.TransitionTo(DraftStatusConfirmed))

	err := draft.AddServiceLine(createTestServiceLine("svc-1"))
	assert.Error(t, err)
}

func TestDraftBill_RemoveServiceLine(t *testing.T) {
	draft := createTestServicesDraft(t)
	require.NoError(t, draft.AddServiceLine(createTestServiceLine("svc-1")))
	require.NoError(t, draft.AddServiceLine(createTestServiceLine("svc-2")))

	err := draft.RemoveServiceLine("svc-1")
	require.NoError(t, err)

	assert.Len(t, draft.Services.Services, 1)
	assert.Equal(t, "svc-2", draft.Services.Services[0].ServiceID)
	assert.True(t, draft.TotalAmount.Equal(decimal.NewFromInt(50000)))
}

func TestDraftBill_RemoveServiceLine_Missing(t *testing.T) {
	draft := createTestServicesDraft(t)
	err := draft.RemoveServiceLine("svc-9")
	assert.Error(t, err)
}

// ============================================
// Reprice Tests
// ============================================

func TestDraftBill_RepriceElectricWater(t *testing.T) {
	draft, err := NewElectricWaterDraft("P101", testMonth(), createTestUtilityDetails())
	require.NoError(t, err)
	require.NoError(t, draft.TransitionTo(DraftStatusRejected))

	corrected := createTestUtilityDetails()
	corrected.NewElectricityIndex = decimal.NewFromInt(140)
	corrected.ElectricityConsumption = decimal.NewFromInt(40)
	corrected.ElectricityCost = decimal.NewFromInt(140000)

	err = draft.RepriceElectricWater(corrected)
	require.NoError(t, err)

	assert.Equal(t, DraftStatusSent, draft.Status)
	assert.True(t, draft.TotalAmount.Equal(decimal.NewFromInt(260000)))
	assert.Nil(t, draft.ConfirmedAt)
}

func TestDraftBill_RepriceElectricWater_Confirmed(t *testing.T) {
	draft, err := NewElectricWaterDraft("P101", testMonth(), createTestUtilityDetails())
	require.NoError(t, err)
	require.NoError(t, draft.TransitionTo(DraftStatusConfirmed))

	err = draft.RepriceElectricWater(createTestUtilityDetails())
	assert.Error(t, err)
}
