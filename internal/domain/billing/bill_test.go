package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUtilities() UtilityCharges {
	return UtilityCharges{
		Electricity: decimal.NewFromInt(200000),
		Water:       decimal.NewFromInt(80000),
		Shared:      decimal.NewFromInt(15000),
	}
}

func createTestBill(t *testing.T) *Bill {
	bill, err := NewBill(
		"P101",
		testMonth(),
		decimal.NewFromInt(3000000),
		createTestUtilities(),
		[]ServiceLine{createTestServiceLine("svc-1")},
	)
	require.NoError(t, err)
	return bill
}

// ============================================
// Bill Creation Tests
// ============================================

func TestNewBill(t *testing.T) {
	bill := createTestBill(t)

	assert.Equal(t, BillStatusUnpaid, bill.Status)
	assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(3345000)))
	assert.True(t, bill.ServiceAmount.Equal(decimal.NewFromInt(50000)))
	assert.Len(t, bill.ServiceLines, 1)
	assert.Equal(t, bill.ID, bill.ServiceLines[0].BillID)
	assert.Nil(t, bill.PaidAt)
}

func TestNewBill_ItemizedUtilities(t *testing.T) {
	bill := createTestBill(t)

	// Electricity, water, and the common-area share stay separate line items
	assert.True(t, bill.ElectricityAmount.Equal(decimal.NewFromInt(200000)))
	assert.True(t, bill.WaterAmount.Equal(decimal.NewFromInt(80000)))
	assert.True(t, bill.SharedAmount.Equal(decimal.NewFromInt(15000)))
}

func TestNewBill_NegativeUtility(t *testing.T) {
	utilities := UtilityCharges{Water: decimal.NewFromInt(-1)}
	_, err := NewBill("P101", testMonth(), decimal.NewFromInt(3000000), utilities, nil)
	assert.Error(t, err)
}

func TestNewBill_DueDate(t *testing.T) {
	bill := createTestBill(t)

	// March bill is due April 15th.
	assert.Equal(t, time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC), bill.DueDate)
}

func TestNewBill_NegativeRent(t *testing.T) {
	_, err := NewBill("P101", testMonth(), decimal.NewFromInt(-1), UtilityCharges{}, nil)
	assert.Error(t, err)
}

func TestNewBill_NoServices(t *testing.T) {
	bill, err := NewBill("P101", testMonth(), decimal.NewFromInt(3000000), UtilityCharges{}, nil)
	require.NoError(t, err)
	assert.True(t, bill.ServiceAmount.IsZero())
	assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(3000000)))
}

// ============================================
// Payment State Tests
// ============================================

func TestBill_MarkPaid(t *testing.T) {
	bill := createTestBill(t)
	paidAt := time.Date(2026, 4, 3, 14, 0, 0, 0, time.UTC)

	err := bill.MarkPaid(paidAt)
	require.NoError(t, err)

	assert.Equal(t, BillStatusPaid, bill.Status)
	require.NotNil(t, bill.PaidAt)
	assert.Equal(t, paidAt, *bill.PaidAt)
}

func TestBill_MarkPaid_Idempotent(t *testing.T) {
	bill := createTestBill(t)
	first := time.Date(2026, 4, 3, 14, 0, 0, 0, time.UTC)
	require.NoError(t, bill.MarkPaid(first))

	err := bill.MarkPaid(first.Add(time.Hour))
	require.NoError(t, err)

	// First confirmation wins.
	assert.Equal(t, first, *bill.PaidAt)
}

func TestBill_MarkOverdue(t *testing.T) {
	bill := createTestBill(t)

	err := bill.MarkOverdue(bill.DueDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, BillStatusOverdue, bill.Status)
}

func TestBill_MarkOverdue_NotYetDue(t *testing.T) {
	bill := createTestBill(t)

	err := bill.MarkOverdue(bill.DueDate.AddDate(0, 0, -1))
	assert.Error(t, err)
	assert.Equal(t, BillStatusUnpaid, bill.Status)
}

func TestBill_MarkOverdue_Paid(t *testing.T) {
	bill := createTestBill(t)
	require.NoError(t, bill.MarkPaid(time.Now()))

	err := bill.MarkOverdue(bill.DueDate.AddDate(0, 0, 1))
	assert.Error(t, err)
	assert.Equal(t, BillStatusPaid, bill.Status)
}

func TestBill_IsPayable(t *testing.T) {
	bill := createTestBill(t)
	assert.True(t, bill.IsPayable())

	require.NoError(t, bill.MarkOverdue(bill.DueDate.AddDate(0, 0, 1)))
	assert.True(t, bill.IsPayable())

	require.NoError(t, bill.MarkPaid(time.Now()))
	assert.False(t, bill.IsPayable())
}

// ============================================
// Regeneration Tests
// ============================================

func TestBill_Regenerate_ResetsPayment(t *testing.T) {
	bill := createTestBill(t)
	require.NoError(t, bill.MarkPaid(time.Now()))

	err := bill.Regenerate(
		decimal.NewFromInt(3200000),
		UtilityCharges{Electricity: decimal.NewFromInt(250000), Water: decimal.NewFromInt(50000)},
		[]ServiceLine{createTestServiceLine("svc-1"), createTestServiceLine("svc-2")},
	)
	require.NoError(t, err)

	assert.Equal(t, BillStatusUnpaid, bill.Status)
	assert.Nil(t, bill.PaidAt)
	assert.Len(t, bill.ServiceLines, 2)
	assert.True(t, bill.SharedAmount.IsZero())
	assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(3600000)))
}

func TestBill_Regenerate_DropsOldLines(t *testing.T) {
	bill := createTestBill(t)

	err := bill.Regenerate(bill.RentAmount, createTestUtilities(), nil)
	require.NoError(t, err)

	assert.Empty(t, bill.ServiceLines)
	assert.True(t, bill.ServiceAmount.IsZero())
}
