package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rental/backend/internal/domain/billing"
	"github.com/rental/backend/internal/infrastructure/config"
)

type fakeGenerator struct {
	calls  []time.Time
	result int
	err    error
}

func (g *fakeGenerator) GenerateForMonth(_ context.Context, month time.Time) (int, error) {
	g.calls = append(g.calls, month)
	return g.result, g.err
}

type fakeBillRepo struct {
	pastDue []billing.Bill
	saved   []*billing.Bill
}

func (r *fakeBillRepo) FindByID(context.Context, uuid.UUID) (*billing.Bill, error) { return nil, nil }
func (r *fakeBillRepo) FindByRoomAndMonth(context.Context, string, time.Time) (*billing.Bill, error) {
	return nil, nil
}
func (r *fakeBillRepo) FindAll(context.Context, billing.BillFilter) ([]billing.Bill, error) {
	return nil, nil
}
func (r *fakeBillRepo) Count(context.Context, billing.BillFilter) (int64, error) { return 0, nil }
func (r *fakeBillRepo) FindUnpaidPastDue(context.Context, time.Time) ([]billing.Bill, error) {
	return r.pastDue, nil
}
func (r *fakeBillRepo) Save(_ context.Context, bill *billing.Bill) error {
	r.saved = append(r.saved, bill)
	return nil
}
func (r *fakeBillRepo) Delete(context.Context, uuid.UUID) error { return nil }

func newTestScheduler(gen *fakeGenerator, repo *fakeBillRepo) *BillingScheduler {
	cfg := config.SchedulerConfig{
		Enabled:          true,
		CheckInterval:    time.Minute,
		BillGenerationAt: 2,
	}
	return NewBillingScheduler(cfg, gen, repo, zap.NewNop())
}

func TestBillingScheduler_GeneratesOnConfiguredDay(t *testing.T) {
	gen := &fakeGenerator{result: 3}
	s := newTestScheduler(gen, &fakeBillRepo{})

	// Day before the configured generation day: nothing happens
	s.runPending(context.Background(), time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	assert.Empty(t, gen.calls)

	// On the configured day the previous month's bills are generated
	s.runPending(context.Background(), time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC))
	require.Len(t, gen.calls, 1)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), gen.calls[0])

	// Subsequent ticks in the same month do not re-run generation
	s.runPending(context.Background(), time.Date(2026, 4, 2, 9, 1, 0, 0, time.UTC))
	s.runPending(context.Background(), time.Date(2026, 4, 15, 9, 0, 0, 0, time.UTC))
	assert.Len(t, gen.calls, 1)

	// Next month it runs again
	s.runPending(context.Background(), time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC))
	require.Len(t, gen.calls, 2)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), gen.calls[1])
}

func TestBillingScheduler_SweepMarksOverdueBills(t *testing.T) {
	month := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	bill, err := billing.NewBill("P101", month, decimal.NewFromInt(3000000),
		billing.UtilityCharges{Electricity: decimal.NewFromInt(350000), Water: decimal.NewFromInt(100000)}, nil)
	require.NoError(t, err)

	repo := &fakeBillRepo{pastDue: []billing.Bill{*bill}}
	s := newTestScheduler(&fakeGenerator{}, repo)

	now := bill.DueDate.AddDate(0, 0, 1)
	s.runPending(context.Background(), now)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, billing.BillStatusOverdue, repo.saved[0].Status)
}

func TestBillingScheduler_SweepRunsOncePerDay(t *testing.T) {
	repo := &fakeBillRepo{}
	s := newTestScheduler(&fakeGenerator{}, repo)

	day := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	s.runPending(context.Background(), day)
	s.runPending(context.Background(), day.Add(time.Minute))

	s.mu.Lock()
	lastSweep := s.lastSweepDay
	s.mu.Unlock()
	assert.Equal(t, day, lastSweep)
}

func TestBillingScheduler_StartStop(t *testing.T) {
	s := newTestScheduler(&fakeGenerator{}, &fakeBillRepo{})

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background())) // idempotent

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	require.NoError(t, s.Stop(ctx))
}
