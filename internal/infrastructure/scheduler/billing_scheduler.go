package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rental/backend/internal/domain/billing"
	"github.com/rental/backend/internal/infrastructure/config"
)

const tickerInterval = 1 * time.Minute

// BillGenerator produces the final bills for every occupied room in a month.
// It is implemented by the billing application service.
type BillGenerator interface {
	GenerateForMonth(ctx context.Context, month time.Time) (int, error)
}

// BillingScheduler runs the recurring billing jobs: monthly final bill
// generation on the configured day, and a daily sweep that flags unpaid
// bills past their due date as overdue.
type BillingScheduler struct {
	config    config.SchedulerConfig
	generator BillGenerator
	billRepo  billing.BillRepository
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	lastGeneratedMonth time.Time
	lastSweepDay       time.Time
	lastRunAt          *time.Time
}

// NewBillingScheduler creates a new BillingScheduler
func NewBillingScheduler(
	cfg config.SchedulerConfig,
	generator BillGenerator,
	billRepo billing.BillRepository,
	logger *zap.Logger,
) *BillingScheduler {
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = tickerInterval
	}
	if cfg.BillGenerationAt < 1 || cfg.BillGenerationAt > 28 {
		cfg.BillGenerationAt = 1
	}
	return &BillingScheduler{
		config:    cfg,
		generator: generator,
		billRepo:  billRepo,
		logger:    logger,
	}
}

// Start begins the scheduler loop
func (s *BillingScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Billing scheduler started",
		zap.Duration("check_interval", s.config.CheckInterval),
		zap.Int("bill_generation_day", s.config.BillGenerationAt),
	)
	return nil
}

// Stop stops the scheduler and waits for the loop to exit
func (s *BillingScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Billing scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Billing scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *BillingScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.runPending(ctx, now)
		}
	}
}

// runPending executes any job whose schedule has come due
func (s *BillingScheduler) runPending(ctx context.Context, now time.Time) {
	s.mu.Lock()
	s.lastRunAt = &now
	generateDue := now.Day() >= s.config.BillGenerationAt &&
		!sameMonth(s.lastGeneratedMonth, now)
	sweepDue := !sameDay(s.lastSweepDay, now)
	if generateDue {
		s.lastGeneratedMonth = now
	}
	if sweepDue {
		s.lastSweepDay = now
	}
	s.mu.Unlock()

	if generateDue {
		s.generateBills(ctx, now)
	}
	if sweepDue {
		s.sweepOverdue(ctx, now)
	}
}

// generateBills produces the final bills for the previous month
func (s *BillingScheduler) generateBills(ctx context.Context, now time.Time) {
	month := billing.PreviousMonth(billing.MonthStart(now))

	s.logger.Info("Starting monthly bill generation",
		zap.String("month", month.Format("2006-01")),
	)

	count, err := s.generator.GenerateForMonth(ctx, month)
	if err != nil {
		s.logger.Error("Monthly bill generation failed",
			zap.String("month", month.Format("2006-01")),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Monthly bill generation completed",
		zap.String("month", month.Format("2006-01")),
		zap.Int("bills_generated", count),
	)
}

// sweepOverdue flags unpaid bills past their due date
func (s *BillingScheduler) sweepOverdue(ctx context.Context, now time.Time) {
	bills, err := s.billRepo.FindUnpaidPastDue(ctx, now)
	if err != nil {
		s.logger.Error("Failed to fetch overdue bills", zap.Error(err))
		return
	}
	if len(bills) == 0 {
		return
	}

	marked := 0
	for i := range bills {
		bill := &bills[i]
		if err := bill.MarkOverdue(now); err != nil {
			continue
		}
		if err := s.billRepo.Save(ctx, bill); err != nil {
			s.logger.Error("Failed to save overdue bill",
				zap.String("bill_id", bill.ID.String()),
				zap.Error(err),
			)
			continue
		}
		marked++
	}

	s.logger.Info("Overdue bill sweep completed",
		zap.Int("candidates", len(bills)),
		zap.Int("marked", marked),
	)
}

// GetStatus returns the current scheduler state for diagnostics
func (s *BillingScheduler) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]any{
		"enabled":             s.config.Enabled,
		"is_running":          s.isRunning,
		"bill_generation_day": s.config.BillGenerationAt,
	}
	if s.lastRunAt != nil {
		status["last_run_at"] = s.lastRunAt.Format(time.RFC3339)
	}
	if !s.lastGeneratedMonth.IsZero() {
		status["last_generated_month"] = s.lastGeneratedMonth.Format("2006-01")
	}
	return status
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
