package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kosbot/kosbot-api/internal/domain/invoice"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/pkg/metrics"
	"github.com/kosbot/kosbot-api/internal/pkg/utils"
)

// DefaultSweepSchedule runs the sweep at the top of every hour
const DefaultSweepSchedule = "@hourly"

// OverdueSweeper periodically flips unpaid invoices past their due date
// to overdue
type OverdueSweeper struct {
	invoices invoice.Repository
	schedule string
	logger   *logger.Logger
	now      func() time.Time

	mu        sync.Mutex
	scheduler *cron.Cron
}

// NewOverdueSweeper creates a new sweeper. An empty schedule uses
// DefaultSweepSchedule.
func NewOverdueSweeper(invoices invoice.Repository, schedule string, log *logger.Logger) *OverdueSweeper {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &OverdueSweeper{
		invoices: invoices,
		schedule: schedule,
		logger:   log,
		now:      time.Now,
	}
}

// Start runs one sweep immediately and then schedules the rest. It
// returns an error for an invalid schedule.
func (s *OverdueSweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler != nil {
		return fmt.Errorf("overdue sweeper is already running")
	}

	c := cron.New()
	if _, err := c.AddFunc(s.schedule, func() { s.Sweep(ctx) }); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}

	s.Sweep(ctx)
	c.Start()
	s.scheduler = c

	s.logger.WithFields(map[string]interface{}{
		"schedule": s.schedule,
	}).Info("Overdue sweeper started")
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish
func (s *OverdueSweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler == nil {
		return
	}
	<-s.scheduler.Stop().Done()
	s.scheduler = nil
	s.logger.Info("Overdue sweeper stopped")
}

// Sweep marks every pending or partial invoice due before today as overdue
func (s *OverdueSweeper) Sweep(ctx context.Context) int64 {
	if ctx.Err() != nil {
		return 0
	}
	now := s.now()
	today := utils.FormatDate(now)

	marked, err := s.invoices.MarkOverdue(ctx, today, now)
	metrics.RecordOverdueSweep(marked, err)
	if err != nil {
		s.logger.ErrorWithErr(err, "Overdue sweep failed")
		return 0
	}

	if marked > 0 {
		s.logger.WithFields(map[string]interface{}{
			"marked": marked,
			"day":    today,
		}).Info("Invoices marked overdue")
	}
	return marked
}
