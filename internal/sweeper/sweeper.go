package sweeper

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"p2p-delivery/internal/logx"
)

// OrderCleaner cancels stale pending orders and reports how many it touched.
type OrderCleaner interface {
	CleanupExpired(ctx context.Context, olderThan time.Duration) (int, error)
}

// Sweeper periodically expires pending orders that outlived the threshold.
// Sweep failures are logged and never stop the schedule.
type Sweeper struct {
	cleaner      OrderCleaner
	threshold    time.Duration
	interval     time.Duration
	cron         *cron.Cron
	logger       logx.Logger
	expiredTotal prometheus.Counter
}

// New creates a sweeper. The interval drives the schedule; the threshold is
// the minimum age a PENDING order must reach before it is expired.
func New(cleaner OrderCleaner, threshold, interval time.Duration, logger logx.Logger, expiredTotal prometheus.Counter) *Sweeper {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Sweeper{
		cleaner:      cleaner,
		threshold:    threshold,
		interval:     interval,
		cron:         cron.New(cron.WithSeconds()),
		logger:       logger,
		expiredTotal: expiredTotal,
	}
}

// Start schedules the sweep.
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc("@every "+s.interval.String(), func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("expiry sweeper started",
		logx.String("interval", s.interval.String()),
		logx.String("threshold", s.threshold.String()),
	)
	return nil
}

// Stop halts the schedule. A sweep already in flight runs to completion.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("expiry sweeper stopped")
}

// RunOnce performs a single sweep pass.
func (s *Sweeper) RunOnce(ctx context.Context) {
	n, err := s.cleaner.CleanupExpired(ctx, s.threshold)
	if err != nil {
		s.logger.Error("expiry sweep failed", logx.Err(err))
		return
	}
	if n > 0 {
		if s.expiredTotal != nil {
			s.expiredTotal.Add(float64(n))
		}
		s.logger.Info("expired stale orders", logx.Int("count", n))
	}
}
