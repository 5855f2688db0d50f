package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Sweeper removes sessions that have been idle for too long
type Sweeper interface {
	CleanupIdle(maxIdle time.Duration) int
}

// Scheduler runs the periodic session sweep
type Scheduler struct {
	scheduler *gocron.Scheduler
	sweeper   Sweeper
	logger    *zap.Logger
}

// New creates a new scheduler instance
func New(sweeper Sweeper, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sweeper:   sweeper,
		logger:    logger,
	}
}

// Start sweeps sessions idle longer than maxIdle every interval
func (s *Scheduler) Start(interval, maxIdle time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %s", interval)
	}

	_, err := s.scheduler.Every(interval).WaitForSchedule().Do(func() {
		evicted := s.sweeper.CleanupIdle(maxIdle)
		s.logger.Debug("Session sweep finished", zap.Int("evicted", evicted))
	})
	if err != nil {
		return fmt.Errorf("failed to schedule session sweep: %w", err)
	}

	s.scheduler.StartAsync()
	s.logger.Info("Session sweep scheduled",
		zap.Duration("interval", interval),
		zap.Duration("max_idle", maxIdle),
	)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
