package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"adpilot/internal/metrics"
)

// Job is one periodic controller loop.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler drives each job on its own ticker. Ticks of one job never
// overlap; different jobs run independently of each other.
type Scheduler struct {
	jobs   []Job
	logger *slog.Logger
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(logger *slog.Logger, jobs ...Job) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{jobs: jobs, logger: logger}
}

// Start launches every job. The first tick runs immediately.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	for _, job := range s.jobs {
		if job.Interval <= 0 {
			s.logger.Warn("job disabled, non-positive interval", slog.String("loop", job.Name))
			continue
		}
		s.wg.Add(1)
		go s.loop(ctx, job)
		s.logger.Info("scheduler loop started", slog.String("loop", job.Name), slog.Duration("interval", job.Interval))
	}
}

// Stop cancels all jobs and waits for in-flight ticks to return.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	defer s.wg.Done()

	s.runOnce(ctx, job)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, job)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, job Job) {
	logger := s.logger.With(slog.String("loop", job.Name), slog.String("tick_id", uuid.NewString()))
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("tick panicked", slog.Any("error", fmt.Errorf("panic: %v", r)))
		}
		metrics.ObserveTick(job.Name, time.Since(start))
	}()

	if err := job.Run(ctx); err != nil {
		logger.Error("tick failed", slog.Any("error", err), slog.Duration("took", time.Since(start)))
		return
	}
	logger.Debug("tick done", slog.Duration("took", time.Since(start)))
}
