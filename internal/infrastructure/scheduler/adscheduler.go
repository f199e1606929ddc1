package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

// AdLifecycleScheduler drives the time-based ad state transitions.
// - Runs every minute
// - Moves approved ads whose schedule window has opened into RUNNING
// - Completes running ads whose schedule window has closed, refunding the
//   unspent budget
type AdLifecycleScheduler struct {
	activateJob BatchJob
	completeJob BatchJob
	logger      logger.Interface
	stopChan    chan struct{}
	stopOnce    sync.Once      // Ensures Stop() is only called once
	wg          sync.WaitGroup // Tracks running goroutines for graceful shutdown
	interval    time.Duration
}

func NewAdLifecycleScheduler(
	activateJob BatchJob,
	completeJob BatchJob,
	logger logger.Interface,
) *AdLifecycleScheduler {
	return &AdLifecycleScheduler{
		activateJob: activateJob,
		completeJob: completeJob,
		logger:      logger,
		stopChan:    make(chan struct{}),
		interval:    time.Minute,
	}
}

// Start starts the scheduler. Sweeps run in a background goroutine until
// Stop is called or the context is cancelled.
func (s *AdLifecycleScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting ad lifecycle scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runSweepLoop(ctx)
	}()
}

// Stop stops the scheduler gracefully and waits for all goroutines to complete.
// Safe to call multiple times - only the first call will actually stop the scheduler.
func (s *AdLifecycleScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping ad lifecycle scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("ad lifecycle scheduler stopped")
	})
}

func (s *AdLifecycleScheduler) runSweepLoop(ctx context.Context) {
	// Run immediately on startup to catch transitions missed while down
	s.processSweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("ad lifecycle scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.processSweep(ctx)
		}
	}
}

func (s *AdLifecycleScheduler) processSweep(ctx context.Context) {
	s.logger.Debugw("ad lifecycle sweep started")

	startTime := time.Now()

	// Step 1: Activate approved ads whose schedule window has opened
	activatedCount, err := s.activateJob.Execute(ctx)
	if err != nil {
		s.logger.Errorw("failed to activate due ads",
			"error", err,
			"duration", time.Since(startTime),
		)
	} else if activatedCount > 0 {
		s.logger.Infow("due ads activated",
			"count", activatedCount,
			"duration", time.Since(startTime),
		)
	}

	// Step 2: Complete running ads whose schedule window has closed
	completedCount, err := s.completeJob.Execute(ctx)
	if err != nil {
		s.logger.Errorw("failed to complete expired ads",
			"error", err,
		)
	} else if completedCount > 0 {
		s.logger.Infow("expired ads completed",
			"count", completedCount,
		)
	}
}
