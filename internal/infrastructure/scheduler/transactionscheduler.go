package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

// TransactionScheduler handles periodic payment expiration tasks.
// - Runs every 5 minutes
// - Expires PENDING deposit transactions that were never confirmed by the
//   gateway, so abandoned checkout flows do not linger forever
type TransactionScheduler struct {
	expireJob BatchJob
	logger    logger.Interface
	stopChan  chan struct{}
	stopOnce  sync.Once      // Ensures Stop() is only called once
	wg        sync.WaitGroup // Tracks running goroutines for graceful shutdown
	interval  time.Duration
}

func NewTransactionScheduler(
	expireJob BatchJob,
	logger logger.Interface,
) *TransactionScheduler {
	return &TransactionScheduler{
		expireJob: expireJob,
		logger:    logger,
		stopChan:  make(chan struct{}),
		interval:  5 * time.Minute,
	}
}

// Start starts the scheduler. The expiry loop runs in a background goroutine
// until Stop is called or the context is cancelled.
func (s *TransactionScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting transaction scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runExpireLoop(ctx)
	}()
}

// Stop stops the scheduler gracefully and waits for all goroutines to complete.
// Safe to call multiple times - only the first call will actually stop the scheduler.
func (s *TransactionScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping transaction scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("transaction scheduler stopped")
	})
}

func (s *TransactionScheduler) runExpireLoop(ctx context.Context) {
	// Run immediately on startup to clear any backlog
	s.processExpiredTransactions(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("transaction scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.processExpiredTransactions(ctx)
		}
	}
}

func (s *TransactionScheduler) processExpiredTransactions(ctx context.Context) {
	s.logger.Debugw("processing expired transactions task started")

	startTime := time.Now()

	expiredCount, err := s.expireJob.Execute(ctx)
	if err != nil {
		s.logger.Errorw("failed to expire stale transactions",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if expiredCount > 0 {
		s.logger.Infow("stale transactions expired",
			"count", expiredCount,
			"duration", time.Since(startTime),
		)
	}
}
