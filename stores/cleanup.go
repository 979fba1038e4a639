package stores

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Govind-619/Sodfaa/models"
	"github.com/Govind-619/Sodfaa/utils"
)

// DefaultCleanupInterval is the cadence of the expired offer sweep
const DefaultCleanupInterval = 60 * time.Second

// ExpiredSweeper deletes every expired offer as of now
type ExpiredSweeper interface {
	DeleteAllExpired(ctx context.Context, now time.Time) (CleanupResult, error)
}

// CleanupScheduler runs the expired offer sweep once on start and then on a
// fixed interval until stopped. A failed cycle is logged and the next one
// runs on schedule.
type CleanupScheduler struct {
	sweeper  ExpiredSweeper
	interval time.Duration
	now      func() time.Time

	// OnCleanup receives the offers removed by a cycle, when there are any
	OnCleanup func(removed []models.Offer)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewCleanupScheduler(sweeper ExpiredSweeper, interval time.Duration) *CleanupScheduler {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	return &CleanupScheduler{
		sweeper:  sweeper,
		interval: interval,
		now:      time.Now,
	}
}

// SetClock replaces the time source handed to each cycle
func (s *CleanupScheduler) SetClock(now func() time.Time) {
	s.now = now
}

// Start launches the scheduler. Calling Start on a running scheduler is a no-op.
func (s *CleanupScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	utils.LogInfo("Offer cleanup scheduler started (interval %s)", s.interval)
	go s.loop(ctx, s.done)
}

func (s *CleanupScheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// Stop cancels the recurrence and waits for an in-flight cycle to finish.
// It is safe to call more than once.
func (s *CleanupScheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	utils.LogInfo("Offer cleanup scheduler stopped")
}

// RunOnce executes a single cleanup cycle and never panics
func (s *CleanupScheduler) RunOnce(ctx context.Context) (result CleanupResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cleanup cycle panicked: %v", r)
			utils.LogError("Offer cleanup cycle failed: %v", err)
			utils.CleanupCycles.WithLabelValues("failed").Inc()
		}
	}()

	if ctx.Err() != nil {
		return result, ctx.Err()
	}

	result, err = s.sweeper.DeleteAllExpired(ctx, s.now())
	if err != nil {
		utils.LogError("Offer cleanup cycle failed: %v", err)
		utils.CleanupCycles.WithLabelValues("failed").Inc()
		return result, err
	}
	utils.CleanupCycles.WithLabelValues("ok").Inc()

	if len(result.Removed) > 0 && s.OnCleanup != nil {
		s.OnCleanup(result.Removed)
	}
	return result, nil
}
