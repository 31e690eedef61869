// Package scheduler periodically refreshes feeds whose interval has elapsed.
// It is an optional trigger; the refresh engine itself never schedules work.
package scheduler

import (
	"context"
	"sync"
	"time"

	"feedsync/internal/logger"
	"feedsync/internal/service"
)

type Scheduler struct {
	refreshService  service.RefreshService
	interval        time.Duration
	defaultInterval time.Duration
	stopCh          chan struct{}
	stopOnce        sync.Once
	wg              sync.WaitGroup
	cancelFunc      context.CancelFunc // cancels the current refresh operation
	mu              sync.Mutex         // protects cancelFunc
}

// New creates a scheduler ticking every interval. Feeds without their own
// refresh interval are considered stale after defaultInterval.
func New(refreshService service.RefreshService, interval, defaultInterval time.Duration) *Scheduler {
	return &Scheduler{
		refreshService:  refreshService,
		interval:        interval,
		defaultInterval: defaultInterval,
		stopCh:          make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	logger.Info("scheduler started", "module", "scheduler", "action", "refresh", "resource", "feed", "result", "ok", "interval_ms", s.interval.Milliseconds())
}

func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		if s.cancelFunc != nil {
			s.cancelFunc()
		}
		s.mu.Unlock()

		close(s.stopCh)
		s.wg.Wait()
		logger.Info("scheduler stopped", "module", "scheduler", "action", "refresh", "resource", "feed", "result", "ok")
	})
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	s.refresh()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refresh()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) refresh() {
	select {
	case <-s.stopCh:
		return
	default:
	}

	// A pass may not outlive the next tick.
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)

	s.mu.Lock()
	s.cancelFunc = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.cancelFunc = nil
		s.mu.Unlock()
	}()

	batch, err := s.refreshService.RefreshStale(ctx, s.defaultInterval)
	if err != nil {
		if ctx.Err() != nil {
			logger.Warn("scheduled refresh cancelled", "module", "scheduler", "action", "refresh", "resource", "feed", "result", "cancelled")
			return
		}
		logger.Error("scheduled refresh failed", "module", "scheduler", "action", "refresh", "resource", "feed", "result", "failed", "error", err)
		return
	}
	logger.Info("scheduled refresh completed", "module", "scheduler", "action", "refresh", "resource", "feed", "result", "ok", "run_id", batch.RunID, "feeds", len(batch.Results), "new_articles", batch.TotalNew, "errors", batch.TotalErrors)
}
