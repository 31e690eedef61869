package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"feedsync/internal/logger"
	"feedsync/internal/model"
	"feedsync/internal/reconcile"
	"feedsync/internal/repository"
)

const defaultRefreshConcurrency = 8

type RefreshService interface {
	RefreshFeed(ctx context.Context, feedID string) (model.RefreshResult, error)
	RefreshAll(ctx context.Context) (model.BatchRefreshResult, error)
	RefreshFeeds(ctx context.Context, feedIDs []string) (model.BatchRefreshResult, error)
	RefreshStale(ctx context.Context, defaultInterval time.Duration) (model.BatchRefreshResult, error)
}

type refreshService struct {
	feeds       repository.FeedRepository
	articles    repository.ArticleRepository
	fetcher     FeedFetcher
	concurrency int
	feedLocks   *FeedLocks
	now         func() time.Time
}

func NewRefreshService(feeds repository.FeedRepository, articles repository.ArticleRepository, fetcher FeedFetcher, concurrency int, locks *FeedLocks) RefreshService {
	if concurrency <= 0 {
		concurrency = defaultRefreshConcurrency
	}
	if locks == nil {
		locks = NewFeedLocks()
	}
	return &refreshService{
		feeds:       feeds,
		articles:    articles,
		fetcher:     fetcher,
		concurrency: concurrency,
		feedLocks:   locks,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// RefreshFeed refreshes one feed regardless of its active flag. Fetch and
// storage failures are reported in the result; only an unknown id is an error.
func (s *refreshService) RefreshFeed(ctx context.Context, feedID string) (model.RefreshResult, error) {
	feed, err := s.feeds.GetByID(ctx, feedID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.RefreshResult{FeedID: feedID, Error: ErrFeedNotFound.Error()}, ErrFeedNotFound
		}
		return model.RefreshResult{FeedID: feedID, Error: err.Error()}, fmt.Errorf("load feed: %w", err)
	}
	return s.refresh(ctx, feed), nil
}

func (s *refreshService) RefreshAll(ctx context.Context) (model.BatchRefreshResult, error) {
	feeds, err := s.feeds.List(ctx)
	if err != nil {
		logger.Error("refresh list feeds failed", "module", "service", "action", "refresh", "resource", "feed", "result", "failed", "error", err)
		return model.BatchRefreshResult{}, fmt.Errorf("list feeds: %w", err)
	}
	active := make([]model.Feed, 0, len(feeds))
	for _, feed := range feeds {
		if feed.IsActive {
			active = append(active, feed)
		}
	}
	return s.fanOut(ctx, len(active), func(ctx context.Context, i int) model.RefreshResult {
		return s.refresh(ctx, active[i])
	}), nil
}

// RefreshFeeds refreshes the given feeds. Unknown ids yield failed results.
func (s *refreshService) RefreshFeeds(ctx context.Context, feedIDs []string) (model.BatchRefreshResult, error) {
	return s.fanOut(ctx, len(feedIDs), func(ctx context.Context, i int) model.RefreshResult {
		result, _ := s.RefreshFeed(ctx, feedIDs[i])
		return result
	}), nil
}

// RefreshStale refreshes active feeds whose refresh interval has elapsed.
// Feeds without their own interval use defaultInterval.
func (s *refreshService) RefreshStale(ctx context.Context, defaultInterval time.Duration) (model.BatchRefreshResult, error) {
	feeds, err := s.feeds.List(ctx)
	if err != nil {
		return model.BatchRefreshResult{}, fmt.Errorf("list feeds: %w", err)
	}
	now := s.now()
	due := make([]model.Feed, 0, len(feeds))
	for _, feed := range feeds {
		if feed.IsActive && feed.RefreshDue(now, defaultInterval) {
			due = append(due, feed)
		}
	}
	return s.fanOut(ctx, len(due), func(ctx context.Context, i int) model.RefreshResult {
		return s.refresh(ctx, due[i])
	}), nil
}

// fanOut runs job for every index with bounded parallelism. Results keep
// index order and one failure never cancels the others.
func (s *refreshService) fanOut(ctx context.Context, n int, job func(ctx context.Context, i int) model.RefreshResult) model.BatchRefreshResult {
	batch := model.BatchRefreshResult{
		RunID:     uuid.NewString(),
		Results:   make([]model.RefreshResult, n),
		StartedAt: s.now(),
	}

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range n {
		g.Go(func() error {
			batch.Results[i] = job(ctx, i)
			return nil
		})
	}
	_ = g.Wait()

	batch.FinishedAt = s.now()
	batch.Tally()
	logger.Info("refresh batch finished", "module", "service", "action", "refresh", "resource", "feed", "result", "ok", "run_id", batch.RunID, "feeds", n, "new_articles", batch.TotalNew, "errors", batch.TotalErrors, "duration_ms", batch.FinishedAt.Sub(batch.StartedAt).Milliseconds())
	return batch
}

func (s *refreshService) refresh(ctx context.Context, feed model.Feed) model.RefreshResult {
	unlock := s.feedLocks.lock(feed.ID)
	defer unlock()

	start := time.Now()
	parsed, err := s.fetcher.Fetch(ctx, feed.URL)
	if err != nil {
		return s.fail(ctx, feed, err, true)
	}

	existing, err := s.articles.ListByFeed(ctx, feed.ID)
	if err != nil {
		return s.fail(ctx, feed, fmt.Errorf("load articles: %w", err), false)
	}

	now := s.now()
	articles := buildArticles(feed.ID, reconcile.NewArticles(feed.ID, existing, parsed.Articles), now)
	if len(articles) > 0 {
		if err := s.articles.Append(ctx, articles); err != nil {
			return s.fail(ctx, feed, fmt.Errorf("save articles: %w", err), false)
		}
	}

	if _, err := s.feeds.ApplyRefresh(ctx, feed.ID, len(articles), now); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Removed while refreshing; drop what was just appended.
			if _, cleanupErr := s.articles.DeleteByFeed(ctx, feed.ID); cleanupErr != nil {
				logger.Error("refresh cleanup failed", "module", "service", "action", "delete", "resource", "article", "result", "failed", "feed_id", feed.ID, "error", cleanupErr)
			}
			return s.fail(ctx, feed, ErrFeedNotFound, false)
		}
		return s.fail(ctx, feed, fmt.Errorf("save feed: %w", err), false)
	}

	logger.Info("feed refreshed", "module", "service", "action", "refresh", "resource", "feed", "result", "ok", "feed_id", feed.ID, "new_articles", len(articles), "duration_ms", time.Since(start).Milliseconds())
	return model.RefreshResult{FeedID: feed.ID, Success: true, NewArticleCount: len(articles)}
}

// fail builds a failed result. Fetch failures are also recorded on the feed.
func (s *refreshService) fail(ctx context.Context, feed model.Feed, err error, recordOnFeed bool) model.RefreshResult {
	msg := err.Error()
	logger.Warn("feed refresh failed", "module", "service", "action", "refresh", "resource", "feed", "result", "failed", "feed_id", feed.ID, "url", feed.URL, "error", msg)
	if recordOnFeed {
		if updateErr := s.feeds.UpdateErrorMessage(context.WithoutCancel(ctx), feed.ID, &msg); updateErr != nil && !errors.Is(updateErr, repository.ErrNotFound) {
			logger.Error("feed error message update failed", "module", "service", "action", "update", "resource", "feed", "result", "failed", "feed_id", feed.ID, "error", updateErr)
		}
	}
	return model.RefreshResult{FeedID: feed.ID, Success: false, Error: msg}
}
