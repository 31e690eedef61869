package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"feedsync/internal/fetcher"
	"feedsync/internal/logger"
	"feedsync/internal/model"
	"feedsync/internal/reconcile"
	"feedsync/internal/repository"
	"feedsync/internal/snowflake"
)

type FeedService interface {
	Add(ctx context.Context, feedURL string, categoryID *string, titleOverride string) (model.Feed, error)
	AddWithoutFetch(ctx context.Context, feedURL string, categoryID *string, title string) (model.Feed, error)
	Validate(ctx context.Context, feedURL string) fetcher.ValidationResult
	List(ctx context.Context, categoryID *string) ([]model.Feed, error)
	GetByID(ctx context.Context, id string) (model.Feed, error)
	Update(ctx context.Context, id string, update FeedUpdate) (model.Feed, error)
	Delete(ctx context.Context, id string) error
	RecalculateCounts(ctx context.Context, id string) (model.Feed, error)
}

// FeedUpdate carries the user-editable feed fields. Nil fields are left unchanged.
type FeedUpdate struct {
	Title           *string
	CategoryID      *string
	ClearCategory   bool
	IsActive        *bool
	RefreshInterval *int // minutes, 0 clears the override
}

type feedService struct {
	feeds      repository.FeedRepository
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	fetcher    FeedFetcher
	feedLocks  *FeedLocks
	now        func() time.Time
}

// NewFeedService builds the feed service. locks must be the same value given
// to NewRefreshService; nil gives the service its own.
func NewFeedService(feeds repository.FeedRepository, articles repository.ArticleRepository, categories repository.CategoryRepository, fetcher FeedFetcher, locks *FeedLocks) FeedService {
	if locks == nil {
		locks = NewFeedLocks()
	}
	return &feedService{
		feeds:      feeds,
		articles:   articles,
		categories: categories,
		fetcher:    fetcher,
		feedLocks:  locks,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *feedService) Add(ctx context.Context, feedURL string, categoryID *string, titleOverride string) (model.Feed, error) {
	trimmedURL, err := s.checkNewFeed(ctx, feedURL, categoryID)
	if err != nil {
		return model.Feed{}, err
	}

	parsed, err := s.fetcher.Fetch(ctx, trimmedURL)
	if err != nil {
		logger.Warn("feed add fetch failed", "module", "service", "action", "create", "resource", "feed", "result", "failed", "url", trimmedURL, "error", err)
		return model.Feed{}, fmt.Errorf("%w: %w", ErrFeedFetch, err)
	}

	title := strings.TrimSpace(titleOverride)
	if title == "" {
		title = parsed.Title
	}

	now := s.now()
	feed := model.Feed{
		ID:          snowflake.NextID(),
		CategoryID:  categoryID,
		Title:       title,
		URL:         trimmedURL,
		SiteURL:     optionalString(parsed.SiteURL),
		Description: optionalString(parsed.Description),
		FaviconURL:  optionalString(parsed.FaviconURL),
		LastUpdated: &now,
		LastFetched: &now,
		IsActive:    true,
		CreatedAt:   now,
	}

	articles := buildArticles(feed.ID, reconcile.NewArticles(feed.ID, nil, parsed.Articles), now)
	feed.TotalCount = len(articles)
	feed.UnreadCount = len(articles)

	// Articles go first so a visible feed never lacks its initial articles.
	if len(articles) > 0 {
		if err := s.articles.Append(ctx, articles); err != nil {
			return model.Feed{}, fmt.Errorf("save articles: %w", err)
		}
	}
	created, err := s.feeds.Create(ctx, feed)
	if err != nil {
		if _, cleanupErr := s.articles.DeleteByFeed(ctx, feed.ID); cleanupErr != nil {
			logger.Error("feed add cleanup failed", "module", "service", "action", "delete", "resource", "article", "result", "failed", "feed_id", feed.ID, "error", cleanupErr)
		}
		return model.Feed{}, fmt.Errorf("create feed: %w", err)
	}

	logger.Info("feed added", "module", "service", "action", "create", "resource", "feed", "result", "ok", "feed_id", created.ID, "url", created.URL, "articles", len(articles))
	return created, nil
}

// AddWithoutFetch stores a feed record without touching the network. The
// first refresh fills in its articles and metadata.
func (s *feedService) AddWithoutFetch(ctx context.Context, feedURL string, categoryID *string, title string) (model.Feed, error) {
	trimmedURL, err := s.checkNewFeed(ctx, feedURL, categoryID)
	if err != nil {
		return model.Feed{}, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = trimmedURL
	}
	created, err := s.feeds.Create(ctx, model.Feed{
		ID:         snowflake.NextID(),
		CategoryID: categoryID,
		Title:      title,
		URL:        trimmedURL,
		IsActive:   true,
		CreatedAt:  s.now(),
	})
	if err != nil {
		return model.Feed{}, fmt.Errorf("create feed: %w", err)
	}
	logger.Debug("feed added without fetch", "module", "service", "action", "create", "resource", "feed", "result", "ok", "feed_id", created.ID, "url", created.URL)
	return created, nil
}

func (s *feedService) checkNewFeed(ctx context.Context, feedURL string, categoryID *string) (string, error) {
	trimmedURL := strings.TrimSpace(feedURL)
	if err := fetcher.ValidateURL(trimmedURL); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if existing, err := s.feeds.FindByURL(ctx, trimmedURL); err != nil {
		return "", fmt.Errorf("check feed url: %w", err)
	} else if existing != nil {
		return "", &FeedConflictError{ExistingFeed: *existing}
	}
	if categoryID != nil {
		if err := s.ensureCategory(ctx, *categoryID); err != nil {
			return "", err
		}
	}
	return trimmedURL, nil
}

func (s *feedService) ensureCategory(ctx context.Context, categoryID string) error {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("check category: %w", err)
	}
	return nil
}

func (s *feedService) Validate(ctx context.Context, feedURL string) fetcher.ValidationResult {
	return s.fetcher.Validate(ctx, feedURL)
}

func (s *feedService) List(ctx context.Context, categoryID *string) ([]model.Feed, error) {
	feeds, err := s.feeds.List(ctx)
	if err != nil {
		return nil, err
	}
	if categoryID == nil {
		return feeds, nil
	}
	filtered := make([]model.Feed, 0, len(feeds))
	for _, feed := range feeds {
		if feed.CategoryID != nil && *feed.CategoryID == *categoryID {
			filtered = append(filtered, feed)
		}
	}
	return filtered, nil
}

func (s *feedService) GetByID(ctx context.Context, id string) (model.Feed, error) {
	feed, err := s.feeds.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Feed{}, ErrFeedNotFound
		}
		return model.Feed{}, err
	}
	return feed, nil
}

func (s *feedService) Update(ctx context.Context, id string, update FeedUpdate) (model.Feed, error) {
	feed, err := s.GetByID(ctx, id)
	if err != nil {
		return model.Feed{}, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return model.Feed{}, fmt.Errorf("%w: title is required", ErrInvalid)
		}
		feed.Title = title
	}
	switch {
	case update.ClearCategory:
		feed.CategoryID = nil
	case update.CategoryID != nil:
		if err := s.ensureCategory(ctx, *update.CategoryID); err != nil {
			return model.Feed{}, err
		}
		categoryID := *update.CategoryID
		feed.CategoryID = &categoryID
	}
	if update.IsActive != nil {
		feed.IsActive = *update.IsActive
	}
	if update.RefreshInterval != nil {
		minutes := *update.RefreshInterval
		if minutes < 0 {
			return model.Feed{}, fmt.Errorf("%w: refresh interval must not be negative", ErrInvalid)
		}
		if minutes == 0 {
			feed.RefreshInterval = nil
		} else {
			feed.RefreshInterval = &minutes
		}
	}

	updated, err := s.feeds.Update(ctx, feed)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Feed{}, ErrFeedNotFound
		}
		return model.Feed{}, err
	}
	logger.Info("feed updated", "module", "service", "action", "update", "resource", "feed", "result", "ok", "feed_id", id)
	return updated, nil
}

// Delete removes the feed's articles, then the feed record itself.
// Delete removes the feed and its articles while holding the feed's lock, so
// no refresh of the feed can append articles in between.
func (s *feedService) Delete(ctx context.Context, id string) error {
	unlock := s.feedLocks.lock(id)
	defer unlock()

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	removed, err := s.articles.DeleteByFeed(ctx, id)
	if err != nil {
		return fmt.Errorf("delete articles: %w", err)
	}
	if err := s.feeds.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFeedNotFound
		}
		return fmt.Errorf("delete feed: %w", err)
	}
	logger.Info("feed deleted", "module", "service", "action", "delete", "resource", "feed", "result", "ok", "feed_id", id, "articles", removed)
	return nil
}

// RecalculateCounts rebuilds the feed counters from its stored articles.
func (s *feedService) RecalculateCounts(ctx context.Context, id string) (model.Feed, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return model.Feed{}, err
	}
	return recount(ctx, s.feeds, s.articles, id)
}

func recount(ctx context.Context, feeds repository.FeedRepository, articles repository.ArticleRepository, feedID string) (model.Feed, error) {
	owned, err := articles.ListByFeed(ctx, feedID)
	if err != nil {
		return model.Feed{}, fmt.Errorf("list articles: %w", err)
	}
	unread := 0
	for _, article := range owned {
		if !article.IsRead {
			unread++
		}
	}
	feed, err := feeds.SetCounts(ctx, feedID, len(owned), unread)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Feed{}, ErrFeedNotFound
		}
		return model.Feed{}, err
	}
	return feed, nil
}
