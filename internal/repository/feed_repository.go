package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"feedsync/internal/model"
	"feedsync/internal/snowflake"
	"feedsync/internal/storage"
)

type FeedRepository interface {
	List(ctx context.Context) ([]model.Feed, error)
	GetByID(ctx context.Context, id string) (model.Feed, error)
	FindByURL(ctx context.Context, url string) (*model.Feed, error)
	Create(ctx context.Context, feed model.Feed) (model.Feed, error)
	Update(ctx context.Context, feed model.Feed) (model.Feed, error)
	Delete(ctx context.Context, id string) error
	ApplyRefresh(ctx context.Context, id string, newCount int, at time.Time) (model.Feed, error)
	UpdateErrorMessage(ctx context.Context, id string, errorMessage *string) error
	SetCounts(ctx context.Context, id string, total, unread int) (model.Feed, error)
	ClearCategory(ctx context.Context, categoryID string) (int, error)
}

type feedRepository struct {
	store storage.Store
	mu    sync.Mutex
}

func NewFeedRepository(store storage.Store) FeedRepository {
	return &feedRepository{store: store}
}

func (r *feedRepository) List(ctx context.Context) ([]model.Feed, error) {
	feeds, err := r.store.LoadFeeds(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}
	return feeds, nil
}

func (r *feedRepository) GetByID(ctx context.Context, id string) (model.Feed, error) {
	feeds, err := r.store.LoadFeeds(ctx)
	if err != nil {
		return model.Feed{}, fmt.Errorf("get feed: %w", err)
	}
	for _, feed := range feeds {
		if feed.ID == id {
			return feed, nil
		}
	}
	return model.Feed{}, ErrNotFound
}

// FindByURL returns the feed subscribed at rawURL, or nil. Scheme and host
// compare case-insensitively; the rest of the URL must match exactly.
func (r *feedRepository) FindByURL(ctx context.Context, rawURL string) (*model.Feed, error) {
	feeds, err := r.store.LoadFeeds(ctx)
	if err != nil {
		return nil, fmt.Errorf("find feed: %w", err)
	}
	for _, feed := range feeds {
		if sameFeedURL(feed.URL, rawURL) {
			return &feed, nil
		}
	}
	return nil, nil
}

func sameFeedURL(a, b string) bool {
	ua, errA := url.Parse(a)
	ub, errB := url.Parse(b)
	if errA != nil || errB != nil {
		return a == b
	}
	if !strings.EqualFold(ua.Scheme, ub.Scheme) || !strings.EqualFold(ua.Host, ub.Host) {
		return false
	}
	ua.Scheme, ua.Host = "", ""
	ub.Scheme, ub.Host = "", ""
	return ua.String() == ub.String()
}

// Create stores feed, assigning an ID and CreatedAt when they are unset.
func (r *feedRepository) Create(ctx context.Context, feed model.Feed) (model.Feed, error) {
	if feed.ID == "" {
		feed.ID = snowflake.NextID()
	}
	if feed.CreatedAt.IsZero() {
		feed.CreatedAt = nowFunc()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	feeds, err := r.store.LoadFeeds(ctx)
	if err != nil {
		return model.Feed{}, fmt.Errorf("create feed: %w", err)
	}
	feeds = append(feeds, feed)
	if err := r.store.SaveFeeds(ctx, feeds); err != nil {
		return model.Feed{}, fmt.Errorf("create feed: %w", err)
	}
	return feed, nil
}

func (r *feedRepository) Update(ctx context.Context, feed model.Feed) (model.Feed, error) {
	var updated model.Feed
	err := r.mutate(ctx, feed.ID, func(existing *model.Feed) {
		feed.CreatedAt = existing.CreatedAt
		*existing = feed
		updated = feed
	})
	if err != nil {
		return model.Feed{}, fmt.Errorf("update feed: %w", err)
	}
	return updated, nil
}

func (r *feedRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	feeds, err := r.store.LoadFeeds(ctx)
	if err != nil {
		return fmt.Errorf("delete feed: %w", err)
	}
	kept := feeds[:0]
	found := false
	for _, feed := range feeds {
		if feed.ID == id {
			found = true
			continue
		}
		kept = append(kept, feed)
	}
	if !found {
		return ErrNotFound
	}
	if err := r.store.SaveFeeds(ctx, kept); err != nil {
		return fmt.Errorf("delete feed: %w", err)
	}
	return nil
}

// ApplyRefresh records a successful refresh: both timestamps move to at,
// counters grow by newCount and any previous error is cleared.
func (r *feedRepository) ApplyRefresh(ctx context.Context, id string, newCount int, at time.Time) (model.Feed, error) {
	var updated model.Feed
	err := r.mutate(ctx, id, func(feed *model.Feed) {
		t := at
		feed.LastUpdated = &t
		feed.LastFetched = &t
		feed.UnreadCount += newCount
		feed.TotalCount += newCount
		feed.ErrorMessage = nil
		updated = *feed
	})
	if err != nil {
		return model.Feed{}, fmt.Errorf("apply refresh: %w", err)
	}
	return updated, nil
}

func (r *feedRepository) UpdateErrorMessage(ctx context.Context, id string, errorMessage *string) error {
	err := r.mutate(ctx, id, func(feed *model.Feed) {
		feed.ErrorMessage = errorMessage
	})
	if err != nil {
		return fmt.Errorf("update feed error: %w", err)
	}
	return nil
}

func (r *feedRepository) SetCounts(ctx context.Context, id string, total, unread int) (model.Feed, error) {
	if unread < 0 {
		unread = 0
	}
	if unread > total {
		unread = total
	}
	var updated model.Feed
	err := r.mutate(ctx, id, func(feed *model.Feed) {
		feed.TotalCount = total
		feed.UnreadCount = unread
		updated = *feed
	})
	if err != nil {
		return model.Feed{}, fmt.Errorf("set feed counts: %w", err)
	}
	return updated, nil
}

// ClearCategory detaches every feed from categoryID and returns how many changed.
func (r *feedRepository) ClearCategory(ctx context.Context, categoryID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	feeds, err := r.store.LoadFeeds(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear category: %w", err)
	}
	changed := 0
	for i := range feeds {
		if feeds[i].CategoryID != nil && *feeds[i].CategoryID == categoryID {
			feeds[i].CategoryID = nil
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	if err := r.store.SaveFeeds(ctx, feeds); err != nil {
		return 0, fmt.Errorf("clear category: %w", err)
	}
	return changed, nil
}

func (r *feedRepository) mutate(ctx context.Context, id string, fn func(*model.Feed)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	feeds, err := r.store.LoadFeeds(ctx)
	if err != nil {
		return err
	}
	for i := range feeds {
		if feeds[i].ID == id {
			fn(&feeds[i])
			return r.store.SaveFeeds(ctx, feeds)
		}
	}
	return ErrNotFound
}
