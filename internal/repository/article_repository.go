package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"feedsync/internal/model"
	"feedsync/internal/storage"
)

type ArticleListFilter struct {
	FeedID      *string
	FeedIDs     []string
	UnreadOnly  bool
	StarredOnly bool
	Limit       int
	Offset      int
}

type ArticleRepository interface {
	List(ctx context.Context, filter ArticleListFilter) ([]model.Article, error)
	ListByFeed(ctx context.Context, feedID string) ([]model.Article, error)
	GetByID(ctx context.Context, id string) (model.Article, error)
	Append(ctx context.Context, articles []model.Article) error
	DeleteByFeed(ctx context.Context, feedID string) (int, error)
	UpdateReadStatus(ctx context.Context, id string, read bool) (model.Article, error)
	UpdateStarredStatus(ctx context.Context, id string, starred bool) (model.Article, error)
	MarkAllAsRead(ctx context.Context, feedID *string) (int, error)
}

type articleRepository struct {
	store storage.Store
	mu    sync.Mutex
}

func NewArticleRepository(store storage.Store) ArticleRepository {
	return &articleRepository{store: store}
}

// List returns matching articles newest first.
func (r *articleRepository) List(ctx context.Context, filter ArticleListFilter) ([]model.Article, error) {
	articles, err := r.store.LoadArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	var feedSet map[string]struct{}
	if len(filter.FeedIDs) > 0 {
		feedSet = make(map[string]struct{}, len(filter.FeedIDs))
		for _, id := range filter.FeedIDs {
			feedSet[id] = struct{}{}
		}
	}

	matched := make([]model.Article, 0, len(articles))
	for _, article := range articles {
		if filter.FeedID != nil && article.FeedID != *filter.FeedID {
			continue
		}
		if feedSet != nil {
			if _, ok := feedSet[article.FeedID]; !ok {
				continue
			}
		}
		if filter.UnreadOnly && article.IsRead {
			continue
		}
		if filter.StarredOnly && !article.IsStarred {
			continue
		}
		matched = append(matched, article)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].PublishedAt.Equal(matched[j].PublishedAt) {
			return matched[i].PublishedAt.After(matched[j].PublishedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []model.Article{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// ListByFeed returns the feed's articles in storage order.
func (r *articleRepository) ListByFeed(ctx context.Context, feedID string) ([]model.Article, error) {
	articles, err := r.store.LoadArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feed articles: %w", err)
	}
	owned := make([]model.Article, 0)
	for _, article := range articles {
		if article.FeedID == feedID {
			owned = append(owned, article)
		}
	}
	return owned, nil
}

func (r *articleRepository) GetByID(ctx context.Context, id string) (model.Article, error) {
	articles, err := r.store.LoadArticles(ctx)
	if err != nil {
		return model.Article{}, fmt.Errorf("get article: %w", err)
	}
	for _, article := range articles {
		if article.ID == id {
			return article, nil
		}
	}
	return model.Article{}, ErrNotFound
}

// Append adds articles to the end of the stored collection.
func (r *articleRepository) Append(ctx context.Context, articles []model.Article) error {
	if len(articles) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.store.LoadArticles(ctx)
	if err != nil {
		return fmt.Errorf("append articles: %w", err)
	}
	stored = append(stored, articles...)
	if err := r.store.SaveArticles(ctx, stored); err != nil {
		return fmt.Errorf("append articles: %w", err)
	}
	return nil
}

func (r *articleRepository) DeleteByFeed(ctx context.Context, feedID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.store.LoadArticles(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete feed articles: %w", err)
	}
	kept := make([]model.Article, 0, len(stored))
	for _, article := range stored {
		if article.FeedID != feedID {
			kept = append(kept, article)
		}
	}
	removed := len(stored) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := r.store.SaveArticles(ctx, kept); err != nil {
		return 0, fmt.Errorf("delete feed articles: %w", err)
	}
	return removed, nil
}

func (r *articleRepository) UpdateReadStatus(ctx context.Context, id string, read bool) (model.Article, error) {
	article, err := r.mutate(ctx, id, func(a *model.Article) { a.IsRead = read })
	if err != nil {
		return model.Article{}, fmt.Errorf("update read status: %w", err)
	}
	return article, nil
}

func (r *articleRepository) UpdateStarredStatus(ctx context.Context, id string, starred bool) (model.Article, error) {
	article, err := r.mutate(ctx, id, func(a *model.Article) { a.IsStarred = starred })
	if err != nil {
		return model.Article{}, fmt.Errorf("update starred status: %w", err)
	}
	return article, nil
}

// MarkAllAsRead marks every unread article read, limited to feedID when set.
// It returns the number of articles that changed.
func (r *articleRepository) MarkAllAsRead(ctx context.Context, feedID *string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.store.LoadArticles(ctx)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	changed := 0
	for i := range stored {
		if feedID != nil && stored[i].FeedID != *feedID {
			continue
		}
		if !stored[i].IsRead {
			stored[i].IsRead = true
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	if err := r.store.SaveArticles(ctx, stored); err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	return changed, nil
}

func (r *articleRepository) mutate(ctx context.Context, id string, fn func(*model.Article)) (model.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.store.LoadArticles(ctx)
	if err != nil {
		return model.Article{}, err
	}
	for i := range stored {
		if stored[i].ID == id {
			fn(&stored[i])
			if err := r.store.SaveArticles(ctx, stored); err != nil {
				return model.Article{}, err
			}
			return stored[i], nil
		}
	}
	return model.Article{}, ErrNotFound
}
