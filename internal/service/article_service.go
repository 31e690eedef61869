package service

import (
	"context"
	"errors"
	"fmt"

	"feedsync/internal/logger"
	"feedsync/internal/model"
	"feedsync/internal/repository"
)

const (
	defaultArticleLimit = 50
	maxArticleLimit     = 500
)

type ArticleService interface {
	List(ctx context.Context, params ArticleListParams) ([]model.Article, error)
	GetByID(ctx context.Context, id string) (model.Article, error)
	MarkAsRead(ctx context.Context, id string, read bool) (model.Article, error)
	MarkAsStarred(ctx context.Context, id string, starred bool) (model.Article, error)
	MarkAllAsRead(ctx context.Context, feedID *string) (int, error)
}

type ArticleListParams struct {
	FeedID      *string
	CategoryID  *string
	UnreadOnly  bool
	StarredOnly bool
	Limit       int
	Offset      int
}

type articleService struct {
	articles   repository.ArticleRepository
	feeds      repository.FeedRepository
	categories repository.CategoryRepository
}

func NewArticleService(articles repository.ArticleRepository, feeds repository.FeedRepository, categories repository.CategoryRepository) ArticleService {
	return &articleService{articles: articles, feeds: feeds, categories: categories}
}

func (s *articleService) List(ctx context.Context, params ArticleListParams) ([]model.Article, error) {
	filter := repository.ArticleListFilter{
		FeedID:      params.FeedID,
		UnreadOnly:  params.UnreadOnly,
		StarredOnly: params.StarredOnly,
		Limit:       params.Limit,
		Offset:      params.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultArticleLimit
	}
	if filter.Limit > maxArticleLimit {
		filter.Limit = maxArticleLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	if params.FeedID != nil {
		if _, err := s.feeds.GetByID(ctx, *params.FeedID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrFeedNotFound
			}
			return nil, err
		}
	}
	if params.CategoryID != nil {
		feedIDs, err := s.categoryFeedIDs(ctx, *params.CategoryID)
		if err != nil {
			return nil, err
		}
		if len(feedIDs) == 0 {
			return []model.Article{}, nil
		}
		filter.FeedIDs = feedIDs
	}

	return s.articles.List(ctx, filter)
}

func (s *articleService) categoryFeedIDs(ctx context.Context, categoryID string) ([]string, error) {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	feeds, err := s.feeds.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0)
	for _, feed := range feeds {
		if feed.CategoryID != nil && *feed.CategoryID == categoryID {
			ids = append(ids, feed.ID)
		}
	}
	return ids, nil
}

func (s *articleService) GetByID(ctx context.Context, id string) (model.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Article{}, ErrArticleNotFound
		}
		return model.Article{}, err
	}
	return article, nil
}

// MarkAsRead sets the read flag and refreshes the owning feed's counters.
func (s *articleService) MarkAsRead(ctx context.Context, id string, read bool) (model.Article, error) {
	article, err := s.articles.UpdateReadStatus(ctx, id, read)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Article{}, ErrArticleNotFound
		}
		return model.Article{}, err
	}
	if _, err := recount(ctx, s.feeds, s.articles, article.FeedID); err != nil && !errors.Is(err, ErrFeedNotFound) {
		return model.Article{}, fmt.Errorf("update feed counts: %w", err)
	}
	return article, nil
}

func (s *articleService) MarkAsStarred(ctx context.Context, id string, starred bool) (model.Article, error) {
	article, err := s.articles.UpdateStarredStatus(ctx, id, starred)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Article{}, ErrArticleNotFound
		}
		return model.Article{}, err
	}
	return article, nil
}

// MarkAllAsRead marks every article read, or only those of feedID when set.
func (s *articleService) MarkAllAsRead(ctx context.Context, feedID *string) (int, error) {
	var targets []string
	if feedID != nil {
		if _, err := s.feeds.GetByID(ctx, *feedID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return 0, ErrFeedNotFound
			}
			return 0, err
		}
		targets = []string{*feedID}
	} else {
		feeds, err := s.feeds.List(ctx)
		if err != nil {
			return 0, err
		}
		for _, feed := range feeds {
			targets = append(targets, feed.ID)
		}
	}

	changed, err := s.articles.MarkAllAsRead(ctx, feedID)
	if err != nil {
		return 0, err
	}
	if changed > 0 {
		for _, id := range targets {
			if _, err := recount(ctx, s.feeds, s.articles, id); err != nil && !errors.Is(err, ErrFeedNotFound) {
				return changed, fmt.Errorf("update feed counts: %w", err)
			}
		}
	}
	logger.Info("articles marked read", "module", "service", "action", "update", "resource", "article", "result", "ok", "count", changed)
	return changed, nil
}
