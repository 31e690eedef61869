package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"feedsync/internal/config"
	"feedsync/internal/logger"
	"feedsync/internal/model"
	"feedsync/internal/opml"
	"feedsync/internal/repository"
)

type OPMLService interface {
	Import(ctx context.Context, reader io.Reader) (ImportResult, error)
	Export(ctx context.Context) ([]byte, error)
}

type ImportResult struct {
	CategoriesCreated int                       `json:"categoriesCreated"`
	CategoriesSkipped int                       `json:"categoriesSkipped"`
	FeedsCreated      int                       `json:"feedsCreated"`
	FeedsSkipped      int                       `json:"feedsSkipped"`
	Refresh           *model.BatchRefreshResult `json:"refresh,omitempty"`
}

type opmlService struct {
	feedService     FeedService
	categoryService CategoryService
	refreshService  RefreshService
	categories      repository.CategoryRepository
	feeds           repository.FeedRepository
}

func NewOPMLService(
	feedService FeedService,
	categoryService CategoryService,
	refreshService RefreshService,
	categories repository.CategoryRepository,
	feeds repository.FeedRepository,
) OPMLService {
	return &opmlService{
		feedService:     feedService,
		categoryService: categoryService,
		refreshService:  refreshService,
		categories:      categories,
		feeds:           feeds,
	}
}

// Import creates a category per top-level folder and a feed per feed outline
// without fetching. Nested folders are flattened into their top-level
// category. Newly created feeds are refreshed before returning.
func (s *opmlService) Import(ctx context.Context, reader io.Reader) (ImportResult, error) {
	doc, err := opml.Parse(reader)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	result := ImportResult{}
	var newFeedIDs []string
	for _, outline := range doc.Body.Outlines {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		if outline.IsFeed() {
			if err := s.importFeed(ctx, outline, nil, &result, &newFeedIDs); err != nil {
				return result, err
			}
			continue
		}

		category, created, err := s.ensureCategory(ctx, outline.DisplayName())
		if err != nil {
			logger.Error("opml import failed", "module", "service", "action", "import", "resource", "opml", "result", "failed", "error", err)
			return result, err
		}
		if created {
			result.CategoriesCreated++
		} else {
			result.CategoriesSkipped++
		}
		for _, child := range flattenFeeds(outline.Outlines) {
			if err := s.importFeed(ctx, child, &category.ID, &result, &newFeedIDs); err != nil {
				return result, err
			}
		}
	}

	if len(newFeedIDs) > 0 && s.refreshService != nil {
		batch, err := s.refreshService.RefreshFeeds(ctx, newFeedIDs)
		if err != nil {
			return result, fmt.Errorf("refresh imported feeds: %w", err)
		}
		result.Refresh = &batch
	}

	logger.Info("opml import completed", "module", "service", "action", "import", "resource", "opml", "result", "ok", "categories_created", result.CategoriesCreated, "categories_skipped", result.CategoriesSkipped, "feeds_created", result.FeedsCreated, "feeds_skipped", result.FeedsSkipped)
	return result, nil
}

func flattenFeeds(outlines []opml.Outline) []opml.Outline {
	var feeds []opml.Outline
	for _, outline := range outlines {
		if outline.IsFeed() {
			feeds = append(feeds, outline)
			continue
		}
		feeds = append(feeds, flattenFeeds(outline.Outlines)...)
	}
	return feeds
}

func (s *opmlService) ensureCategory(ctx context.Context, name string) (model.Category, bool, error) {
	if strings.TrimSpace(name) == "" {
		name = "Untitled"
	}
	if existing, err := s.categories.FindByName(ctx, name); err != nil {
		return model.Category{}, false, fmt.Errorf("find category: %w", err)
	} else if existing != nil {
		return *existing, false, nil
	}

	category, err := s.categoryService.Create(ctx, name)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			if existing, findErr := s.categories.FindByName(ctx, name); findErr == nil && existing != nil {
				return *existing, false, nil
			}
		}
		return model.Category{}, false, fmt.Errorf("create category: %w", err)
	}
	return category, true, nil
}

func (s *opmlService) importFeed(ctx context.Context, outline opml.Outline, categoryID *string, result *ImportResult, newFeedIDs *[]string) error {
	feedURL := strings.TrimSpace(outline.XMLURL)
	if feedURL == "" {
		result.FeedsSkipped++
		return nil
	}

	feed, err := s.feedService.AddWithoutFetch(ctx, feedURL, categoryID, outline.DisplayName())
	switch {
	case err == nil:
		result.FeedsCreated++
		*newFeedIDs = append(*newFeedIDs, feed.ID)
	case errors.Is(err, ErrConflict), errors.Is(err, ErrInvalid):
		logger.Debug("opml feed skipped", "module", "service", "action", "import", "resource", "feed", "result", "skipped", "url", feedURL, "error", err)
		result.FeedsSkipped++
	default:
		return fmt.Errorf("add feed %s: %w", feedURL, err)
	}
	return nil
}

func (s *opmlService) Export(ctx context.Context) ([]byte, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		logger.Error("opml export list categories failed", "module", "service", "action", "export", "resource", "opml", "result", "failed", "error", err)
		return nil, fmt.Errorf("list categories: %w", err)
	}
	feeds, err := s.feeds.List(ctx)
	if err != nil {
		logger.Error("opml export list feeds failed", "module", "service", "action", "export", "resource", "opml", "result", "failed", "error", err)
		return nil, fmt.Errorf("list feeds: %w", err)
	}

	date := time.Now().UTC().Format(time.RFC1123Z)
	doc := opml.Document{
		Version: "2.0",
		Head: opml.Head{
			Title:        config.AppName + " subscriptions",
			DateCreated:  date,
			DateModified: date,
		},
		Body: opml.Body{Outlines: buildExportOutlines(categories, feeds)},
	}

	payload, err := opml.Encode(doc)
	if err != nil {
		logger.Error("opml export encode failed", "module", "service", "action", "export", "resource", "opml", "result", "failed", "error", err)
		return nil, err
	}
	logger.Info("opml export completed", "module", "service", "action", "export", "resource", "opml", "result", "ok", "categories", len(categories), "feeds", len(feeds))
	return payload, nil
}

// buildExportOutlines puts categories first (in repository order) followed
// by uncategorized feeds. Feeds are sorted by title within each level.
func buildExportOutlines(categories []model.Category, feeds []model.Feed) []opml.Outline {
	sorted := append([]model.Feed(nil), feeds...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
	})

	byCategory := make(map[string][]opml.Outline, len(categories))
	known := make(map[string]struct{}, len(categories))
	for _, category := range categories {
		known[category.ID] = struct{}{}
	}

	var rootFeeds []opml.Outline
	for _, feed := range sorted {
		outline := feedOutline(feed)
		if feed.CategoryID != nil {
			if _, ok := known[*feed.CategoryID]; ok {
				byCategory[*feed.CategoryID] = append(byCategory[*feed.CategoryID], outline)
				continue
			}
		}
		rootFeeds = append(rootFeeds, outline)
	}

	outlines := make([]opml.Outline, 0, len(categories)+len(rootFeeds))
	for _, category := range categories {
		outlines = append(outlines, opml.Outline{
			Text:     category.Name,
			Title:    category.Name,
			Outlines: byCategory[category.ID],
		})
	}
	return append(outlines, rootFeeds...)
}

func feedOutline(feed model.Feed) opml.Outline {
	outline := opml.Outline{
		Text:   feed.Title,
		Title:  feed.Title,
		Type:   "rss",
		XMLURL: feed.URL,
	}
	if feed.SiteURL != nil {
		outline.HTMLURL = *feed.SiteURL
	}
	return outline
}
