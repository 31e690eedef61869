package testutil

import (
	"context"
	"testing"
	"time"

	"feedsync/internal/model"
	"feedsync/internal/snowflake"
	"feedsync/internal/storage"

	"github.com/stretchr/testify/require"
)

// NewTestStore returns an empty in-memory store.
func NewTestStore(t *testing.T) storage.Store {
	t.Helper()
	store := storage.New(storage.NewMemoryBackend())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func SeedFeed(t *testing.T, store storage.Store, feed model.Feed) string {
	t.Helper()
	ctx := context.Background()
	if feed.ID == "" {
		feed.ID = snowflake.NextID()
	}
	if feed.CreatedAt.IsZero() {
		feed.CreatedAt = time.Now().UTC()
	}
	feeds, err := store.LoadFeeds(ctx)
	require.NoError(t, err)
	require.NoError(t, store.SaveFeeds(ctx, append(feeds, feed)))
	return feed.ID
}

func SeedArticle(t *testing.T, store storage.Store, article model.Article) string {
	t.Helper()
	ctx := context.Background()
	if article.ID == "" {
		article.ID = snowflake.NextID()
	}
	if article.PublishedAt.IsZero() {
		article.PublishedAt = time.Now().UTC()
	}
	articles, err := store.LoadArticles(ctx)
	require.NoError(t, err)
	require.NoError(t, store.SaveArticles(ctx, append(articles, article)))
	return article.ID
}

func SeedCategory(t *testing.T, store storage.Store, name string) string {
	t.Helper()
	ctx := context.Background()
	category := model.Category{ID: snowflake.NextID(), Name: name, CreatedAt: time.Now().UTC()}
	categories, err := store.LoadCategories(ctx)
	require.NoError(t, err)
	require.NoError(t, store.SaveCategories(ctx, append(categories, category)))
	return category.ID
}

func StringPtr(s string) *string {
	return &s
}
