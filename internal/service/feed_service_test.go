package service_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"feedsync/internal/fetcher"
	"feedsync/internal/model"
	"feedsync/internal/repository"
	"feedsync/internal/repository/mock"
	"feedsync/internal/repository/testutil"
	"feedsync/internal/service"
	servicemock "feedsync/internal/service/mock"
	"feedsync/internal/storage"
)

func newStoreFeedService(t *testing.T, fetch service.FeedFetcher) (service.FeedService, repository.FeedRepository, repository.ArticleRepository, storage.Store) {
	t.Helper()
	store := testutil.NewTestStore(t)
	feeds := repository.NewFeedRepository(store)
	articles := repository.NewArticleRepository(store)
	categories := repository.NewCategoryRepository(store)
	return service.NewFeedService(feeds, articles, categories, fetch, nil), feeds, articles, store
}

func TestFeedService_Add_PersistsArticlesBeforeFeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFeeds := mock.NewMockFeedRepository(ctrl)
	mockArticles := mock.NewMockArticleRepository(ctrl)
	mockCategories := mock.NewMockCategoryRepository(ctrl)
	mockFetcher := servicemock.NewMockFeedFetcher(ctrl)
	svc := service.NewFeedService(mockFeeds, mockArticles, mockCategories, mockFetcher, nil)
	ctx := context.Background()

	feedURL := "https://example.com/feed.xml"
	mockFeeds.EXPECT().FindByURL(ctx, feedURL).Return(nil, nil)
	mockFetcher.EXPECT().Fetch(ctx, feedURL).Return(parsedFeed("Example", "https://example.com/1", "https://example.com/2", "https://example.com/1"), nil)

	var appended []model.Article
	gomock.InOrder(
		mockArticles.EXPECT().
			Append(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, articles []model.Article) error {
				appended = articles
				return nil
			}),
		mockFeeds.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, feed model.Feed) (model.Feed, error) {
				return feed, nil
			}),
	)

	feed, err := svc.Add(ctx, "  "+feedURL+" ", nil, "")
	require.NoError(t, err)
	require.Equal(t, "Example", feed.Title)
	require.Equal(t, feedURL, feed.URL)
	require.True(t, feed.IsActive)
	require.Equal(t, 2, feed.TotalCount)
	require.Equal(t, 2, feed.UnreadCount)
	require.Len(t, appended, 2)
	for _, article := range appended {
		require.Equal(t, feed.ID, article.FeedID)
	}
}

func TestFeedService_Add_TitleOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockFetcher := servicemock.NewMockFeedFetcher(ctrl)
	svc, _, _, _ := newStoreFeedService(t, mockFetcher)

	mockFetcher.EXPECT().Fetch(gomock.Any(), "https://example.com/feed").Return(parsedFeed("Original"), nil)

	feed, err := svc.Add(context.Background(), "https://example.com/feed", nil, " Custom ")
	require.NoError(t, err)
	require.Equal(t, "Custom", feed.Title)
	require.Zero(t, feed.TotalCount)
}

func TestFeedService_Add_InvalidURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := service.NewFeedService(mock.NewMockFeedRepository(ctrl), mock.NewMockArticleRepository(ctrl), mock.NewMockCategoryRepository(ctrl), servicemock.NewMockFeedFetcher(ctrl), nil)

	_, err := svc.Add(context.Background(), "not-a-url", nil, "")
	require.ErrorIs(t, err, service.ErrInvalid)
	require.ErrorIs(t, err, fetcher.ErrInvalidURL)
}

func TestFeedService_Add_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFeeds := mock.NewMockFeedRepository(ctrl)
	svc := service.NewFeedService(mockFeeds, mock.NewMockArticleRepository(ctrl), mock.NewMockCategoryRepository(ctrl), servicemock.NewMockFeedFetcher(ctrl), nil)
	ctx := context.Background()

	existing := model.Feed{ID: "f1", URL: "https://example.com/feed"}
	mockFeeds.EXPECT().FindByURL(ctx, existing.URL).Return(&existing, nil)

	_, err := svc.Add(ctx, existing.URL, nil, "")
	require.ErrorIs(t, err, service.ErrConflict)
	var conflict *service.FeedConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "f1", conflict.ExistingFeed.ID)
}

func TestFeedService_Add_UnknownCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFeeds := mock.NewMockFeedRepository(ctrl)
	mockCategories := mock.NewMockCategoryRepository(ctrl)
	svc := service.NewFeedService(mockFeeds, mock.NewMockArticleRepository(ctrl), mockCategories, servicemock.NewMockFeedFetcher(ctrl), nil)
	ctx := context.Background()

	mockFeeds.EXPECT().FindByURL(ctx, "https://example.com/feed").Return(nil, nil)
	mockCategories.EXPECT().GetByID(ctx, "c1").Return(model.Category{}, repository.ErrNotFound)

	_, err := svc.Add(ctx, "https://example.com/feed", stringPtr("c1"), "")
	require.ErrorIs(t, err, service.ErrCategoryNotFound)
}

func TestFeedService_Add_FetchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockFetcher := servicemock.NewMockFeedFetcher(ctrl)
	svc, feeds, _, _ := newStoreFeedService(t, mockFetcher)

	mockFetcher.EXPECT().
		Fetch(gomock.Any(), "https://example.com/feed").
		Return(model.ParsedFeed{}, &fetcher.FetchError{Type: fetcher.ErrorTypeParse})

	_, err := svc.Add(context.Background(), "https://example.com/feed", nil, "")
	require.ErrorIs(t, err, service.ErrFeedFetch)
	require.ErrorIs(t, err, fetcher.ErrParse)

	list, err := feeds.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestFeedService_AddWithoutFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _, articles, _ := newStoreFeedService(t, servicemock.NewMockFeedFetcher(ctrl))
	ctx := context.Background()

	feed, err := svc.AddWithoutFetch(ctx, "https://example.com/feed", nil, "")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/feed", feed.Title)
	require.True(t, feed.IsActive)
	require.Nil(t, feed.LastFetched)

	owned, err := articles.ListByFeed(ctx, feed.ID)
	require.NoError(t, err)
	require.Empty(t, owned)

	_, err = svc.AddWithoutFetch(ctx, "https://EXAMPLE.com/feed", nil, "dup")
	require.ErrorIs(t, err, service.ErrConflict)

	upper, err := svc.AddWithoutFetch(ctx, "https://example.com/Feed", nil, "")
	require.NoError(t, err)
	require.NotEqual(t, feed.ID, upper.ID)
}

func TestFeedService_Delete_RemovesOnlyOwnArticles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, feeds, articles, store := newStoreFeedService(t, servicemock.NewMockFeedFetcher(ctrl))
	ctx := context.Background()

	target := testutil.SeedFeed(t, store, model.Feed{Title: "Z", URL: "https://z.example/feed"})
	other := testutil.SeedFeed(t, store, model.Feed{Title: "Y", URL: "https://y.example/feed"})
	for i := 0; i < 5; i++ {
		testutil.SeedArticle(t, store, model.Article{FeedID: target, URL: "https://z.example/" + string(rune('a'+i))})
	}
	testutil.SeedArticle(t, store, model.Article{FeedID: other, URL: "https://y.example/a"})
	testutil.SeedArticle(t, store, model.Article{FeedID: other, URL: "https://y.example/b"})

	require.NoError(t, svc.Delete(ctx, target))

	_, err := feeds.GetByID(ctx, target)
	require.ErrorIs(t, err, repository.ErrNotFound)
	gone, err := articles.ListByFeed(ctx, target)
	require.NoError(t, err)
	require.Empty(t, gone)

	remaining, err := articles.List(ctx, repository.ArticleListFilter{})
	require.NoError(t, err)
	require.Len(t, remaining, 2)
}

// refreshingFeedRepository starts a refresh of a feed right before its record
// is removed, once the refresh has loaded the feed.
type refreshingFeedRepository struct {
	repository.FeedRepository
	refresh service.RefreshService
	armed   atomic.Bool
	loaded  chan struct{}
	results chan model.RefreshResult
}

func (r *refreshingFeedRepository) GetByID(ctx context.Context, id string) (model.Feed, error) {
	feed, err := r.FeedRepository.GetByID(ctx, id)
	if r.armed.CompareAndSwap(true, false) {
		close(r.loaded)
	}
	return feed, err
}

func (r *refreshingFeedRepository) Delete(ctx context.Context, id string) error {
	r.armed.Store(true)
	go func() {
		result, _ := r.refresh.RefreshFeed(context.Background(), id)
		r.results <- result
	}()
	<-r.loaded
	return r.FeedRepository.Delete(ctx, id)
}

func TestFeedService_Delete_WaitsForConcurrentRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	store := testutil.NewTestStore(t)
	articles := repository.NewArticleRepository(store)
	feeds := &refreshingFeedRepository{
		FeedRepository: repository.NewFeedRepository(store),
		loaded:         make(chan struct{}),
		results:        make(chan model.RefreshResult, 1),
	}
	feedURL := "https://z.example/feed"
	feedID := testutil.SeedFeed(t, store, model.Feed{Title: "Z", URL: feedURL, IsActive: true})

	mockFetcher := servicemock.NewMockFeedFetcher(ctrl)
	mockFetcher.EXPECT().Fetch(gomock.Any(), feedURL).
		Return(parsedFeed("Z", "https://z.example/a", "https://z.example/b"), nil)

	locks := service.NewFeedLocks()
	feeds.refresh = service.NewRefreshService(feeds, articles, mockFetcher, 1, locks)
	svc := service.NewFeedService(feeds, articles, repository.NewCategoryRepository(store), mockFetcher, locks)

	require.NoError(t, svc.Delete(ctx, feedID))

	result := <-feeds.results
	require.False(t, result.Success)

	_, err := feeds.FeedRepository.GetByID(ctx, feedID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	orphans, err := articles.ListByFeed(ctx, feedID)
	require.NoError(t, err)
	require.Empty(t, orphans)
}

func TestFeedService_Delete_Unknown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFeeds := mock.NewMockFeedRepository(ctrl)
	svc := service.NewFeedService(mockFeeds, mock.NewMockArticleRepository(ctrl), mock.NewMockCategoryRepository(ctrl), servicemock.NewMockFeedFetcher(ctrl), nil)
	ctx := context.Background()

	mockFeeds.EXPECT().GetByID(ctx, "missing").Return(model.Feed{}, repository.ErrNotFound)

	err := svc.Delete(ctx, "missing")
	require.ErrorIs(t, err, service.ErrFeedNotFound)
}

func TestFeedService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _, _, store := newStoreFeedService(t, servicemock.NewMockFeedFetcher(ctrl))
	ctx := context.Background()

	categoryID := testutil.SeedCategory(t, store, "News")
	feedID := testutil.SeedFeed(t, store, model.Feed{Title: "Old", URL: "https://example.com/feed", IsActive: true})

	updated, err := svc.Update(ctx, feedID, service.FeedUpdate{
		Title:           stringPtr(" New "),
		CategoryID:      &categoryID,
		IsActive:        boolPtr(false),
		RefreshInterval: intPtr(15),
	})
	require.NoError(t, err)
	require.Equal(t, "New", updated.Title)
	require.Equal(t, categoryID, *updated.CategoryID)
	require.False(t, updated.IsActive)
	require.Equal(t, 15, *updated.RefreshInterval)

	cleared, err := svc.Update(ctx, feedID, service.FeedUpdate{ClearCategory: true, RefreshInterval: intPtr(0)})
	require.NoError(t, err)
	require.Nil(t, cleared.CategoryID)
	require.Nil(t, cleared.RefreshInterval)

	_, err = svc.Update(ctx, feedID, service.FeedUpdate{Title: stringPtr("  ")})
	require.ErrorIs(t, err, service.ErrInvalid)

	_, err = svc.Update(ctx, feedID, service.FeedUpdate{CategoryID: stringPtr("nope")})
	require.ErrorIs(t, err, service.ErrCategoryNotFound)

	_, err = svc.Update(ctx, "missing", service.FeedUpdate{})
	require.ErrorIs(t, err, service.ErrFeedNotFound)
}

func TestFeedService_RecalculateCounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _, _, store := newStoreFeedService(t, servicemock.NewMockFeedFetcher(ctrl))
	ctx := context.Background()

	feedID := testutil.SeedFeed(t, store, model.Feed{Title: "Drifted", URL: "https://example.com/feed", TotalCount: 9, UnreadCount: 9})
	testutil.SeedArticle(t, store, model.Article{FeedID: feedID, URL: "a", IsRead: true})
	testutil.SeedArticle(t, store, model.Article{FeedID: feedID, URL: "b"})
	testutil.SeedArticle(t, store, model.Article{FeedID: feedID, URL: "c"})

	feed, err := svc.RecalculateCounts(ctx, feedID)
	require.NoError(t, err)
	require.Equal(t, 3, feed.TotalCount)
	require.Equal(t, 2, feed.UnreadCount)
}

func TestFeedService_List_ByCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _, _, store := newStoreFeedService(t, servicemock.NewMockFeedFetcher(ctrl))

	categoryID := testutil.SeedCategory(t, store, "Tech")
	testutil.SeedFeed(t, store, model.Feed{Title: "In", URL: "https://in.example/feed", CategoryID: &categoryID})
	testutil.SeedFeed(t, store, model.Feed{Title: "Out", URL: "https://out.example/feed"})

	all, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	filtered, err := svc.List(context.Background(), &categoryID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, "In", filtered[0].Title)
}

func TestFeedService_Validate_Delegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockFetcher := servicemock.NewMockFeedFetcher(ctrl)
	svc := service.NewFeedService(mock.NewMockFeedRepository(ctrl), mock.NewMockArticleRepository(ctrl), mock.NewMockCategoryRepository(ctrl), mockFetcher, nil)

	expected := fetcher.ValidationResult{IsValid: true, FeedType: "atom", Title: "T"}
	mockFetcher.EXPECT().Validate(gomock.Any(), "https://example.com/feed").Return(expected)

	require.Equal(t, expected, svc.Validate(context.Background(), "https://example.com/feed"))
}

func TestFeedService_GetByID_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFeeds := mock.NewMockFeedRepository(ctrl)
	svc := service.NewFeedService(mockFeeds, mock.NewMockArticleRepository(ctrl), mock.NewMockCategoryRepository(ctrl), servicemock.NewMockFeedFetcher(ctrl), nil)
	boom := errors.New("disk full")
	mockFeeds.EXPECT().GetByID(gomock.Any(), "f1").Return(model.Feed{}, boom)

	_, err := svc.GetByID(context.Background(), "f1")
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, service.ErrNotFound)
}
