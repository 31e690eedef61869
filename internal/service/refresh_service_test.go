package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"feedsync/internal/fetcher"
	"feedsync/internal/model"
	"feedsync/internal/repository"
	"feedsync/internal/repository/mock"
	"feedsync/internal/repository/testutil"
	"feedsync/internal/service"
	servicemock "feedsync/internal/service/mock"
)

func TestRefreshService_RefreshFeed_PersistsArticlesBeforeFeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFeeds := mock.NewMockFeedRepository(ctrl)
	mockArticles := mock.NewMockArticleRepository(ctrl)
	mockFetcher := servicemock.NewMockFeedFetcher(ctrl)
	svc := service.NewRefreshService(mockFeeds, mockArticles, mockFetcher, 2, nil)
	ctx := context.Background()

	feed := model.Feed{ID: "f1", URL: "https://example.com/feed", IsActive: true}
	existing := []model.Article{{ID: "a1", FeedID: "f1", URL: "https://example.com/a"}}

	mockFeeds.EXPECT().GetByID(ctx, "f1").Return(feed, nil)
	mockFetcher.EXPECT().
		Fetch(ctx, feed.URL).
		Return(parsedFeed("Feed", "https://example.com/a", "https://example.com/b", "https://example.com/c"), nil)
	mockArticles.EXPECT().ListByFeed(ctx, "f1").Return(existing, nil)

	var appended []model.Article
	gomock.InOrder(
		mockArticles.EXPECT().
			Append(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, articles []model.Article) error {
				appended = articles
				return nil
			}),
		mockFeeds.EXPECT().
			ApplyRefresh(ctx, "f1", 2, gomock.Any()).
			Return(model.Feed{}, nil),
	)

	result, err := svc.RefreshFeed(ctx, "f1")
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, "f1", result.FeedID)
	require.Equal(t, len(appended), result.NewArticleCount)
	require.Len(t, appended, 2)
	for _, article := range appended {
		require.Equal(t, "f1", article.FeedID)
		require.NotEmpty(t, article.ID)
		require.False(t, article.IsRead)
		require.False(t, article.IsStarred)
	}
	require.Equal(t, "https://example.com/b", appended[0].URL)
	require.Equal(t, "https://example.com/c", appended[1].URL)
}

func TestRefreshService_RefreshFeed_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFeeds := mock.NewMockFeedRepository(ctrl)
	mockArticles := mock.NewMockArticleRepository(ctrl)
	mockFetcher := servicemock.NewMockFeedFetcher(ctrl)
	svc := service.NewRefreshService(mockFeeds, mockArticles, mockFetcher, 2, nil)
	ctx := context.Background()

	mockFeeds.EXPECT().GetByID(ctx, "missing").Return(model.Feed{}, repository.ErrNotFound)

	result, err := svc.RefreshFeed(ctx, "missing")
	require.ErrorIs(t, err, service.ErrFeedNotFound)
	require.ErrorIs(t, err, service.ErrNotFound)
	require.False(t, result.Success)
}

func TestRefreshService_RefreshFeed_FetchFailureRecordedOnFeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFeeds := mock.NewMockFeedRepository(ctrl)
	mockArticles := mock.NewMockArticleRepository(ctrl)
	mockFetcher := servicemock.NewMockFeedFetcher(ctrl)
	svc := service.NewRefreshService(mockFeeds, mockArticles, mockFetcher, 2, nil)
	ctx := context.Background()

	feed := model.Feed{ID: "f1", URL: "https://example.com/feed"}
	fetchErr := &fetcher.FetchError{Type: fetcher.ErrorTypeNotFound, StatusCode: 404, Attempts: 1}

	mockFeeds.EXPECT().GetByID(ctx, "f1").Return(feed, nil)
	mockFetcher.EXPECT().Fetch(ctx, feed.URL).Return(model.ParsedFeed{}, fetchErr)
	mockFeeds.EXPECT().
		UpdateErrorMessage(gomock.Any(), "f1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, msg *string) error {
			require.NotNil(t, msg)
			require.Contains(t, *msg, "NOT_FOUND")
			return nil
		})

	result, err := svc.RefreshFeed(ctx, "f1")
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Zero(t, result.NewArticleCount)
	require.Contains(t, result.Error, "NOT_FOUND")
}

func TestRefreshService_RefreshFeed_FeedRemovedDuringRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFeeds := mock.NewMockFeedRepository(ctrl)
	mockArticles := mock.NewMockArticleRepository(ctrl)
	mockFetcher := servicemock.NewMockFeedFetcher(ctrl)
	svc := service.NewRefreshService(mockFeeds, mockArticles, mockFetcher, 2, nil)
	ctx := context.Background()

	feed := model.Feed{ID: "f1", URL: "https://example.com/feed"}
	mockFeeds.EXPECT().GetByID(ctx, "f1").Return(feed, nil)
	mockFetcher.EXPECT().Fetch(ctx, feed.URL).Return(parsedFeed("Feed", "https://example.com/a"), nil)
	mockArticles.EXPECT().ListByFeed(ctx, "f1").Return(nil, nil)
	gomock.InOrder(
		mockArticles.EXPECT().Append(ctx, gomock.Len(1)).Return(nil),
		mockFeeds.EXPECT().ApplyRefresh(ctx, "f1", 1, gomock.Any()).Return(model.Feed{}, repository.ErrNotFound),
		mockArticles.EXPECT().DeleteByFeed(ctx, "f1").Return(1, nil),
	)

	result, err := svc.RefreshFeed(ctx, "f1")
	require.NoError(t, err)
	require.False(t, result.Success)
}

func TestRefreshService_RefreshAll_IsolatesFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFeeds := mock.NewMockFeedRepository(ctrl)
	mockArticles := mock.NewMockArticleRepository(ctrl)
	mockFetcher := servicemock.NewMockFeedFetcher(ctrl)
	svc := service.NewRefreshService(mockFeeds, mockArticles, mockFetcher, 4, nil)
	ctx := context.Background()

	f1 := model.Feed{ID: "f1", URL: "https://one.example/feed", IsActive: true}
	f2 := model.Feed{ID: "f2", URL: "https://two.example/feed", IsActive: true}
	inactive := model.Feed{ID: "f3", URL: "https://three.example/feed", IsActive: false}

	mockFeeds.EXPECT().List(ctx).Return([]model.Feed{f1, f2, inactive}, nil)
	mockFetcher.EXPECT().Fetch(ctx, f1.URL).Return(parsedFeed("One", "https://one.example/a"), nil)
	mockFetcher.EXPECT().
		Fetch(ctx, f2.URL).
		Return(model.ParsedFeed{}, &fetcher.FetchError{Type: fetcher.ErrorTypeNetwork, Retryable: true, Attempts: 3, Err: errors.New("connection refused")})
	mockArticles.EXPECT().ListByFeed(ctx, "f1").Return(nil, nil)
	mockArticles.EXPECT().Append(ctx, gomock.Len(1)).Return(nil)
	mockFeeds.EXPECT().ApplyRefresh(ctx, "f1", 1, gomock.Any()).Return(model.Feed{}, nil)
	mockFeeds.EXPECT().UpdateErrorMessage(gomock.Any(), "f2", gomock.Not(gomock.Nil())).Return(nil)

	batch, err := svc.RefreshAll(ctx)
	require.NoError(t, err)
	require.Len(t, batch.Results, 2)
	require.NotEmpty(t, batch.RunID)

	require.Equal(t, "f1", batch.Results[0].FeedID)
	require.True(t, batch.Results[0].Success)
	require.Equal(t, 1, batch.Results[0].NewArticleCount)

	require.Equal(t, "f2", batch.Results[1].FeedID)
	require.False(t, batch.Results[1].Success)
	require.Contains(t, batch.Results[1].Error, "NETWORK_ERROR")

	require.Equal(t, 1, batch.TotalNew)
	require.Equal(t, 1, batch.TotalErrors)
}

func TestRefreshService_RefreshAll_ListFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFeeds := mock.NewMockFeedRepository(ctrl)
	svc := service.NewRefreshService(mockFeeds, mock.NewMockArticleRepository(ctrl), servicemock.NewMockFeedFetcher(ctrl), 2, nil)
	ctx := context.Background()

	mockFeeds.EXPECT().List(ctx).Return(nil, errors.New("storage offline"))

	_, err := svc.RefreshAll(ctx)
	require.Error(t, err)
}

func TestRefreshService_RefreshFeeds_UnknownIDsFail(t *testing.T) {
	store := testutil.NewTestStore(t)
	feedID := testutil.SeedFeed(t, store, model.Feed{Title: "Known", URL: "https://known.example/feed", IsActive: true})

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockFetcher := servicemock.NewMockFeedFetcher(ctrl)
	mockFetcher.EXPECT().Fetch(gomock.Any(), "https://known.example/feed").Return(parsedFeed("Known", "https://known.example/1"), nil)

	svc := service.NewRefreshService(repository.NewFeedRepository(store), repository.NewArticleRepository(store), mockFetcher, 2, nil)
	batch, err := svc.RefreshFeeds(context.Background(), []string{"nope", feedID})
	require.NoError(t, err)
	require.Len(t, batch.Results, 2)
	require.Equal(t, "nope", batch.Results[0].FeedID)
	require.False(t, batch.Results[0].Success)
	require.True(t, batch.Results[1].Success)
	require.Equal(t, 1, batch.Results[1].NewArticleCount)
}

func TestRefreshService_SecondRefreshAddsNothing(t *testing.T) {
	store := testutil.NewTestStore(t)
	feeds := repository.NewFeedRepository(store)
	articles := repository.NewArticleRepository(store)
	feedID := testutil.SeedFeed(t, store, model.Feed{Title: "Blog", URL: "https://blog.example/feed", IsActive: true})

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockFetcher := servicemock.NewMockFeedFetcher(ctrl)
	mockFetcher.EXPECT().
		Fetch(gomock.Any(), "https://blog.example/feed").
		Return(parsedFeed("Blog", "https://blog.example/a", "https://blog.example/b"), nil).
		Times(2)

	svc := service.NewRefreshService(feeds, articles, mockFetcher, 2, nil)
	ctx := context.Background()

	first, err := svc.RefreshFeed(ctx, feedID)
	require.NoError(t, err)
	require.Equal(t, 2, first.NewArticleCount)

	second, err := svc.RefreshFeed(ctx, feedID)
	require.NoError(t, err)
	require.True(t, second.Success)
	require.Zero(t, second.NewArticleCount)

	stored, err := articles.ListByFeed(ctx, feedID)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	feed, err := feeds.GetByID(ctx, feedID)
	require.NoError(t, err)
	require.Equal(t, 2, feed.TotalCount)
	require.Equal(t, 2, feed.UnreadCount)
	require.NotNil(t, feed.LastFetched)
	require.Nil(t, feed.ErrorMessage)
}

func TestRefreshService_OnlyUnseenArticlesAdded(t *testing.T) {
	store := testutil.NewTestStore(t)
	feedID := testutil.SeedFeed(t, store, model.Feed{Title: "Blog", URL: "https://blog.example/feed", IsActive: true})
	otherID := testutil.SeedFeed(t, store, model.Feed{Title: "Other", URL: "https://other.example/feed", IsActive: true})
	testutil.SeedArticle(t, store, model.Article{FeedID: feedID, URL: "A"})
	testutil.SeedArticle(t, store, model.Article{FeedID: feedID, URL: "B"})
	testutil.SeedArticle(t, store, model.Article{FeedID: otherID, URL: "C"})

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockFetcher := servicemock.NewMockFeedFetcher(ctrl)
	mockFetcher.EXPECT().Fetch(gomock.Any(), "https://blog.example/feed").Return(parsedFeed("Blog", "A", "B", "C"), nil)

	articles := repository.NewArticleRepository(store)
	svc := service.NewRefreshService(repository.NewFeedRepository(store), articles, mockFetcher, 2, nil)
	result, err := svc.RefreshFeed(context.Background(), feedID)
	require.NoError(t, err)
	require.Equal(t, 1, result.NewArticleCount)

	stored, err := articles.ListByFeed(context.Background(), feedID)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	require.Equal(t, "C", stored[2].URL)
}

func TestRefreshService_ConcurrentRefreshOfSameFeed(t *testing.T) {
	store := testutil.NewTestStore(t)
	feedID := testutil.SeedFeed(t, store, model.Feed{Title: "Blog", URL: "https://blog.example/feed", IsActive: true})

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockFetcher := servicemock.NewMockFeedFetcher(ctrl)
	mockFetcher.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		Return(parsedFeed("Blog", "https://blog.example/a", "https://blog.example/b"), nil).
		AnyTimes()

	articles := repository.NewArticleRepository(store)
	svc := service.NewRefreshService(repository.NewFeedRepository(store), articles, mockFetcher, 4, nil)

	var wg sync.WaitGroup
	results := make([]model.RefreshResult, 5)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = svc.RefreshFeed(context.Background(), feedID)
		}()
	}
	wg.Wait()

	total := 0
	for _, r := range results {
		require.True(t, r.Success)
		total += r.NewArticleCount
	}
	require.Equal(t, 2, total)

	stored, err := articles.ListByFeed(context.Background(), feedID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
}

func TestRefreshService_RefreshStale(t *testing.T) {
	store := testutil.NewTestStore(t)
	recent := time.Now().UTC().Add(-time.Minute)
	old := time.Now().UTC().Add(-2 * time.Hour)
	testutil.SeedFeed(t, store, model.Feed{Title: "Fresh", URL: "https://fresh.example/feed", IsActive: true, LastFetched: &recent})
	staleID := testutil.SeedFeed(t, store, model.Feed{Title: "Stale", URL: "https://stale.example/feed", IsActive: true, LastFetched: &old})
	neverID := testutil.SeedFeed(t, store, model.Feed{Title: "Never", URL: "https://never.example/feed", IsActive: true})
	testutil.SeedFeed(t, store, model.Feed{Title: "Paused", URL: "https://paused.example/feed", IsActive: false})

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockFetcher := servicemock.NewMockFeedFetcher(ctrl)
	mockFetcher.EXPECT().Fetch(gomock.Any(), "https://stale.example/feed").Return(parsedFeed("Stale"), nil)
	mockFetcher.EXPECT().Fetch(gomock.Any(), "https://never.example/feed").Return(parsedFeed("Never"), nil)

	svc := service.NewRefreshService(repository.NewFeedRepository(store), repository.NewArticleRepository(store), mockFetcher, 2, nil)
	batch, err := svc.RefreshStale(context.Background(), 30*time.Minute)
	require.NoError(t, err)
	require.Len(t, batch.Results, 2)
	require.Equal(t, staleID, batch.Results[0].FeedID)
	require.Equal(t, neverID, batch.Results[1].FeedID)
	require.Zero(t, batch.TotalErrors)
}
