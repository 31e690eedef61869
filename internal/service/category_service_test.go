package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"feedsync/internal/model"
	"feedsync/internal/repository"
	"feedsync/internal/repository/mock"
	"feedsync/internal/repository/testutil"
	"feedsync/internal/service"
)

func TestCategoryService_Create(t *testing.T) {
	store := testutil.NewTestStore(t)
	svc := service.NewCategoryService(repository.NewCategoryRepository(store), repository.NewFeedRepository(store))
	ctx := context.Background()

	category, err := svc.Create(ctx, "  News ")
	require.NoError(t, err)
	require.Equal(t, "News", category.Name)
	require.NotEmpty(t, category.ID)

	_, err = svc.Create(ctx, "news")
	require.ErrorIs(t, err, service.ErrConflict)
	var conflict *service.CategoryConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "News", conflict.Name)

	_, err = svc.Create(ctx, "   ")
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestCategoryService_Rename(t *testing.T) {
	store := testutil.NewTestStore(t)
	svc := service.NewCategoryService(repository.NewCategoryRepository(store), repository.NewFeedRepository(store))
	ctx := context.Background()

	news := testutil.SeedCategory(t, store, "News")
	testutil.SeedCategory(t, store, "Tech")

	renamed, err := svc.Rename(ctx, news, "World News")
	require.NoError(t, err)
	require.Equal(t, "World News", renamed.Name)

	_, err = svc.Rename(ctx, news, "world news")
	require.NoError(t, err)

	_, err = svc.Rename(ctx, news, "tech")
	require.ErrorIs(t, err, service.ErrConflict)

	_, err = svc.Rename(ctx, "missing", "Other")
	require.ErrorIs(t, err, service.ErrCategoryNotFound)
}

func TestCategoryService_Delete_DetachesFeeds(t *testing.T) {
	store := testutil.NewTestStore(t)
	feeds := repository.NewFeedRepository(store)
	svc := service.NewCategoryService(repository.NewCategoryRepository(store), feeds)
	ctx := context.Background()

	categoryID := testutil.SeedCategory(t, store, "News")
	feedID := testutil.SeedFeed(t, store, model.Feed{Title: "Daily", URL: "https://daily.example/feed", CategoryID: &categoryID})

	require.NoError(t, svc.Delete(ctx, categoryID))

	feed, err := feeds.GetByID(ctx, feedID)
	require.NoError(t, err)
	require.Nil(t, feed.CategoryID)

	categories, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, categories)
}

func TestCategoryService_Delete_Unknown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCategories := mock.NewMockCategoryRepository(ctrl)
	svc := service.NewCategoryService(mockCategories, mock.NewMockFeedRepository(ctrl))
	ctx := context.Background()

	mockCategories.EXPECT().GetByID(ctx, "missing").Return(model.Category{}, repository.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, "missing"), service.ErrCategoryNotFound)
}
