// Package app assembles the storage backend, repositories, services and the
// HTTP router from a loaded configuration.
package app

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"

	"feedsync/internal/config"
	"feedsync/internal/db"
	"feedsync/internal/fetcher"
	"feedsync/internal/handler"
	transport "feedsync/internal/http"
	"feedsync/internal/logger"
	"feedsync/internal/network"
	"feedsync/internal/repository"
	"feedsync/internal/scheduler"
	"feedsync/internal/service"
	"feedsync/internal/snowflake"
	"feedsync/internal/storage"
)

type App struct {
	Config     config.Config
	Store      storage.Store
	Feeds      service.FeedService
	Refresh    service.RefreshService
	Articles   service.ArticleService
	Categories service.CategoryService
	OPML       service.OPMLService
}

// New opens the configured store and builds every service on top of it.
// The caller owns the returned App and must Close it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := snowflake.Init(cfg.NodeID); err != nil {
		return nil, fmt.Errorf("init snowflake: %w", err)
	}

	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store := storage.New(backend)

	client := fetcher.NewClient(network.NewClientFactory(cfg.ProxyURL), fetcher.OptionsFromConfig(cfg))
	return NewWithStore(cfg, store, client), nil
}

// NewWithStore wires services over an already opened store and fetcher.
func NewWithStore(cfg config.Config, store storage.Store, feedFetcher service.FeedFetcher) *App {
	feedRepo := repository.NewFeedRepository(store)
	articleRepo := repository.NewArticleRepository(store)
	categoryRepo := repository.NewCategoryRepository(store)

	feedLocks := service.NewFeedLocks()
	feedService := service.NewFeedService(feedRepo, articleRepo, categoryRepo, feedFetcher, feedLocks)
	refreshService := service.NewRefreshService(feedRepo, articleRepo, feedFetcher, cfg.Refresh.Concurrency, feedLocks)
	categoryService := service.NewCategoryService(categoryRepo, feedRepo)

	return &App{
		Config:     cfg,
		Store:      store,
		Feeds:      feedService,
		Refresh:    refreshService,
		Articles:   service.NewArticleService(articleRepo, feedRepo, categoryRepo),
		Categories: categoryService,
		OPML:       service.NewOPMLService(feedService, categoryService, refreshService, categoryRepo, feedRepo),
	}
}

// OpenBackend opens the key-value backend selected by cfg.Store.
func OpenBackend(ctx context.Context, cfg config.Config) (storage.Backend, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return storage.NewMemoryBackend(), nil
	case config.StoreSQLite:
		kv, err := db.OpenKV(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return kv, nil
	case config.StorePostgres:
		pg, err := storage.OpenPostgres(cfg.PostgresDSN, cfg.PostgresMaxConns)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return pg, nil
	case config.StoreRedis:
		rdb, err := storage.OpenRedis(ctx, storage.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis store: %w", err)
		}
		return rdb, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

func (a *App) Router() *echo.Echo {
	return transport.NewRouter(transport.Handlers{
		Feeds:      handler.NewFeedHandler(a.Feeds, a.Refresh),
		Articles:   handler.NewArticleHandler(a.Articles),
		Categories: handler.NewCategoryHandler(a.Categories),
		OPML:       handler.NewOPMLHandler(a.OPML),
	})
}

// Scheduler returns nil when refresh.interval is zero.
func (a *App) Scheduler() *scheduler.Scheduler {
	if a.Config.Refresh.Interval <= 0 {
		return nil
	}
	return scheduler.New(a.Refresh, a.Config.Refresh.Interval, a.Config.Refresh.DefaultFeedInterval)
}

func (a *App) Close() error {
	if err := a.Store.Close(); err != nil {
		logger.Error("close store", "module", "app", "action", "close", "resource", "store", "result", "failed", "error", err)
		return err
	}
	return nil
}
