// Package storage is the key-value persistence collaborator. Every entity
// collection is stored whole under a fixed key; each Load/Save call is atomic
// on its own and there is no transaction spanning several calls.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"feedsync/internal/model"
)

const (
	KeyFeeds      = "feeds"
	KeyArticles   = "articles"
	KeyCategories = "categories"
)

// Backend is a flat key-value store holding opaque values.
type Backend interface {
	// Get returns ok=false when the key has never been written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

type Store interface {
	LoadFeeds(ctx context.Context) ([]model.Feed, error)
	SaveFeeds(ctx context.Context, feeds []model.Feed) error
	LoadArticles(ctx context.Context) ([]model.Article, error)
	SaveArticles(ctx context.Context, articles []model.Article) error
	LoadCategories(ctx context.Context) ([]model.Category, error)
	SaveCategories(ctx context.Context, categories []model.Category) error
	Close() error
}

type kvStore struct {
	backend Backend
}

// New returns a Store that keeps each collection as a JSON array in backend.
func New(backend Backend) Store {
	return &kvStore{backend: backend}
}

func (s *kvStore) LoadFeeds(ctx context.Context) ([]model.Feed, error) {
	return load[model.Feed](ctx, s.backend, KeyFeeds)
}

func (s *kvStore) SaveFeeds(ctx context.Context, feeds []model.Feed) error {
	return save(ctx, s.backend, KeyFeeds, feeds)
}

func (s *kvStore) LoadArticles(ctx context.Context) ([]model.Article, error) {
	return load[model.Article](ctx, s.backend, KeyArticles)
}

func (s *kvStore) SaveArticles(ctx context.Context, articles []model.Article) error {
	return save(ctx, s.backend, KeyArticles, articles)
}

func (s *kvStore) LoadCategories(ctx context.Context) ([]model.Category, error) {
	return load[model.Category](ctx, s.backend, KeyCategories)
}

func (s *kvStore) SaveCategories(ctx context.Context, categories []model.Category) error {
	return save(ctx, s.backend, KeyCategories, categories)
}

func (s *kvStore) Close() error {
	return s.backend.Close()
}

func load[T any](ctx context.Context, backend Backend, key string) ([]T, error) {
	raw, ok, err := backend.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func save[T any](ctx context.Context, backend Backend, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := backend.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
