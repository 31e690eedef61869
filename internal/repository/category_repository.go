package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"feedsync/internal/model"
	"feedsync/internal/snowflake"
	"feedsync/internal/storage"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id string) (model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	Create(ctx context.Context, name string) (model.Category, error)
	Update(ctx context.Context, id string, name string) (model.Category, error)
	Delete(ctx context.Context, id string) error
}

type categoryRepository struct {
	store storage.Store
	mu    sync.Mutex
}

func NewCategoryRepository(store storage.Store) CategoryRepository {
	return &categoryRepository{store: store}
}

// List returns categories ordered by name.
func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	categories, err := r.store.LoadCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return strings.ToLower(categories[i].Name) < strings.ToLower(categories[j].Name)
	})
	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (model.Category, error) {
	categories, err := r.store.LoadCategories(ctx)
	if err != nil {
		return model.Category{}, fmt.Errorf("get category: %w", err)
	}
	for _, category := range categories {
		if category.ID == id {
			return category, nil
		}
	}
	return model.Category{}, ErrNotFound
}

// FindByName matches case-insensitively and returns nil when absent.
func (r *categoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	categories, err := r.store.LoadCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	for _, category := range categories {
		if strings.EqualFold(category.Name, name) {
			return &category, nil
		}
	}
	return nil, nil
}

func (r *categoryRepository) Create(ctx context.Context, name string) (model.Category, error) {
	category := model.Category{
		ID:        snowflake.NextID(),
		Name:      name,
		CreatedAt: nowFunc(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.store.LoadCategories(ctx)
	if err != nil {
		return model.Category{}, fmt.Errorf("create category: %w", err)
	}
	categories = append(categories, category)
	if err := r.store.SaveCategories(ctx, categories); err != nil {
		return model.Category{}, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (r *categoryRepository) Update(ctx context.Context, id string, name string) (model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.store.LoadCategories(ctx)
	if err != nil {
		return model.Category{}, fmt.Errorf("update category: %w", err)
	}
	for i := range categories {
		if categories[i].ID != id {
			continue
		}
		categories[i].Name = name
		if err := r.store.SaveCategories(ctx, categories); err != nil {
			return model.Category{}, fmt.Errorf("update category: %w", err)
		}
		return categories[i], nil
	}
	return model.Category{}, ErrNotFound
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.store.LoadCategories(ctx)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	kept := make([]model.Category, 0, len(categories))
	for _, category := range categories {
		if category.ID != id {
			kept = append(kept, category)
		}
	}
	if len(kept) == len(categories) {
		return ErrNotFound
	}
	if err := r.store.SaveCategories(ctx, kept); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
