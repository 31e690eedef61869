package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"feedsync/internal/logger"
	"feedsync/internal/model"
	"feedsync/internal/repository"
)

type CategoryService interface {
	Create(ctx context.Context, name string) (model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Rename(ctx context.Context, id string, name string) (model.Category, error)
	Delete(ctx context.Context, id string) error
}

type categoryService struct {
	categories repository.CategoryRepository
	feeds      repository.FeedRepository
}

func NewCategoryService(categories repository.CategoryRepository, feeds repository.FeedRepository) CategoryService {
	return &categoryService{categories: categories, feeds: feeds}
}

func (s *categoryService) Create(ctx context.Context, name string) (model.Category, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return model.Category{}, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if existing, err := s.categories.FindByName(ctx, trimmed); err != nil {
		return model.Category{}, fmt.Errorf("check category name: %w", err)
	} else if existing != nil {
		return model.Category{}, &CategoryConflictError{Name: existing.Name}
	}

	category, err := s.categories.Create(ctx, trimmed)
	if err != nil {
		return model.Category{}, err
	}
	logger.Info("category created", "module", "service", "action", "create", "resource", "category", "result", "ok", "category_id", category.ID)
	return category, nil
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

func (s *categoryService) Rename(ctx context.Context, id string, name string) (model.Category, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return model.Category{}, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if existing, err := s.categories.FindByName(ctx, trimmed); err != nil {
		return model.Category{}, fmt.Errorf("check category name: %w", err)
	} else if existing != nil && existing.ID != id {
		return model.Category{}, &CategoryConflictError{Name: existing.Name}
	}

	category, err := s.categories.Update(ctx, id, trimmed)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Category{}, ErrCategoryNotFound
		}
		return model.Category{}, err
	}
	return category, nil
}

// Delete removes the category. Its feeds stay and become uncategorized.
func (s *categoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	detached, err := s.feeds.ClearCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("detach feeds: %w", err)
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	logger.Info("category deleted", "module", "service", "action", "delete", "resource", "category", "result", "ok", "category_id", id, "feeds_detached", detached)
	return nil
}
