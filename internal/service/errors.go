package service

import (
	"errors"
	"fmt"

	"feedsync/internal/model"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
	ErrInvalid   = errors.New("invalid")
	ErrFeedFetch = errors.New("feed fetch failed")
)

var (
	ErrFeedNotFound     = fmt.Errorf("feed %w", ErrNotFound)
	ErrArticleNotFound  = fmt.Errorf("article %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
)

// FeedConflictError is returned when a feed URL already exists.
type FeedConflictError struct {
	ExistingFeed model.Feed
}

func (e *FeedConflictError) Error() string {
	return "feed already exists"
}

func (e *FeedConflictError) Is(target error) bool {
	return target == ErrConflict
}

// CategoryConflictError is returned when a category name is taken.
type CategoryConflictError struct {
	Name string
}

func (e *CategoryConflictError) Error() string {
	return fmt.Sprintf("category %q already exists", e.Name)
}

func (e *CategoryConflictError) Is(target error) bool {
	return target == ErrConflict
}
