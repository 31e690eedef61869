package service

import (
	"context"

	"feedsync/internal/fetcher"
	"feedsync/internal/model"
)

// FeedFetcher downloads feeds. *fetcher.Client satisfies it.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) (model.ParsedFeed, error)
	Validate(ctx context.Context, feedURL string) fetcher.ValidationResult
}

var _ FeedFetcher = (*fetcher.Client)(nil)
