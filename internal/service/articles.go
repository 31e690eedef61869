package service

import (
	"strings"
	"time"

	"feedsync/internal/model"
	"feedsync/internal/snowflake"
)

// buildArticles turns parsed entries into unread, unstarred articles of feedID.
func buildArticles(feedID string, items []model.ParsedArticle, now time.Time) []model.Article {
	articles := make([]model.Article, 0, len(items))
	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			title = item.URL
		}
		articles = append(articles, model.Article{
			ID:          snowflake.NextID(),
			FeedID:      feedID,
			Title:       title,
			Content:     item.Content,
			Summary:     optionalString(item.Summary),
			URL:         item.URL,
			Author:      optionalString(item.Author),
			GUID:        optionalString(item.GUID),
			PublishedAt: item.PublishedAt,
			CreatedAt:   now,
		})
	}
	return articles
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
