package service_test

import (
	"fmt"
	"time"

	"feedsync/internal/model"
)

func stringPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *int {
	return &i
}

func parsedFeed(title string, urls ...string) model.ParsedFeed {
	feed := model.ParsedFeed{Title: title, SiteURL: "https://example.com", FeedType: "rss"}
	for i, u := range urls {
		feed.Articles = append(feed.Articles, model.ParsedArticle{
			Title:       fmt.Sprintf("Article %d", i+1),
			URL:         u,
			Content:     "<p>body</p>",
			PublishedAt: time.Date(2025, 1, 1+i, 0, 0, 0, 0, time.UTC),
		})
	}
	return feed
}
