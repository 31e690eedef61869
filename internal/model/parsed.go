package model

import "time"

// ParsedFeed is the normalized output of a feed fetch. It is never persisted.
type ParsedFeed struct {
	Title       string
	Description string
	SiteURL     string
	FaviconURL  string
	FeedType    string
	FeedVersion string
	Articles    []ParsedArticle
}

type ParsedArticle struct {
	Title       string
	Content     string
	Summary     string
	URL         string
	Author      string
	GUID        string
	PublishedAt time.Time
}
