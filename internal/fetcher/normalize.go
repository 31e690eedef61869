package fetcher

import (
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"feedsync/internal/model"
)

const unknownFeedTitle = "Unknown Feed"

// rawItem is the subset of a parsed entry that normalization reads.
type rawItem struct {
	Title          string
	Content        string
	EncodedContent string
	Snippet        string
	Link           string
	Creator        string
	Author         string
	GUID           string
	Published      *time.Time
	Updated        *time.Time
}

func rawItemFromGofeed(item *gofeed.Item) rawItem {
	raw := rawItem{
		Title:     item.Title,
		Content:   item.Content,
		Snippet:   item.Description,
		Link:      item.Link,
		GUID:      item.GUID,
		Published: item.PublishedParsed,
		Updated:   item.UpdatedParsed,
	}
	if ext, ok := item.Extensions["content"]; ok {
		if encoded := ext["encoded"]; len(encoded) > 0 {
			raw.EncodedContent = encoded[0].Value
		}
	}
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
		raw.Creator = item.DublinCoreExt.Creator[0]
	}
	if item.Author != nil {
		raw.Author = item.Author.Name
	} else if len(item.Authors) > 0 && item.Authors[0] != nil {
		raw.Author = item.Authors[0].Name
	}
	return raw
}

// normalize returns false for entries that carry neither a link nor a guid.
func (r rawItem) normalize(now time.Time) (model.ParsedArticle, bool) {
	link := strings.TrimSpace(r.Link)
	guid := strings.TrimSpace(r.GUID)
	if link == "" && guid == "" {
		return model.ParsedArticle{}, false
	}

	article := model.ParsedArticle{
		Title:   strings.TrimSpace(r.Title),
		Content: firstNonEmpty(r.Content, r.EncodedContent, r.Snippet),
		Summary: firstNonEmpty(r.Snippet, r.Content, r.EncodedContent),
		URL:     link,
		Author:  strings.TrimSpace(firstNonEmpty(r.Creator, r.Author)),
		GUID:    guid,
	}
	if article.URL == "" {
		article.URL = guid
	}

	switch {
	case r.Published != nil && !r.Published.IsZero():
		article.PublishedAt = r.Published.UTC()
	case r.Updated != nil && !r.Updated.IsZero():
		article.PublishedAt = r.Updated.UTC()
	default:
		article.PublishedAt = now.UTC()
	}
	return article, true
}

func normalizeFeed(feed *gofeed.Feed, now time.Time) model.ParsedFeed {
	parsed := model.ParsedFeed{
		Title:       strings.TrimSpace(feed.Title),
		Description: strings.TrimSpace(feed.Description),
		SiteURL:     strings.TrimSpace(feed.Link),
		FeedType:    feed.FeedType,
		FeedVersion: feed.FeedVersion,
	}
	if parsed.Title == "" {
		parsed.Title = unknownFeedTitle
	}
	parsed.FaviconURL = faviconURL(parsed.SiteURL)

	parsed.Articles = make([]model.ParsedArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		if article, ok := rawItemFromGofeed(item).normalize(now); ok {
			parsed.Articles = append(parsed.Articles, article)
		}
	}
	return parsed
}

// faviconURL derives scheme://host/favicon.ico from the site link.
func faviconURL(siteURL string) string {
	if siteURL == "" {
		return ""
	}
	u, err := url.Parse(siteURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host + "/favicon.ico"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
