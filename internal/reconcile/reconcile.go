// Package reconcile decides which parsed entries of a feed are not yet stored.
package reconcile

import (
	"strings"

	"feedsync/internal/model"
)

// NewArticles returns the entries of parsed that have no stored counterpart
// among existing articles of feedID. Stored articles of other feeds are ignored.
//
// Two entries are the same article when both carry a guid and the guids match;
// otherwise their urls are compared. Duplicates inside parsed collapse to the
// first occurrence. The result keeps the source order of parsed.
func NewArticles(feedID string, existing []model.Article, parsed []model.ParsedArticle) []model.ParsedArticle {
	seen := newKeySet()
	for _, article := range existing {
		if article.FeedID != feedID {
			continue
		}
		seen.add(deref(article.GUID), article.URL)
	}

	fresh := make([]model.ParsedArticle, 0, len(parsed))
	for _, item := range parsed {
		if seen.contains(item.GUID, item.URL) {
			continue
		}
		seen.add(item.GUID, item.URL)
		fresh = append(fresh, item)
	}
	return fresh
}

// keySet indexes articles by guid and by url. Urls of guid-less articles are
// kept apart so a guid-bearing entry only matches them by url.
type keySet struct {
	guids         map[string]struct{}
	urlsWithoutID map[string]struct{}
	urls          map[string]struct{}
}

func newKeySet() *keySet {
	return &keySet{
		guids:         make(map[string]struct{}),
		urlsWithoutID: make(map[string]struct{}),
		urls:          make(map[string]struct{}),
	}
}

func (s *keySet) add(guid, url string) {
	guid = strings.TrimSpace(guid)
	url = strings.TrimSpace(url)
	if guid != "" {
		s.guids[guid] = struct{}{}
	} else if url != "" {
		s.urlsWithoutID[url] = struct{}{}
	}
	if url != "" {
		s.urls[url] = struct{}{}
	}
}

func (s *keySet) contains(guid, url string) bool {
	guid = strings.TrimSpace(guid)
	url = strings.TrimSpace(url)
	if guid != "" {
		if _, ok := s.guids[guid]; ok {
			return true
		}
		// A guid-bearing entry matches a stored one by url only when that one has no guid.
		_, ok := s.urlsWithoutID[url]
		return url != "" && ok
	}
	if url == "" {
		return false
	}
	_, ok := s.urls[url]
	return ok
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
