package model

import "time"

type Feed struct {
	ID              string     `json:"id"`
	CategoryID      *string    `json:"categoryId,omitempty"`
	Title           string     `json:"title"`
	URL             string     `json:"url"`
	SiteURL         *string    `json:"siteUrl,omitempty"`
	Description     *string    `json:"description,omitempty"`
	FaviconURL      *string    `json:"faviconUrl,omitempty"`
	LastUpdated     *time.Time `json:"lastUpdated,omitempty"`
	LastFetched     *time.Time `json:"lastFetched,omitempty"`
	UnreadCount     int        `json:"unreadCount"`
	TotalCount      int        `json:"totalCount"`
	IsActive        bool       `json:"isActive"`
	RefreshInterval *int       `json:"refreshInterval,omitempty"` // minutes
	ErrorMessage    *string    `json:"errorMessage,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// RefreshDue reports whether the feed should be refreshed at now, using its own
// interval when set and fallback otherwise. Feeds never fetched are always due.
func (f Feed) RefreshDue(now time.Time, fallback time.Duration) bool {
	if f.LastFetched == nil {
		return true
	}
	interval := fallback
	if f.RefreshInterval != nil && *f.RefreshInterval > 0 {
		interval = time.Duration(*f.RefreshInterval) * time.Minute
	}
	return !now.Before(f.LastFetched.Add(interval))
}
