// Package fetcher downloads and normalizes RSS and Atom feeds.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"feedsync/internal/config"
	"feedsync/internal/logger"
	"feedsync/internal/model"
	"feedsync/internal/network"
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = time.Second
	defaultTimeout    = 30 * time.Second

	acceptHeader = "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.9, */*;q=0.8"
	maxDrainSize = 64 << 10
)

// Options tunes a Client. Zero values fall back to the defaults.
type Options struct {
	// MaxRetries is the total number of attempts per Fetch.
	MaxRetries        int
	RetryDelay        time.Duration
	Timeout           time.Duration
	UserAgent         string
	RequestsPerSecond float64

	// Sleep waits between attempts; tests replace it to avoid real delays.
	Sleep func(ctx context.Context, d time.Duration) error
	Now   func() time.Time
}

// OptionsFromConfig builds fetch options from the loaded configuration.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		MaxRetries:        cfg.Fetch.MaxRetries,
		RetryDelay:        cfg.Fetch.RetryDelay,
		Timeout:           cfg.Fetch.Timeout,
		UserAgent:         cfg.UserAgent,
		RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
	}
}

// ValidationResult describes whether a URL serves a parseable feed.
type ValidationResult struct {
	IsValid    bool      `json:"isValid"`
	FeedType   string    `json:"feedType,omitempty"`
	Title      string    `json:"title,omitempty"`
	Error      string    `json:"error,omitempty"`
	ErrorType  ErrorType `json:"errorType,omitempty"`
	StatusCode int       `json:"statusCode,omitempty"`
}

// Client fetches feeds with bounded retries. It holds no per-feed state
// and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	opts       Options
	limiter    *hostLimiter
}

func NewClient(factory *network.ClientFactory, opts Options) *Client {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.RetryDelay < 0 {
		opts.RetryDelay = defaultRetryDelay
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if strings.TrimSpace(opts.UserAgent) == "" {
		opts.UserAgent = config.DefaultUserAgent
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if factory == nil {
		factory = network.NewClientFactory("")
	}
	return &Client{
		httpClient: factory.NewHTTPClient(opts.Timeout),
		opts:       opts,
		limiter:    newHostLimiter(opts.RequestsPerSecond),
	}
}

// ValidateURL checks that raw is an absolute http or https URL.
func ValidateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return &FetchError{Type: ErrorTypeInvalidURL, URL: raw, Err: errors.New("url is required")}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return &FetchError{Type: ErrorTypeInvalidURL, URL: raw, Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &FetchError{Type: ErrorTypeInvalidURL, URL: raw, Err: fmt.Errorf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return &FetchError{Type: ErrorTypeInvalidURL, URL: raw, Err: errors.New("missing host")}
	}
	return nil
}

// Validate runs a full Fetch and reports the outcome. It never returns an error.
func (c *Client) Validate(ctx context.Context, rawURL string) ValidationResult {
	feed, err := c.Fetch(ctx, rawURL)
	if err != nil {
		return failedValidation(err)
	}
	return ValidationResult{
		IsValid:  true,
		FeedType: feed.FeedType,
		Title:    feed.Title,
	}
}

func failedValidation(err error) ValidationResult {
	fe := Classify(err)
	return ValidationResult{
		IsValid:    false,
		Error:      fe.Error(),
		ErrorType:  fe.Type,
		StatusCode: fe.StatusCode,
	}
}

// Fetch downloads and normalizes the feed at rawURL. Retryable failures are
// attempted up to MaxRetries times with RetryDelay between attempts; the
// returned error is always a *FetchError.
func (c *Client) Fetch(ctx context.Context, rawURL string) (model.ParsedFeed, error) {
	feedURL := strings.TrimSpace(rawURL)
	if err := ValidateURL(feedURL); err != nil {
		return model.ParsedFeed{}, err
	}

	var last *FetchError
	for attempt := 1; attempt <= c.opts.MaxRetries; attempt++ {
		start := time.Now()
		feed, err := c.fetchOnce(ctx, feedURL)
		if err == nil {
			logger.Debug("feed fetched", "module", "fetcher", "action", "fetch", "resource", "feed", "result", "ok", "url", feedURL, "attempt", attempt, "items", len(feed.Articles), "duration_ms", time.Since(start).Milliseconds())
			return feed, nil
		}

		last = Classify(err)
		last.Attempts = attempt
		last.URL = feedURL
		if !last.Retryable || attempt == c.opts.MaxRetries {
			break
		}

		logger.Debug("feed fetch retry", "module", "fetcher", "action", "fetch", "resource", "feed", "result", "retry", "url", feedURL, "attempt", attempt, "error_type", last.Type, "error", err)
		if err := c.opts.Sleep(ctx, c.opts.RetryDelay); err != nil {
			break
		}
	}

	logger.Warn("feed fetch failed", "module", "fetcher", "action", "fetch", "resource", "feed", "result", "failed", "url", feedURL, "attempts", last.Attempts, "error_type", last.Type, "status_code", last.StatusCode)
	return model.ParsedFeed{}, last
}

func (c *Client) fetchOnce(ctx context.Context, feedURL string) (model.ParsedFeed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return model.ParsedFeed{}, &FetchError{Type: ErrorTypeInvalidURL, Err: err}
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", acceptHeader)

	if err := c.limiter.wait(ctx, req.URL.Host); err != nil {
		return model.ParsedFeed{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.ParsedFeed{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainSize))
		return model.ParsedFeed{}, &StatusError{StatusCode: resp.StatusCode}
	}

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		if isTimeout(err) || isNetwork(err) {
			return model.ParsedFeed{}, err
		}
		return model.ParsedFeed{}, &parseFailure{err: err}
	}
	return normalizeFeed(parsed, c.opts.Now()), nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
