package fetcher

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"feedsync/internal/network"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:dc="http://purl.org/dc/elements/1.1/">
<channel>
  <title>  Example Feed  </title>
  <link>https://example.com/blog/</link>
  <description>Example description</description>
  <item>
    <title>First</title>
    <link>https://example.com/first</link>
    <guid>first-guid</guid>
    <description>First snippet</description>
    <content:encoded><![CDATA[<p>First body</p>]]></content:encoded>
    <dc:creator>Alice</dc:creator>
    <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
  </item>
  <item>
    <title>Second</title>
    <link>https://example.com/second</link>
    <description>Second snippet</description>
  </item>
  <item>
    <title>No identity</title>
    <description>dropped</description>
  </item>
</channel>
</rss>`

const sampleAtom = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Example</title>
  <link href="https://atom.example.org/"/>
  <updated>2024-01-02T03:04:05Z</updated>
  <id>urn:uuid:feed</id>
  <entry>
    <title>Atom Entry</title>
    <link href="https://atom.example.org/entry"/>
    <id>urn:uuid:entry-1</id>
    <updated>2024-01-02T03:04:05Z</updated>
    <summary>Atom summary</summary>
    <author><name>Bob</name></author>
  </entry>
</feed>`

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func response(req *http.Request, status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
		Request:    req,
	}
}

type sleepRecorder struct {
	delays []time.Duration
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return nil
}

func newTestClient(t *testing.T, rt roundTripperFunc, sleeper *sleepRecorder) *Client {
	t.Helper()
	factory := network.NewClientFactoryForTest(&http.Client{Transport: rt})
	return NewClient(factory, Options{
		MaxRetries: 3,
		RetryDelay: time.Second,
		Sleep:      sleeper.sleep,
		Now:        func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) },
	})
}

func TestFetch_ParsesRSS(t *testing.T) {
	sleeper := &sleepRecorder{}
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		require.Equal(t, "https://example.com/feed.xml", req.URL.String())
		require.NotEmpty(t, req.Header.Get("User-Agent"))
		return response(req, http.StatusOK, sampleRSS), nil
	}, sleeper)

	feed, err := client.Fetch(context.Background(), "  https://example.com/feed.xml ")
	require.NoError(t, err)
	require.Equal(t, "Example Feed", feed.Title)
	require.Equal(t, "https://example.com/blog/", feed.SiteURL)
	require.Equal(t, "https://example.com/favicon.ico", feed.FaviconURL)
	require.Equal(t, "rss", feed.FeedType)
	require.Len(t, feed.Articles, 2)

	first := feed.Articles[0]
	require.Equal(t, "First", first.Title)
	require.Equal(t, "first-guid", first.GUID)
	require.Equal(t, "Alice", first.Author)
	require.Equal(t, "First snippet", first.Summary)
	require.Contains(t, first.Content, "First body")
	require.Equal(t, time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC), first.PublishedAt)

	second := feed.Articles[1]
	require.Empty(t, second.GUID)
	require.Equal(t, "Second snippet", second.Content)
	require.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), second.PublishedAt)
	require.Empty(t, sleeper.delays)
}

func TestFetch_ParsesAtom(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return response(req, http.StatusOK, sampleAtom), nil
	}, &sleepRecorder{})

	feed, err := client.Fetch(context.Background(), "https://atom.example.org/feed")
	require.NoError(t, err)
	require.Equal(t, "atom", feed.FeedType)
	require.Equal(t, "Atom Example", feed.Title)
	require.Len(t, feed.Articles, 1)
	require.Equal(t, "urn:uuid:entry-1", feed.Articles[0].GUID)
	require.Equal(t, "Bob", feed.Articles[0].Author)
	require.Equal(t, "Atom summary", feed.Articles[0].Summary)
	require.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), feed.Articles[0].PublishedAt)
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	statuses := []int{http.StatusInternalServerError, http.StatusInternalServerError, http.StatusOK}
	calls := 0
	sleeper := &sleepRecorder{}
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		status := statuses[calls]
		calls++
		if status == http.StatusOK {
			return response(req, status, sampleRSS), nil
		}
		return response(req, status, "boom"), nil
	}, sleeper)

	feed, err := client.Fetch(context.Background(), "https://example.com/feed.xml")
	require.NoError(t, err)
	require.Equal(t, "Example Feed", feed.Title)
	require.Equal(t, 3, calls)
	require.Equal(t, []time.Duration{time.Second, time.Second}, sleeper.delays)
}

func TestFetch_GivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		calls++
		return response(req, http.StatusBadGateway, ""), nil
	}, &sleepRecorder{})

	_, err := client.Fetch(context.Background(), "https://example.com/feed.xml")
	require.Error(t, err)
	require.Equal(t, 3, calls)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, ErrorTypeServer, fe.Type)
	require.Equal(t, http.StatusBadGateway, fe.StatusCode)
	require.Equal(t, 3, fe.Attempts)
	require.True(t, errors.Is(err, ErrServer))
}

func TestFetch_NonRetryableStatus(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		expected ErrorType
		sentinel error
	}{
		{"not found", http.StatusNotFound, ErrorTypeNotFound, ErrNotFound},
		{"forbidden", http.StatusForbidden, ErrorTypeAccessDenied, ErrAccessDenied},
		{"gone", http.StatusGone, ErrorTypeHTTP, ErrHTTP},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			sleeper := &sleepRecorder{}
			client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
				calls++
				return response(req, tc.status, ""), nil
			}, sleeper)

			_, err := client.Fetch(context.Background(), "https://example.com/feed.xml")
			require.ErrorIs(t, err, tc.sentinel)
			require.Equal(t, 1, calls)
			require.Empty(t, sleeper.delays)

			var fe *FetchError
			require.ErrorAs(t, err, &fe)
			require.Equal(t, tc.expected, fe.Type)
			require.False(t, fe.Retryable)
			require.Equal(t, tc.status, fe.StatusCode)
		})
	}
}

func TestFetch_RateLimitedIsRetried(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			return response(req, http.StatusTooManyRequests, ""), nil
		}
		return response(req, http.StatusOK, sampleRSS), nil
	}, &sleepRecorder{})

	_, err := client.Fetch(context.Background(), "https://example.com/feed.xml")
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestFetch_InvalidURLMakesNoRequest(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		t.Fatalf("unexpected request to %s", req.URL)
		return nil, nil
	}, &sleepRecorder{})

	for _, raw := range []string{"", "not a url", "ftp://example.com/feed", "https://"} {
		_, err := client.Fetch(context.Background(), raw)
		require.ErrorIs(t, err, ErrInvalidURL, raw)
	}
}

func TestFetch_ParseError(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		calls++
		return response(req, http.StatusOK, "not a feed"), nil
	}, &sleepRecorder{})

	_, err := client.Fetch(context.Background(), "https://example.com/feed.xml")
	require.ErrorIs(t, err, ErrParse)
	require.Equal(t, 1, calls)
}

func TestFetch_TimeoutIsRetried(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		calls++
		return nil, context.DeadlineExceeded
	}, &sleepRecorder{})

	_, err := client.Fetch(context.Background(), "https://example.com/feed.xml")
	require.ErrorIs(t, err, ErrTimeout)
	require.Equal(t, 3, calls)
}

func TestFetch_StopsWhenSleepIsCancelled(t *testing.T) {
	calls := 0
	factory := network.NewClientFactoryForTest(&http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return response(req, http.StatusServiceUnavailable, ""), nil
	})})
	client := NewClient(factory, Options{
		MaxRetries: 5,
		Sleep: func(context.Context, time.Duration) error {
			return context.Canceled
		},
	})

	_, err := client.Fetch(context.Background(), "https://example.com/feed.xml")
	require.ErrorIs(t, err, ErrServer)
	require.Equal(t, 1, calls)
}

func TestValidate(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		switch req.URL.Path {
		case "/ok":
			return response(req, http.StatusOK, sampleAtom), nil
		case "/missing":
			return response(req, http.StatusNotFound, ""), nil
		default:
			return response(req, http.StatusOK, "<html></html>"), nil
		}
	}, &sleepRecorder{})

	ok := client.Validate(context.Background(), "https://example.com/ok")
	require.True(t, ok.IsValid)
	require.Equal(t, "atom", ok.FeedType)
	require.Equal(t, "Atom Example", ok.Title)

	missing := client.Validate(context.Background(), "https://example.com/missing")
	require.False(t, missing.IsValid)
	require.Equal(t, ErrorTypeNotFound, missing.ErrorType)
	require.Equal(t, http.StatusNotFound, missing.StatusCode)

	html := client.Validate(context.Background(), "https://example.com/page")
	require.False(t, html.IsValid)
	require.Equal(t, ErrorTypeParse, html.ErrorType)

	invalid := client.Validate(context.Background(), "mailto:someone")
	require.False(t, invalid.IsValid)
	require.Equal(t, ErrorTypeInvalidURL, invalid.ErrorType)
}

func TestValidate_RetriesTransientFailures(t *testing.T) {
	calls := 0
	sleeper := &sleepRecorder{}
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			return response(req, http.StatusServiceUnavailable, ""), nil
		}
		return response(req, http.StatusOK, sampleRSS), nil
	}, sleeper)

	result := client.Validate(context.Background(), "https://example.com/feed.xml")
	require.True(t, result.IsValid)
	require.Equal(t, "rss", result.FeedType)
	require.Equal(t, 2, calls)
	require.Len(t, sleeper.delays, 1)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		expected  ErrorType
		retryable bool
	}{
		{"dns", &net.DNSError{Err: "no such host", Name: "nope.invalid", IsNotFound: true}, ErrorTypeNetwork, true},
		{"refused", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, ErrorTypeNetwork, true},
		{"deadline", context.DeadlineExceeded, ErrorTypeTimeout, true},
		{"status 500", &StatusError{StatusCode: 500}, ErrorTypeServer, true},
		{"status 429", &StatusError{StatusCode: 429}, ErrorTypeRateLimited, true},
		{"status 401", &StatusError{StatusCode: 401}, ErrorTypeHTTP, false},
		{"parse", &parseFailure{err: errors.New("bad xml")}, ErrorTypeParse, false},
		{"unknown", errors.New("something odd"), ErrorTypeNetwork, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fe := Classify(tc.err)
			require.Equal(t, tc.expected, fe.Type)
			require.Equal(t, tc.retryable, fe.Retryable)
		})
	}
}

func TestClassify_ReturnsCopy(t *testing.T) {
	original := &FetchError{Type: ErrorTypeNotFound, StatusCode: 404}
	copied := Classify(original)
	copied.Attempts = 2
	require.Equal(t, 0, original.Attempts)
	require.Equal(t, ErrorTypeNotFound, copied.Type)
}
