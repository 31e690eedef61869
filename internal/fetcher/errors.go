package fetcher

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"syscall"

	"github.com/mmcdole/gofeed"
)

type ErrorType string

const (
	ErrorTypeInvalidURL   ErrorType = "INVALID_URL"
	ErrorTypeNetwork      ErrorType = "NETWORK_ERROR"
	ErrorTypeTimeout      ErrorType = "TIMEOUT_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeAccessDenied ErrorType = "ACCESS_DENIED"
	ErrorTypeRateLimited  ErrorType = "RATE_LIMITED"
	ErrorTypeHTTP         ErrorType = "HTTP_ERROR"
	ErrorTypeServer       ErrorType = "SERVER_ERROR"
	ErrorTypeParse        ErrorType = "PARSE_ERROR"
)

// Sentinels matched by errors.Is against a *FetchError of the same type.
var (
	ErrInvalidURL   = errors.New("invalid feed url")
	ErrNetwork      = errors.New("network error")
	ErrTimeout      = errors.New("request timed out")
	ErrNotFound     = errors.New("feed not found")
	ErrAccessDenied = errors.New("access denied")
	ErrRateLimited  = errors.New("rate limited")
	ErrHTTP         = errors.New("http error")
	ErrServer       = errors.New("server error")
	ErrParse        = errors.New("not a valid feed")
)

var sentinelByType = map[ErrorType]error{
	ErrorTypeInvalidURL:   ErrInvalidURL,
	ErrorTypeNetwork:      ErrNetwork,
	ErrorTypeTimeout:      ErrTimeout,
	ErrorTypeNotFound:     ErrNotFound,
	ErrorTypeAccessDenied: ErrAccessDenied,
	ErrorTypeRateLimited:  ErrRateLimited,
	ErrorTypeHTTP:         ErrHTTP,
	ErrorTypeServer:       ErrServer,
	ErrorTypeParse:        ErrParse,
}

// FetchError is a classified fetch failure.
type FetchError struct {
	Type       ErrorType
	StatusCode int
	Retryable  bool
	Attempts   int
	URL        string
	Err        error
}

func (e *FetchError) Error() string {
	msg := string(e.Type)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	sentinel, ok := sentinelByType[e.Type]
	return ok && sentinel == target
}

// StatusError reports a response whose status code signals failure.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

type parseFailure struct {
	err error
}

func (e *parseFailure) Error() string {
	return "parse feed: " + e.err.Error()
}

func (e *parseFailure) Unwrap() error {
	return e.err
}

// Classify maps err onto the taxonomy. The first matching rule wins:
// network level, then HTTP status, then parse, then a retryable network fallback.
// The returned value is always a fresh copy.
func Classify(err error) *FetchError {
	var existing *FetchError
	if errors.As(err, &existing) {
		copied := *existing
		return &copied
	}

	switch {
	case isTimeout(err):
		return &FetchError{Type: ErrorTypeTimeout, Retryable: true, Err: err}
	case isNetwork(err):
		return &FetchError{Type: ErrorTypeNetwork, Retryable: true, Err: err}
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return classifyStatus(statusErr.StatusCode, err)
	}
	var gofeedErr gofeed.HTTPError
	if errors.As(err, &gofeedErr) {
		return classifyStatus(gofeedErr.StatusCode, err)
	}

	if isParse(err) {
		return &FetchError{Type: ErrorTypeParse, Retryable: false, Err: err}
	}

	return &FetchError{Type: ErrorTypeNetwork, Retryable: true, Err: err}
}

func classifyStatus(code int, err error) *FetchError {
	fe := &FetchError{StatusCode: code, Err: err}
	switch {
	case code == http.StatusNotFound:
		fe.Type = ErrorTypeNotFound
	case code == http.StatusForbidden:
		fe.Type = ErrorTypeAccessDenied
	case code == http.StatusTooManyRequests:
		fe.Type = ErrorTypeRateLimited
		fe.Retryable = true
	case code >= 500:
		fe.Type = ErrorTypeServer
		fe.Retryable = true
	default:
		fe.Type = ErrorTypeHTTP
	}
	return fe
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isNetwork(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, context.Canceled)
}

func isParse(err error) bool {
	var pf *parseFailure
	if errors.As(err, &pf) {
		return true
	}
	var syntaxErr *xml.SyntaxError
	return errors.As(err, &syntaxErr) || errors.Is(err, gofeed.ErrFeedTypeNotDetected)
}
