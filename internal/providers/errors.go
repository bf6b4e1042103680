package providers

import (
	"errors"
	"fmt"
	"time"
)

// ErrProviderUnavailable is returned when no usable provider is configured.
var ErrProviderUnavailable = errors.New("provider unavailable")

// FetchError reports an outbound request that did not complete with a success status.
type FetchError struct {
	Provider   string
	URL        string
	StatusCode int
	RetryAfter time.Duration
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	prefix := "fetch failed"
	if e.Provider != "" {
		prefix = e.Provider + ": " + prefix
	}
	switch {
	case e.StatusCode > 0 && e.Body != "":
		return fmt.Sprintf("%s: unexpected status %d: %s", prefix, e.StatusCode, e.Body)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s: unexpected status %d", prefix, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	default:
		return prefix
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// RateLimited reports whether upstream answered 429.
func (e *FetchError) RateLimited() bool {
	return e != nil && e.StatusCode == 429
}

// ParseError reports a body that is not JSON or lacks the minimal container.
type ParseError struct {
	Provider string
	Err      error
}

func (e *ParseError) Error() string {
	prefix := "parse failed"
	if e.Provider != "" {
		prefix = e.Provider + ": " + prefix
	}
	if e.Err != nil {
		return prefix + ": " + e.Err.Error()
	}
	return prefix
}

func (e *ParseError) Unwrap() error { return e.Err }

// AsFetchError attempts to unwrap an error into a FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// AsParseError attempts to unwrap an error into a ParseError.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
