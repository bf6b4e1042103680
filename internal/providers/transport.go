package providers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/normalize"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	maxBodyBytes       = 8 << 20
	errorExcerptBytes  = 512
)

var (
	errInvalidJSON = errors.New("response body is not valid JSON")
	// ErrBodyTooLarge reports a feed body past the read limit.
	ErrBodyTooLarge = errors.New("response body too large")
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPReaderConfig controls how a provider feed is reached.
type HTTPReaderConfig struct {
	Provider string
	// Target builds the upstream URL for a calendar day already converted to Location.
	Target     func(day time.Time) string
	RelayURL   string
	Headers    map[string]string
	HTTPClient *http.Client
	Location   *time.Location
}

// HTTPReader fetches one provider feed, optionally through the relay.
type HTTPReader struct {
	provider string
	target   func(day time.Time) string
	relay    string
	headers  map[string]string
	client   httpDoer
	loc      *time.Location
	maxBody  int64
}

// NewHTTPReader constructs an HTTPReader with a bounded default client.
func NewHTTPReader(cfg HTTPReaderConfig) *HTTPReader {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &HTTPReader{
		provider: cfg.Provider,
		target:   cfg.Target,
		relay:    cfg.RelayURL,
		headers:  cfg.Headers,
		client:   resolveHTTPClient(cfg.HTTPClient),
		loc:      loc,
		maxBody:  maxBodyBytes,
	}
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// URL returns the address Read will request for day.
func (r *HTTPReader) URL(day time.Time) string {
	return RelayURL(r.relay, r.target(day.In(r.loc)))
}

// Read returns the raw payload for day. Non-2xx and transport failures are FetchErrors;
// a body that is not JSON is a ParseError.
func (r *HTTPReader) Read(ctx context.Context, day time.Time) ([]byte, error) {
	if r == nil || r.target == nil {
		return nil, ErrProviderUnavailable
	}
	endpoint := r.URL(day)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Provider: r.provider, URL: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &FetchError{Provider: r.provider, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, errorExcerptBytes))
		return nil, &FetchError{
			Provider:   r.provider,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Body:       strings.TrimSpace(string(excerpt)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBody+1))
	if err == nil && int64(len(body)) > r.maxBody {
		err = ErrBodyTooLarge
	}
	if err != nil {
		return nil, &FetchError{Provider: r.provider, URL: endpoint, Err: err}
	}
	if !normalize.Valid(body) {
		return nil, &ParseError{Provider: r.provider, Err: errInvalidJSON}
	}
	return body, nil
}

func parseRetryAfter(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(raw); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
