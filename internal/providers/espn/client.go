package espn

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/providers"
	"github.com/preston-bernstein/nba-schedule-service/internal/timeutil"
)

// Config controls how the sports-network scoreboard is reached.
type Config struct {
	BaseURL    string
	RelayURL   string
	HTTPClient *http.Client
	Location   *time.Location
}

// Name is the provider name used in logs, metrics and game records.
func Name() string { return providerName }

// NewReader returns a reader for the scoreboard of any calendar day. The same feed
// serves today and past dates.
func NewReader(cfg Config) *providers.HTTPReader {
	base := normalizeBaseURL(cfg.BaseURL)
	return providers.NewHTTPReader(providers.HTTPReaderConfig{
		Provider:   providerName,
		Target:     func(day time.Time) string { return scoreboardURL(base, day) },
		RelayURL:   cfg.RelayURL,
		HTTPClient: cfg.HTTPClient,
		Location:   cfg.Location,
	})
}

// New returns the reader and normalizer as one Source.
func New(cfg Config) *providers.Source {
	return providers.NewSource(providerName, NewReader(cfg), Normalize)
}

func scoreboardURL(base string, day time.Time) string {
	q := url.Values{}
	q.Set("dates", day.Format(timeutil.CompactLayout))
	return base + scoreboardPath + "?" + q.Encode()
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}
