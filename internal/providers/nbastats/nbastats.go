// Package nbastats reads and normalizes the league stats scoreboard, a tabular feed
// of result sets keyed by date.
package nbastats

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/providers"
	"github.com/preston-bernstein/nba-schedule-service/internal/timeutil"
)

const (
	providerName   = "nba-stats"
	defaultBaseURL = "https://stats.nba.com/stats/scoreboardv2"
	leagueID       = "00"
	browserUA      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	statsOrigin    = "https://www.nba.com"
)

// Config controls how the stats feed is reached.
type Config struct {
	BaseURL    string
	RelayURL   string
	HTTPClient *http.Client
	Location   *time.Location
}

// New returns the stats reader and normalizer as one Source.
func New(cfg Config) *providers.Source {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	reader := providers.NewHTTPReader(providers.HTTPReaderConfig{
		Provider: providerName,
		Target:   func(day time.Time) string { return scoreboardURL(base, day) },
		RelayURL: cfg.RelayURL,
		Headers: map[string]string{
			"User-Agent": browserUA,
			"Referer":    statsOrigin + "/",
			"Origin":     statsOrigin,
		},
		HTTPClient: cfg.HTTPClient,
		Location:   cfg.Location,
	})
	return providers.NewSource(providerName, reader, Normalize)
}

func scoreboardURL(base string, day time.Time) string {
	q := url.Values{}
	q.Set("GameDate", day.Format(timeutil.USLayout))
	q.Set("LeagueID", leagueID)
	q.Set("DayOffset", "0")
	return base + "?" + q.Encode()
}
