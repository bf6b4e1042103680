package config

import "time"

// SourcesConfig controls how provider feeds are reached.
type SourcesConfig struct {
	RelayURL     string        `envconfig:"RELAY_URL" default:"http://localhost:8787/"`
	UseRelay     bool          `envconfig:"USE_RELAY" default:"true"`
	ESPNBaseURL  string        `envconfig:"ESPN_BASE_URL" default:"https://site.api.espn.com/apis/site/v2/sports/basketball/nba"`
	NBALiveURL   string        `envconfig:"NBA_LIVE_URL" default:"https://cdn.nba.com/static/json/liveData/scoreboard/todaysScoreboard_00.json"`
	NBAStatsURL  string        `envconfig:"NBA_STATS_URL" default:"https://stats.nba.com/stats/scoreboardv2"`
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s"`
	MinInterval  time.Duration `envconfig:"SOURCE_MIN_INTERVAL" default:"1s"`
	Breaker      BreakerConfig
}

// BreakerConfig tunes the circuit breaker in front of each feed.
type BreakerConfig struct {
	MaxRequests         uint32        `envconfig:"BREAKER_MAX_REQUESTS" default:"1"`
	Interval            time.Duration `envconfig:"BREAKER_INTERVAL" default:"60s"`
	Timeout             time.Duration `envconfig:"BREAKER_TIMEOUT" default:"30s"`
	ConsecutiveFailures uint32        `envconfig:"BREAKER_FAILURES" default:"3"`
}

// Relay returns the relay base URL, or "" when feeds are fetched directly.
func (s SourcesConfig) Relay() string {
	if !s.UseRelay {
		return ""
	}
	return s.RelayURL
}

func (s SourcesConfig) withDefaults() SourcesConfig {
	if s.FetchTimeout <= 0 {
		s.FetchTimeout = defaultFetchTimeout
	}
	if s.MinInterval <= 0 {
		s.MinInterval = defaultMinInterval
	}
	return s
}
