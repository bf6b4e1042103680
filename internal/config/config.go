package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the schedule service.
type Config struct {
	Port         string        `envconfig:"PORT" default:"4000"`
	Provider     string        `envconfig:"PROVIDER" default:"espn"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"30s"`
	Timezone     string        `envconfig:"TIMEZONE"`
	Log          LogConfig
	Sources      SourcesConfig
	Snapshots    SnapshotConfig
	Metrics      MetricsConfig
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	cfg.Sources = cfg.Sources.withDefaults()
	if cfg.Snapshots.RetentionDays <= 0 {
		cfg.Snapshots.RetentionDays = defaultRetentionDays
	}
	return cfg, nil
}
