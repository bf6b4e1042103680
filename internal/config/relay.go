package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// RelayConfig holds runtime configuration for the relay binary.
type RelayConfig struct {
	Port          string        `envconfig:"RELAY_PORT" default:"8787"`
	UserAgent     string        `envconfig:"RELAY_USER_AGENT"`
	Timeout       time.Duration `envconfig:"RELAY_TIMEOUT" default:"10s"`
	Cache         string        `envconfig:"RELAY_CACHE" default:"memory"`
	CacheTTL      time.Duration `envconfig:"RELAY_CACHE_TTL" default:"15s"`
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	MetricsPort   string        `envconfig:"RELAY_METRICS_PORT" default:"9091"`
	Log           LogConfig
	Metrics       MetricsConfig
}

// LoadRelay reads relay configuration from environment variables.
func LoadRelay() (RelayConfig, error) {
	var cfg RelayConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return RelayConfig{}, err
	}
	cfg.Cache = strings.ToLower(strings.TrimSpace(cfg.Cache))
	switch cfg.Cache {
	case CacheMemory, CacheRedis, CacheOff:
	default:
		cfg.Cache = CacheMemory
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultRelayCacheTTL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultFetchTimeout
	}
	cfg.Metrics.Port = cfg.MetricsPort
	return cfg, nil
}
