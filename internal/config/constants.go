package config

import "time"

const (
	envPort         = "PORT"
	envPollInterval = "POLL_INTERVAL"
	envProvider     = "PROVIDER"
	envRelayURL     = "RELAY_URL"
	envUseRelay     = "USE_RELAY"
	envRelayPort    = "RELAY_PORT"
	envRelayCache   = "RELAY_CACHE"
	envRelayMetrics = "RELAY_METRICS_PORT"

	defaultPort     = "4000"
	defaultProvider = "espn"
	// Live scoreboards refresh every 30s while today is on screen.
	defaultPollInterval  = 30 * time.Second
	defaultFetchTimeout  = 10 * time.Second
	defaultMinInterval   = time.Second
	defaultRelayPort     = "8787"
	defaultRelayCacheTTL = 15 * time.Second
	defaultRetentionDays = 30
)

// Provider names accepted by PROVIDER.
const (
	ProviderESPN    = "espn"
	ProviderNBA     = "nba"
	ProviderFixture = "fixture"
)

// Relay cache backends accepted by RELAY_CACHE.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheOff    = "off"
)
