package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	gamesNormalized int
	breakerState    string
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

// Recorder keeps in-memory counters for providers and fans out to OpenTelemetry
// instruments when telemetry is enabled. All methods are safe on a nil Recorder.
type Recorder struct {
	mu        sync.Mutex
	stats     map[string]*providerStats
	fallbacks int
	cacheHits int
	cacheMiss int
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.update(provider, func(s *providerStats) {
		s.calls++
		s.lastCallLatency = duration
		if err != nil {
			s.errors++
		}
	})
	r.otel.recordProviderAttempt(provider, duration, err)
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.update(provider, func(s *providerStats) {
		s.rateLimitHits++
		if retryAfter > 0 {
			s.lastRetryAfter = retryAfter
		}
	})
	r.otel.recordRateLimit(provider, retryAfter)
}

// RecordGamesNormalized tracks how many games a successful load produced.
func (r *Recorder) RecordGamesNormalized(provider string, count int) {
	if r == nil {
		return
	}
	r.update(provider, func(s *providerStats) {
		s.gamesNormalized += count
	})
	r.otel.recordGames(provider, count)
}

// RecordBreakerState stores the latest circuit breaker state for a provider.
func (r *Recorder) RecordBreakerState(provider, state string) {
	if r == nil {
		return
	}
	r.update(provider, func(s *providerStats) {
		s.breakerState = state
	})
	r.otel.recordBreakerState(provider, state)
}

// RecordFallback counts loads that were replaced by the placeholder dataset.
func (r *Recorder) RecordFallback(reason string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.fallbacks++
	r.mu.Unlock()
	r.otel.recordFallback(reason)
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

// RecordRelayFetch tracks one upstream fetch made by the relay.
func (r *Recorder) RecordRelayFetch(host string, status int, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.otel.recordRelayFetch(host, status, duration, err)
}

// RecordRelayCache tracks relay cache lookups.
func (r *Recorder) RecordRelayCache(hit bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	if hit {
		r.cacheHits++
	} else {
		r.cacheMiss++
	}
	r.mu.Unlock()
	r.otel.recordRelayCache(hit)
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Fallbacks returns how many loads fell back to placeholder data.
func (r *Recorder) Fallbacks() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fallbacks
}

// RelayCacheStats returns cache hits and misses.
func (r *Recorder) RelayCacheStats() (hits, misses int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cacheHits, r.cacheMiss
}

// Snapshot is a copy of the current stats for one provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	GamesNormalized int
	BreakerState    string
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(provider)
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		GamesNormalized: stats.gamesNormalized,
		BreakerState:    stats.breakerState,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

func (r *Recorder) update(provider string, fn func(*providerStats)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	fn(stats)
}

func (r *Recorder) snapshot(provider string) providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[provider]; ok && stats != nil {
		return *stats
	}
	return providerStats{}
}
