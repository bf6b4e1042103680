package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("espn", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("espn", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("espn"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("espn"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := rec.LastCallLatency("espn"); got != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", got)
	}

	snap := rec.Snapshot("espn")
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit("nbastats", 5*time.Second)
	rec.RecordRateLimit("nbastats", 0)

	if got := rec.RateLimitHits("nbastats"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := rec.LastRetryAfter("nbastats"); got != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", got)
	}
}

func TestRecorderTracksGamesBreakerAndFallbacks(t *testing.T) {
	rec := NewRecorder()
	rec.RecordGamesNormalized("nbalive", 7)
	rec.RecordGamesNormalized("nbalive", 3)
	rec.RecordBreakerState("nbalive", "open")
	rec.RecordFallback("fetch")
	rec.RecordRelayCache(true)
	rec.RecordRelayCache(false)
	rec.RecordRelayCache(false)

	snap := rec.Snapshot("nbalive")
	if snap.GamesNormalized != 10 || snap.BreakerState != "open" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if rec.Fallbacks() != 1 {
		t.Fatalf("expected 1 fallback, got %d", rec.Fallbacks())
	}
	if hits, misses := rec.RelayCacheStats(); hits != 1 || misses != 2 {
		t.Fatalf("expected 1 hit 2 misses, got %d %d", hits, misses)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordProviderAttempt("espn", time.Millisecond, nil)
	rec.RecordRateLimit("espn", time.Second)
	rec.RecordGamesNormalized("espn", 1)
	rec.RecordBreakerState("espn", "closed")
	rec.RecordFallback("fetch")
	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
	rec.RecordPollerCycle(time.Millisecond, nil)
	rec.RecordRelayFetch("example.com", 200, time.Millisecond, nil)
	rec.RecordRelayCache(true)
	if rec.ProviderCalls("espn") != 0 || rec.Fallbacks() != 0 {
		t.Fatal("expected zero values from nil recorder")
	}
}
