package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"github.com/preston-bernstein/nba-schedule-service/internal/metrics"
	"github.com/preston-bernstein/nba-schedule-service/internal/teststubs"
)

func TestBreakerOpensAfterConsecutiveFetchErrors(t *testing.T) {
	inner := &teststubs.StubProvider{Err: &FetchError{Provider: "espn", StatusCode: 503}}
	rec := metrics.NewRecorder()
	p := NewBreakerProvider(inner, "espn", BreakerConfig{ConsecutiveFailures: 2, Timeout: time.Hour}, nil, rec)

	for i := 0; i < 2; i++ {
		if _, err := p.FetchGames(context.Background(), testDay); err == nil {
			t.Fatal("expected upstream error")
		}
	}
	_, err := p.FetchGames(context.Background(), testDay)
	fe, ok := AsFetchError(err)
	if !ok || !errors.Is(fe, gobreaker.ErrOpenState) {
		t.Fatalf("expected open breaker fetch error, got %v", err)
	}
	if inner.Calls.Load() != 2 {
		t.Fatalf("expected open breaker to skip upstream, got %d calls", inner.Calls.Load())
	}
	if got := p.(*breakerProvider).State(); got != "open" {
		t.Fatalf("expected open state, got %s", got)
	}
}

func TestBreakerIgnoresParseErrors(t *testing.T) {
	inner := &teststubs.StubProvider{Err: &ParseError{Provider: "espn"}}
	p := NewBreakerProvider(inner, "espn", BreakerConfig{ConsecutiveFailures: 1}, nil, nil)

	for i := 0; i < 3; i++ {
		if _, err := p.FetchGames(context.Background(), testDay); err == nil {
			t.Fatal("expected parse error passthrough")
		}
	}
	if inner.Calls.Load() != 3 {
		t.Fatalf("parse errors should not trip the breaker, got %d calls", inner.Calls.Load())
	}
}

func TestBreakerReturnsGames(t *testing.T) {
	inner := &teststubs.StubProvider{Games: nil}
	p := NewBreakerProvider(inner, "espn", BreakerConfig{}, nil, nil)
	out, err := p.FetchGames(context.Background(), testDay)
	if err != nil || out != nil {
		t.Fatalf("expected empty success, got %v %v", out, err)
	}
	if p.(*breakerProvider).Name() != "espn" {
		t.Fatal("unexpected name")
	}
}
