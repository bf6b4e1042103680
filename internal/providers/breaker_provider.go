package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-service/internal/metrics"
)

// BreakerConfig tunes the circuit breaker placed in front of an upstream.
type BreakerConfig struct {
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.MaxRequests == 0 {
		c.MaxRequests = 1
	}
	if c.Interval <= 0 {
		c.Interval = time.Minute
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.ConsecutiveFailures == 0 {
		c.ConsecutiveFailures = 3
	}
	return c
}

// breakerProvider stops calling an upstream that keeps failing. Only FetchErrors count
// as failures; payload problems say nothing about upstream health.
type breakerProvider struct {
	next GameProvider
	name string
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps next with a circuit breaker named after the provider.
func NewBreakerProvider(next GameProvider, name string, cfg BreakerConfig, logger *slog.Logger, recorder *metrics.Recorder) GameProvider {
	cfg = cfg.withDefaults()
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logWithProvider(context.Background(), logger, slog.LevelWarn, name, "circuit breaker state changed",
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			recorder.RecordBreakerState(name, to.String())
		},
		IsSuccessful: func(err error) bool {
			_, isFetch := AsFetchError(err)
			return !isFetch
		},
	}
	return &breakerProvider{
		next: next,
		name: name,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

func (p *breakerProvider) FetchGames(ctx context.Context, day time.Time) ([]games.Game, error) {
	result, err := p.cb.Execute(func() (interface{}, error) {
		return p.next.FetchGames(ctx, day)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &FetchError{Provider: p.name, Err: err}
	}
	if err != nil {
		return nil, err
	}
	out, _ := result.([]games.Game)
	return out, nil
}

// State exposes the breaker state for readiness reporting.
func (p *breakerProvider) State() string {
	return p.cb.State().String()
}

// Name returns the wrapped provider name.
func (p *breakerProvider) Name() string { return p.name }
