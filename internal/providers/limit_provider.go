package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-service/internal/logging"
	"github.com/preston-bernstein/nba-schedule-service/internal/timeutil"
)

// rateLimitedProvider spaces calls to an upstream by a minimum interval.
type rateLimitedProvider struct {
	next     GameProvider
	name     string
	interval time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a GameProvider that allows one call per interval.
// Calls block until a token is available or ctx is done.
func NewRateLimitedProvider(next GameProvider, name string, interval time.Duration, logger *slog.Logger) GameProvider {
	if interval <= 0 {
		interval = time.Second
	}
	return &rateLimitedProvider{
		next:     next,
		name:     name,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) FetchGames(ctx context.Context, day time.Time) ([]games.Game, error) {
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "provider unavailable")
		return nil, ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "rate-limited fetch canceled", "error", err)
		return nil, err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, p.name, "rate-limited provider fetch",
		logging.FieldDate, timeutil.FormatDate(day))
	return p.next.FetchGames(ctx, day)
}

// Name returns the wrapped provider name.
func (p *rateLimitedProvider) Name() string { return p.name }
