package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-service/internal/logging"
	"github.com/preston-bernstein/nba-schedule-service/internal/metrics"
	"github.com/preston-bernstein/nba-schedule-service/internal/timeutil"
)

// instrumentedProvider records attempts, latency and rate limit hits for every fetch.
type instrumentedProvider struct {
	next    GameProvider
	name    string
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewInstrumentedProvider wraps next with logging and metrics.
func NewInstrumentedProvider(next GameProvider, name string, logger *slog.Logger, recorder *metrics.Recorder) GameProvider {
	return &instrumentedProvider{
		next:    next,
		name:    name,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
	}
}

func (p *instrumentedProvider) FetchGames(ctx context.Context, day time.Time) ([]games.Game, error) {
	start := p.now()
	out, err := p.next.FetchGames(ctx, day)
	elapsed := p.now().Sub(start)

	p.metrics.RecordProviderAttempt(p.name, elapsed, err)
	if fe, ok := AsFetchError(err); ok && fe.RateLimited() {
		p.metrics.RecordRateLimit(p.name, fe.RetryAfter)
	}
	if err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "provider fetch failed",
			logging.FieldDate, timeutil.FormatDate(day),
			logging.FieldDurationMS, elapsed.Milliseconds(),
			"error", err,
		)
		return nil, err
	}

	p.metrics.RecordGamesNormalized(p.name, len(out))
	logWithProvider(ctx, p.logger, slog.LevelInfo, p.name, "provider fetch complete",
		logging.FieldDate, timeutil.FormatDate(day),
		logging.FieldCount, len(out),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
	return out, nil
}

// Name returns the wrapped provider name.
func (p *instrumentedProvider) Name() string { return p.name }
