package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/config"
	"github.com/preston-bernstein/nba-schedule-service/internal/metrics"
	"github.com/preston-bernstein/nba-schedule-service/internal/providers"
	"github.com/preston-bernstein/nba-schedule-service/internal/providers/espn"
	"github.com/preston-bernstein/nba-schedule-service/internal/providers/fixture"
	"github.com/preston-bernstein/nba-schedule-service/internal/providers/nbalive"
	"github.com/preston-bernstein/nba-schedule-service/internal/providers/nbastats"
	"github.com/preston-bernstein/nba-schedule-service/internal/schedule"
)

// namedProvider is a GameProvider that reports its upstream name.
type namedProvider interface {
	providers.GameProvider
	Name() string
}

// providerFactory assembles the live and historical sources with shared wrappers
// (rate limit, circuit breaker, metrics).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
	loc     *time.Location
}

func newProviderFactory(logger *slog.Logger, recorder *metrics.Recorder, loc *time.Location) providerFactory {
	return providerFactory{logger: logger, metrics: recorder, loc: loc}
}

func (f providerFactory) build(cfg config.Config) schedule.Sources {
	src := cfg.Sources
	client := &http.Client{Timeout: src.FetchTimeout}

	switch cfg.Provider {
	case config.ProviderESPN:
		feed := f.wrap(cfg, espn.New(espn.Config{
			BaseURL:    src.ESPNBaseURL,
			RelayURL:   src.Relay(),
			HTTPClient: client,
			Location:   f.loc,
		}))
		return schedule.Sources{Live: feed, Historical: feed}
	case config.ProviderNBA:
		return schedule.Sources{
			Live: f.wrap(cfg, nbalive.New(nbalive.Config{
				URL:        src.NBALiveURL,
				RelayURL:   src.Relay(),
				HTTPClient: client,
				Location:   f.loc,
			})),
			Historical: f.wrap(cfg, nbastats.New(nbastats.Config{
				BaseURL:    src.NBAStatsURL,
				RelayURL:   src.Relay(),
				HTTPClient: client,
				Location:   f.loc,
			})),
		}
	case config.ProviderFixture:
		return f.fixtureSources()
	default:
		if f.logger != nil {
			f.logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return f.fixtureSources()
	}
}

func (f providerFactory) fixtureSources() schedule.Sources {
	fx := fixture.New()
	p := providers.NewInstrumentedProvider(fx, fx.Name(), f.logger, f.metrics)
	return schedule.Sources{Live: p, Historical: p}
}

func (f providerFactory) wrap(cfg config.Config, base namedProvider) providers.GameProvider {
	name := base.Name()
	limited := providers.NewRateLimitedProvider(base, name, cfg.Sources.MinInterval, f.logger)
	guarded := providers.NewBreakerProvider(limited, name, providers.BreakerConfig{
		MaxRequests:         cfg.Sources.Breaker.MaxRequests,
		Interval:            cfg.Sources.Breaker.Interval,
		Timeout:             cfg.Sources.Breaker.Timeout,
		ConsecutiveFailures: cfg.Sources.Breaker.ConsecutiveFailures,
	}, f.logger, f.metrics)
	return providers.NewInstrumentedProvider(guarded, name, f.logger, f.metrics)
}
