package testutil

import (
	"context"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-service/internal/providers"
)

// GoodProvider returns the provided games with no error.
type GoodProvider struct {
	Games []games.Game
}

func (p GoodProvider) FetchGames(ctx context.Context, day time.Time) ([]games.Game, error) {
	return p.Games, nil
}

func (GoodProvider) Name() string { return "good" }

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchGames(ctx context.Context, day time.Time) ([]games.Game, error) {
	return nil, p.Err
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchGames(ctx context.Context, day time.Time) ([]games.Game, error) {
	return nil, providers.ErrProviderUnavailable
}
