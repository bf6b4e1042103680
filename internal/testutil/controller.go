package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-service/internal/providers"
	"github.com/preston-bernstein/nba-schedule-service/internal/schedule"
)

// FixedNow is the reference clock used by HTTP and server tests.
var FixedNow = time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)

// NewController builds a schedule controller on provider pinned at FixedNow.
func NewController(provider providers.GameProvider, fallback []games.Game) *schedule.Controller {
	return schedule.NewController(schedule.Options{
		Sources:  schedule.Sources{Live: provider, Historical: provider},
		Fallback: func() []games.Game { return fallback },
		Location: time.UTC,
		Now:      NowAt(FixedNow),
	})
}

// NewLoadedController builds a controller already loaded with list for today.
func NewLoadedController(t *testing.T, list []games.Game) *schedule.Controller {
	t.Helper()
	c := NewController(GoodProvider{Games: list}, nil)
	if _, err := c.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return c
}
