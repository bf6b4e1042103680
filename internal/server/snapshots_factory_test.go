package server

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/config"
	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-service/internal/metrics"
	"github.com/preston-bernstein/nba-schedule-service/internal/schedule"
	"github.com/preston-bernstein/nba-schedule-service/internal/teststubs"
	"github.com/preston-bernstein/nba-schedule-service/internal/testutil"
	"github.com/preston-bernstein/nba-schedule-service/internal/timeutil"
)

func TestBuildSnapshotsDisabledReturnsNothing(t *testing.T) {
	components := buildSnapshots(config.Config{}, testutil.GoodProvider{}, time.UTC, nil)
	if components.store != nil || components.writer != nil || components.backfiller != nil {
		t.Fatalf("expected no snapshot components when disabled")
	}
	components.run(context.Background())
}

func TestBuildSnapshotsRespectsConfig(t *testing.T) {
	cfg := config.Config{
		Snapshots: config.SnapshotConfig{
			Enabled:       true,
			Dir:           t.TempDir(),
			RetentionDays: 1,
		},
	}
	components := buildSnapshots(cfg, testutil.GoodProvider{}, time.UTC, nil)
	if components.store == nil || components.writer == nil || components.backfiller == nil {
		t.Fatalf("expected snapshots components to be initialized")
	}
	if components.writer.BasePath() != cfg.Snapshots.Dir {
		t.Fatalf("expected writer rooted at %s, got %s", cfg.Snapshots.Dir, components.writer.BasePath())
	}
	// BackfillDays is zero, so the run returns without fetching.
	components.run(context.Background())
}

func TestServerReadsAndWritesPastDaySnapshots(t *testing.T) {
	w := testutil.NewTempWriter(t, 30)
	now := time.Now()
	cached := timeutil.FormatDate(now.AddDate(0, 0, -1))
	fresh := timeutil.FormatDate(now.AddDate(0, 0, -2))
	testutil.WriteSnapshot(t, w, cached)

	p := &teststubs.StubProvider{Games: []games.Game{testutil.SampleGame("fresh-1")}}
	cfg := config.Config{
		Port:      "0",
		Snapshots: config.SnapshotConfig{Enabled: true, Dir: w.BasePath(), RetentionDays: 30},
	}
	srv := newServer(cfg, nil, &schedule.Sources{Live: p, Historical: p}, metrics.NewRecorder())
	ctrl := srv.Controller()

	state, err := ctrl.Navigate(context.Background(), -1)
	if err != nil {
		t.Fatalf("load %s: %v", cached, err)
	}
	if state.Source != "snapshot" || len(state.Games) != 1 || state.Games[0].ID != cached {
		t.Fatalf("expected %s from disk, got source %q games %+v", cached, state.Source, state.Games)
	}
	if p.Calls.Load() != 0 {
		t.Fatalf("expected snapshot hit to skip the provider, got %d calls", p.Calls.Load())
	}

	state, err = ctrl.Navigate(context.Background(), -1)
	if err != nil {
		t.Fatalf("load %s: %v", fresh, err)
	}
	if p.Calls.Load() != 1 || state.Games[0].ID != "fresh-1" {
		t.Fatalf("expected provider load for %s, got %d calls %+v", fresh, p.Calls.Load(), state.Games)
	}
	if _, err := os.Stat(testutil.SnapshotPath(w, fresh)); err != nil {
		t.Fatalf("expected settled day to be written: %v", err)
	}
}
