package snapshots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
)

func TestBackfillWritesSettledMissingDays(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10000)
	now := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)

	// 2024-03-08 already exists and must not be refetched.
	writeDay(t, w, "2024-03-08", simpleDay("2024-03-08"))

	live := games.NewGame("l", "test", "Q2", games.StatusLive, "", games.TeamResult{}, games.TeamResult{}, nil)
	fetcher := &fakeFetcher{games: map[string][]games.Game{
		"2024-03-09": {finalGame("g9")},
		"2024-03-07": {live},
	}}
	b := NewBackfiller(fetcher, w, BackfillConfig{Days: 3, Interval: time.Millisecond, Location: time.UTC}, nil)
	b.now = func() time.Time { return now }

	b.Run(context.Background())

	if len(fetcher.days) != 2 || fetcher.days[0] != "2024-03-09" || fetcher.days[1] != "2024-03-07" {
		t.Fatalf("unexpected fetched days %v", fetcher.days)
	}
	requireSnapshotExists(t, w, "2024-03-09")
	if NewFSStore(dir).Has("2024-03-07") {
		t.Fatal("expected unsettled day to be skipped")
	}
}

func TestBackfillToleratesFetchErrors(t *testing.T) {
	w := NewWriter(t.TempDir(), 10000)
	fetcher := &fakeFetcher{err: errors.New("boom")}
	b := NewBackfiller(fetcher, w, BackfillConfig{Days: 2, Interval: time.Millisecond, Location: time.UTC}, nil)
	b.Run(context.Background())
	if len(fetcher.days) != 2 {
		t.Fatalf("expected both days attempted, got %v", fetcher.days)
	}
}

func TestBackfillDisabledAndCanceled(t *testing.T) {
	w := NewWriter(t.TempDir(), 10000)
	fetcher := &fakeFetcher{}
	NewBackfiller(fetcher, w, BackfillConfig{Days: 0}, nil).Run(context.Background())
	if len(fetcher.days) != 0 {
		t.Fatal("expected disabled backfill to do nothing")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	NewBackfiller(fetcher, w, BackfillConfig{Days: 3}, nil).Run(ctx)
	if len(fetcher.days) != 0 {
		t.Fatal("expected canceled backfill to stop before fetching")
	}

	var nilBackfiller *Backfiller
	nilBackfiller.Run(context.Background())
}
