package teststubs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-service/internal/snapshots"
)

func TestStubProviderTracksCalls(t *testing.T) {
	err := errors.New("boom")
	p := &StubProvider{Games: []games.Game{{ID: "g1"}}, Err: err, ProviderName: "stub"}
	day := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if _, got := p.FetchGames(context.Background(), day); !errors.Is(got, err) {
		t.Fatalf("expected error passthrough, got %v", got)
	}
	if p.Calls.Load() != 1 || len(p.Days()) != 1 || !p.Days()[0].Equal(day) {
		t.Fatalf("expected one tracked call, got %d", p.Calls.Load())
	}
	if p.Name() != "stub" {
		t.Fatalf("unexpected name %q", p.Name())
	}
}

func TestStubProviderBlockHonorsContext(t *testing.T) {
	p := &StubProvider{Block: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.FetchGames(ctx, time.Now()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
}

func TestStubSnapshotStore(t *testing.T) {
	s := &StubSnapshotStore{Days: map[string]games.DaySchedule{
		"2024-01-01": games.NewDaySchedule("2024-01-01", []games.Game{{ID: "g1"}}),
	}}
	if got, err := s.LoadDay("2024-01-01"); err != nil || len(got.Games) != 1 {
		t.Fatalf("expected stored day, got %+v %v", got, err)
	}
	if _, err := s.LoadDay("2024-01-02"); !errors.Is(err, snapshots.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	s.LoadErr = errors.New("disk")
	if _, err := s.LoadDay("2024-01-01"); err == nil {
		t.Fatal("expected load error")
	}
}

func TestStubSnapshotWriter(t *testing.T) {
	w := &StubSnapshotWriter{}
	if err := w.WriteDay("2024-01-01", games.DaySchedule{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Count() != 1 {
		t.Fatalf("expected one write, got %d", w.Count())
	}
	w.Err = errors.New("fail")
	if err := w.WriteDay("2024-01-02", games.DaySchedule{}); err == nil {
		t.Fatal("expected error")
	}
}
