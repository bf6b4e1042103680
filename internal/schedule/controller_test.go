package schedule

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-service/internal/metrics"
	"github.com/preston-bernstein/nba-schedule-service/internal/providers"
	"github.com/preston-bernstein/nba-schedule-service/internal/teststubs"
)

var fixedNow = time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)

func finalGame(id string) games.Game {
	return games.NewGame(id, "test", "Final", games.StatusFinal, "", games.TeamResult{Tricode: "AAA", Score: 101}, games.TeamResult{Tricode: "BBB", Score: 99}, nil)
}

func mockGames() []games.Game {
	return []games.Game{finalGame("mock-1")}
}

type harness struct {
	ctrl     *Controller
	live     *teststubs.StubProvider
	hist     *teststubs.StubProvider
	store    *teststubs.StubSnapshotStore
	writer   *teststubs.StubSnapshotWriter
	recorder *metrics.Recorder
}

func newHarness() *harness {
	h := &harness{
		live:     &teststubs.StubProvider{Games: []games.Game{finalGame("live-1")}, ProviderName: "live-stub"},
		hist:     &teststubs.StubProvider{Games: []games.Game{finalGame("hist-1")}, ProviderName: "hist-stub"},
		store:    &teststubs.StubSnapshotStore{},
		writer:   &teststubs.StubSnapshotWriter{},
		recorder: metrics.NewRecorder(),
	}
	h.ctrl = NewController(Options{
		Sources:   Sources{Live: h.live, Historical: h.hist},
		Snapshots: h.store,
		Writer:    h.writer,
		Fallback:  mockGames,
		Location:  time.UTC,
		Metrics:   h.recorder,
		Now:       func() time.Time { return fixedNow },
	})
	return h
}

func TestLoadTodayUsesLiveSource(t *testing.T) {
	h := newHarness()
	s, err := h.ctrl.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.live.Calls.Load() != 1 || h.hist.Calls.Load() != 0 {
		t.Fatalf("expected live source only, got live=%d hist=%d", h.live.Calls.Load(), h.hist.Calls.Load())
	}
	if !h.live.Days()[0].Equal(fixedNow) {
		t.Fatalf("expected live source called with now, got %v", h.live.Days()[0])
	}
	if len(s.Games) != 1 || s.Games[0].ID != "live-1" || s.Source != "live-stub" || s.Loading {
		t.Fatalf("unexpected state %+v", s)
	}
	if h.store.Loads.Load() != 0 {
		t.Fatal("expected no snapshot lookup for today")
	}
}

func TestNavigateToPastUsesHistoricalAndWritesSnapshot(t *testing.T) {
	h := newHarness()
	s, err := h.ctrl.Navigate(context.Background(), -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.DateString() != "2024-01-14" {
		t.Fatalf("expected previous day, got %s", s.DateString())
	}
	if h.hist.Calls.Load() != 1 || h.live.Calls.Load() != 0 {
		t.Fatal("expected historical source")
	}
	if got := h.hist.Days()[0]; got.Format("2006-01-02") != "2024-01-14" || got.Hour() != 12 {
		t.Fatalf("expected midday of viewed date, got %v", got)
	}
	if _, ok := h.writer.Written["2024-01-14"]; !ok {
		t.Fatal("expected settled past day to be snapshotted")
	}
}

func TestPastDateSnapshotHitAvoidsFetch(t *testing.T) {
	h := newHarness()
	h.store.Days = map[string]games.DaySchedule{
		"2024-01-10": games.NewDaySchedule("2024-01-10", []games.Game{finalGame("snap-1")}),
	}
	s, err := h.ctrl.SetDate(context.Background(), time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.hist.Calls.Load() != 0 {
		t.Fatal("expected snapshot to avoid provider fetch")
	}
	if s.Source != "snapshot" || s.Games[0].ID != "snap-1" {
		t.Fatalf("unexpected state %+v", s)
	}
	if h.writer.Count() != 0 {
		t.Fatal("expected snapshot hit not to be rewritten")
	}
}

func TestUnsettledPastDayIsNotSnapshotted(t *testing.T) {
	h := newHarness()
	h.hist.Games = []games.Game{games.NewGame("x", "test", "Q3", games.StatusLive, "", games.TeamResult{}, games.TeamResult{}, nil)}
	if _, err := h.ctrl.Navigate(context.Background(), -1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.writer.Count() != 0 {
		t.Fatal("expected unsettled day not to be written")
	}
}

func TestLoadFailureFallsBackWithNotice(t *testing.T) {
	h := newHarness()
	h.live.Err = &providers.FetchError{Provider: "live-stub", StatusCode: 503}

	s, err := h.ctrl.Load(context.Background())
	if err == nil {
		t.Fatal("expected load error to be reported")
	}
	if !s.Fallback || s.Loading || len(s.Games) != 1 || s.Games[0].ID != "mock-1" {
		t.Fatalf("expected fallback state, got %+v", s)
	}
	if s.ActiveNotice(fixedNow) == nil {
		t.Fatal("expected active notice")
	}
	if h.recorder.Fallbacks() != 1 {
		t.Fatalf("expected fallback metric, got %d", h.recorder.Fallbacks())
	}
}

func TestParseErrorAlsoFallsBack(t *testing.T) {
	h := newHarness()
	h.hist.Err = &providers.ParseError{Provider: "hist-stub", Err: errors.New("not json")}
	s, err := h.ctrl.Navigate(context.Background(), -3)
	if err == nil || !s.Fallback {
		t.Fatalf("expected fallback on parse error, got %+v %v", s, err)
	}
	if fallbackReason(err) != "parse" {
		t.Fatalf("unexpected reason %q", fallbackReason(err))
	}
}

func TestMissingProviderFallsBack(t *testing.T) {
	ctrl := NewController(Options{Location: time.UTC, Fallback: mockGames})
	s, err := ctrl.Load(context.Background())
	if !errors.Is(err, providers.ErrProviderUnavailable) || !s.Fallback {
		t.Fatalf("expected unavailable fallback, got %+v %v", s, err)
	}
}

func TestTickIsNoopOnPastDate(t *testing.T) {
	h := newHarness()
	if _, err := h.ctrl.Navigate(context.Background(), -1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	calls := h.hist.Calls.Load()
	ran, err := h.ctrl.Tick(context.Background())
	if ran || err != nil {
		t.Fatalf("expected no-op tick, got ran=%v err=%v", ran, err)
	}
	if h.hist.Calls.Load() != calls || h.live.Calls.Load() != 0 {
		t.Fatal("expected no fetch on past-date tick")
	}
}

func TestTickReloadsSilentlyOnToday(t *testing.T) {
	h := newHarness()
	updates, cancel := h.ctrl.Subscribe()
	defer cancel()

	ran, err := h.ctrl.Tick(context.Background())
	if !ran || err != nil {
		t.Fatalf("expected tick to load, got ran=%v err=%v", ran, err)
	}
	s := <-updates
	if s.Loading || len(s.Games) != 1 {
		t.Fatalf("expected single completed update, got %+v", s)
	}
	select {
	case extra := <-updates:
		t.Fatalf("expected no loading update for silent tick, got %+v", extra)
	default:
	}
}

func TestSlowStaleLoadDoesNotClobberNewer(t *testing.T) {
	h := newHarness()
	slow := &teststubs.StubProvider{Games: []games.Game{finalGame("stale")}, Block: make(chan struct{}), Notify: make(chan struct{})}
	h.ctrl.sources.Live = slow

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = h.ctrl.Load(context.Background())
	}()
	<-slow.Notify

	// A newer load on a past date completes first.
	if _, err := h.ctrl.Navigate(context.Background(), -1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(slow.Block)
	wg.Wait()

	s := h.ctrl.State()
	if len(s.Games) != 1 || s.Games[0].ID != "hist-1" {
		t.Fatalf("expected newer result to survive, got %+v", s.Games)
	}
}

func TestPublishNeverGoesBackwards(t *testing.T) {
	h := newHarness()
	ch, cancel := h.ctrl.Subscribe()
	defer cancel()

	newer := NewState(fixedNow, time.UTC)
	newer.Games = []games.Game{finalGame("newer")}
	older := NewState(fixedNow, time.UTC)
	older.Games = []games.Game{finalGame("older")}

	// Completions can reach publish out of order once the state lock is released.
	h.ctrl.publish(newer, 7)
	h.ctrl.publish(older, 6)

	got := <-ch
	if len(got.Games) != 1 || got.Games[0].ID != "newer" {
		t.Fatalf("expected newest state, got %+v", got.Games)
	}
	select {
	case extra := <-ch:
		t.Fatalf("expected older state dropped, got %+v", extra.Games)
	default:
	}
}

func TestSubscribersSeeFinalStateAfterLoads(t *testing.T) {
	h := newHarness()
	ch, cancel := h.ctrl.Subscribe()
	defer cancel()

	if _, err := h.ctrl.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := h.ctrl.Navigate(context.Background(), -1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := <-ch
	if got.Loading || len(got.Games) != 1 || got.Games[0].ID != "hist-1" {
		t.Fatalf("expected settled past-date state, got %+v", got)
	}
}

func TestTodayReturnsToCurrentDate(t *testing.T) {
	h := newHarness()
	if _, err := h.ctrl.Navigate(context.Background(), -5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, err := h.ctrl.Today(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.DateString() != "2024-01-15" || s.Mode(fixedNow) != ModeToday {
		t.Fatalf("expected today, got %s", s.DateString())
	}
}

func TestSubscribeUnsubscribeClosesChannel(t *testing.T) {
	h := newHarness()
	ch, cancel := h.ctrl.Subscribe()
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel")
	}
	if _, err := h.ctrl.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
