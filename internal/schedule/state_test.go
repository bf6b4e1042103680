package schedule

import (
	"testing"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("timezone %s unavailable: %v", name, err)
	}
	return loc
}

func TestNewStateStartsAtMiddayToday(t *testing.T) {
	loc := mustLoc(t, "America/New_York")
	now := time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC) // 22:00 Jan 1 in New York
	s := NewState(now, loc)
	if s.DateString() != "2024-01-01" || s.Date.Hour() != 12 {
		t.Fatalf("unexpected start date %v", s.Date)
	}
	if s.Games == nil || s.Mode(now) != ModeToday {
		t.Fatalf("unexpected initial state %+v", s)
	}
}

func TestNavigateAcrossDaylightSaving(t *testing.T) {
	loc := mustLoc(t, "America/New_York")
	s := NewState(time.Date(2024, 3, 9, 23, 30, 0, 0, loc), loc)

	fwd := s.Navigate(1)
	if fwd.DateString() != "2024-03-10" {
		t.Fatalf("expected 2024-03-10, got %s", fwd.DateString())
	}
	fwd = fwd.Navigate(1)
	if fwd.DateString() != "2024-03-11" {
		t.Fatalf("expected 2024-03-11, got %s", fwd.DateString())
	}
	back := fwd.Navigate(-2)
	if back.DateString() != "2024-03-09" {
		t.Fatalf("expected round trip to 2024-03-09, got %s", back.DateString())
	}
}

func TestSetDateUsesViewerLocation(t *testing.T) {
	loc := mustLoc(t, "America/Los_Angeles")
	s := NewState(time.Now(), loc)
	s = s.SetDate(time.Date(2024, 5, 1, 2, 0, 0, 0, time.UTC)) // Apr 30 in LA
	if s.DateString() != "2024-04-30" || s.Date.Location() != loc {
		t.Fatalf("unexpected date %v", s.Date)
	}
}

func TestModeFor(t *testing.T) {
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	s := NewState(now, time.UTC)
	if s.Mode(now) != ModeToday {
		t.Fatal("expected today")
	}
	if s.Navigate(-1).Mode(now) != ModePastDate || s.Navigate(1).Mode(now) != ModePastDate {
		t.Fatal("expected past mode for other days")
	}
	if ModeToday.String() != "today" || ModePastDate.String() != "past" {
		t.Fatal("unexpected mode strings")
	}
}

func TestStaleCompletionIsDiscarded(t *testing.T) {
	now := time.Now()
	s := NewState(now, time.UTC)
	s, first := s.BeginLoad(false)
	s, second := s.BeginLoad(false)

	s, ok := s.LoadCompleted(second, []games.Game{{ID: "fresh"}}, "live", now)
	if !ok {
		t.Fatal("expected latest load to apply")
	}
	s, ok = s.LoadCompleted(first, []games.Game{{ID: "stale"}}, "live", now)
	if ok {
		t.Fatal("expected stale load to be discarded")
	}
	if len(s.Games) != 1 || s.Games[0].ID != "fresh" {
		t.Fatalf("expected fresh games, got %+v", s.Games)
	}
	if _, ok := s.LoadFailed(first, nil, now); ok {
		t.Fatal("expected stale failure to be discarded")
	}
}

func TestBeginLoadSilentKeepsLoadingFlag(t *testing.T) {
	s := NewState(time.Now(), time.UTC)
	s, _ = s.BeginLoad(true)
	if s.Loading {
		t.Fatal("expected silent load to leave Loading unset")
	}
	s, seq := s.BeginLoad(false)
	if !s.Loading || seq != 2 {
		t.Fatalf("expected loading with seq 2, got %v %d", s.Loading, seq)
	}
	s, _ = s.LoadCompleted(seq, nil, "live", time.Now())
	if s.Loading || s.Games == nil {
		t.Fatalf("expected completed state, got %+v", s)
	}
}

func TestLoadFailedRaisesExpiringNotice(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewState(now, time.UTC)
	s, seq := s.BeginLoad(false)
	s, ok := s.LoadFailed(seq, []games.Game{{ID: "mock-1"}}, now)
	if !ok || !s.Fallback || s.Loading || s.Source != "fallback" {
		t.Fatalf("unexpected failed state %+v", s)
	}
	n := s.ActiveNotice(now.Add(4 * time.Second))
	if n == nil || n.ID == "" || n.Message == "" {
		t.Fatalf("expected active notice, got %+v", n)
	}
	if s.ActiveNotice(now.Add(NoticeTTL)) != nil {
		t.Fatal("expected notice to expire after 5s")
	}
}

func TestStateGameLookup(t *testing.T) {
	s := State{Games: []games.Game{{ID: "a"}, {ID: "b"}}}
	if g, ok := s.Game("b"); !ok || g.ID != "b" {
		t.Fatal("expected to find game b")
	}
	if _, ok := s.Game("z"); ok {
		t.Fatal("expected missing game")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := State{Games: []games.Game{{ID: "a"}}, Notice: &Notice{ID: "n"}}
	c := s.clone()
	c.Games[0].ID = "changed"
	c.Notice.ID = "changed"
	if s.Games[0].ID != "a" || s.Notice.ID != "n" {
		t.Fatal("expected clone to not share memory")
	}
}
