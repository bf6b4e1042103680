package teststubs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-service/internal/snapshots"
)

// StubProvider is a test double for providers.GameProvider.
type StubProvider struct {
	Games  []games.Game
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
	// Block, when set, holds FetchGames until it is closed or ctx ends.
	Block chan struct{}
	// ProviderName is returned from Name.
	ProviderName string

	mu   sync.Mutex
	days []time.Time
}

// FetchGames returns configured games and error while tracking calls.
func (s *StubProvider) FetchGames(ctx context.Context, day time.Time) ([]games.Game, error) {
	s.mu.Lock()
	s.days = append(s.days, day)
	s.mu.Unlock()
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	if s.Block != nil {
		select {
		case <-s.Block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.Games, s.Err
}

// Name returns ProviderName.
func (s *StubProvider) Name() string { return s.ProviderName }

// Days returns the days FetchGames was called with.
func (s *StubProvider) Days() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Time(nil), s.days...)
}

// StubSnapshotStore is a test double for snapshots.Store.
type StubSnapshotStore struct {
	Days    map[string]games.DaySchedule
	LoadErr error
	Loads   atomic.Int32
}

// LoadDay returns the day for date if present in Days.
func (s *StubSnapshotStore) LoadDay(date string) (games.DaySchedule, error) {
	s.Loads.Add(1)
	if s.LoadErr != nil {
		return games.DaySchedule{}, s.LoadErr
	}
	day, ok := s.Days[date]
	if !ok {
		return games.DaySchedule{}, snapshots.ErrNotFound
	}
	return day, nil
}

// StubSnapshotWriter is a test double for schedule.SnapshotWriter.
type StubSnapshotWriter struct {
	mu      sync.Mutex
	Written map[string]games.DaySchedule
	Err     error
}

// WriteDay records the snapshot for verification in tests.
func (w *StubSnapshotWriter) WriteDay(date string, day games.DaySchedule) error {
	if w.Err != nil {
		return w.Err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Written == nil {
		w.Written = make(map[string]games.DaySchedule)
	}
	w.Written[date] = day
	return nil
}

// Count returns how many days were written.
func (w *StubSnapshotWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.Written)
}
