package snapshots

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
)

func finalGame(id string) games.Game {
	return games.NewGame(id, "test", "Final", games.StatusFinal, "", games.TeamResult{Tricode: "AAA", Score: 100}, games.TeamResult{Tricode: "BBB", Score: 90}, nil)
}

func simpleDay(date string) games.DaySchedule {
	return games.NewDaySchedule(date, []games.Game{finalGame(date)})
}

func writeDay(t *testing.T, w *Writer, date string, day games.DaySchedule) {
	t.Helper()
	if w == nil {
		t.Fatalf("writer is nil for date %s", date)
	}
	if err := w.WriteDay(date, day); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", date, err)
	}
}

func requireSnapshotExists(t *testing.T, w *Writer, date string) {
	t.Helper()
	if _, err := os.Stat(filepath.Join(w.BasePath(), "games", date+".json")); err != nil {
		t.Fatalf("expected snapshot for %s to be written: %v", date, err)
	}
}

type fakeFetcher struct {
	mu    sync.Mutex
	games map[string][]games.Game
	err   error
	days  []string
}

func (f *fakeFetcher) FetchGames(ctx context.Context, day time.Time) ([]games.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	date := day.Format("2006-01-02")
	f.days = append(f.days, date)
	if f.err != nil {
		return nil, f.err
	}
	return f.games[date], nil
}
