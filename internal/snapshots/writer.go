package snapshots

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-service/internal/timeutil"
)

const defaultRetentionDays = 30

// Writer persists day snapshots and the manifest with pruning.
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time
}

// NewWriter constructs a writer rooted at basePath with a rolling window retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteDay writes the snapshot for date (YYYY-MM-DD) and prunes expired ones. Game
// order is kept as the provider returned it.
func (w *Writer) WriteDay(date string, day games.DaySchedule) error {
	if w == nil {
		return fmt.Errorf("snapshot writer not configured")
	}
	if date == "" {
		return fmt.Errorf("date required")
	}
	if day.Date == "" {
		day.Date = date
	}

	target := DaySnapshotPath(w.basePath, date)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	data, err := jsonAPI.MarshalIndent(day, "", "  ")
	if err != nil {
		return err
	}
	if existing, err := os.ReadFile(target); err != nil || !bytes.Equal(existing, data) {
		if err := writeAtomic(target, day); err != nil {
			return err
		}
	}
	return w.updateManifest(date)
}

func (w *Writer) updateManifest(date string) error {
	m, _ := readManifest(filepath.Join(w.basePath, manifestFile), w.retentionDays)

	dates, err := w.listDates()
	if err != nil {
		return err
	}
	if !containsDate(dates, date) {
		dates = append(dates, date)
	}
	m.Days.Dates = w.pruneOldSnapshots(dates)
	m.Days.LastWritten = w.now().UTC()
	m.Retention.Days = w.retentionDays
	return writeManifest(w.basePath, m)
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

func (w *Writer) listDates() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(w.basePath, daysDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		dates = append(dates, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(dates)
	return dates, nil
}

func (w *Writer) pruneOldSnapshots(dates []string) []string {
	now := w.now().UTC()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -w.retentionDays)
	keep := make([]string, 0, len(dates))
	for _, d := range dates {
		parsed, err := timeutil.ParseDate(d)
		if err == nil && parsed.Before(cutoff) {
			_ = os.Remove(DaySnapshotPath(w.basePath, d))
			continue
		}
		keep = append(keep, d)
	}
	sort.Strings(keep)
	return keep
}

// Settled reports whether a day is worth keeping: at least one game and every game final.
func Settled(list []games.Game) bool {
	if len(list) == 0 {
		return false
	}
	for _, g := range list {
		if g.StatusCode != games.StatusFinal {
			return false
		}
	}
	return true
}
