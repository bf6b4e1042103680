package snapshots

import (
	"errors"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrNotFound is returned when no snapshot exists for a date.
var ErrNotFound = errors.New("snapshot not found")

// Store defines how snapshots are loaded.
type Store interface {
	LoadDay(date string) (games.DaySchedule, error)
}

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadDay reads the snapshot for date (YYYY-MM-DD) from {basePath}/games/{date}.json.
func (s *FSStore) LoadDay(date string) (games.DaySchedule, error) {
	if s == nil {
		return games.DaySchedule{}, errors.New("snapshot store not configured")
	}
	if date == "" {
		return games.DaySchedule{}, errors.New("snapshot date required")
	}
	var payload games.DaySchedule
	if err := decodeFile(DaySnapshotPath(s.basePath, date), &payload); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return games.DaySchedule{}, fmt.Errorf("%w: %s", ErrNotFound, date)
		}
		return games.DaySchedule{}, err
	}
	if payload.Date == "" {
		payload.Date = date
	}
	if payload.Games == nil {
		payload.Games = []games.Game{}
	}
	return payload, nil
}

// Has reports whether a snapshot file exists for date.
func (s *FSStore) Has(date string) bool {
	if s == nil || s.basePath == "" || date == "" {
		return false
	}
	_, err := os.Stat(DaySnapshotPath(s.basePath, date))
	return err == nil
}

func decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jsonAPI.NewDecoder(f).Decode(payload)
}
