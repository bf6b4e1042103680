// Package schedule owns the viewed date and its game list. State is a value updated
// by pure functions; Controller serializes those updates and performs the loads.
package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-service/internal/timeutil"
)

// NoticeTTL is how long a load failure notice stays visible.
const NoticeTTL = 5 * time.Second

const fallbackMessage = "Could not load live scores. Showing sample games."

// Mode selects which source pair serves the viewed date.
type Mode int

const (
	ModeToday Mode = iota
	ModePastDate
)

func (m Mode) String() string {
	if m == ModeToday {
		return "today"
	}
	return "past"
}

// ModeFor compares calendar days in date's location. Any day other than today,
// including future ones, uses the historical path.
func ModeFor(date, now time.Time) Mode {
	if timeutil.SameDay(date, now, date.Location()) {
		return ModeToday
	}
	return ModePastDate
}

// Notice is a transient message shown after a failed load.
type Notice struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// State is the schedule as last loaded.
type State struct {
	// Date is midday of the viewed day in the viewer location.
	Date      time.Time
	Games     []games.Game
	Seq       uint64
	Loading   bool
	Fallback  bool
	Notice    *Notice
	Source    string
	UpdatedAt time.Time
}

// NewState starts on today with no games.
func NewState(now time.Time, loc *time.Location) State {
	if loc == nil {
		loc = time.Local
	}
	return State{
		Date:  timeutil.MiddayOf(now.In(loc)),
		Games: []games.Game{},
	}
}

// DateString renders the viewed day as YYYY-MM-DD.
func (s State) DateString() string {
	return s.Date.Format(timeutil.DateLayout)
}

// Mode reports whether the viewed date is today.
func (s State) Mode(now time.Time) Mode {
	return ModeFor(s.Date, now)
}

// Navigate moves the viewed date by whole days.
func (s State) Navigate(days int) State {
	s.Date = timeutil.AddDays(s.Date, days)
	return s
}

// SetDate jumps to the calendar day of day, read in the current viewer location.
func (s State) SetDate(day time.Time) State {
	loc := s.Date.Location()
	s.Date = timeutil.MiddayOf(day.In(loc))
	return s
}

// BeginLoad issues the next sequence number. A silent load leaves Loading untouched
// so background refreshes do not flash a spinner.
func (s State) BeginLoad(silent bool) (State, uint64) {
	s.Seq++
	if !silent {
		s.Loading = true
	}
	return s, s.Seq
}

// LoadCompleted replaces the game list wholesale. It reports false and leaves s
// unchanged when seq is not the latest issued.
func (s State) LoadCompleted(seq uint64, list []games.Game, source string, now time.Time) (State, bool) {
	if seq != s.Seq {
		return s, false
	}
	if list == nil {
		list = []games.Game{}
	}
	s.Games = list
	s.Loading = false
	s.Fallback = false
	s.Source = source
	s.UpdatedAt = now
	return s, true
}

// LoadFailed swaps in the fallback list and raises a Notice that expires after
// NoticeTTL. Stale sequences are discarded like LoadCompleted.
func (s State) LoadFailed(seq uint64, fallback []games.Game, now time.Time) (State, bool) {
	if seq != s.Seq {
		return s, false
	}
	if fallback == nil {
		fallback = []games.Game{}
	}
	s.Games = fallback
	s.Loading = false
	s.Fallback = true
	s.Source = "fallback"
	s.UpdatedAt = now
	s.Notice = &Notice{
		ID:        uuid.NewString(),
		Message:   fallbackMessage,
		ExpiresAt: now.Add(NoticeTTL),
	}
	return s, true
}

// ActiveNotice returns the notice while it has not expired.
func (s State) ActiveNotice(now time.Time) *Notice {
	if s.Notice == nil || !now.Before(s.Notice.ExpiresAt) {
		return nil
	}
	return s.Notice
}

// Game finds a game in the current list by id.
func (s State) Game(id string) (games.Game, bool) {
	for _, g := range s.Games {
		if g.ID == id {
			return g, true
		}
	}
	return games.Game{}, false
}

func (s State) clone() State {
	out := s
	out.Games = make([]games.Game, len(s.Games))
	copy(out.Games, s.Games)
	if s.Notice != nil {
		n := *s.Notice
		out.Notice = &n
	}
	return out
}
