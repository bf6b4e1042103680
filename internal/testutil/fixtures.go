package testutil

import (
	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
)

// SampleGame returns a final game fixture with the provided id; home wins 101-99.
func SampleGame(id string) games.Game {
	return games.NewGame(id, "test", "Final", games.StatusFinal, "",
		games.TeamResult{ID: "1610612747", Tricode: "LAL", Name: "Los Angeles Lakers", Score: 101},
		games.TeamResult{ID: "1610612738", Tricode: "BOS", Name: "Boston Celtics", Score: 99},
		nil,
	)
}

// SampleLiveGame returns a live game fixture with the provided id and clock.
func SampleLiveGame(id, clock string) games.Game {
	return games.NewGame(id, "test", clock, games.StatusLive, clock,
		games.TeamResult{ID: "1610612744", Tricode: "GSW", Name: "Golden State Warriors", Score: 80},
		games.TeamResult{ID: "1610612756", Tricode: "PHX", Name: "Phoenix Suns", Score: 78},
		nil,
	)
}

// SampleDay builds a DaySchedule of final games with the given ids.
func SampleDay(date string, ids ...string) games.DaySchedule {
	list := make([]games.Game, 0, len(ids))
	for _, id := range ids {
		list = append(list, SampleGame(id))
	}
	return games.NewDaySchedule(date, list)
}
