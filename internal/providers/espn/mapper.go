package espn

import (
	"strings"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-service/internal/normalize"
	"github.com/preston-bernstein/nba-schedule-service/internal/providers"
)

// Normalize maps a scoreboard payload to games in event order. A missing or
// malformed events list yields no games.
func Normalize(raw []byte) ([]games.Game, error) {
	doc, err := normalize.Decode(raw)
	if err != nil {
		return nil, &providers.ParseError{Provider: providerName, Err: err}
	}

	out := make([]games.Game, 0)
	events, ok := eventsField.List(doc)
	if !ok {
		return out, nil
	}
	for _, ev := range events {
		obj, ok := normalize.AsMap(ev)
		if !ok {
			continue
		}
		out = append(out, mapEvent(obj))
	}
	return out, nil
}

func mapEvent(ev map[string]any) games.Game {
	st, _ := statusField.Resolve(ev)

	var completed *bool
	if b, ok := normalize.First(completedField, st, normalize.AsBool); ok {
		completed = &b
	}
	text := statusText.String(st, "")
	code := normalize.DeriveStatus(normalize.StatusSignals{
		States:    stateTags(st),
		Completed: completed,
		Text:      text,
	})

	homeNode, awayNode := sides(ev)
	home := mapTeam(homeNode)
	away := mapTeam(awayNode)
	leaders := normalize.PairLeaders(leaderFields.Extract(homeNode), leaderFields.Extract(awayNode))

	status := normalize.StatusText(text, code)
	return games.NewGame(
		eventIDField.String(ev, ""),
		providerName,
		status,
		code,
		liveClock(st, status),
		home,
		away,
		leaders,
	)
}

func stateTags(st any) []string {
	var tags []string
	for _, acc := range stateTagFields {
		if v, ok := acc(st); ok {
			if s, ok := normalize.AsString(v); ok {
				tags = append(tags, s)
			}
		}
	}
	return tags
}

// sides picks competitors by their homeAway designation. A side with no designated
// competitor stays empty.
func sides(ev map[string]any) (home, away any) {
	list, _ := competitors.List(ev)
	for _, item := range list {
		obj, ok := normalize.AsMap(item)
		if !ok {
			continue
		}
		side, _ := normalize.AsString(obj["homeAway"])
		switch strings.ToLower(side) {
		case "home":
			if home == nil {
				home = obj
			}
		case "away":
			if away == nil {
				away = obj
			}
		}
	}
	return home, away
}

func mapTeam(node any) games.TeamResult {
	wins, losses := teamFields.Record.Resolve(node)
	return games.TeamResult{
		ID:      teamFields.ID.String(node, ""),
		Tricode: teamFields.Tricode.String(node, tricodeUnknown),
		Name:    teamFields.Name.String(node, ""),
		Logo:    teamFields.Logo.String(node, ""),
		Score:   teamFields.Score.Count(node, 0),
		Wins:    wins,
		Losses:  losses,
	}
}

// liveClock renders "Q4 2:30". Breaks in play (halftime, end of a period) keep the
// provider's own wording.
func liveClock(st any, status string) string {
	name := strings.ToLower(stateTagFields.String(st, ""))
	if strings.Contains(name, "halftime") || strings.Contains(name, "end_period") {
		return status
	}
	period := periodField.Int(st, 0)
	clock := clockField.String(st, "")
	if period == 0 && clock == "" {
		return status
	}
	return normalize.LiveClock(period, clock)
}
