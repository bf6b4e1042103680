package espn

import "github.com/preston-bernstein/nba-schedule-service/internal/normalize"

// Field tables for the scoreboard payload. Each chain lists the locations a value has
// been seen at, newest first.
var (
	eventsField = normalize.Paths("events")

	eventIDField = normalize.Paths("id", "competitions.0.id", "uid")
	statusField  = normalize.Paths("competitions.0.status", "status")
	competitors  = normalize.Paths("competitions.0.competitors", "competitors")

	stateTagFields = normalize.Paths("type.name", "type.state")
	completedField = normalize.Paths("type.completed")
	statusText     = normalize.Paths("type.shortDetail", "type.detail", "type.description")
	periodField    = normalize.Paths("period")
	clockField     = normalize.Paths("displayClock")
)

var teamFields = struct {
	ID      normalize.Chain
	Tricode normalize.Chain
	Name    normalize.Chain
	Logo    normalize.Chain
	Score   normalize.Chain
	Record  normalize.RecordFields
}{
	ID:      normalize.Paths("team.id", "id"),
	Tricode: normalize.Paths("team.abbreviation", "abbreviation"),
	Name:    normalize.Paths("team.displayName", "team.name", "team.shortDisplayName"),
	Logo:    normalize.Paths("team.logo", "team.logos.0.href"),
	Score:   normalize.Paths("score", "score.value", "score.displayValue"),
	Record: normalize.RecordFields{
		Summary: normalize.Chain{
			normalize.Then(normalize.Find(normalize.Path("records"), "type", "total"), normalize.Path("summary")),
			normalize.Then(normalize.Find(normalize.Path("records"), "name", "overall"), normalize.Path("summary")),
			normalize.Path("record"),
			normalize.Path("records", "0", "summary"),
		},
		Wins:   normalize.Paths("wins"),
		Losses: normalize.Paths("losses"),
	},
}

var leaderFields = normalize.LeaderFields{
	Source:     normalize.Paths("leaders"),
	Categories: []string{"points", "pts", "pointsPerGame"},
	Name: normalize.Chain{
		normalize.Path("athlete", "displayName"),
		normalize.Path("athlete", "fullName"),
		normalize.Join(" ", normalize.Path("athlete", "firstName"), normalize.Path("athlete", "lastName")),
		normalize.Path("athlete", "shortName"),
		normalize.Path("athlete", "id"),
	},
	Points:  normalize.Paths("value"),
	Display: normalize.Paths("displayValue"),
}
