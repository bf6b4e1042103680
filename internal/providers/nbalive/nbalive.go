// Package nbalive reads and normalizes the league's live scoreboard feed. The feed
// only ever describes the current day.
package nbalive

import (
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-service/internal/normalize"
	"github.com/preston-bernstein/nba-schedule-service/internal/providers"
)

const (
	providerName   = "nba-live"
	defaultURL     = "https://cdn.nba.com/static/json/liveData/scoreboard/todaysScoreboard_00.json"
	tricodeUnknown = "TBD"
)

// Config controls how the live feed is reached.
type Config struct {
	URL        string
	RelayURL   string
	HTTPClient *http.Client
	Location   *time.Location
}

// New returns the live reader and normalizer as one Source. The day argument is
// ignored by the upstream; the feed is always today's slate.
func New(cfg Config) *providers.Source {
	target := strings.TrimSpace(cfg.URL)
	if target == "" {
		target = defaultURL
	}
	reader := providers.NewHTTPReader(providers.HTTPReaderConfig{
		Provider:   providerName,
		Target:     func(time.Time) string { return target },
		RelayURL:   cfg.RelayURL,
		HTTPClient: cfg.HTTPClient,
		Location:   cfg.Location,
	})
	return providers.NewSource(providerName, reader, Normalize)
}

var (
	gamesField  = normalize.Paths("scoreboard.games", "games")
	idField     = normalize.Paths("gameId", "game_id", "id")
	codeField   = normalize.Paths("gameStatus", "game_status", "status.code")
	textField   = normalize.Paths("gameStatusText", "game_status_text", "status.text")
	periodField = normalize.Paths("period", "period.current")
	clockField  = normalize.Paths("gameClock", "game_clock", "clock")
	homeField   = normalize.Paths("homeTeam", "home_team", "home")
	awayField   = normalize.Paths("awayTeam", "away_team", "visitor", "away")
)

var teamFields = struct {
	ID      normalize.Chain
	Tricode normalize.Chain
	Name    normalize.Chain
	Score   normalize.Chain
	Record  normalize.RecordFields
}{
	ID:      normalize.Paths("teamId", "team_id", "team.id"),
	Tricode: normalize.Paths("teamTricode", "team_tricode", "tricode", "team.abbreviation"),
	Name: normalize.Chain{
		normalize.Join(" ", normalize.Path("teamCity"), normalize.Path("teamName")),
		normalize.Path("team_name"),
		normalize.Path("team", "name"),
	},
	Score: normalize.Paths("score", "pts"),
	Record: normalize.RecordFields{
		Summary: normalize.Paths("record", "teamRecord"),
		Wins:    normalize.Paths("wins"),
		Losses:  normalize.Paths("losses"),
	},
}

// leaderSides returns the per-team leader accessors; the feed keeps both sides under
// one gameLeaders object.
var leaderSides = struct {
	Home, Away normalize.LeaderFields
}{
	Home: leaderFieldsAt("homeLeaders"),
	Away: leaderFieldsAt("awayLeaders"),
}

func leaderFieldsAt(side string) normalize.LeaderFields {
	return normalize.LeaderFields{
		Source:     normalize.Chain{normalize.Path("gameLeaders", side), normalize.Path("leaders", side)},
		Categories: []string{"points", "pts"},
		Name: normalize.Chain{
			normalize.Path("name"),
			normalize.Join(" ", normalize.Path("firstName"), normalize.Path("familyName")),
			normalize.Path("nameI"),
			normalize.Path("personId"),
		},
		Points:   normalize.Paths("points", "pts"),
		Rebounds: normalize.Paths("rebounds", "reb"),
		Assists:  normalize.Paths("assists", "ast"),
		Display:  normalize.Paths("statLine", "displayValue"),
	}
}

// Normalize maps the live scoreboard payload to games in feed order.
func Normalize(raw []byte) ([]games.Game, error) {
	doc, err := normalize.Decode(raw)
	if err != nil {
		return nil, &providers.ParseError{Provider: providerName, Err: err}
	}
	out := make([]games.Game, 0)
	list, ok := gamesField.List(doc)
	if !ok {
		return out, nil
	}
	for _, item := range list {
		obj, ok := normalize.AsMap(item)
		if !ok {
			continue
		}
		out = append(out, mapGame(obj))
	}
	return out, nil
}

func mapGame(g map[string]any) games.Game {
	code, _ := codeField.Resolve(g)
	text := textField.String(g, "")
	status := normalize.DeriveStatus(normalize.StatusSignals{Code: code, Text: text})

	homeNode, _ := homeField.Resolve(g)
	awayNode, _ := awayField.Resolve(g)

	leaders := normalize.PairLeaders(leaderSides.Home.Extract(g), leaderSides.Away.Extract(g))
	label := normalize.StatusText(text, status)
	clock := normalize.LiveClock(periodField.Int(g, 0), clockField.String(g, ""))
	if strings.EqualFold(label, "halftime") || clock == "" {
		clock = label
	}

	return games.NewGame(
		idField.String(g, ""),
		providerName,
		label,
		status,
		clock,
		mapTeam(homeNode),
		mapTeam(awayNode),
		leaders,
	)
}

func mapTeam(node any) games.TeamResult {
	wins, losses := teamFields.Record.Resolve(node)
	return games.TeamResult{
		ID:      teamFields.ID.String(node, ""),
		Tricode: teamFields.Tricode.String(node, tricodeUnknown),
		Name:    teamFields.Name.String(node, ""),
		Score:   teamFields.Score.Count(node, 0),
		Wins:    wins,
		Losses:  losses,
	}
}
