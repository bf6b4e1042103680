// Package fixture serves the fixed placeholder slate used offline and as the load
// failure fallback.
package fixture

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
)

const providerName = "fixture"

//go:embed games.yaml
var dataset []byte

type teamDoc struct {
	ID      string `yaml:"id"`
	Tricode string `yaml:"tricode"`
	Name    string `yaml:"name"`
	Logo    string `yaml:"logo"`
	Score   int    `yaml:"score"`
	Wins    *int   `yaml:"wins"`
	Losses  *int   `yaml:"losses"`
}

type leaderDoc struct {
	Name string `yaml:"name"`
	Stat string `yaml:"stat"`
}

type leadersDoc struct {
	Home *leaderDoc `yaml:"home"`
	Away *leaderDoc `yaml:"away"`
}

type gameDoc struct {
	ID         string      `yaml:"id"`
	Status     string      `yaml:"status"`
	StatusCode int         `yaml:"statusCode"`
	Clock      string      `yaml:"clock"`
	Home       teamDoc     `yaml:"home"`
	Away       teamDoc     `yaml:"away"`
	Leaders    *leadersDoc `yaml:"leaders"`
}

type datasetDoc struct {
	Games []gameDoc `yaml:"games"`
}

// Parse decodes a placeholder slate from YAML.
func Parse(raw []byte) ([]games.Game, error) {
	var doc datasetDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode fixture dataset: %w", err)
	}
	out := make([]games.Game, 0, len(doc.Games))
	for _, g := range doc.Games {
		out = append(out, g.toGame())
	}
	return out, nil
}

func (g gameDoc) toGame() games.Game {
	var leaders *games.Leaders
	if g.Leaders != nil {
		leaders = &games.Leaders{Home: g.Leaders.Home.toLeader(), Away: g.Leaders.Away.toLeader()}
	}
	return games.NewGame(g.ID, providerName, g.Status, games.StatusCode(g.StatusCode), g.Clock, g.Home.toTeam(), g.Away.toTeam(), leaders)
}

func (t teamDoc) toTeam() games.TeamResult {
	return games.TeamResult{ID: t.ID, Tricode: t.Tricode, Name: t.Name, Logo: t.Logo, Score: t.Score, Wins: t.Wins, Losses: t.Losses}
}

func (l *leaderDoc) toLeader() *games.Leader {
	if l == nil || l.Name == "" {
		return nil
	}
	return &games.Leader{Name: l.Name, Stat: l.Stat}
}

var placeholder = mustParse(dataset)

func mustParse(raw []byte) []games.Game {
	out, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return out
}

// Games returns a fresh copy of the placeholder slate.
func Games() []games.Game {
	out := make([]games.Game, len(placeholder))
	copy(out, placeholder)
	return out
}

// Provider returns the placeholder slate for every day.
type Provider struct{}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

// Name returns the provider name used in logs and metrics.
func (p *Provider) Name() string { return providerName }

// FetchGames returns the placeholder slate regardless of day.
func (p *Provider) FetchGames(ctx context.Context, day time.Time) ([]games.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Games(), nil
}
