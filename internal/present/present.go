// Package present turns schedule state into render-ready card view models.
package present

import (
	"fmt"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-service/internal/schedule"
)

// LogoURLPattern derives a team logo from its id when the provider sends none.
const LogoURLPattern = "https://cdn.nba.com/logos/nba/%s/global/L/logo.svg"

// View is everything a client needs to draw the schedule page.
type View struct {
	Date     string           `json:"date"`
	IsToday  bool             `json:"isToday"`
	Loading  bool             `json:"loading"`
	Fallback bool             `json:"fallback"`
	Source   string           `json:"source,omitempty"`
	Notice   *schedule.Notice `json:"notice,omitempty"`
	Cards    []Card           `json:"cards"`
}

// Card is one game.
type Card struct {
	ID         string      `json:"id"`
	StatusText string      `json:"statusText"`
	StatusCode int         `json:"statusCode"`
	IsLive     bool        `json:"isLive"`
	Clock      string      `json:"clock"`
	Home       TeamCard    `json:"home"`
	Away       TeamCard    `json:"away"`
	Leaders    *LeaderPair `json:"leaders,omitempty"`
}

// TeamCard is one side of a Card.
type TeamCard struct {
	Tricode string `json:"tricode"`
	Name    string `json:"name"`
	Logo    string `json:"logo"`
	Record  string `json:"record"`
	Score   int    `json:"score"`
	Winner  bool   `json:"winner"`
}

// LeaderPair is nil when the section should be hidden.
type LeaderPair struct {
	Home *LeaderLine `json:"home"`
	Away *LeaderLine `json:"away"`
}

// LeaderLine is one leader's name and stat line.
type LeaderLine struct {
	Name string `json:"name"`
	Stat string `json:"stat"`
}

// Build renders s as of now. The notice is dropped once it has expired.
func Build(s schedule.State, now time.Time) View {
	cards := make([]Card, 0, len(s.Games))
	for _, g := range s.Games {
		cards = append(cards, CardFor(g))
	}
	return View{
		Date:     s.DateString(),
		IsToday:  s.Mode(now) == schedule.ModeToday,
		Loading:  s.Loading,
		Fallback: s.Fallback,
		Source:   s.Source,
		Notice:   s.ActiveNotice(now),
		Cards:    cards,
	}
}

// CardFor renders a single game.
func CardFor(g games.Game) Card {
	winner := g.Winner()
	return Card{
		ID:         g.ID,
		StatusText: g.Status,
		StatusCode: int(g.StatusCode),
		IsLive:     g.IsLive,
		Clock:      g.Clock,
		Home:       teamCard(g.Home, winner == "home"),
		Away:       teamCard(g.Away, winner == "away"),
		Leaders:    leaderPair(g.Leaders),
	}
}

func teamCard(t games.TeamResult, winner bool) TeamCard {
	return TeamCard{
		Tricode: t.Tricode,
		Name:    DisplayName(t),
		Logo:    LogoURL(t),
		Record:  Record(t),
		Score:   t.Score,
		Winner:  winner,
	}
}

// DisplayName falls back to the tricode when the provider sent no name.
func DisplayName(t games.TeamResult) string {
	if name := strings.TrimSpace(t.Name); name != "" {
		return name
	}
	return t.Tricode
}

// LogoURL prefers the provider logo, then the CDN convention keyed by team id.
func LogoURL(t games.TeamResult) string {
	if t.Logo != "" {
		return t.Logo
	}
	if t.ID == "" {
		return ""
	}
	return fmt.Sprintf(LogoURLPattern, t.ID)
}

// Record renders "W-L", or "" when the record is unknown.
func Record(t games.TeamResult) string {
	if !t.HasRecord() {
		return ""
	}
	return fmt.Sprintf("%d-%d", *t.Wins, *t.Losses)
}

func leaderPair(l *games.Leaders) *LeaderPair {
	if l == nil || (l.Home == nil && l.Away == nil) {
		return nil
	}
	return &LeaderPair{Home: leaderLine(l.Home), Away: leaderLine(l.Away)}
}

func leaderLine(l *games.Leader) *LeaderLine {
	if l == nil {
		return nil
	}
	return &LeaderLine{Name: l.Name, Stat: l.Stat}
}
