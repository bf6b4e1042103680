package nbastats

import (
	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-service/internal/normalize"
	"github.com/preston-bernstein/nba-schedule-service/internal/providers"
)

const tricodeUnknown = "TBD"

// bound is a Table with a column resolved to its index.
type bound struct {
	table normalize.Table
}

func (b bound) idx(c column) int {
	return b.table.Column(c.legacy, c.names...)
}

func (b bound) cell(row []any, c column) any {
	return normalize.Cell(row, b.idx(c))
}

func (b bound) str(row []any, c column) string {
	s, _ := normalize.AsString(b.cell(row, c))
	return s
}

func rowKey(gameID, teamID any) string {
	return normalize.Key(gameID) + "|" + normalize.Key(teamID)
}

// Normalize maps a scoreboard payload to games in GameHeader row order. Payloads
// without a GameHeader table yield no games.
func Normalize(raw []byte) ([]games.Game, error) {
	doc, err := normalize.Decode(raw)
	if err != nil {
		return nil, &providers.ParseError{Provider: providerName, Err: err}
	}

	out := make([]games.Game, 0)
	tables := normalize.Tables(doc)
	header, ok := normalize.FindTable(tables, tableGameHeader, positionGameHeader)
	if !ok {
		return out, nil
	}
	lineTable, _ := normalize.FindTable(tables, tableLineScore, positionLineScore)
	leaderTable, _ := normalize.FindTable(tables, tableTeamLeaders, positionTeamLeaders)

	lines := indexRows(bound{lineTable}, legacyColumns.LineScore.GameID, legacyColumns.LineScore.TeamID)
	leaders := indexRows(bound{leaderTable}, legacyColumns.TeamLeaders.GameID, legacyColumns.TeamLeaders.TeamID)

	gh := bound{header}
	for _, row := range header.Rows {
		out = append(out, mapRow(gh, row, bound{lineTable}, lines, bound{leaderTable}, leaders))
	}
	return out, nil
}

func indexRows(b bound, gameID, teamID column) map[string][]any {
	idx := make(map[string][]any, len(b.table.Rows))
	for _, row := range b.table.Rows {
		key := rowKey(b.cell(row, gameID), b.cell(row, teamID))
		if _, seen := idx[key]; !seen {
			idx[key] = row
		}
	}
	return idx
}

func mapRow(gh bound, row []any, ls bound, lines map[string][]any, tl bound, leaders map[string][]any) games.Game {
	cols := legacyColumns.GameHeader
	gameID := gh.cell(row, cols.GameID)
	text := gh.str(row, cols.StatusText)
	code := normalize.DeriveStatus(normalize.StatusSignals{
		Code: gh.cell(row, cols.StatusID),
		Text: text,
	})
	status := normalize.StatusText(text, code)

	period, _ := normalize.AsInt(gh.cell(row, cols.Period))
	clock := normalize.LiveClock(period, gh.str(row, cols.Clock))
	if clock == "" {
		clock = status
	}

	homeID := gh.cell(row, cols.HomeTeamID)
	awayID := gh.cell(row, cols.VisitorTeamID)
	homeKey := rowKey(gameID, homeID)
	awayKey := rowKey(gameID, awayID)

	pair := normalize.PairLeaders(
		leaderFor(tl, leaders[homeKey]),
		leaderFor(tl, leaders[awayKey]),
	)

	return games.NewGame(
		normalize.Key(gameID),
		providerName,
		status,
		code,
		clock,
		teamFor(ls, homeID, lines[homeKey]),
		teamFor(ls, awayID, lines[awayKey]),
		pair,
	)
}

// teamFor builds a TeamResult from a LineScore row. A missing row keeps the header's
// team id with a zero score and an unknown record.
func teamFor(ls bound, teamID any, row []any) games.TeamResult {
	team := games.TeamResult{ID: normalize.Key(teamID), Tricode: tricodeUnknown}
	if row == nil {
		return team
	}
	cols := legacyColumns.LineScore
	if tri := ls.str(row, cols.Tricode); tri != "" {
		team.Tricode = tri
	}
	city := ls.str(row, cols.City)
	name := ls.str(row, cols.Name)
	switch {
	case city != "" && name != "":
		team.Name = city + " " + name
	default:
		team.Name = city + name
	}
	team.Score, _ = normalize.AsCount(ls.cell(row, cols.Points))
	if summary := ls.str(row, cols.Record); summary != "" {
		team.Wins, team.Losses = normalize.ParseRecord(summary)
	}
	return team
}

func leaderFor(tl bound, row []any) normalize.Result[*games.Leader] {
	if row == nil {
		return normalize.Ok[*games.Leader](nil)
	}
	return normalize.Try(func() (*games.Leader, error) {
		cols := legacyColumns.TeamLeaders
		name := tl.str(row, cols.PlayerName)
		if name == "" {
			return nil, nil
		}
		points, ok := normalize.AsInt(tl.cell(row, cols.Points))
		if !ok {
			return &games.Leader{Name: name}, nil
		}
		// REB and AST in this table belong to other players.
		return &games.Leader{Name: name, Stat: normalize.FormatStat(points, nil, nil)}, nil
	})
}
