package nbastats

// column names one logical field: the header names it has gone by and the position it
// held in payloads that shipped without headers.
type column struct {
	names  []string
	legacy int
}

type gameHeaderColumns struct {
	GameID, StatusID, StatusText, HomeTeamID, VisitorTeamID, Period, Clock column
}

type lineScoreColumns struct {
	GameID, TeamID, Tricode, City, Name, Record, Points column
}

type teamLeaderColumns struct {
	GameID, TeamID, PlayerName, Points column
}

// columnTable is one versioned layout of the scoreboard result sets.
type columnTable struct {
	Version     string
	GameHeader  gameHeaderColumns
	LineScore   lineScoreColumns
	TeamLeaders teamLeaderColumns
}

// legacyColumns is the positional layout used when headers are missing. An upstream
// schema change is an edit to this table.
var legacyColumns = columnTable{
	Version: "scoreboardv2",
	GameHeader: gameHeaderColumns{
		GameID:        column{[]string{"GAME_ID"}, 2},
		StatusID:      column{[]string{"GAME_STATUS_ID"}, 3},
		StatusText:    column{[]string{"GAME_STATUS_TEXT"}, 4},
		HomeTeamID:    column{[]string{"HOME_TEAM_ID"}, 6},
		VisitorTeamID: column{[]string{"VISITOR_TEAM_ID"}, 7},
		Period:        column{[]string{"LIVE_PERIOD"}, 9},
		Clock:         column{[]string{"LIVE_PC_TIME"}, 10},
	},
	LineScore: lineScoreColumns{
		GameID:  column{[]string{"GAME_ID"}, 2},
		TeamID:  column{[]string{"TEAM_ID"}, 3},
		Tricode: column{[]string{"TEAM_ABBREVIATION"}, 4},
		City:    column{[]string{"TEAM_CITY_NAME", "TEAM_CITY"}, 5},
		Name:    column{[]string{"TEAM_NAME", "TEAM_NICKNAME"}, 6},
		Record:  column{[]string{"TEAM_WINS_LOSSES"}, 7},
		Points:  column{[]string{"PTS"}, 22},
	},
	TeamLeaders: teamLeaderColumns{
		GameID:     column{[]string{"GAME_ID"}, 0},
		TeamID:     column{[]string{"TEAM_ID"}, 1},
		PlayerName: column{[]string{"PTS_PLAYER_NAME"}, 6},
		Points:     column{[]string{"PTS"}, 7},
	},
}

// Result set names and their position in payloads that omit names.
const (
	tableGameHeader  = "GameHeader"
	tableLineScore   = "LineScore"
	tableTeamLeaders = "TeamLeaders"

	positionGameHeader  = 0
	positionLineScore   = 1
	positionTeamLeaders = 7
)
