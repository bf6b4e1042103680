package games

// StatusCode is the three-valued lifecycle state every game resolves to.
type StatusCode int

const (
	StatusNotStarted StatusCode = 1
	StatusLive       StatusCode = 2
	StatusFinal      StatusCode = 3
)

// Valid reports whether the code is one of the known states.
func (c StatusCode) Valid() bool {
	return c == StatusNotStarted || c == StatusLive || c == StatusFinal
}

func (c StatusCode) String() string {
	switch c {
	case StatusLive:
		return "LIVE"
	case StatusFinal:
		return "FINAL"
	default:
		return "NOT_STARTED"
	}
}

// TeamResult is the per-team half of a game.
// Wins and Losses are either both set or both nil.
type TeamResult struct {
	ID      string `json:"id"`
	Tricode string `json:"tricode"`
	Name    string `json:"name"`
	Logo    string `json:"logo,omitempty"`
	Score   int    `json:"score"`
	Wins    *int   `json:"wins"`
	Losses  *int   `json:"losses"`
}

// HasRecord reports whether both halves of the win/loss record are known.
func (t TeamResult) HasRecord() bool {
	return t.Wins != nil && t.Losses != nil
}

// Leader is the top scorer reported for one team.
type Leader struct {
	Name string `json:"name"`
	Stat string `json:"stat"`
}

// Leaders pairs the home and away leaders; either side may be nil.
type Leaders struct {
	Home *Leader `json:"home"`
	Away *Leader `json:"away"`
}

// Game is the canonical game shape produced by every normalizer.
type Game struct {
	ID         string     `json:"id"`
	Provider   string     `json:"provider,omitempty"`
	Status     string     `json:"status"`
	StatusCode StatusCode `json:"statusCode"`
	Clock      string     `json:"clock"`
	IsLive     bool       `json:"isLive"`
	Home       TeamResult `json:"home"`
	Away       TeamResult `json:"away"`
	Leaders    *Leaders   `json:"leaders"`
}

// NewGame builds a Game, deriving IsLive and Clock from the status code.
// Unknown codes collapse to StatusNotStarted. The clock is only kept for live games.
func NewGame(id, provider, status string, code StatusCode, clock string, home, away TeamResult, leaders *Leaders) Game {
	if !code.Valid() {
		code = StatusNotStarted
	}
	if code != StatusLive || clock == "" {
		clock = status
	}
	home = normalizeRecord(home)
	away = normalizeRecord(away)
	if leaders != nil && leaders.Home == nil && leaders.Away == nil {
		leaders = nil
	}
	return Game{
		ID:         id,
		Provider:   provider,
		Status:     status,
		StatusCode: code,
		Clock:      clock,
		IsLive:     code == StatusLive,
		Home:       home,
		Away:       away,
		Leaders:    leaders,
	}
}

// Winner returns the winning side for a final game: "home", "away" or "" when not decided.
func (g Game) Winner() string {
	if g.StatusCode != StatusFinal {
		return ""
	}
	switch {
	case g.Home.Score > g.Away.Score:
		return "home"
	case g.Away.Score > g.Home.Score:
		return "away"
	default:
		return ""
	}
}

func normalizeRecord(t TeamResult) TeamResult {
	if t.Wins == nil || t.Losses == nil {
		t.Wins, t.Losses = nil, nil
	}
	return t
}

// DaySchedule is the list of games for one calendar date.
type DaySchedule struct {
	Date  string `json:"date"`
	Games []Game `json:"games"`
}

// NewDaySchedule builds a DaySchedule payload.
func NewDaySchedule(date string, games []Game) DaySchedule {
	if games == nil {
		games = []Game{}
	}
	return DaySchedule{
		Date:  date,
		Games: games,
	}
}
