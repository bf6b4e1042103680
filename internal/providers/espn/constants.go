package espn

const (
	providerName   = "espn"
	defaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports/basketball/nba"
	scoreboardPath = "/scoreboard"
	tricodeUnknown = "TBD"
)
