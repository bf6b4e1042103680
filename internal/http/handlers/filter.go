package handlers

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
)

// Minimum Levenshtein similarity for a misspelled team query to match.
const teamSimilarity = 0.7

// filterByTeam keeps games where either side matches query. An empty query keeps all.
func filterByTeam(list []games.Game, query string) []games.Game {
	query = strings.TrimSpace(query)
	out := make([]games.Game, 0, len(list))
	for _, g := range list {
		if query == "" || matchesTeam(g.Home, query) || matchesTeam(g.Away, query) {
			out = append(out, g)
		}
	}
	return out
}

func matchesTeam(t games.TeamResult, query string) bool {
	if strings.EqualFold(t.Tricode, query) {
		return true
	}
	if t.Name == "" {
		return false
	}
	if fuzzy.MatchFold(query, t.Name) {
		return true
	}
	candidates := []string{t.Name}
	if fields := strings.Fields(t.Name); len(fields) > 1 {
		candidates = append(candidates, fields[len(fields)-1])
	}
	q := strings.ToLower(query)
	for _, c := range candidates {
		c = strings.ToLower(c)
		distance := fuzzy.LevenshteinDistance(q, c)
		maxLen := float64(max(len(q), len(c)))
		if 1-float64(distance)/maxLen >= teamSimilarity {
			return true
		}
	}
	return false
}
