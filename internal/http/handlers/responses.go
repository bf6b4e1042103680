package handlers

import "github.com/preston-bernstein/nba-schedule-service/internal/domain/games"

type gamesResponse struct {
	Date  string       `json:"date"`
	Games []games.Game `json:"games"`
}
