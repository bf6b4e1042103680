package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/nba-schedule-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/schedule", handler.Schedule)
	mux.HandleFunc("/schedule/events", handler.Events)
	mux.HandleFunc("/schedule/", handler.Navigate)
	mux.HandleFunc("/games", handler.Games)
	mux.HandleFunc("/games/", handler.GameByID)
	return mux
}
