package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/poller"
	"github.com/preston-bernstein/nba-schedule-service/internal/present"
	"github.com/preston-bernstein/nba-schedule-service/internal/schedule"
	"github.com/preston-bernstein/nba-schedule-service/internal/timeutil"
)

// Schedule is the controller surface the HTTP layer drives.
type Schedule interface {
	State() schedule.State
	Now() time.Time
	Load(ctx context.Context) (schedule.State, error)
	Navigate(ctx context.Context, days int) (schedule.State, error)
	SetDate(ctx context.Context, day time.Time) (schedule.State, error)
	Today(ctx context.Context) (schedule.State, error)
	Subscribe() (<-chan schedule.State, func())
}

// Handler wires HTTP routes to the schedule controller.
type Handler struct {
	ctrl     Schedule
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil, in which case /ready always succeeds.
func NewHandler(ctrl Schedule, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		ctrl:     ctrl,
		logger:   logger,
		statusFn: statusFn,
	}
}

func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch {
	case r.URL.Path == "/health":
		h.Health(w, r)
	case r.URL.Path == "/ready":
		h.Ready(w, r)
	case r.URL.Path == "/schedule":
		h.Schedule(w, r)
	case r.URL.Path == "/schedule/events":
		h.Events(w, r)
	case strings.HasPrefix(r.URL.Path, "/schedule/"):
		h.Navigate(w, r)
	case r.URL.Path == "/games":
		h.Games(w, r)
	case strings.HasPrefix(r.URL.Path, "/games/"):
		h.GameByID(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Schedule returns the current view.
func (h *Handler) Schedule(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, present.Build(h.ctrl.State(), h.ctrl.Now()), h.logger)
}

// Navigate handles POST /schedule/{next,prev,today,reload,date}. Each action loads the new
// date before responding; a failed load still answers 200 with the fallback view.
func (h *Handler) Navigate(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodPost {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	ctx := r.Context()
	logger := loggerFromContext(r, h.logger)

	var (
		state schedule.State
		err   error
	)
	switch action := strings.TrimPrefix(r.URL.Path, "/schedule/"); action {
	case "next":
		state, err = h.ctrl.Navigate(ctx, 1)
	case "prev":
		state, err = h.ctrl.Navigate(ctx, -1)
	case "today":
		state, err = h.ctrl.Today(ctx)
	case "reload":
		state, err = h.ctrl.Load(ctx)
	case "date":
		loc := h.ctrl.State().Date.Location()
		day, perr := timeutil.ParseDateIn(r.URL.Query().Get("date"), loc)
		if perr != nil {
			writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", h.logger)
			return
		}
		state, err = h.ctrl.SetDate(ctx, day)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
		return
	}
	if err != nil && logger != nil {
		logger.Warn("schedule load served fallback", "date", state.DateString(), "err", err)
	}
	writeJSON(w, nethttp.StatusOK, present.Build(state, h.ctrl.Now()), h.logger)
}

// Games returns the current game list, optionally filtered by ?team=.
func (h *Handler) Games(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	state := h.ctrl.State()
	list := filterByTeam(state.Games, r.URL.Query().Get("team"))
	if logger := loggerFromContext(r, h.logger); logger != nil {
		logger.Info("served games", "date", state.DateString(), "provider", state.Source, "count", len(list))
	}
	writeJSON(w, nethttp.StatusOK, gamesResponse{Date: state.DateString(), Games: list}, h.logger)
}

// GameByID returns a specific game from the current list.
func (h *Handler) GameByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/games")
	if path == "" || path == "/" {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
		return
	}

	id, err := url.PathUnescape(strings.TrimPrefix(path, "/"))
	if err != nil || id == "" || strings.ContainsAny(id, " \t/") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
		return
	}

	game, ok := h.ctrl.State().Game(id)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, game, h.logger)
}
