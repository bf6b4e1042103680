package handlers

import (
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/logging"
	"github.com/preston-bernstein/nba-schedule-service/internal/present"
)

const eventKeepAlive = 25 * time.Second

// Events streams the view as server-sent events: once on connect, then after every
// state change until the client goes away.
func (h *Handler) Events(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	rc := nethttp.NewResponseController(w)
	// Streams outlive the server write timeout.
	_ = rc.SetWriteDeadline(time.Time{})

	updates, unsubscribe := h.ctrl.Subscribe()
	defer unsubscribe()

	hdr := w.Header()
	hdr.Set("Content-Type", "text/event-stream")
	hdr.Set("Cache-Control", "no-cache")
	hdr.Set("Connection", "keep-alive")
	w.WriteHeader(nethttp.StatusOK)

	if err := h.writeEvent(w, present.Build(h.ctrl.State(), h.ctrl.Now())); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		logging.Warn(loggerFromContext(r, h.logger), "event stream flush failed", "err", err)
		return
	}

	keepAlive := time.NewTicker(eventKeepAlive)
	defer keepAlive.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
		case state, ok := <-updates:
			if !ok {
				return
			}
			if err := h.writeEvent(w, present.Build(state, h.ctrl.Now())); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func (h *Handler) writeEvent(w nethttp.ResponseWriter, view present.View) error {
	data, err := jsonAPI.Marshal(view)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("failed to encode event", "err", err)
		}
		return err
	}
	_, err = fmt.Fprintf(w, "event: schedule\ndata: %s\n\n", data)
	return err
}
