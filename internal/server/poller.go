package server

import (
	"context"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/poller"
)

// Poller defines the minimal poller behavior needed by the server.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

// successMarker is implemented by pollers that accept loads performed elsewhere.
type successMarker interface {
	MarkSuccess(at time.Time)
}
