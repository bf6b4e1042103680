package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/config"
	"github.com/preston-bernstein/nba-schedule-service/internal/providers"
	"github.com/preston-bernstein/nba-schedule-service/internal/snapshots"
)

type snapshotComponents struct {
	store      snapshots.Store
	writer     *snapshots.Writer
	backfiller *snapshots.Backfiller
}

// run backfills missing recent days; it returns immediately when snapshots are off.
func (c snapshotComponents) run(ctx context.Context) {
	if c.backfiller != nil {
		c.backfiller.Run(ctx)
	}
}

func buildSnapshots(cfg config.Config, historical providers.GameProvider, loc *time.Location, logger *slog.Logger) snapshotComponents {
	if !cfg.Snapshots.Enabled {
		return snapshotComponents{}
	}
	basePath := cfg.Snapshots.Dir
	writer := snapshots.NewWriter(basePath, cfg.Snapshots.RetentionDays)
	backfiller := snapshots.NewBackfiller(historical, writer, snapshots.BackfillConfig{
		Days:     cfg.Snapshots.BackfillDays,
		Interval: cfg.Snapshots.BackfillInterval,
		Location: loc,
	}, logger)

	return snapshotComponents{
		store:      snapshots.NewFSStore(basePath),
		writer:     writer,
		backfiller: backfiller,
	}
}
