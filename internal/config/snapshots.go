package config

import "time"

// SnapshotConfig controls the on-disk cache of past-date schedules. BackfillDays past
// dates are fetched at startup so recent history opens from disk.
type SnapshotConfig struct {
	Enabled          bool          `envconfig:"SNAPSHOTS_ENABLED" default:"true"`
	Dir              string        `envconfig:"SNAPSHOT_DIR" default:"data/snapshots"`
	RetentionDays    int           `envconfig:"SNAPSHOT_RETENTION_DAYS" default:"30"`
	BackfillDays     int           `envconfig:"SNAPSHOT_BACKFILL_DAYS" default:"3"`
	BackfillInterval time.Duration `envconfig:"SNAPSHOT_BACKFILL_INTERVAL" default:"2s"`
}
