package snapshots

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-service/internal/logging"
	"github.com/preston-bernstein/nba-schedule-service/internal/timeutil"
)

// DayFetcher loads the games of one calendar day.
type DayFetcher interface {
	FetchGames(ctx context.Context, day time.Time) ([]games.Game, error)
}

// BackfillConfig controls the startup backfill of recent past dates.
type BackfillConfig struct {
	Days     int
	Interval time.Duration
	Location *time.Location
}

// Backfiller writes snapshots for recent past dates that are missing on disk.
type Backfiller struct {
	fetcher DayFetcher
	store   *FSStore
	writer  *Writer
	cfg     BackfillConfig
	logger  *slog.Logger
	now     func() time.Time
}

// NewBackfiller constructs a Backfiller. Days <= 0 disables it.
func NewBackfiller(fetcher DayFetcher, writer *Writer, cfg BackfillConfig, logger *slog.Logger) *Backfiller {
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Backfiller{
		fetcher: fetcher,
		store:   NewFSStore(writer.BasePath()),
		writer:  writer,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// Run fetches each missing past date, newest first, spaced by Interval. Callers
// should run this in a goroutine.
func (b *Backfiller) Run(ctx context.Context) {
	if b == nil || b.fetcher == nil || b.writer == nil || b.cfg.Days <= 0 {
		return
	}
	days := b.missingDays(b.now())
	logging.Info(b.logger, "snapshot backfill starting",
		logging.FieldCount, len(days),
		"interval", b.cfg.Interval.String(),
	)
	for i, day := range days {
		if ctx.Err() != nil {
			return
		}
		b.fetchAndWrite(ctx, day)
		if i < len(days)-1 {
			b.sleep(ctx, b.cfg.Interval)
		}
	}
}

func (b *Backfiller) missingDays(now time.Time) []time.Time {
	today := timeutil.MiddayOf(now.In(b.cfg.Location))
	var out []time.Time
	for i := 1; i <= b.cfg.Days; i++ {
		day := timeutil.AddDays(today, -i)
		if !b.store.Has(day.Format(timeutil.DateLayout)) {
			out = append(out, day)
		}
	}
	return out
}

func (b *Backfiller) fetchAndWrite(ctx context.Context, day time.Time) {
	date := day.Format(timeutil.DateLayout)
	start := time.Now()
	list, err := b.fetcher.FetchGames(ctx, day)
	if err != nil {
		logging.Warn(b.logger, "snapshot backfill fetch failed", logging.FieldDate, date, "err", err)
		return
	}
	if !Settled(list) {
		logging.Info(b.logger, "snapshot backfill skipped unsettled day", logging.FieldDate, date, logging.FieldCount, len(list))
		return
	}
	if err := b.writer.WriteDay(date, games.NewDaySchedule(date, list)); err != nil {
		logging.Warn(b.logger, "snapshot backfill write failed", logging.FieldDate, date, "err", err)
		return
	}
	logging.Info(b.logger, "snapshot written",
		logging.FieldDate, date,
		logging.FieldCount, len(list),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (b *Backfiller) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
