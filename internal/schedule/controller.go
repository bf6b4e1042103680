package schedule

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nba-schedule-service/internal/logging"
	"github.com/preston-bernstein/nba-schedule-service/internal/metrics"
	"github.com/preston-bernstein/nba-schedule-service/internal/providers"
	"github.com/preston-bernstein/nba-schedule-service/internal/snapshots"
	"github.com/preston-bernstein/nba-schedule-service/internal/timeutil"
)

// SnapshotWriter persists settled past days.
type SnapshotWriter interface {
	WriteDay(date string, day games.DaySchedule) error
}

// Sources pairs the provider used for today with the one used for other dates.
// They may be the same provider.
type Sources struct {
	Live       providers.GameProvider
	Historical providers.GameProvider
}

// Options configures a Controller.
type Options struct {
	Sources   Sources
	Snapshots snapshots.Store
	Writer    SnapshotWriter
	// Fallback returns the placeholder list shown after a failed load.
	Fallback func() []games.Game
	Location *time.Location
	Logger   *slog.Logger
	Metrics  *metrics.Recorder
	Now      func() time.Time
}

// Controller serializes schedule state updates and dispatches loads by Mode.
type Controller struct {
	mu    sync.Mutex
	state State
	// rev increases with every state change; publishing never goes backwards.
	rev uint64

	sources   Sources
	snapshots snapshots.Store
	writer    SnapshotWriter
	fallback  func() []games.Game
	logger    *slog.Logger
	metrics   *metrics.Recorder
	now       func() time.Time

	subMu     sync.Mutex
	subs      map[int]chan State
	nextID    int
	published uint64
}

// NewController builds a Controller viewing today. Nothing is loaded until Load.
func NewController(opts Options) *Controller {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	fallback := opts.Fallback
	if fallback == nil {
		fallback = func() []games.Game { return []games.Game{} }
	}
	return &Controller{
		state:     NewState(now(), opts.Location),
		sources:   opts.Sources,
		snapshots: opts.Snapshots,
		writer:    opts.Writer,
		fallback:  fallback,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		now:       now,
		subs:      make(map[int]chan State),
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Now exposes the controller clock.
func (c *Controller) Now() time.Time {
	return c.now()
}

// Subscribe returns a channel that receives the state after every change. Slow
// receivers only see the latest state. Call the returned func to unsubscribe.
func (c *Controller) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)
	c.subMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = ch
	c.subMu.Unlock()

	return ch, func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
	}
}

// publish fans s out to subscribers unless a later revision was already sent.
func (c *Controller) publish(s State, rev uint64) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	if rev <= c.published {
		return
	}
	c.published = rev
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s.clone()
	}
}

// Load reloads the viewed date. The returned error describes a failed fetch; the
// state already holds the fallback list in that case.
func (c *Controller) Load(ctx context.Context) (State, error) {
	return c.load(ctx, false)
}

// Navigate moves the viewed date by days and loads it.
func (c *Controller) Navigate(ctx context.Context, days int) (State, error) {
	c.update(func(s State) State { return s.Navigate(days) })
	return c.load(ctx, false)
}

// SetDate jumps to day and loads it.
func (c *Controller) SetDate(ctx context.Context, day time.Time) (State, error) {
	c.update(func(s State) State { return s.SetDate(day) })
	return c.load(ctx, false)
}

// Today jumps back to the current day and loads it.
func (c *Controller) Today(ctx context.Context) (State, error) {
	return c.SetDate(ctx, c.now())
}

// Tick silently reloads while today is viewed and is a no-op otherwise. It reports
// whether a load ran.
func (c *Controller) Tick(ctx context.Context) (bool, error) {
	c.mu.Lock()
	mode := c.state.Mode(c.now())
	c.mu.Unlock()
	if mode != ModeToday {
		return false, nil
	}
	_, err := c.load(ctx, true)
	return true, err
}

func (c *Controller) update(fn func(State) State) {
	c.mu.Lock()
	c.state = fn(c.state)
	c.rev++
	s, rev := c.state.clone(), c.rev
	c.mu.Unlock()
	c.publish(s, rev)
}

func (c *Controller) load(ctx context.Context, silent bool) (State, error) {
	c.mu.Lock()
	next, seq := c.state.BeginLoad(silent)
	c.state = next
	day := next.Date
	mode := next.Mode(c.now())
	c.rev++
	begun, beginRev := next.clone(), c.rev
	c.mu.Unlock()
	if !silent {
		c.publish(begun, beginRev)
	}

	list, source, err := c.fetch(ctx, mode, day)

	c.mu.Lock()
	var applied bool
	if err != nil {
		c.state, applied = c.state.LoadFailed(seq, c.fallback(), c.now())
	} else {
		c.state, applied = c.state.LoadCompleted(seq, list, source, c.now())
	}
	if applied {
		c.rev++
	}
	out, rev := c.state.clone(), c.rev
	c.mu.Unlock()

	attrs := []any{
		logging.FieldDate, timeutil.FormatDate(day),
		logging.FieldMode, mode.String(),
		logging.FieldSeq, seq,
	}
	switch {
	case !applied:
		if c.logger != nil {
			c.logger.Debug("stale schedule load discarded", attrs...)
		}
		return out, err
	case err != nil:
		c.metrics.RecordFallback(fallbackReason(err))
		logging.Warn(c.logger, "schedule load failed; showing fallback", append(attrs, "err", err)...)
	default:
		logging.Info(c.logger, "schedule loaded", append(attrs, logging.FieldCount, len(list), logging.FieldProvider, source)...)
		c.persist(mode, source, day, list)
	}
	c.publish(out, rev)
	return out, err
}

// fetch serves past dates from snapshots when present, otherwise from the provider
// for the mode.
func (c *Controller) fetch(ctx context.Context, mode Mode, day time.Time) ([]games.Game, string, error) {
	if mode == ModePastDate && c.snapshots != nil {
		if snap, err := c.snapshots.LoadDay(timeutil.FormatDate(day)); err == nil {
			return snap.Games, sourceSnapshot, nil
		} else if !errors.Is(err, snapshots.ErrNotFound) {
			logging.Warn(c.logger, "snapshot read failed", logging.FieldDate, timeutil.FormatDate(day), "err", err)
		}
	}

	provider := c.sources.Historical
	at := day
	if mode == ModeToday {
		provider = c.sources.Live
		at = c.now()
	}
	if provider == nil {
		return nil, "", providers.ErrProviderUnavailable
	}
	list, err := provider.FetchGames(ctx, at)
	if err != nil {
		return nil, "", err
	}
	return list, sourceName(provider, mode), nil
}

func (c *Controller) persist(mode Mode, source string, day time.Time, list []games.Game) {
	if mode != ModePastDate || source == sourceSnapshot || c.writer == nil || !snapshots.Settled(list) {
		return
	}
	date := timeutil.FormatDate(day)
	if err := c.writer.WriteDay(date, games.NewDaySchedule(date, list)); err != nil {
		logging.Warn(c.logger, "snapshot write failed", logging.FieldDate, date, "err", err)
	}
}

const sourceSnapshot = "snapshot"

type named interface {
	Name() string
}

func sourceName(p providers.GameProvider, mode Mode) string {
	if n, ok := p.(named); ok && n.Name() != "" {
		return n.Name()
	}
	if mode == ModeToday {
		return "live"
	}
	return "historical"
}

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, providers.ErrProviderUnavailable):
		return "unavailable"
	}
	if _, ok := providers.AsParseError(err); ok {
		return "parse"
	}
	if _, ok := providers.AsFetchError(err); ok {
		return "fetch"
	}
	return "other"
}
