// Package poller refreshes today's schedule on a fixed period.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/preston-bernstein/nba-schedule-service/internal/logging"
	"github.com/preston-bernstein/nba-schedule-service/internal/metrics"
)

const (
	defaultInterval = 30 * time.Second
	readyFailures   = 3
)

// Ticker is refreshed on every cycle. ran is false when the tick had nothing to do.
type Ticker interface {
	Tick(ctx context.Context) (ran bool, err error)
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailures
}

// Poller runs Ticker.Tick as a singleton gocron duration job.
type Poller struct {
	target   Ticker
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	startMu   sync.Mutex
	scheduler gocron.Scheduler
	cancel    context.CancelFunc

	statusMu sync.RWMutex
	status   Status
}

// New constructs a Poller. A non-positive interval uses 30s.
func New(target Ticker, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		target:   target,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
	}
}

// Start schedules the refresh job, running the first tick immediately. It is a no-op
// when already started.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.scheduler != nil {
		return
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		logging.Error(p.logger, "poller scheduler init failed", err)
		return
	}
	jobCtx, cancel := context.WithCancel(ctx)
	_, err = s.NewJob(
		gocron.DurationJob(p.interval),
		gocron.NewTask(func() { p.runOnce(jobCtx) }),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		cancel()
		_ = s.Shutdown()
		logging.Error(p.logger, "poller job registration failed", err)
		return
	}

	p.scheduler = s
	p.cancel = cancel
	s.Start()
	logging.Info(p.logger, "poller started", logging.FieldDurationMS, p.interval.Milliseconds())
}

// Stop cancels in-flight ticks and shuts the scheduler down.
func (p *Poller) Stop(ctx context.Context) error {
	p.startMu.Lock()
	s, cancel := p.scheduler, p.cancel
	p.scheduler, p.cancel = nil, nil
	p.startMu.Unlock()
	if s == nil {
		return nil
	}
	cancel()

	done := make(chan error, 1)
	go func() { done <- s.Shutdown() }()
	select {
	case err := <-done:
		logging.Info(p.logger, "poller stopped")
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Poller) runOnce(ctx context.Context) {
	if ctx.Err() != nil || p.target == nil {
		return
	}
	start := p.now()
	ran, err := p.target.Tick(ctx)
	if !ran {
		return
	}
	elapsed := p.now().Sub(start)
	p.metrics.RecordPollerCycle(elapsed, err)
	if err != nil {
		p.recordFailure(err, start)
		logging.Warn(p.logger, "poller refresh failed", logging.FieldDurationMS, elapsed.Milliseconds(), "err", err)
		return
	}
	p.recordSuccess(start)
	if p.logger != nil {
		p.logger.Debug("poller refreshed schedule", logging.FieldDurationMS, elapsed.Milliseconds())
	}
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastAttempt = at
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// MarkSuccess records a load performed outside the poller, such as the initial load or
// a user navigation back to today.
func (p *Poller) MarkSuccess(at time.Time) {
	p.recordSuccess(at)
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
