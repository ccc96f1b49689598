package anim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/taigrr/glyphcube/pkg/math3d"
	"github.com/taigrr/glyphcube/pkg/render"
)

// ErrRunning is returned by Start when the scheduler already runs a task.
var ErrRunning = errors.New("scheduler already running")

// Publisher receives every frame a scheduler renders. It is called on the
// task goroutine and must not call back into the scheduler.
type Publisher func(*render.Frame)

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithInterval sets the time between ticks. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithTicker replaces the time.Ticker source, e.g. with a ManualTicker.
func WithTicker(f TickerFunc) Option {
	return func(s *Scheduler) {
		if f != nil {
			s.newTicker = f
		}
	}
}

// WithLogger sets a logger for this scheduler instead of the shared one.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStartAngles sets the angles the first task starts from.
func WithStartAngles(a math3d.Angles) Option {
	return func(s *Scheduler) {
		s.angles = a
	}
}

// Scheduler runs an Animation as a cancellable repeating task. At most one
// task runs at a time. Angles carry over from a stopped task to the next
// one; the configuration does not.
type Scheduler struct {
	interval  time.Duration
	newTicker TickerFunc
	publish   Publisher
	logger    *slog.Logger

	// opMu serializes Start, Stop and Reconfigure.
	opMu sync.Mutex

	// mu guards the fields below, which the task goroutine also writes.
	mu      sync.Mutex
	base    context.Context
	cfg     render.Config
	angles  math3d.Angles
	frames  uint64
	cancel  context.CancelFunc
	done    chan struct{}
	latest  *render.Frame
	running bool
}

// NewScheduler creates a stopped scheduler publishing to publish.
func NewScheduler(publish Publisher, opts ...Option) *Scheduler {
	s := &Scheduler{
		interval:  DefaultInterval,
		newTicker: NewTimeTicker,
		publish:   publish,
		logger:    Logger(),
		cfg:       render.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.publish == nil {
		s.publish = func(*render.Frame) {}
	}
	return s
}

// Start validates cfg and starts a task bound to it. The task ends when ctx
// is done or Stop is called. An invalid config never starts a task.
func (s *Scheduler) Start(ctx context.Context, cfg render.Config) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.Running() {
		return ErrRunning
	}
	return s.start(ctx, cfg)
}

// Stop cancels the running task and waits for it to exit. No frame is
// published after Stop returns. The angles are kept for the next task.
func (s *Scheduler) Stop() {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.stop()
}

// Reconfigure validates cfg, stops the current task and starts a new one
// bound to cfg, continuing from the stopped task's angles. If cfg is
// invalid the current task keeps running and the error is returned.
// A stopped scheduler is started.
func (s *Scheduler) Reconfigure(cfg render.Config) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := cfg.Validate(); err != nil {
		s.logger.Warn("reconfigure rejected", "error", err)
		return fmt.Errorf("reconfigure: %w", err)
	}

	s.stop()

	s.mu.Lock()
	ctx := s.base
	s.mu.Unlock()
	if ctx == nil || ctx.Err() != nil {
		ctx = context.Background()
	}

	s.logger.Debug("reconfigure", "config", cfg)
	return s.start(ctx, cfg)
}

// Running reports whether a task is running.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Config returns the configuration of the current or last task.
func (s *Scheduler) Config() render.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Angles returns the angles after the last completed tick.
func (s *Scheduler) Angles() math3d.Angles {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.angles
}

// Frames returns the total number of frames published.
func (s *Scheduler) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Latest returns the last published frame, or nil before the first tick.
func (s *Scheduler) Latest() *render.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// start must be called with opMu held and no task running.
func (s *Scheduler) start(ctx context.Context, cfg render.Config) error {
	s.mu.Lock()
	angles := s.angles
	s.mu.Unlock()

	a, err := NewAnimation(cfg, angles)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}

	taskCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	t := s.newTicker(s.interval)

	s.mu.Lock()
	if s.cancel != nil {
		// the previous task ended with its parent context
		s.cancel()
	}
	s.base = ctx
	s.cfg = cfg
	s.cancel = cancel
	s.done = done
	s.running = true
	s.mu.Unlock()

	s.logger.Debug("scheduler started", "interval", s.interval, "angles", angles)
	go s.run(taskCtx, a, t, done)
	return nil
}

// stop must be called with opMu held.
func (s *Scheduler) stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Debug("scheduler stopped", "angles", s.Angles(), "frames", s.Frames())
}

func (s *Scheduler) run(ctx context.Context, a *Animation, t Ticker, done chan struct{}) {
	defer close(done)
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C():
			f := a.Tick()

			s.mu.Lock()
			s.angles = a.Angles()
			s.frames++
			s.latest = f
			s.mu.Unlock()

			s.publish(f)
		}
	}
}
