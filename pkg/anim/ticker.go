package anim

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/harmonica"
)

// DefaultInterval is the time between two ticks.
const DefaultInterval = 30 * time.Millisecond

// IntervalForFPS returns the tick interval for a frame rate.
// Non-positive rates fall back to DefaultInterval.
func IntervalForFPS(fps int) time.Duration {
	if fps <= 0 {
		return DefaultInterval
	}
	return time.Duration(harmonica.FPS(fps) * float64(time.Second))
}

// Ticker is a source of ticks for a Scheduler.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

// NewTimeTicker wraps a time.Ticker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{time.NewTicker(d)}
}

type timeTicker struct {
	*time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.Ticker.C }

// ManualTicker fires only when Tick is called. It can be handed to any
// number of schedulers in turn; Stop does not close it.
type ManualTicker struct {
	c     chan time.Time
	now   time.Time
	stops atomic.Int64
}

// NewManualTicker creates a ManualTicker with a virtual clock at start.
func NewManualTicker(start time.Time) *ManualTicker {
	return &ManualTicker{c: make(chan time.Time), now: start}
}

// C implements Ticker.
func (m *ManualTicker) C() <-chan time.Time { return m.c }

// Stop implements Ticker.
func (m *ManualTicker) Stop() { m.stops.Add(1) }

// Stops returns how many times Stop was called.
func (m *ManualTicker) Stops() int { return int(m.stops.Load()) }

// Tick advances the virtual clock by d and delivers one tick. It blocks
// until a running task receives it or ctx is done, and reports whether the
// tick was delivered. Tick must not be called concurrently.
func (m *ManualTicker) Tick(ctx context.Context, d time.Duration) bool {
	m.now = m.now.Add(d)
	select {
	case m.c <- m.now:
		return true
	case <-ctx.Done():
		return false
	}
}

// Func returns a TickerFunc that always hands out m.
func (m *ManualTicker) Func() TickerFunc {
	return func(time.Duration) Ticker { return m }
}
