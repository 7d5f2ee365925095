package game

import (
	"context"
	"time"
)

// Clock drives the simulation at a fixed logical timestep. Every tick the
// step callback receives the constant FixedDelta, regardless of how long
// the tick actually took: under scheduling hiccups the simulation drifts
// from wall-clock time rather than exploding numerically.
type Clock struct {
	interval time.Duration
}

// NewClock creates a clock at the standard tick rate.
func NewClock() *Clock {
	return &Clock{interval: time.Second / TickRate}
}

// Run ticks step until ctx is cancelled. It blocks the calling goroutine;
// the session is single-threaded, so everything that touches it should
// happen inside step.
func (c *Clock) Run(ctx context.Context, step func(delta float64)) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			step(FixedDelta)
		}
	}
}
