package timectrl

import (
	"sync"
	"time"
)

// ReplayClock is an interface for reading replay time. Evaluation drivers
// (e.g. the series replayer in core) depend on this abstraction rather
// than the concrete controller, which keeps them testable with a fixed
// clock.
type ReplayClock interface {
	// Now returns the current replay time.
	Now() time.Time
}

// Mode describes how the Controller advances replay time.
type Mode int

const (
	// RealTime advances replay time in step with wall-clock time, for
	// shadowing a live telemetry feed.
	RealTime Mode = iota
	// Accelerated advances as quickly as the loop can run while still
	// stepping by Tick, for replaying archived series.
	Accelerated
)

// Controller drives replay time across a recorded measurement window and
// notifies registered listeners on every tick. It implements ReplayClock.
type Controller struct {
	mu        sync.RWMutex
	StartTime time.Time
	Tick      time.Duration
	Mode      Mode

	currentTime time.Time

	listeners []func(time.Time)
}

// NewController constructs a controller positioned at start.
func NewController(start time.Time, tick time.Duration, mode Mode) *Controller {
	return &Controller{
		StartTime:   start,
		Tick:        tick,
		Mode:        mode,
		currentTime: start,
	}
}

// Now returns the current replay time. Implements ReplayClock.
func (c *Controller) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentTime
}

// SetTime jumps the controller to a specific replay time without firing
// listeners. Useful for seeking into the middle of an archived window.
func (c *Controller) SetTime(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = t
}

// Elapsed returns how much replay time has passed since StartTime.
func (c *Controller) Elapsed() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentTime.Sub(c.StartTime)
}

// AddListener registers a callback invoked on every tick with the new
// replay time. Listeners must be registered before Start.
func (c *Controller) AddListener(fn func(time.Time)) {
	c.listeners = append(c.listeners, fn)
}

// Start runs the controller for the given replay duration in a separate
// goroutine and returns a channel that is closed when it finishes. In
// RealTime mode each tick waits out Tick on the wall clock; Accelerated
// mode ticks as fast as the loop allows.
func (c *Controller) Start(duration time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		c.mu.Lock()
		replayTime := c.StartTime
		c.currentTime = replayTime
		c.mu.Unlock()

		elapsed := time.Duration(0)

		var ticker *time.Ticker
		if c.Mode == RealTime {
			ticker = time.NewTicker(c.Tick)
			defer ticker.Stop()
		}

		for {
			if duration > 0 && elapsed >= duration {
				return
			}

			if ticker != nil {
				<-ticker.C
			}
			replayTime = replayTime.Add(c.Tick)
			elapsed += c.Tick

			c.mu.Lock()
			c.currentTime = replayTime
			c.mu.Unlock()

			for _, fn := range c.listeners {
				fn(replayTime)
			}
		}
	}()
	return done
}
