package dismiss

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Reason identifies the trigger that dismissed the dialog.
type Reason int

const (
	// ReasonNone means the dialog has not been dismissed.
	ReasonNone Reason = iota
	// ReasonClick is a pointer button release on the window.
	ReasonClick
	// ReasonTimeout is the configured timeout elapsing.
	ReasonTimeout
	// ReasonSignal is SIGINT/SIGTERM or an interrupt from the terminal.
	ReasonSignal
	// ReasonRemote is a Dismiss call over D-Bus.
	ReasonRemote
	// ReasonWatch is a change to the watched dismiss file.
	ReasonWatch
	// ReasonError is the event loop failing unexpectedly.
	ReasonError
)

// String returns the string representation of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonClick:
		return "click"
	case ReasonTimeout:
		return "timeout"
	case ReasonSignal:
		return "signal"
	case ReasonRemote:
		return "remote"
	case ReasonWatch:
		return "watch"
	case ReasonError:
		return "error"
	default:
		return "unknown"
	}
}

// State is the dismissal state as seen by callers.
type State int32

const (
	// StateRunning means no trigger has fired yet.
	StateRunning State = iota
	// StateDismissed means a trigger won the gate. Teardown may still be in
	// progress until Done is closed.
	StateDismissed
)

// dismissing is held while the winning trigger runs teardown.
const dismissing int32 = -1

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

// TeardownFunc releases dialog resources. It runs exactly once.
type TeardownFunc func(reason Reason) error

// Controller owns the one-shot transition from running to dismissed.
type Controller struct {
	state    atomic.Int32
	teardown TeardownFunc
	logger   *slog.Logger

	mu    sync.Mutex
	timer *time.Timer
	hooks []func(Reason)

	// Written by the winning trigger before done is closed.
	reason Reason
	err    error
	done   chan struct{}
}

// NewController creates a controller that calls teardown on the first dismissal.
func NewController(teardown TeardownFunc, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if teardown == nil {
		teardown = func(Reason) error { return nil }
	}
	return &Controller{
		teardown: teardown,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// OnDismiss registers fn to run in the winning trigger before teardown.
func (c *Controller) OnDismiss(fn func(Reason)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, fn)
}

// Start arms the timeout. A timeout of zero or less means the dialog waits for
// another trigger indefinitely.
func (c *Controller) Start(timeout time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if State(c.state.Load()) != StateRunning || c.timer != nil {
		return
	}
	if timeout <= 0 {
		c.logger.Debug("no timeout configured, waiting for dismissal")
		return
	}

	c.timer = time.AfterFunc(timeout, func() {
		c.Dismiss(ReasonTimeout)
	})
	c.logger.Debug("timeout armed", "timeout", timeout)
}

// TimerArmed reports whether Start armed a timeout.
func (c *Controller) TimerArmed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

// Dismiss moves the controller out of the running state and runs the teardown.
// Only the first call does anything; it returns true. Every later call,
// including concurrent ones, returns false without side effects.
func (c *Controller) Dismiss(reason Reason) bool {
	if !c.state.CompareAndSwap(int32(StateRunning), dismissing) {
		c.logger.Debug("dismissal ignored, already dismissed", "reason", reason)
		return false
	}

	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
	}
	hooks := c.hooks
	c.mu.Unlock()

	c.logger.Debug("dismissing dialog", "reason", reason)
	for _, hook := range hooks {
		hook(reason)
	}

	err := c.teardown(reason)
	if err != nil {
		c.logger.Warn("teardown reported an error", "reason", reason, "error", err)
	}

	c.reason = reason
	c.err = err
	c.state.Store(int32(StateDismissed))
	close(c.done)
	return true
}

// State returns the current state. The teardown window is reported as dismissed.
func (c *Controller) State() State {
	if c.state.Load() == dismissing {
		return StateDismissed
	}
	return State(c.state.Load())
}

// Done is closed once the teardown has finished.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the teardown has finished or ctx is cancelled.
// It returns the winning reason and the teardown error.
func (c *Controller) Wait(ctx context.Context) (Reason, error) {
	select {
	case <-c.done:
		return c.reason, c.err
	case <-ctx.Done():
		return ReasonNone, ctx.Err()
	}
}

// Reason returns the winning reason, or ReasonNone before teardown finished.
func (c *Controller) Reason() Reason {
	select {
	case <-c.done:
		return c.reason
	default:
		return ReasonNone
	}
}
