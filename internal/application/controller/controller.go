// Package controller drives a spin round through Start, Spin, Decision and
// Reward or GameOver, and announces milestones on the event dispatcher.
//
// Delays are not suspensions: each timed state leaves one pending
// continuation that the host advances with Tick. Any transition replaces the
// pending continuation, so at most one is ever live.
package controller

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/younwookim/spinner/internal/application/event"
	"github.com/younwookim/spinner/internal/application/state"
	"github.com/younwookim/spinner/internal/infrastructure/config"
	"go.uber.org/zap"
)

// OutcomeSource is the reward collaborator that decides whether a spin hit a bomb
type OutcomeSource interface {
	// SubscribeOutcome registers fn for every decided outcome and returns the
	// function that removes it.
	SubscribeOutcome(fn func(isBoom bool)) (unsubscribe func())
}

type continuation struct {
	remaining time.Duration
	resume    func()
}

// Controller owns the round state, the successful-spin counter and the latest outcome
type Controller struct {
	timing     config.TimingConfig
	milestones config.MilestonesConfig
	events     *event.Dispatcher
	source     OutcomeSource
	log        *zap.Logger

	state           state.GameState
	successfulSpins int
	isBoom          atomic.Bool

	pending *continuation
	gen     uint64 // bumped by every transition; stale handlers compare against it

	unsubscribe func()
	destroyed   bool
}

// New creates a controller in the Start state with a zero counter.
// source may be nil when outcomes are pushed through OnOutcomeDecided directly.
func New(cfg *config.GameConfig, events *event.Dispatcher, source OutcomeSource, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		timing:     cfg.Timing,
		milestones: cfg.Milestones,
		events:     events,
		source:     source,
		log:        log.Named("controller"),
		state:      state.StateStart,
	}
}

// CurrentState returns the active state
func (c *Controller) CurrentState() state.GameState {
	return c.state
}

// SuccessfulSpins returns the number of non-boom spins since the last GameOver
func (c *Controller) SuccessfulSpins() int {
	return c.successfulSpins
}

// Pending returns the time left before the current timed state advances
func (c *Controller) Pending() (remaining time.Duration, ok bool) {
	if c.pending == nil {
		return 0, false
	}
	return c.pending.remaining, true
}

// Destroyed reports whether Destroy has been called
func (c *Controller) Destroyed() bool {
	return c.destroyed
}

// OnOutcomeDecided stores the latest outcome. It is read once, when Decision times out;
// earlier values are overwritten. Safe to call from any goroutine.
func (c *Controller) OnOutcomeDecided(isBoom bool) {
	c.isBoom.Store(isBoom)
}

// RequestSpin moves Start to Spin. It reports false and does nothing in any other state.
func (c *Controller) RequestSpin() bool {
	if c.destroyed || c.state != state.StateStart {
		return false
	}
	c.TransitionTo(state.StateSpin)
	return true
}

// TransitionTo enters s and runs its entry handler.
// A value outside the enumerated states is a programming error and panics
// with an error wrapping state.ErrInvalidState, even after Destroy.
func (c *Controller) TransitionTo(s state.GameState) {
	if !s.Valid() {
		panic(fmt.Errorf("transition to %d: %w", int(s), state.ErrInvalidState))
	}
	if c.destroyed {
		c.log.Warn("transition on destroyed controller ignored", zap.Stringer("to", s))
		return
	}

	c.pending = nil
	c.gen++
	gen := c.gen

	c.log.Debug("transition",
		zap.Stringer("from", c.state),
		zap.Stringer("to", s),
		zap.Int("successfulSpins", c.successfulSpins))
	c.state = s

	switch s {
	case state.StateStart:
		c.handleStart(gen)
	case state.StateSpin:
		c.handleSpin(gen)
	case state.StateDecision:
		c.handleDecision(gen)
	case state.StateReward:
		c.handleReward(gen)
	case state.StateGameOver:
		c.handleGameOver(gen)
	}
}

// Tick advances the pending continuation by dt. Continuations that fall due
// resume in order, and leftover time carries into the next scheduled delay.
func (c *Controller) Tick(dt time.Duration) {
	for !c.destroyed && c.pending != nil {
		p := c.pending
		if dt < p.remaining {
			p.remaining -= dt
			return
		}
		dt -= p.remaining
		c.pending = nil
		p.resume()
	}
}

// Enable subscribes to the outcome source. Calling it again while enabled is a no-op.
func (c *Controller) Enable() {
	if c.destroyed || c.unsubscribe != nil || c.source == nil {
		return
	}
	c.unsubscribe = c.source.SubscribeOutcome(c.OnOutcomeDecided)
}

// Disable releases the outcome subscription. Safe to call repeatedly.
func (c *Controller) Disable() {
	if c.unsubscribe == nil {
		return
	}
	c.unsubscribe()
	c.unsubscribe = nil
}

// Destroy disables the controller and drops any pending continuation.
// Later Tick and TransitionTo calls are ignored.
func (c *Controller) Destroy() {
	if c.destroyed {
		return
	}
	c.Disable()
	c.pending = nil
	c.gen++
	c.destroyed = true
	c.log.Debug("destroyed", zap.Stringer("state", c.state))
}

func (c *Controller) handleStart(gen uint64) {
	c.fire(event.SpinComplete)
	if gen != c.gen {
		return
	}
	if t, ok := Milestone(c.successfulSpins, c.milestones); ok {
		c.fire(t)
	}
}

func (c *Controller) handleSpin(gen uint64) {
	c.schedule(gen, c.timing.Spin, func() {
		c.TransitionTo(state.StateDecision)
	})
}

func (c *Controller) handleDecision(gen uint64) {
	c.schedule(gen, c.timing.Decision, func() {
		if c.isBoom.Load() {
			c.TransitionTo(state.StateGameOver)
			return
		}
		c.TransitionTo(state.StateReward)
	})
}

func (c *Controller) handleReward(gen uint64) {
	c.successfulSpins++
	c.fire(event.RewardDecided)
	if gen != c.gen {
		return
	}
	c.fire(event.SuccessfulSpin)
	c.schedule(gen, c.timing.Reward, func() {
		c.TransitionTo(state.StateStart)
	})
}

func (c *Controller) handleGameOver(gen uint64) {
	c.successfulSpins = 0
	c.fire(event.RewardDecided)
	c.schedule(gen, c.timing.GameOver, func() {
		c.TransitionTo(state.StateStart)
	})
}

// schedule installs the continuation unless a listener already moved the controller on
func (c *Controller) schedule(gen uint64, d time.Duration, resume func()) {
	if gen != c.gen {
		return
	}
	c.pending = &continuation{remaining: d, resume: resume}
}

func (c *Controller) fire(t event.Type) {
	if c.events == nil {
		return
	}
	c.events.Dispatch(event.Event{Type: t})
}
