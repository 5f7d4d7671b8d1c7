// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package timescale

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/jeranaias/devconsole/internal/easing"
)

// =============================================================================
// CONSTANTS & ERRORS
// =============================================================================

const (
	// DefaultFixedStep is the fixed simulation step at scale 1.
	DefaultFixedStep = 20 * time.Millisecond

	// DefaultTick is how often transitions update the scale.
	DefaultTick = 16 * time.Millisecond

	// MaxScale bounds bullet-time scales.
	MaxScale = 100.0

	// MaxDuration bounds hit-stop and transition lengths.
	MaxDuration = 24 * time.Hour
)

var (
	// ErrLocked is returned when the scale cannot change because the
	// controller is paused, in hit-stop or in bullet time.
	ErrLocked = errors.New("time scale is locked")

	// ErrNotInBulletTime is returned by EndBulletTime outside bullet time.
	ErrNotInBulletTime = errors.New("bullet time is not active")

	// ErrInvalidArgument is returned for negative durations or scales.
	ErrInvalidArgument = errors.New("invalid argument")
)

// State names the controller's current mode.
type State string

const (
	StateRunning    State = "running"
	StatePaused     State = "paused"
	StateHitStop    State = "hit-stop"
	StateBulletTime State = "bullet-time"
)

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns a simulation time scale. Scale 1 is real time, 0 is
// frozen. Hit-stop and bullet-time transitions run on their own goroutines
// and are cancelled by Unpause or Close.
type Controller struct {
	mu sync.Mutex

	scale     float64
	fixedStep time.Duration
	paused    bool
	hitStop   bool
	bullet    bool

	cancelHit    context.CancelFunc
	cancelBullet context.CancelFunc

	gameTime   time.Duration
	lastUpdate time.Time

	curve    easing.Func
	tick     time.Duration
	now      func() time.Time
	onChange func(scale float64)
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Controller.
type Option func(*Controller)

// WithFixedStep sets the fixed step at scale 1.
func WithFixedStep(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.fixedStep = d
		}
	}
}

// WithTick sets the transition update interval.
func WithTick(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.tick = d
		}
	}
}

// WithCurve sets the curve used by eased transitions.
func WithCurve(f easing.Func) Option {
	return func(c *Controller) {
		if f != nil {
			c.curve = f
		}
	}
}

// WithOnChange registers a callback invoked with every new scale. It is
// called with the controller lock held and must not call back into the
// controller.
func WithOnChange(fn func(scale float64)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a running controller at scale 1.
func New(opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		scale:     1,
		fixedStep: DefaultFixedStep,
		curve:     easing.InOutQuad,
		tick:      DefaultTick,
		now:       time.Now,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lastUpdate = c.now()
	return c
}

// =============================================================================
// QUERIES
// =============================================================================

// Scale returns the current time scale.
func (c *Controller) Scale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scale
}

// FixedStep returns the fixed simulation step scaled by the time scale.
func (c *Controller) FixedStep() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Duration(float64(c.fixedStep) * c.scale)
}

// State returns the current mode. Pause wins over hit-stop, which wins
// over bullet time.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	switch {
	case c.paused:
		return StatePaused
	case c.hitStop:
		return StateHitStop
	case c.bullet:
		return StateBulletTime
	default:
		return StateRunning
	}
}

// CanSetTimeScale reports whether pause, hit-stop and bullet time may
// start.
func (c *Controller) CanSetTimeScale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked() == StateRunning
}

// GameTime returns simulation time elapsed since New, i.e. wall time
// integrated over the time scale.
func (c *Controller) GameTime() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advanceLocked()
	return c.gameTime
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Pause freezes time.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkUnlockedLocked(); err != nil {
		return err
	}
	c.setScaleLocked(0)
	c.paused = true
	c.logger.Debug("Time paused")
	return nil
}

// Unpause cancels any hit-stop or bullet-time transition and returns to
// scale 1.
func (c *Controller) Unpause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTransitionsLocked()
	c.hitStop = false
	c.bullet = false
	c.paused = false
	c.setScaleLocked(1)
	c.logger.Debug("Time resumed")
}

// HitStop freezes time for d of wall time, then returns to scale 1.
func (c *Controller) HitStop(d time.Duration) error {
	if err := validate(d, 0); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkUnlockedLocked(); err != nil {
		return err
	}

	ctx := c.startLocked(&c.cancelHit)
	c.hitStop = true
	c.setScaleLocked(0)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		c.setScaleLocked(1)
		c.hitStop = false
		c.cancelHit()
		c.cancelHit = nil
	}()
	return nil
}

// StartBulletTime eases the scale from 1 down to target over d. With ease
// false the transition is linear. Bullet time lasts until EndBulletTime
// or Unpause.
func (c *Controller) StartBulletTime(d time.Duration, target float64, ease bool) error {
	if err := validate(d, target); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkUnlockedLocked(); err != nil {
		return err
	}

	c.bullet = true
	c.transitionLocked(d, 1, target, ease, false)
	return nil
}

// EndBulletTime eases the scale from `from` back to 1 over d and leaves
// bullet time when done.
func (c *Controller) EndBulletTime(d time.Duration, from float64, ease bool) error {
	if err := validate(d, from); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return fmt.Errorf("%w: %s", ErrLocked, StatePaused)
	}
	if !c.bullet {
		return ErrNotInBulletTime
	}

	c.transitionLocked(d, from, 1, ease, true)
	return nil
}

// SetCurve replaces the curve used by eased transitions.
func (c *Controller) SetCurve(f easing.Func) {
	if f == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.curve = f
}

// Wait blocks until every running transition has finished or been
// cancelled.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels running transitions and waits for them to exit.
func (c *Controller) Close() {
	c.cancel()
	c.wg.Wait()
}

// =============================================================================
// INTERNALS
// =============================================================================

func validate(d time.Duration, scale float64) error {
	if d < 0 || d > MaxDuration {
		return fmt.Errorf("%w: duration %v outside [0, %v]", ErrInvalidArgument, d, MaxDuration)
	}
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale < 0 || scale > MaxScale {
		return fmt.Errorf("%w: scale %g outside [0, %g]", ErrInvalidArgument, scale, MaxScale)
	}
	return nil
}

func (c *Controller) checkUnlockedLocked() error {
	if s := c.stateLocked(); s != StateRunning {
		return fmt.Errorf("%w: %s", ErrLocked, s)
	}
	return nil
}

// startLocked cancels the previous transition tracked by slot and returns
// the context for a new one.
func (c *Controller) startLocked(slot *context.CancelFunc) context.Context {
	if *slot != nil {
		(*slot)()
	}
	ctx, cancel := context.WithCancel(c.ctx)
	*slot = cancel
	return ctx
}

func (c *Controller) stopTransitionsLocked() {
	if c.cancelHit != nil {
		c.cancelHit()
		c.cancelHit = nil
	}
	c.stopBulletLocked()
}

func (c *Controller) stopBulletLocked() {
	if c.cancelBullet != nil {
		c.cancelBullet()
		c.cancelBullet = nil
	}
}

// transitionLocked runs a bullet-time scale ramp on a goroutine.
func (c *Controller) transitionLocked(d time.Duration, from, to float64, ease, leave bool) {
	ctx := c.startLocked(&c.cancelBullet)
	curve := easing.Linear
	if ease {
		curve = c.curve
	}

	finish := func() {
		c.setScaleLocked(to)
		if leave {
			c.bullet = false
		}
		c.stopBulletLocked()
	}

	if d == 0 {
		finish()
		return
	}
	c.setScaleLocked(from)

	start := c.now()
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(c.tick)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			c.mu.Lock()
			if ctx.Err() != nil {
				c.mu.Unlock()
				return
			}
			t := float64(c.now().Sub(start)) / float64(d)
			if t >= 1 {
				finish()
				c.mu.Unlock()
				return
			}
			c.setScaleLocked(easing.Lerp(from, to, curve(t)))
			c.mu.Unlock()
		}
	}()
}

func (c *Controller) advanceLocked() {
	now := c.now()
	c.gameTime += time.Duration(float64(now.Sub(c.lastUpdate)) * c.scale)
	c.lastUpdate = now
}

func (c *Controller) setScaleLocked(scale float64) {
	c.advanceLocked()
	c.scale = scale
	if c.onChange != nil {
		c.onChange(scale)
	}
}
