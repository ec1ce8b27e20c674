// Package controller implements the motion and grounding rules of a 2D
// platformer character: a ground probe against the physics world and a
// motion policy that turns intent into a velocity each fixed tick.
package controller

import (
	"log/slog"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is the rigid body a controller drives.
type Body interface {
	Position() mgl64.Vec2
	Velocity() mgl64.Vec2
	SetVelocity(v mgl64.Vec2)
	GravityScale() float64
	// LowerBoundY is the world-space y of the bottom of the body's collider.
	LowerBoundY() float64
}

// Environment is the physics world as seen by a controller.
type Environment interface {
	Overlapper
	Gravity() mgl64.Vec2
}

// Controller ties a Config and a State to a body. It is safe for concurrent
// use: intent may be written from an input goroutine while Tick runs on the
// physics goroutine.
type Controller struct {
	mu    sync.Mutex
	cfg   Config
	state State
	log   *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for grounding transitions and tick errors.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a controller. It fails if cfg is invalid.
func New(cfg Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{cfg: cfg, log: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the current configuration.
func (c *Controller) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// SetConfig replaces the configuration. The change applies from the next
// tick. An invalid cfg is rejected and the current one kept.
func (c *Controller) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()
	return nil
}

func (c *Controller) update(fn func(cfg *Config)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.cfg
	fn(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	c.cfg = next
	return nil
}

func (c *Controller) SetSpeed(speed float64) error {
	return c.update(func(cfg *Config) { cfg.Speed = speed })
}

func (c *Controller) SetJumpHeight(height float64) error {
	return c.update(func(cfg *Config) { cfg.JumpHeight = height })
}

func (c *Controller) SetGroundMask(mask LayerMask) error {
	return c.update(func(cfg *Config) { cfg.GroundMask = mask })
}

func (c *Controller) SetProbeShape(shape ProbeShape) error {
	return c.update(func(cfg *Config) { cfg.ProbeShape = shape })
}

func (c *Controller) SetProbeSize(size float64) error {
	return c.update(func(cfg *Config) { cfg.ProbeSize = size })
}

// SetMovementDirection sets the horizontal intent used by following ticks.
func (c *Controller) SetMovementDirection(dir float64) {
	c.mu.Lock()
	c.state.MovementDirection = dir
	c.mu.Unlock()
}

func (c *Controller) MovementDirection() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.MovementDirection
}

// Jump requests a jump on the next tick. It does nothing while airborne.
func (c *Controller) Jump() {
	c.mu.Lock()
	c.state.RequestJump()
	c.mu.Unlock()
}

// IsGrounded returns the result of the last ground probe.
func (c *Controller) IsGrounded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Grounded
}

// JumpRequested reports whether a jump is waiting for the next tick.
func (c *Controller) JumpRequested() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.JumpRequested
}

// State returns a copy of the controller state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Tick runs one fixed step: probe the ground, compute the velocity and assign
// it to body. The assigned velocity is returned. A non-nil error means a
// pending jump could not be computed; the velocity is still applied without
// it.
func (c *Controller) Tick(body Body, env Environment) (mgl64.Vec2, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cfg := c.cfg
	grounded := ProbeGround(cfg, Feet(body), env)
	if grounded != c.state.Grounded {
		c.log.Debug("controller: grounding changed", "phase", State{Grounded: grounded}.Phase())
	}
	c.state.Grounded = grounded

	gravity := env.Gravity()
	vel, err := ComputeVelocity(cfg, &c.state, BodyState{
		VerticalVelocity: body.Velocity().Y(),
		GravityY:         gravity.Y(),
		GravityScale:     body.GravityScale(),
	})
	if err != nil {
		c.log.Warn("controller: jump dropped", "err", err)
	}
	body.SetVelocity(vel)
	return vel, err
}
