package controller

import (
	"errors"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type fakeBody struct {
	pos     mgl64.Vec2
	vel     mgl64.Vec2
	scale   float64
	bottom  float64
	applied int
}

func (b *fakeBody) Position() mgl64.Vec2     { return b.pos }
func (b *fakeBody) Velocity() mgl64.Vec2     { return b.vel }
func (b *fakeBody) SetVelocity(v mgl64.Vec2) { b.vel = v; b.applied++ }
func (b *fakeBody) GravityScale() float64    { return b.scale }
func (b *fakeBody) LowerBoundY() float64     { return b.bottom }

type fakeEnv struct {
	gravity mgl64.Vec2
	ground  bool
	queries []OverlapQuery
}

func (e *fakeEnv) Gravity() mgl64.Vec2 { return e.gravity }

func (e *fakeEnv) Overlap(q OverlapQuery) bool {
	e.queries = append(e.queries, q)
	return e.ground
}

func newTestController(t *testing.T) *Controller {
	t.Helper()
	c, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Speed = -5
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestControllerInitialState(t *testing.T) {
	c := newTestController(t)
	if st := c.State(); st != (State{}) {
		t.Fatalf("expected zero state, got %+v", st)
	}
}

func TestControllerSetters(t *testing.T) {
	c := newTestController(t)

	tests := []struct {
		name    string
		set     func() error
		wantErr bool
	}{
		{"speed_ok", func() error { return c.SetSpeed(8) }, false},
		{"speed_zero", func() error { return c.SetSpeed(0) }, true},
		{"jump_ok", func() error { return c.SetJumpHeight(3) }, false},
		{"jump_negative", func() error { return c.SetJumpHeight(-1) }, true},
		{"probe_ok", func() error { return c.SetProbeSize(0.5) }, false},
		{"probe_zero", func() error { return c.SetProbeSize(0) }, true},
		{"shape_ok", func() error { return c.SetProbeShape(ProbeCircle) }, false},
		{"shape_bad", func() error { return c.SetProbeShape(ProbeShape(9)) }, true},
		{"mask_ok", func() error { return c.SetGroundMask(Layers(2, 4)) }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := c.Config()
			err := tc.set()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if c.Config() != before {
					t.Fatalf("rejected change must keep config, got %+v", c.Config())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}

	cfg := c.Config()
	if cfg.Speed != 8 || cfg.JumpHeight != 3 || cfg.ProbeSize != 0.5 || cfg.ProbeShape != ProbeCircle || cfg.GroundMask != Layers(2, 4) {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestControllerTick(t *testing.T) {
	t.Run("grounded_jump", func(t *testing.T) {
		c := newTestController(t)
		body := &fakeBody{pos: mgl64.Vec2{3, 1}, scale: 1, bottom: 0.5}
		env := &fakeEnv{gravity: mgl64.Vec2{0, -9.8}, ground: true}

		if _, err := c.Tick(body, env); err != nil {
			t.Fatalf("tick failed: %v", err)
		}
		if !c.IsGrounded() {
			t.Fatalf("expected grounded after probe")
		}

		c.SetMovementDirection(1)
		c.Jump()
		if !c.JumpRequested() {
			t.Fatalf("expected pending jump")
		}
		vel, err := c.Tick(body, env)
		if err != nil {
			t.Fatalf("tick failed: %v", err)
		}
		if !mgl64.FloatEqualThreshold(vel.Y(), 6.261, 1e-3) || vel.X() != 5 {
			t.Fatalf("expected (5, ~6.261), got %v", vel)
		}
		if body.vel != vel {
			t.Fatalf("velocity not applied to body: %v", body.vel)
		}
		if c.JumpRequested() {
			t.Fatalf("jump request should be consumed")
		}
	})

	t.Run("probe_placement", func(t *testing.T) {
		c := newTestController(t)
		body := &fakeBody{pos: mgl64.Vec2{3, 1}, scale: 1, bottom: 0.5}
		env := &fakeEnv{gravity: mgl64.Vec2{0, -9.8}}
		if _, err := c.Tick(body, env); err != nil {
			t.Fatalf("tick failed: %v", err)
		}
		if len(env.queries) != 1 {
			t.Fatalf("expected one probe, got %d", len(env.queries))
		}
		q := env.queries[0]
		if q.Center != (mgl64.Vec2{3, 0.5}) || q.Size != (mgl64.Vec2{1, BoxProbeHeight}) || q.Rotation != 0 || q.Mask != Layers(1) {
			t.Fatalf("unexpected probe %v", q)
		}
	})

	t.Run("airborne_jump_dropped", func(t *testing.T) {
		c := newTestController(t)
		body := &fakeBody{vel: mgl64.Vec2{0, -3}, scale: 1}
		env := &fakeEnv{gravity: mgl64.Vec2{0, -9.8}}
		c.Jump()
		if c.JumpRequested() {
			t.Fatalf("airborne jump should be ignored")
		}
		vel, err := c.Tick(body, env)
		if err != nil {
			t.Fatalf("tick failed: %v", err)
		}
		if vel.Y() != -3 {
			t.Fatalf("expected -3, got %v", vel.Y())
		}
	})

	t.Run("bad_gravity", func(t *testing.T) {
		c := newTestController(t)
		body := &fakeBody{vel: mgl64.Vec2{0, 1}, scale: 1}
		env := &fakeEnv{gravity: mgl64.Vec2{0, 9.8}, ground: true}
		if _, err := c.Tick(body, env); err != nil {
			t.Fatalf("tick failed: %v", err)
		}
		c.Jump()
		vel, err := c.Tick(body, env)
		if !errors.Is(err, ErrGravityNotDownward) {
			t.Fatalf("expected ErrGravityNotDownward, got %v", err)
		}
		if vel.Y() != 1 || body.applied != 2 {
			t.Fatalf("expected pass-through velocity to be applied, got %v applied=%d", vel, body.applied)
		}
	})
}

func TestIsGroundedIdempotent(t *testing.T) {
	c := newTestController(t)
	body := &fakeBody{scale: 1}
	env := &fakeEnv{gravity: mgl64.Vec2{0, -9.8}, ground: true}
	if _, err := c.Tick(body, env); err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	env.ground = false
	for i := 0; i < 3; i++ {
		if !c.IsGrounded() {
			t.Fatalf("call %d: cached grounded value changed without a tick", i)
		}
	}
	if len(env.queries) != 1 {
		t.Fatalf("IsGrounded must not probe, got %d queries", len(env.queries))
	}
}

func TestConcurrentIntent(t *testing.T) {
	c := newTestController(t)
	body := &fakeBody{scale: 1}
	env := &fakeEnv{gravity: mgl64.Vec2{0, -9.8}, ground: true}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			c.SetMovementDirection(float64(i%3 - 1))
			c.Jump()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if _, err := c.Tick(body, env); err != nil {
				t.Errorf("tick failed: %v", err)
				return
			}
		}
	}()
	wg.Wait()
}
