package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/controller2d/controller"
	"github.com/milk9111/controller2d/ecs"
	"github.com/milk9111/controller2d/ecs/component"
	"github.com/milk9111/controller2d/physics"
)

// eventRecorder copies the tick's events before the scheduler clears them.
type eventRecorder struct {
	events []ecs.GroundingEvent
}

func (r *eventRecorder) Update(w *ecs.World) {
	r.events = append(r.events, w.Events().Peek()...)
}

func (r *eventRecorder) count(kind ecs.GroundingEventKind) int {
	n := 0
	for _, evt := range r.events {
		if evt.Kind == kind {
			n++
		}
	}
	return n
}

type controllerFixture struct {
	world    *ecs.World
	phys     *physics.World
	sched    *ecs.Scheduler
	rec      *eventRecorder
	player   ecs.Entity
	ctrl     *controller.Controller
	body     *physics.Body
	input    *component.Input
	tickRate int
}

func newControllerFixture(t *testing.T) *controllerFixture {
	t.Helper()
	f := &controllerFixture{world: ecs.NewWorld(), rec: &eventRecorder{}, tickRate: DefaultTickRate}
	f.phys = physics.NewWorld(physics.DefaultGravity, nil)
	f.phys.AddGround(cp.BB{L: -10, B: -1, R: 10, T: 0}, physics.LayerGround)

	cfg := controller.DefaultConfig()
	cfg.ProbeShape = controller.ProbeCircle
	cfg.ProbeSize = 0.5
	ctrl, err := controller.New(cfg)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	f.ctrl = ctrl
	f.body = f.phys.SpawnCharacter(mgl64.Vec2{0, 2}, mgl64.Vec2{1, 1}, physics.AttachOptions{Frictionless: true})

	f.player = ecs.CreateEntity(f.world)
	f.input = &component.Input{}
	mustAdd(t, ecs.Add(f.world, f.player, component.InputComponent.Kind(), f.input))
	mustAdd(t, ecs.Add(f.world, f.player, component.TransformComponent.Kind(), &component.Transform{}))
	mustAdd(t, ecs.Add(f.world, f.player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: f.body}))
	mustAdd(t, ecs.Add(f.world, f.player, component.CharacterControllerComponent.Kind(), &component.CharacterController{Controller: ctrl}))

	f.sched = ecs.NewScheduler(
		NewCharacterControllerSystem(f.phys, nil),
		NewPhysicsSystem(f.phys, f.tickRate),
		f.rec,
	)
	return f
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func (f *controllerFixture) run(ticks int) {
	for i := 0; i < ticks; i++ {
		f.sched.Update(f.world)
	}
}

func TestCharacterControllerSystemLands(t *testing.T) {
	f := newControllerFixture(t)

	f.run(120)

	if !f.ctrl.IsGrounded() {
		t.Fatalf("expected grounded, bottom at %v", f.body.LowerBoundY())
	}
	if got := f.rec.count(ecs.GroundingLanded); got != 1 {
		t.Fatalf("landed events = %d, want 1", got)
	}
	if len(f.world.Events().Peek()) != 0 {
		t.Fatalf("scheduler left events queued")
	}

	tr, ok := ecs.Get(f.world, f.player, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("transform missing")
	}
	if tr.Y != f.body.Position().Y() {
		t.Fatalf("transform not synced: %v vs %v", tr.Y, f.body.Position().Y())
	}
}

func TestCharacterControllerSystemJump(t *testing.T) {
	f := newControllerFixture(t)
	f.run(120)

	f.input.JumpPressed = true
	f.run(1)
	f.input.JumpPressed = false

	if got := f.rec.count(ecs.GroundingJumped); got != 1 {
		t.Fatalf("jumped events = %d, want 1", got)
	}
	if vy := f.body.Velocity().Y(); vy <= 0 {
		t.Fatalf("expected upward velocity after jump, got %v", vy)
	}

	f.run(10)
	if f.ctrl.IsGrounded() {
		t.Fatalf("expected airborne shortly after jumping")
	}
	if got := f.rec.count(ecs.GroundingLeft); got != 1 {
		t.Fatalf("left events = %d, want 1", got)
	}

	f.run(120)
	if got := f.rec.count(ecs.GroundingLanded); got != 2 {
		t.Fatalf("landed events = %d, want 2", got)
	}
}

func TestCharacterControllerSystemJumpWhileAirborneIgnored(t *testing.T) {
	f := newControllerFixture(t)

	f.input.JumpPressed = true
	f.run(1)

	if got := f.rec.count(ecs.GroundingJumped); got != 0 {
		t.Fatalf("jumped events = %d, want 0", got)
	}
	if f.ctrl.JumpRequested() {
		t.Fatalf("airborne jump should not be queued")
	}
}

func TestCharacterControllerSystemBlockedJump(t *testing.T) {
	f := newControllerFixture(t)
	f.run(120)

	f.phys.SetGravity(mgl64.Vec2{0, 9.8})
	f.input.JumpPressed = true
	f.run(1)

	if got := f.rec.count(ecs.GroundingBlocked); got != 1 {
		t.Fatalf("blocked events = %d, want 1", got)
	}
	if f.ctrl.JumpRequested() {
		t.Fatalf("failed jump should consume the request")
	}
}

func TestCharacterControllerSystemMoves(t *testing.T) {
	f := newControllerFixture(t)
	f.run(120)

	f.input.MoveX = 1
	f.run(1)

	if vx := f.body.Velocity().X(); !mgl64.FloatEqualThreshold(vx, f.ctrl.Config().Speed, 1e-9) {
		t.Fatalf("vx = %v, want %v", vx, f.ctrl.Config().Speed)
	}
}
