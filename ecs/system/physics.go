package system

import (
	"github.com/milk9111/controller2d/ecs"
	"github.com/milk9111/controller2d/ecs/component"
	"github.com/milk9111/controller2d/physics"
)

// DefaultTickRate is the fixed physics rate in ticks per second.
const DefaultTickRate = 60

// PhysicsSystem steps the physics world by a fixed dt and copies body
// positions back into transforms.
type PhysicsSystem struct {
	world *physics.World
	dt    float64
}

func NewPhysicsSystem(world *physics.World, tickRate int) *PhysicsSystem {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &PhysicsSystem{world: world, dt: 1.0 / float64(tickRate)}
}

// World returns the stepped physics world.
func (ps *PhysicsSystem) World() *physics.World {
	if ps == nil {
		return nil
	}
	return ps.world
}

// DT returns the fixed step in seconds.
func (ps *PhysicsSystem) DT() float64 {
	return ps.dt
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.world == nil || w == nil {
		return
	}

	ps.world.Step(ps.dt)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil {
			return
		}
		pos := pb.Body.Position()
		t.X, t.Y = pos.X(), pos.Y()
		t.Rotation = pb.Body.CP().Angle()
	})
}
