package system

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/controller2d/ecs"
	"github.com/milk9111/controller2d/ecs/component"
	"github.com/milk9111/controller2d/physics"
)

// RespawnSystem records where each character last stood safely and sends it
// back there when it touches a hazard, falls below KillY or carries a
// RespawnRequest. It runs after physics.
type RespawnSystem struct {
	world *physics.World
	KillY float64
	log   *slog.Logger
}

func NewRespawnSystem(world *physics.World, killY float64, log *slog.Logger) *RespawnSystem {
	if log == nil {
		log = slog.Default()
	}
	return &RespawnSystem{world: world, KillY: killY, log: log}
}

func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil || s.world == nil {
		return
	}

	ecs.ForEach3(w,
		component.PhysicsBodyComponent.Kind(),
		component.SafeRespawnComponent.Kind(),
		component.CharacterControllerComponent.Kind(),
		func(e ecs.Entity, pb *component.PhysicsBody, safe *component.SafeRespawn, cc *component.CharacterController) {
			if pb.Body == nil {
				return
			}
			pos := pb.Body.Position()
			hazard := s.world.TouchesHazard(pb.Body)
			requested := ecs.Has(w, e, component.RespawnRequestComponent.Kind())

			if !hazard && !requested && pos.Y() >= s.KillY {
				if cc.Controller != nil && cc.Controller.IsGrounded() {
					safe.X, safe.Y = pos.X(), pos.Y()
					safe.Initialized = true
				}
				return
			}

			ecs.Remove(w, e, component.RespawnRequestComponent.Kind())
			if !safe.Initialized {
				return
			}
			pb.Body.SetPosition(mgl64.Vec2{safe.X, safe.Y})
			pb.Body.SetVelocity(mgl64.Vec2{})
			if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
				t.X, t.Y = safe.X, safe.Y
			}
			s.log.Info("respawned", "entity", e, "hazard", hazard, "requested", requested, "x", safe.X, "y", safe.Y)
		})
}
