package system

import (
	"log/slog"

	"github.com/milk9111/controller2d/controller"
	"github.com/milk9111/controller2d/ecs"
	"github.com/milk9111/controller2d/ecs/component"
)

// CharacterControllerSystem hands each entity's Input to its controller and
// runs one controller tick against the physics environment.
type CharacterControllerSystem struct {
	env controller.Environment
	log *slog.Logger
}

func NewCharacterControllerSystem(env controller.Environment, log *slog.Logger) *CharacterControllerSystem {
	if log == nil {
		log = slog.Default()
	}
	return &CharacterControllerSystem{env: env, log: log}
}

func (s *CharacterControllerSystem) Update(w *ecs.World) {
	if w == nil || s.env == nil {
		return
	}

	ecs.ForEach3(w,
		component.InputComponent.Kind(),
		component.CharacterControllerComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, input *component.Input, cc *component.CharacterController, pb *component.PhysicsBody) {
			ctrl := cc.Controller
			if ctrl == nil || pb.Body == nil {
				return
			}

			ctrl.SetMovementDirection(input.MoveX)
			if input.JumpPressed {
				ctrl.Jump()
			}
			jumping := ctrl.JumpRequested()

			_, err := ctrl.Tick(pb.Body, s.env)
			switch {
			case jumping && err != nil:
				w.Events().Push(ecs.GroundingEvent{Entity: e, Kind: ecs.GroundingBlocked})
			case jumping:
				w.Events().Push(ecs.GroundingEvent{Entity: e, Kind: ecs.GroundingJumped})
			}

			grounded := ctrl.IsGrounded()
			if grounded != cc.WasGrounded {
				kind := ecs.GroundingLeft
				if grounded {
					kind = ecs.GroundingLanded
				}
				w.Events().Push(ecs.GroundingEvent{Entity: e, Kind: kind})
				s.log.Debug("controller system: grounding changed", "entity", e, "event", kind)
			}
			cc.WasGrounded = grounded
		})
}
