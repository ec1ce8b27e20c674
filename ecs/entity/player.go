package entity

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/controller2d/controller"
	"github.com/milk9111/controller2d/ecs"
	"github.com/milk9111/controller2d/ecs/component"
	"github.com/milk9111/controller2d/physics"
	"github.com/milk9111/controller2d/prefabs"
)

// NewPlayerAt builds a device-driven character from spec with its body
// centered at pos.
func NewPlayerAt(w *ecs.World, pw *physics.World, spec prefabs.ControllerSpec, pos mgl64.Vec2, log *slog.Logger) (ecs.Entity, error) {
	cfg, err := spec.ToConfig()
	if err != nil {
		return 0, err
	}
	ctrl, err := controller.New(cfg, controller.WithLogger(log))
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	body := pw.SpawnCharacter(pos, spec.Body.Size(), physics.AttachOptions{Frictionless: cfg.Frictionless})
	body.SetGravityScale(spec.Body.Scale())

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X(), Y: pos.Y()}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body}); err != nil {
		return 0, fmt.Errorf("player: add body: %w", err)
	}
	if err := ecs.Add(w, e, component.CharacterControllerComponent.Kind(), &component.CharacterController{Controller: ctrl}); err != nil {
		return 0, fmt.Errorf("player: add controller: %w", err)
	}
	if err := ecs.Add(w, e, component.SafeRespawnComponent.Kind(), &component.SafeRespawn{X: pos.X(), Y: pos.Y(), Initialized: true}); err != nil {
		return 0, fmt.Errorf("player: add respawn: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add tag: %w", err)
	}
	return e, nil
}

// NewScriptedPlayerAt builds a character whose input comes from the intent
// script source instead of a device.
func NewScriptedPlayerAt(w *ecs.World, pw *physics.World, spec prefabs.ControllerSpec, pos mgl64.Vec2, script string, log *slog.Logger) (ecs.Entity, error) {
	e, err := NewPlayerAt(w, pw, spec, pos, log)
	if err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.ScriptedInputComponent.Kind(), &component.ScriptedInput{Script: script}); err != nil {
		return 0, fmt.Errorf("player: add script: %w", err)
	}
	return e, nil
}

// PlayerController returns the controller of the first player entity.
func PlayerController(w *ecs.World) (*controller.Controller, bool) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return nil, false
	}
	cc, ok := ecs.Get(w, e, component.CharacterControllerComponent.Kind())
	if !ok || cc.Controller == nil {
		return nil, false
	}
	return cc.Controller, true
}

// PlayerBody returns the physics body of the first player entity.
func PlayerBody(w *ecs.World) (*physics.Body, bool) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return nil, false
	}
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Body == nil {
		return nil, false
	}
	return pb.Body, true
}
