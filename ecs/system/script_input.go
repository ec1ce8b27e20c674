package system

import (
	"fmt"
	"log/slog"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/controller2d/ecs"
	"github.com/milk9111/controller2d/ecs/component"
)

// ScriptInputSystem fills Input from tengo intent scripts. Each tick a script
// sees the globals tick, grounded, x, y, vx and vy and sets move and jump.
type ScriptInputSystem struct {
	log   *slog.Logger
	tick  int
	cache map[ecs.Entity]*intentScript
}

type intentScript struct {
	source   string
	compiled *tengo.Compiled
}

func NewScriptInputSystem(log *slog.Logger) *ScriptInputSystem {
	if log == nil {
		log = slog.Default()
	}
	return &ScriptInputSystem{log: log, cache: map[ecs.Entity]*intentScript{}}
}

// Tick returns the number of ticks run so far.
func (s *ScriptInputSystem) Tick() int {
	return s.tick
}

func (s *ScriptInputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.ScriptedInputComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, src *component.ScriptedInput, input *component.Input) {
		script, err := s.script(e, src.Script)
		if err != nil {
			s.log.Error("script input: compile failed", "entity", e, "err", err)
			*input = component.Input{}
			return
		}

		globals := map[string]any{"tick": s.tick, "grounded": false, "x": 0.0, "y": 0.0, "vx": 0.0, "vy": 0.0}
		if cc, ok := ecs.Get(w, e, component.CharacterControllerComponent.Kind()); ok && cc.Controller != nil {
			globals["grounded"] = cc.Controller.IsGrounded()
		}
		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
			p, v := pb.Body.Position(), pb.Body.Velocity()
			globals["x"], globals["y"] = p.X(), p.Y()
			globals["vx"], globals["vy"] = v.X(), v.Y()
		}

		move, jump, err := script.run(globals)
		if err != nil {
			s.log.Error("script input: run failed", "entity", e, "tick", s.tick, "err", err)
			*input = component.Input{}
			return
		}
		input.MoveX = move
		input.JumpPressed = jump
	})

	for e := range s.cache {
		if !ecs.IsAlive(w, e) {
			delete(s.cache, e)
		}
	}
	s.tick++
}

func (s *ScriptInputSystem) script(e ecs.Entity, source string) (*intentScript, error) {
	if rt, ok := s.cache[e]; ok && rt.source == source {
		return rt, nil
	}
	compiled, err := CompileIntentScript(source)
	if err != nil {
		return nil, err
	}
	rt := &intentScript{source: source, compiled: compiled}
	s.cache[e] = rt
	return rt, nil
}

// CompileIntentScript compiles an intent script with the tengo stdlib
// available to import.
func CompileIntentScript(source string) (*tengo.Compiled, error) {
	script := tengo.NewScript([]byte(source))
	for _, name := range []string{"tick", "grounded", "x", "y", "vx", "vy", "move", "jump"} {
		_ = script.Add(name, nil)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile intent script: %w", err)
	}
	return compiled, nil
}

func (rt *intentScript) run(globals map[string]any) (float64, bool, error) {
	for name, v := range globals {
		if err := rt.compiled.Set(name, v); err != nil {
			return 0, false, err
		}
	}
	if err := rt.compiled.Set("move", 0.0); err != nil {
		return 0, false, err
	}
	if err := rt.compiled.Set("jump", false); err != nil {
		return 0, false, err
	}
	if err := rt.compiled.Run(); err != nil {
		return 0, false, err
	}
	return rt.compiled.Get("move").Float(), rt.compiled.Get("jump").Bool(), nil
}
