package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/controller2d/controller"
	"github.com/milk9111/controller2d/physics"
)

func writeOverride(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "override.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	return path
}

func TestEmbeddedControllerSpecMatchesDefaults(t *testing.T) {
	spec, err := LoadControllerSpec("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg, err := spec.ToConfig()
	if err != nil {
		t.Fatalf("to config: %v", err)
	}
	if cfg != controller.DefaultConfig() {
		t.Fatalf("embedded config = %+v, want %+v", cfg, controller.DefaultConfig())
	}
	if got := spec.Body.Size(); got != (mgl64.Vec2{1, 1}) {
		t.Fatalf("body size = %v", got)
	}
	if spec.Body.GravityScale != 1 {
		t.Fatalf("gravity scale = %v", spec.Body.GravityScale)
	}
}

func TestOverrideMergesOverDefaults(t *testing.T) {
	path := writeOverride(t, "speed: 8\nprobe_shape: circle\nprobe_size: 0.4\n")

	spec, err := LoadControllerSpec(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg, err := spec.ToConfig()
	if err != nil {
		t.Fatalf("to config: %v", err)
	}
	if cfg.Speed != 8 || cfg.ProbeShape != controller.ProbeCircle || cfg.ProbeSize != 0.4 {
		t.Fatalf("override not applied: %+v", cfg)
	}
	if cfg.JumpHeight != 2 || cfg.GroundMask != controller.Layers(1) {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestOverrideMissingFile(t *testing.T) {
	_, err := LoadControllerSpec(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not exist", err)
	}
}

func TestToConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"unknown shape", "probe_shape: capsule\n", controller.ErrUnknownProbeShape},
		{"zero speed", "speed: 0\n", controller.ErrInvalidConfig},
		{"negative jump", "jump_height: -1\n", controller.ErrInvalidConfig},
		{"zero probe", "probe_size: 0\n", controller.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := LoadControllerSpec(writeOverride(t, tt.body))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if _, err := spec.ToConfig(); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLevelSpec(t *testing.T) {
	level, err := LoadLevelSpec()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if level.GravityVec() != physics.DefaultGravity {
		t.Fatalf("gravity = %v", level.GravityVec())
	}
	if level.SpawnPoint() != (mgl64.Vec2{3, 4}) {
		t.Fatalf("spawn = %v", level.SpawnPoint())
	}
	g, err := level.Grid()
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	if g.Height != len(level.Rows) || g.Width == 0 {
		t.Fatalf("grid = %dx%d", g.Width, g.Height)
	}
	if g.At(0, g.Height-1) != physics.TileGround {
		t.Fatalf("bottom-left tile = %d, want ground", g.At(0, g.Height-1))
	}
}

func TestLevelSpecDefaults(t *testing.T) {
	var level LevelSpec
	if level.GravityVec() != physics.DefaultGravity {
		t.Fatalf("gravity = %v", level.GravityVec())
	}
	if level.SpawnPoint() != (mgl64.Vec2{}) {
		t.Fatalf("spawn = %v", level.SpawnPoint())
	}
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"run_and_jump", "run_and_jump.tengo", "scripts/run_and_jump.tengo", "prefabs/scripts/run_and_jump.tengo"} {
		data, err := LoadScript(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("%s: empty script", name)
		}
	}
	if _, err := LoadScript("nope"); err == nil {
		t.Fatalf("expected error for missing script")
	}
}
