// Package prefabs loads yaml specs and intent scripts for the controller
// demo, and watches them for live edits.
package prefabs

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/controller2d/controller"
	"github.com/milk9111/controller2d/physics"
	"gopkg.in/yaml.v3"
)

const (
	ControllerFile = "controller.yaml"
	LevelFile      = "level.yaml"
)

// LoadSpec decodes an embedded (or disk-overridden) prefab.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// ControllerSpec is the yaml form of a character: controller tuning plus its
// body.
type ControllerSpec struct {
	Name         string   `yaml:"name"`
	Speed        float64  `yaml:"speed"`
	JumpHeight   float64  `yaml:"jump_height"`
	GroundLayers []uint   `yaml:"ground_layers"`
	ProbeShape   string   `yaml:"probe_shape"`
	ProbeSize    float64  `yaml:"probe_size"`
	Frictionless bool     `yaml:"frictionless"`
	Body         BodySpec `yaml:"body"`
}

type BodySpec struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GravityScale float64 `yaml:"gravity_scale"`
}

// LoadControllerSpec loads the default controller spec and, if override is
// set, decodes the override file over it so it only needs the fields it
// changes.
func LoadControllerSpec(override string) (ControllerSpec, error) {
	spec, err := LoadSpec[ControllerSpec](ControllerFile)
	if err != nil {
		return ControllerSpec{}, err
	}
	if override == "" {
		return spec, nil
	}
	data, err := os.ReadFile(override)
	if err != nil {
		return ControllerSpec{}, fmt.Errorf("prefabs: load %s: %w", override, err)
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return ControllerSpec{}, fmt.Errorf("prefabs: unmarshal %s: %w", override, err)
	}
	return spec, nil
}

// ToConfig converts the spec into a validated controller config.
func (s ControllerSpec) ToConfig() (controller.Config, error) {
	shape, err := controller.ParseProbeShape(s.ProbeShape)
	if err != nil {
		return controller.Config{}, fmt.Errorf("prefabs: %s: %w", s.Name, err)
	}
	cfg := controller.Config{
		Speed:        s.Speed,
		JumpHeight:   s.JumpHeight,
		GroundMask:   controller.Layers(s.GroundLayers...),
		ProbeShape:   shape,
		ProbeSize:    s.ProbeSize,
		Frictionless: s.Frictionless,
	}
	if err := cfg.Validate(); err != nil {
		return controller.Config{}, fmt.Errorf("prefabs: %s: %w", s.Name, err)
	}
	return cfg, nil
}

// Size returns the body size, falling back to the default collider size.
func (b BodySpec) Size() mgl64.Vec2 {
	if b.Width <= 0 || b.Height <= 0 {
		return physics.DefaultColliderSize
	}
	return mgl64.Vec2{b.Width, b.Height}
}

// Scale returns the body's gravity scale; zero means unscaled.
func (b BodySpec) Scale() float64 {
	if b.GravityScale == 0 {
		return 1
	}
	return b.GravityScale
}

// LevelSpec is the yaml form of a level and the world it lives in.
type LevelSpec struct {
	Name     string    `yaml:"name"`
	Gravity  float64   `yaml:"gravity"`
	TickRate int       `yaml:"tick_rate"`
	TileSize float64   `yaml:"tile_size"`
	Spawn    []float64 `yaml:"spawn"`
	Rows     []string  `yaml:"rows"`
}

func LoadLevelSpec() (LevelSpec, error) {
	return LoadSpec[LevelSpec](LevelFile)
}

// GravityVec returns the world gravity, defaulting to physics.DefaultGravity.
func (l LevelSpec) GravityVec() mgl64.Vec2 {
	if l.Gravity == 0 {
		return physics.DefaultGravity
	}
	return mgl64.Vec2{0, l.Gravity}
}

// SpawnPoint returns the spawn position in world units.
func (l LevelSpec) SpawnPoint() mgl64.Vec2 {
	if len(l.Spawn) < 2 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{l.Spawn[0], l.Spawn[1]}
}

// Grid parses the level rows into a tile grid.
func (l LevelSpec) Grid() (physics.TileGrid, error) {
	size := l.TileSize
	if size == 0 {
		size = 1
	}
	g, err := physics.ParseTileRows(l.Rows, size)
	if err != nil {
		return physics.TileGrid{}, fmt.Errorf("prefabs: level %s: %w", l.Name, err)
	}
	return g, nil
}
