package controller

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strings"
)

var (
	ErrInvalidConfig      = errors.New("controller: invalid config")
	ErrUnknownProbeShape  = errors.New("controller: unknown probe shape")
	ErrGravityNotDownward = errors.New("controller: gravity must point down to jump")
)

// BoxProbeHeight is the height of the box ground probe. It does not scale with
// ProbeSize; only the width does.
const BoxProbeHeight = 0.2

// MaxLayers is the number of distinct layer ids a LayerMask can hold.
const MaxLayers = 32

// LayerMask is a set of layer ids. Bit n set means layer n is in the set.
type LayerMask uint32

// Layers builds a mask from layer ids. Ids outside [0, MaxLayers) are ignored.
func Layers(ids ...uint) LayerMask {
	var m LayerMask
	for _, id := range ids {
		if id >= MaxLayers {
			continue
		}
		m |= 1 << id
	}
	return m
}

// Has reports whether layer id is in the mask.
func (m LayerMask) Has(id uint) bool {
	if id >= MaxLayers {
		return false
	}
	return m&(1<<id) != 0
}

// IDs returns the layer ids in ascending order.
func (m LayerMask) IDs() []uint {
	ids := make([]uint, 0, bits.OnesCount32(uint32(m)))
	for id := uint(0); id < MaxLayers; id++ {
		if m.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// ProbeShape selects the geometry used by the ground probe.
type ProbeShape int

const (
	ProbeBox ProbeShape = iota
	ProbeCircle
)

func (s ProbeShape) String() string {
	switch s {
	case ProbeBox:
		return "box"
	case ProbeCircle:
		return "circle"
	default:
		return fmt.Sprintf("ProbeShape(%d)", int(s))
	}
}

// Valid reports whether s is one of the known shapes.
func (s ProbeShape) Valid() bool {
	switch s {
	case ProbeBox, ProbeCircle:
		return true
	default:
		return false
	}
}

// ParseProbeShape parses "box" or "circle", case-insensitively.
func ParseProbeShape(name string) (ProbeShape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "box":
		return ProbeBox, nil
	case "circle":
		return ProbeCircle, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownProbeShape, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s ProbeShape) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProbeShape, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ProbeShape) UnmarshalText(text []byte) error {
	parsed, err := ParseProbeShape(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Config holds the tunables of a character controller.
type Config struct {
	// Speed is the horizontal speed in units per second.
	Speed float64
	// JumpHeight is the apex height of a jump in units.
	JumpHeight float64
	// GroundMask selects which collider layers count as ground.
	GroundMask LayerMask
	// ProbeShape and ProbeSize describe the ground probe. ProbeSize is the box
	// width or the circle radius.
	ProbeShape ProbeShape
	ProbeSize  float64
	// Frictionless asks the host to zero the collider's friction on attach so
	// the character does not stick to walls.
	Frictionless bool
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Speed:        5,
		JumpHeight:   2,
		GroundMask:   Layers(1),
		ProbeShape:   ProbeBox,
		ProbeSize:    1,
		Frictionless: true,
	}
}

// Validate checks every field and reports the first invalid one.
func (c Config) Validate() error {
	if err := positive("speed", c.Speed); err != nil {
		return err
	}
	if err := positive("jump height", c.JumpHeight); err != nil {
		return err
	}
	if !c.ProbeShape.Valid() {
		return fmt.Errorf("%w: %w: %d", ErrInvalidConfig, ErrUnknownProbeShape, int(c.ProbeShape))
	}
	if err := positive("probe size", c.ProbeSize); err != nil {
		return err
	}
	return nil
}

func positive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, name, v)
	}
	return nil
}
