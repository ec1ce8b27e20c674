package controller

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// OverlapQuery describes one probe against the physics world.
type OverlapQuery struct {
	Shape ProbeShape
	// Center is the probe center in world space.
	Center mgl64.Vec2
	// Size is the full box extent (width, height). For a circle both
	// components hold the radius.
	Size     mgl64.Vec2
	Rotation float64
	Mask     LayerMask
}

// Radius returns the circle radius of a circle query.
func (q OverlapQuery) Radius() float64 {
	return q.Size.X()
}

func (q OverlapQuery) String() string {
	return fmt.Sprintf("%s at (%.3f, %.3f) size (%.3f, %.3f) mask %#x", q.Shape, q.Center.X(), q.Center.Y(), q.Size.X(), q.Size.Y(), uint32(q.Mask))
}

// Overlapper answers whether any collider on the query's mask overlaps the
// query shape. It is read-only with respect to the world.
type Overlapper interface {
	Overlap(q OverlapQuery) bool
}

// OverlapFunc adapts a plain function to Overlapper.
type OverlapFunc func(q OverlapQuery) bool

func (f OverlapFunc) Overlap(q OverlapQuery) bool {
	return f(q)
}

// GroundQuery builds the probe placed at feet, the point under the body's
// origin at the bottom of its collider.
func GroundQuery(cfg Config, feet mgl64.Vec2) OverlapQuery {
	q := OverlapQuery{
		Shape:  cfg.ProbeShape,
		Center: feet,
		Mask:   cfg.GroundMask,
	}
	switch cfg.ProbeShape {
	case ProbeBox:
		q.Size = mgl64.Vec2{cfg.ProbeSize, BoxProbeHeight}
	case ProbeCircle:
		q.Size = mgl64.Vec2{cfg.ProbeSize, cfg.ProbeSize}
	}
	return q
}

// ProbeGround reports whether the ground probe at feet overlaps anything on
// cfg.GroundMask. An unknown probe shape never reports ground.
func ProbeGround(cfg Config, feet mgl64.Vec2, world Overlapper) bool {
	if world == nil || !cfg.ProbeShape.Valid() {
		return false
	}
	return world.Overlap(GroundQuery(cfg, feet))
}

// Feet returns the probe anchor for a body: its origin x and the bottom of
// its collider.
func Feet(body Body) mgl64.Vec2 {
	return mgl64.Vec2{body.Position().X(), body.LowerBoundY()}
}
