// Package physics hosts character controllers in a Chipmunk space. It provides
// the overlap queries, gravity and body access a controller needs, plus the
// static level geometry it stands on.
package physics

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/controller2d/controller"
)

// DefaultGravity is the world gravity in units per second squared, y up.
var DefaultGravity = mgl64.Vec2{0, -9.8}

// World owns the Chipmunk space and its static geometry.
type World struct {
	space *cp.Space
	log   *slog.Logger
}

// NewWorld creates a world with the given gravity.
func NewWorld(gravity mgl64.Vec2, log *slog.Logger) *World {
	if log == nil {
		log = slog.Default()
	}
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(toVector(gravity))
	return &World{space: space, log: log}
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Gravity returns the world gravity.
func (w *World) Gravity() mgl64.Vec2 {
	return toVec2(w.space.Gravity())
}

// SetGravity changes the world gravity.
func (w *World) SetGravity(g mgl64.Vec2) {
	w.space.SetGravity(toVector(g))
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.space.Step(dt)
}

// AddGround adds a static axis-aligned box on layer.
func (w *World) AddGround(bb cp.BB, layer uint) *cp.Shape {
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(LayerFilter(layer))
	w.space.AddShape(shape)
	return shape
}

// Overlap implements controller.Overlapper.
//
// Box queries test the box against collider bounds with inclusive edges: a
// collider whose bounds touch the box counts. Non axis-aligned colliders are
// therefore tested by their bounding box. Circle queries hit when the nearest
// point of a non-sensor collider is strictly closer than the radius.
func (w *World) Overlap(q controller.OverlapQuery) bool {
	if w == nil || w.space == nil || q.Mask == 0 {
		return false
	}
	filter := QueryFilter(q.Mask)

	switch q.Shape {
	case controller.ProbeBox:
		hw, hh := q.Size.X()/2, q.Size.Y()/2
		bb := cp.BB{
			L: q.Center.X() - hw,
			B: q.Center.Y() - hh,
			R: q.Center.X() + hw,
			T: q.Center.Y() + hh,
		}
		hit := false
		w.space.BBQuery(bb, filter, func(shape *cp.Shape, data interface{}) {
			if !shape.Sensor() {
				hit = true
			}
		}, nil)
		return hit
	case controller.ProbeCircle:
		info := w.space.PointQueryNearest(toVector(q.Center), q.Radius(), filter)
		return info != nil && info.Shape != nil
	default:
		w.log.Warn("physics: overlap with unknown probe shape", "query", q.String())
		return false
	}
}

func toVector(v mgl64.Vec2) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Y()}
}

func toVec2(v cp.Vector) mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Y}
}

// TouchesHazard reports whether b's collider bounds overlap any hazard
// sensor.
func (w *World) TouchesHazard(b *Body) bool {
	if w == nil || b == nil || b.Collider() == nil {
		return false
	}
	hit := false
	w.space.BBQuery(b.Collider().CacheBB(), QueryFilter(controller.Layers(LayerHazard)), func(shape *cp.Shape, data interface{}) {
		if shape.Sensor() {
			hit = true
		}
	}, nil)
	return hit
}
