package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// DefaultColliderSize is the size of the box collider provisioned for a body
// that has none.
var DefaultColliderSize = mgl64.Vec2{1, 1}

// DefaultFriction is the friction of a spawned character's collider unless it
// is frictionless.
const DefaultFriction = 0.8

// AttachOptions configures Attach.
type AttachOptions struct {
	// Frictionless zeroes the collider's friction so the character slides
	// along walls instead of sticking to them.
	Frictionless bool
}

// Attach prepares a body for a character controller and returns its adapter.
// The body must already be in the world's space. A nil collider is replaced
// by a default box; this is not an error.
func (w *World) Attach(body *cp.Body, collider *cp.Shape, opts AttachOptions) *Body {
	if collider == nil {
		collider = cp.NewBox(body, DefaultColliderSize.X(), DefaultColliderSize.Y(), 0)
		w.space.AddShape(collider)
		w.log.Debug("physics: attached default collider", "size", DefaultColliderSize)
	}
	b := newBody(body, collider)
	if opts.Frictionless {
		b.SetFrictionless(true)
	}
	collider.SetFilter(LayerFilter(LayerCharacter))
	collider.SetCollisionType(collisionTypeCharacter)
	return b
}

// SpawnCharacter creates a dynamic, rotation-locked box body of size centered
// at pos and attaches it.
func (w *World) SpawnCharacter(pos, size mgl64.Vec2, opts AttachOptions) *Body {
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(toVector(pos))
	w.space.AddBody(body)

	collider := cp.NewBox(body, size.X(), size.Y(), 0)
	collider.SetFriction(DefaultFriction)
	w.space.AddShape(collider)
	return w.Attach(body, collider, opts)
}
