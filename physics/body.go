package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Body adapts a Chipmunk body and its collider to controller.Body.
type Body struct {
	body         *cp.Body
	collider     *cp.Shape
	gravityScale float64
}

func newBody(body *cp.Body, collider *cp.Shape) *Body {
	b := &Body{body: body, collider: collider, gravityScale: 1}
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, gravity.Mult(b.gravityScale), damping, dt)
	})
	return b
}

// CP returns the underlying Chipmunk body.
func (b *Body) CP() *cp.Body {
	return b.body
}

// Collider returns the body's collision shape.
func (b *Body) Collider() *cp.Shape {
	return b.collider
}

func (b *Body) Position() mgl64.Vec2 {
	return toVec2(b.body.Position())
}

// SetPosition teleports the body.
func (b *Body) SetPosition(p mgl64.Vec2) {
	b.body.SetPosition(toVector(p))
}

func (b *Body) Velocity() mgl64.Vec2 {
	return toVec2(b.body.Velocity())
}

func (b *Body) SetVelocity(v mgl64.Vec2) {
	b.body.SetVelocityVector(toVector(v))
}

func (b *Body) GravityScale() float64 {
	return b.gravityScale
}

// SetGravityScale scales world gravity for this body only.
func (b *Body) SetGravityScale(scale float64) {
	b.gravityScale = scale
}

// LowerBoundY returns the bottom of the collider's bounds at the body's
// current transform.
func (b *Body) LowerBoundY() float64 {
	return b.collider.CacheBB().B
}

// SetFrictionless zeroes the collider's friction, or restores DefaultFriction.
func (b *Body) SetFrictionless(on bool) {
	if on {
		b.collider.SetFriction(0)
		return
	}
	b.collider.SetFriction(DefaultFriction)
}

// Size returns the width and height of the collider's bounds.
func (b *Body) Size() mgl64.Vec2 {
	bb := b.collider.CacheBB()
	return mgl64.Vec2{bb.R - bb.L, bb.T - bb.B}
}
