package controller

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyState is the part of the rigid body read by the motion policy each tick.
type BodyState struct {
	VerticalVelocity float64
	GravityY         float64
	GravityScale     float64
}

// JumpVelocity returns the launch speed that peaks at height under the given
// gravity, from v^2 = 2gh. World gravity must point down and the body's
// gravity scale must be positive.
func JumpVelocity(height, gravityY, gravityScale float64) (float64, error) {
	if math.IsNaN(gravityY) || gravityY >= 0 {
		return 0, fmt.Errorf("%w: gravity %v", ErrGravityNotDownward, gravityY)
	}
	if math.IsNaN(gravityScale) || gravityScale <= 0 {
		return 0, fmt.Errorf("%w: gravity scale must be positive, got %v", ErrGravityNotDownward, gravityScale)
	}
	if math.IsNaN(height) || height <= 0 {
		return 0, fmt.Errorf("%w: jump height must be positive, got %v", ErrInvalidConfig, height)
	}
	return math.Sqrt(height * -2 * gravityY * gravityScale), nil
}

// ComputeVelocity returns the velocity to assign to the body this tick and
// consumes any pending jump request.
//
// The horizontal component is always MovementDirection * Speed. The vertical
// component is the jump velocity when a jump is pending, otherwise the body's
// current vertical velocity. If the jump cannot be computed the request is
// still consumed, the vertical velocity passes through and the error is
// returned.
func ComputeVelocity(cfg Config, st *State, body BodyState) (mgl64.Vec2, error) {
	vel := mgl64.Vec2{st.MovementDirection * cfg.Speed, body.VerticalVelocity}
	if !st.JumpRequested {
		return vel, nil
	}
	st.JumpRequested = false

	vy, err := JumpVelocity(cfg.JumpHeight, body.GravityY, body.GravityScale)
	if err != nil {
		return vel, err
	}
	vel[1] = vy
	return vel, nil
}
