package component

import "github.com/milk9111/controller2d/controller"

// CharacterController drives an entity's body from its Input.
type CharacterController struct {
	Controller *controller.Controller
	// WasGrounded is the grounded state after the previous tick, used to
	// detect transitions.
	WasGrounded bool
}

var CharacterControllerComponent = NewComponent[CharacterController]()
