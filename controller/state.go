package controller

// State is the per-character controller state.
type State struct {
	// MovementDirection is the signed horizontal intent. It is not clamped;
	// values outside [-1, 1] scale the speed.
	MovementDirection float64
	// Grounded is the result of the latest ground probe.
	Grounded bool
	// JumpRequested is set by RequestJump and cleared by ComputeVelocity.
	JumpRequested bool
}

// RequestJump queues a jump for the next velocity computation. It has no
// effect while airborne; the request is dropped, not queued.
func (s *State) RequestJump() {
	if s.Grounded {
		s.JumpRequested = true
	}
}

// Phase is the grounded/airborne state of a character.
type Phase int

const (
	Airborne Phase = iota
	Grounded
)

func (p Phase) String() string {
	if p == Grounded {
		return "grounded"
	}
	return "airborne"
}

// Phase returns the state's current phase.
func (s State) Phase() Phase {
	if s.Grounded {
		return Grounded
	}
	return Airborne
}
