package component

// Input stores the resolved intent for an entity this tick.
type Input struct {
	MoveX       float64
	JumpPressed bool
}

var InputComponent = NewComponent[Input]()
