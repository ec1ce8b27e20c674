package component

// Transform stores an entity's world position, y up.
type Transform struct {
	X, Y     float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
