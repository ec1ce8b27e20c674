package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/controller2d/controller"
)

// Layer ids. A layer id n maps to collision category bit 1<<n.
const (
	LayerDefault uint = iota
	LayerGround
	LayerCharacter
	LayerHazard
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeHazard
	collisionTypeCharacter
)

// Category returns the cp category bits of a layer.
func Category(layer uint) uint {
	return uint(controller.Layers(layer))
}

// LayerFilter returns the filter for a shape living on layer that collides
// with everything.
func LayerFilter(layer uint) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, Category(layer), cp.ALL_CATEGORIES)
}

// QueryFilter returns a filter that only accepts shapes whose layer is in mask.
func QueryFilter(mask controller.LayerMask) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
}
