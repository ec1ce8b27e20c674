package component

// SafeRespawn stores the last position where an entity stood on safe ground.
type SafeRespawn struct {
	X           float64
	Y           float64
	Initialized bool
}

var SafeRespawnComponent = NewComponent[SafeRespawn]()
