package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()
