package component

// ScriptedInput marks an entity whose Input comes from an intent script
// instead of a device.
type ScriptedInput struct {
	Script string
}

var ScriptedInputComponent = NewComponent[ScriptedInput]()
