package component

// RespawnRequest marks an entity to be moved back to its SafeRespawn
// position after the next physics step.
type RespawnRequest struct{}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
