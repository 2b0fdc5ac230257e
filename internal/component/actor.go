package component

import "github.com/l1jgo/platcore/internal/core/ecs"

// EntityRef points at another entity. Ids are recycled, so a ref outlives
// its target only until that id is reused.
type EntityRef = ecs.EntityID

// PlayerController turns the input snapshot into movement.
type PlayerController struct {
	Speed      float64
	JumpForce  float64
	IsGrounded bool
}

// Health is read by the HUD and changed by damage/heal intents.
type Health struct {
	Current int
	Max     int
}

// Name labels scene entities so other entities and checkpoints can refer to them.
type Name struct {
	Value string
}
