package event

import "github.com/l1jgo/platcore/internal/core/ecs"

// Game-state transitions published for the audio collaborator. The core
// never plays sounds itself.

// HealthChanged fires whenever a Health value moves.
type HealthChanged struct {
	Entity   ecs.EntityID
	Previous int
	Current  int
	Max      int
}

// HealthDepleted fires when a Health value crosses from positive to zero.
type HealthDepleted struct {
	Entity ecs.EntityID
}

// Jumped fires when a grounded player leaves the ground.
type Jumped struct {
	Entity ecs.EntityID
}
