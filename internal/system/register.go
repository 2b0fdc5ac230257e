package system

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/l1jgo/platcore/internal/core/ecs"
	"github.com/l1jgo/platcore/internal/core/event"
	coresys "github.com/l1jgo/platcore/internal/core/system"
	"github.com/l1jgo/platcore/internal/input"
	"github.com/l1jgo/platcore/internal/physics"
)

// Deps bundles what the frame systems need.
type Deps struct {
	World    *ecs.World
	Bus      *event.Bus
	Input    input.Source
	Formulas HealthFormulas
	Rand     *rand.Rand
	Physics  physics.Params
	Bounds   physics.Bounds
	Log      *zap.Logger
}

// Pipeline is the registered set of frame systems. Collision is kept so
// callers can read the frame's contacts.
type Pipeline struct {
	Runner    *coresys.Runner
	Collision *CollisionSystem
}

// NewPipeline builds a runner with every frame system registered.
func NewPipeline(deps *Deps) (*Pipeline, error) {
	collision := NewCollisionSystem(deps.World)
	systems := []coresys.System{
		NewGroundSystem(deps.World),
		NewInputSystem(deps.World, deps.Input, deps.Bus),
		NewHealthSystem(deps.World, deps.Input, deps.Formulas, deps.Bus, deps.Log),
		NewGravitySystem(deps.World, deps.Physics),
		NewMovementSystem(deps.World, deps.Bounds),
		collision,
		NewAnimationSystem(deps.World),
		NewParticleSystem(deps.World, deps.Rand),
		NewLifetimeSystem(deps.World),
		NewFollowSystem(deps.World),
		NewEventSystem(deps.Bus, deps.Log),
		NewCleanupSystem(deps.World),
	}

	runner := coresys.NewRunner()
	for _, s := range systems {
		if err := runner.Register(s); err != nil {
			return nil, fmt.Errorf("register %T: %w", s, err)
		}
	}
	return &Pipeline{Runner: runner, Collision: collision}, nil
}
