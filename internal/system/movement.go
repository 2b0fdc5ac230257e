package system

import (
	"time"

	"github.com/l1jgo/platcore/internal/component"
	"github.com/l1jgo/platcore/internal/core/ecs"
	coresys "github.com/l1jgo/platcore/internal/core/system"
	"github.com/l1jgo/platcore/internal/physics"
)

// MovementSystem integrates positions and keeps bodies inside the world.
// Phase 4 (Movement).
type MovementSystem struct {
	bounds     physics.Bounds
	velocities *ecs.Store[component.Velocity]
	transforms *ecs.Store[component.Transform]
}

func NewMovementSystem(w *ecs.World, bounds physics.Bounds) *MovementSystem {
	return &MovementSystem{
		bounds:     bounds,
		velocities: ecs.StoreOf[component.Velocity](w),
		transforms: ecs.StoreOf[component.Transform](w),
	}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseMovement }

func (s *MovementSystem) Update(dt time.Duration) error {
	sec := dt.Seconds()
	ecs.Each2(s.velocities, s.transforms, func(_ ecs.EntityID, v *component.Velocity, t *component.Transform) {
		physics.Integrate(t, v, sec)
		physics.ClampToWorld(t, v, s.bounds)
	})
	return nil
}
