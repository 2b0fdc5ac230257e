package system

import (
	"time"

	"github.com/l1jgo/platcore/internal/component"
	"github.com/l1jgo/platcore/internal/core/ecs"
	coresys "github.com/l1jgo/platcore/internal/core/system"
	"github.com/l1jgo/platcore/internal/physics"
)

// GravitySystem accelerates every non-static gravity body with a Velocity.
// Phase 3 (Gravity).
type GravitySystem struct {
	params     physics.Params
	bodies     *ecs.Store[component.RigidBody]
	velocities *ecs.Store[component.Velocity]
}

func NewGravitySystem(w *ecs.World, params physics.Params) *GravitySystem {
	return &GravitySystem{
		params:     params,
		bodies:     ecs.StoreOf[component.RigidBody](w),
		velocities: ecs.StoreOf[component.Velocity](w),
	}
}

func (s *GravitySystem) Phase() coresys.Phase { return coresys.PhaseGravity }

func (s *GravitySystem) Update(dt time.Duration) error {
	sec := dt.Seconds()
	ecs.Each2(s.bodies, s.velocities, func(_ ecs.EntityID, rb *component.RigidBody, v *component.Velocity) {
		physics.ApplyGravity(v, rb, s.params, sec)
	})
	return nil
}
