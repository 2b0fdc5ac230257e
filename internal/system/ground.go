package system

import (
	"time"

	"github.com/l1jgo/platcore/internal/component"
	"github.com/l1jgo/platcore/internal/core/ecs"
	coresys "github.com/l1jgo/platcore/internal/core/system"
	"github.com/l1jgo/platcore/internal/physics"
)

// GroundSystem decides whether each player stands on something, using last
// frame's final positions. A player moving upward is never grounded, even
// while its feet are still inside a platform's vertical span.
// Phase 0 (GroundDetect).
type GroundSystem struct {
	players    *ecs.Store[component.PlayerController]
	transforms *ecs.Store[component.Transform]
	colliders  *ecs.Store[component.Collider]
	velocities *ecs.Store[component.Velocity]
}

func NewGroundSystem(w *ecs.World) *GroundSystem {
	return &GroundSystem{
		players:    ecs.StoreOf[component.PlayerController](w),
		transforms: ecs.StoreOf[component.Transform](w),
		colliders:  ecs.StoreOf[component.Collider](w),
		velocities: ecs.StoreOf[component.Velocity](w),
	}
}

func (s *GroundSystem) Phase() coresys.Phase { return coresys.PhaseGroundDetect }

func (s *GroundSystem) Update(_ time.Duration) error {
	ecs.Each3(s.players, s.transforms, s.velocities, func(id ecs.EntityID, ctrl *component.PlayerController, t *component.Transform, v *component.Velocity) {
		c, ok := s.colliders.Get(id)
		if !ok {
			return
		}

		ctrl.IsGrounded = false
		if v.VY < 0 {
			return
		}
		probe := physics.GroundProbe(physics.BoxOf(t, c))
		for _, other := range s.colliders.Entities() {
			if other == id {
				continue
			}
			ot, ok := s.transforms.Get(other)
			if !ok {
				continue
			}
			if physics.Overlaps(probe, physics.BoxOf(ot, s.colliders.MustGet(other))) {
				ctrl.IsGrounded = true
				return
			}
		}
	})
	return nil
}
