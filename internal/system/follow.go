package system

import (
	"time"

	"github.com/l1jgo/platcore/internal/component"
	"github.com/l1jgo/platcore/internal/core/ecs"
	coresys "github.com/l1jgo/platcore/internal/core/system"
)

// FollowSystem snaps followers to their target's position plus offset.
// A follower whose target is gone stays where it is.
// Phase 9 (Follow).
type FollowSystem struct {
	world      *ecs.World
	follows    *ecs.Store[component.Follow]
	transforms *ecs.Store[component.Transform]
}

func NewFollowSystem(w *ecs.World) *FollowSystem {
	return &FollowSystem{
		world:      w,
		follows:    ecs.StoreOf[component.Follow](w),
		transforms: ecs.StoreOf[component.Transform](w),
	}
}

func (s *FollowSystem) Phase() coresys.Phase { return coresys.PhaseFollow }

func (s *FollowSystem) Update(_ time.Duration) error {
	ecs.Each2(s.follows, s.transforms, func(id ecs.EntityID, f *component.Follow, t *component.Transform) {
		if f.Target == id || !s.world.Alive(f.Target) {
			return
		}
		target, ok := s.transforms.Get(f.Target)
		if !ok {
			return
		}
		t.X = target.X + f.OffsetX
		t.Y = target.Y + f.OffsetY
	})
	return nil
}
