package system

import (
	"time"

	"github.com/l1jgo/platcore/internal/component"
	"github.com/l1jgo/platcore/internal/core/ecs"
	coresys "github.com/l1jgo/platcore/internal/core/system"
)

// LifetimeSystem schedules entities whose Lifetime has run out.
// Phase 8 (Lifetime).
type LifetimeSystem struct {
	world     *ecs.World
	lifetimes *ecs.Store[component.Lifetime]
}

func NewLifetimeSystem(w *ecs.World) *LifetimeSystem {
	return &LifetimeSystem{world: w, lifetimes: ecs.StoreOf[component.Lifetime](w)}
}

func (s *LifetimeSystem) Phase() coresys.Phase { return coresys.PhaseLifetime }

func (s *LifetimeSystem) Update(dt time.Duration) error {
	sec := dt.Seconds()
	s.lifetimes.Each(func(id ecs.EntityID, l *component.Lifetime) {
		l.Elapsed += sec
		if l.Elapsed >= l.Duration {
			s.world.MarkForDestruction(id)
		}
	})
	return nil
}
