package system

import (
	"time"

	"github.com/l1jgo/platcore/internal/component"
	"github.com/l1jgo/platcore/internal/core/ecs"
	coresys "github.com/l1jgo/platcore/internal/core/system"
)

// CleanupSystem flushes the deferred entity destruction queue at frame end.
// It also severs references to every destroyed entity: followers of it lose
// their Follow, and particles it emitted no longer count against whichever
// emitter reuses its id.
// Phase 11 (Cleanup).
type CleanupSystem struct {
	world     *ecs.World
	follows   *ecs.Store[component.Follow]
	particles *ecs.Store[component.Particle]

	orphans []ecs.EntityID
}

func NewCleanupSystem(world *ecs.World) *CleanupSystem {
	s := &CleanupSystem{
		world:     world,
		follows:   ecs.StoreOf[component.Follow](world),
		particles: ecs.StoreOf[component.Particle](world),
	}
	world.OnDestroy(s.sever)
	return s
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) error {
	s.world.FlushDestroyQueue()
	return nil
}

func (s *CleanupSystem) sever(dead ecs.EntityID) {
	s.orphans = s.orphans[:0]
	s.follows.Each(func(id ecs.EntityID, f *component.Follow) {
		if f.Target == dead {
			s.orphans = append(s.orphans, id)
		}
	})
	for _, id := range s.orphans {
		s.follows.Remove(id)
	}

	s.particles.Each(func(_ ecs.EntityID, p *component.Particle) {
		if p.Source == dead {
			p.Source = ecs.NoEntity
		}
	})
}
