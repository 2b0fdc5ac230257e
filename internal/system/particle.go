package system

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/l1jgo/platcore/internal/component"
	"github.com/l1jgo/platcore/internal/core/ecs"
	coresys "github.com/l1jgo/platcore/internal/core/system"
)

// Look of a freshly spawned particle.
const (
	ParticleScale = 0.3
	particleR     = 255
	particleG     = 200
	particleB     = 100
	particleA     = 255
)

// ParticleSystem spawns particles from active emitters, ages them, fades
// their alpha and schedules expired ones for cleanup.
// Phase 7 (Particles).
type ParticleSystem struct {
	world      *ecs.World
	rng        *rand.Rand
	emitters   *ecs.Store[component.ParticleEmitter]
	particles  *ecs.Store[component.Particle]
	transforms *ecs.Store[component.Transform]

	live map[ecs.EntityID]int // particles per emitter, rebuilt each frame
}

func NewParticleSystem(w *ecs.World, rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{
		world:      w,
		rng:        rng,
		emitters:   ecs.StoreOf[component.ParticleEmitter](w),
		particles:  ecs.StoreOf[component.Particle](w),
		transforms: ecs.StoreOf[component.Transform](w),
		live:       make(map[ecs.EntityID]int),
	}
}

func (s *ParticleSystem) Phase() coresys.Phase { return coresys.PhaseParticles }

func (s *ParticleSystem) Update(dt time.Duration) error {
	sec := dt.Seconds()

	clear(s.live)
	s.particles.Each(func(_ ecs.EntityID, p *component.Particle) {
		s.live[p.Source]++
	})

	for _, id := range s.emitters.Entities() {
		em := s.emitters.MustGet(id)
		t, ok := s.transforms.Get(id)
		if !ok || !em.Active {
			continue
		}
		em.TimeSinceLastEmit += sec
		if em.EmissionRate <= 0 || em.TimeSinceLastEmit < 1/em.EmissionRate {
			continue
		}
		em.TimeSinceLastEmit = 0
		if em.MaxParticles > 0 && s.live[id] >= em.MaxParticles {
			continue
		}
		if err := s.spawn(id, *em, t.X, t.Y); err != nil {
			return err
		}
		s.live[id]++
	}

	for _, id := range s.particles.Entities() {
		if !s.transforms.Has(id) {
			continue
		}
		p := s.particles.MustGet(id)
		p.Age += sec
		if p.Age >= p.Lifetime {
			s.world.MarkForDestruction(id)
			continue
		}
		p.ColorA = uint8(particleA * (1 - p.Age/p.Lifetime))
	}
	return nil
}

func (s *ParticleSystem) spawn(source ecs.EntityID, em component.ParticleEmitter, x, y float64) error {
	id, err := s.world.CreateEntity()
	if err != nil {
		return fmt.Errorf("spawn particle from %d: %w", source, err)
	}
	ecs.AddComponent(s.world, id, component.Transform{
		X: x, Y: y, ScaleX: ParticleScale, ScaleY: ParticleScale,
	})
	ecs.AddComponent(s.world, id, component.Velocity{
		VX: s.between(em.MinVelocityX, em.MaxVelocityX),
		VY: s.between(em.MinVelocityY, em.MaxVelocityY),
	})
	ecs.AddComponent(s.world, id, component.Particle{
		Lifetime: em.ParticleLifetime,
		ColorR:   particleR,
		ColorG:   particleG,
		ColorB:   particleB,
		ColorA:   particleA,
		Source:   source,
	})
	return nil
}

func (s *ParticleSystem) between(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}
