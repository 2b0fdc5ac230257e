package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/l1jgo/platcore/internal/component"
	"github.com/l1jgo/platcore/internal/core/ecs"
	"github.com/l1jgo/platcore/internal/scripting"
)

const frame = 100 * time.Millisecond

func newEntity(t *testing.T, w *ecs.World, comps ...any) ecs.EntityID {
	t.Helper()
	id, err := w.CreateEntity()
	require.NoError(t, err)
	for _, c := range comps {
		switch c := c.(type) {
		case component.Transform:
			ecs.AddComponent(w, id, c)
		case component.Velocity:
			ecs.AddComponent(w, id, c)
		case component.Collider:
			ecs.AddComponent(w, id, c)
		case component.RigidBody:
			ecs.AddComponent(w, id, c)
		case component.PlayerController:
			ecs.AddComponent(w, id, c)
		case component.Health:
			ecs.AddComponent(w, id, c)
		case component.Sprite:
			ecs.AddComponent(w, id, c)
		case component.Animation:
			ecs.AddComponent(w, id, c)
		case component.ParticleEmitter:
			ecs.AddComponent(w, id, c)
		case component.Particle:
			ecs.AddComponent(w, id, c)
		case component.Lifetime:
			ecs.AddComponent(w, id, c)
		case component.Follow:
			ecs.AddComponent(w, id, c)
		default:
			t.Fatalf("unsupported component %T", c)
		}
	}
	return id
}

func transformOf(w *ecs.World, id ecs.EntityID) *component.Transform {
	return ecs.StoreOf[component.Transform](w).MustGet(id)
}

func velocityOf(w *ecs.World, id ecs.EntityID) *component.Velocity {
	return ecs.StoreOf[component.Velocity](w).MustGet(id)
}

type fixedFormulas struct {
	damage, heal int
	seen         []scripting.HealthContext
}

func (f *fixedFormulas) Damage(ctx scripting.HealthContext) int {
	f.seen = append(f.seen, ctx)
	return f.damage
}

func (f *fixedFormulas) Heal(ctx scripting.HealthContext) int {
	f.seen = append(f.seen, ctx)
	return f.heal
}
