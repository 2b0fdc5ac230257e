package system

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/l1jgo/platcore/internal/component"
	"github.com/l1jgo/platcore/internal/core/ecs"
	"github.com/l1jgo/platcore/internal/core/event"
	coresys "github.com/l1jgo/platcore/internal/core/system"
	"github.com/l1jgo/platcore/internal/input"
	"github.com/l1jgo/platcore/internal/physics"
)

func newTestPipeline(t *testing.T, w *ecs.World, buf *input.Buffer, bus *event.Bus) *Pipeline {
	t.Helper()
	p, err := NewPipeline(&Deps{
		World:    w,
		Bus:      bus,
		Input:    buf,
		Formulas: &fixedFormulas{damage: 10, heal: 10},
		Rand:     rand.New(rand.NewPCG(9, 9)),
		Physics:  physics.DefaultParams(),
		Bounds:   testBounds,
		Log:      zap.NewNop(),
	})
	require.NoError(t, err)
	return p
}

func TestPipelineRegistersEveryPhase(t *testing.T) {
	p := newTestPipeline(t, ecs.NewWorld(8), &input.Buffer{}, event.NewBus())
	assert.Equal(t, 12, p.Runner.Len())
	assert.Equal(t, []coresys.Phase{
		coresys.PhaseGroundDetect, coresys.PhaseInput, coresys.PhaseHealth,
		coresys.PhaseGravity, coresys.PhaseMovement, coresys.PhaseCollision,
		coresys.PhaseAnimation, coresys.PhaseParticles, coresys.PhaseLifetime,
		coresys.PhaseFollow, coresys.PhaseEvents, coresys.PhaseCleanup,
	}, p.Runner.Phases())
}

func TestPipelinePlayerLandsAndJumps(t *testing.T) {
	w := ecs.NewWorld(32)
	bus := event.NewBus()
	buf := &input.Buffer{}
	p := newTestPipeline(t, w, buf, bus)

	tp, cp := box(100, 400, 64, 64)
	player := newEntity(t, w, tp, cp,
		component.Velocity{},
		component.RigidBody{Mass: 1, UseGravity: true, GravityScale: 1},
		component.PlayerController{Speed: 200, JumpForce: 500})
	tg, cg := box(0, 500, 1000, 50)
	newEntity(t, w, tg, cg, component.RigidBody{IsStatic: true})

	jumps := 0
	event.Subscribe(bus, func(event.Jumped) { jumps++ })

	const dt = 16 * time.Millisecond
	for i := 0; i < 120; i++ {
		require.NoError(t, p.Runner.Tick(dt))
	}
	assert.InDelta(t, 436.0, transformOf(w, player).Y, 1e-6)
	assert.Zero(t, velocityOf(w, player).VY)

	// Ground detection runs at the start of the next frame.
	buf.Set(input.Snapshot{Jump: true, Right: true})
	require.NoError(t, p.Runner.Tick(dt))
	assert.Less(t, transformOf(w, player).Y, 436.0)
	assert.Less(t, velocityOf(w, player).VY, 0.0)
	assert.Greater(t, transformOf(w, player).X, 100.0)
	assert.Equal(t, 1, jumps)

	// Holding jump in the air does nothing more.
	require.NoError(t, p.Runner.Tick(dt))
	assert.Equal(t, 1, jumps)
}

func TestPipelineParticlesComeAndGo(t *testing.T) {
	w := ecs.NewWorld(64)
	p := newTestPipeline(t, w, &input.Buffer{}, event.NewBus())
	newEntity(t, w,
		component.Transform{X: 500, Y: 500, ScaleX: 1, ScaleY: 1},
		component.ParticleEmitter{EmissionRate: 10, ParticleLifetime: 0.5, Active: true, MaxParticles: 20})

	for i := 0; i < 60; i++ {
		require.NoError(t, p.Runner.Tick(frame))
	}
	// Lifetime 0.5s at one spawn per frame keeps about five alive.
	n := len(ecs.EntitiesWith[component.Particle](w))
	assert.GreaterOrEqual(t, n, 4)
	assert.LessOrEqual(t, n, 6)
	assert.Equal(t, n+1, w.Pool().Living())
	assert.Zero(t, w.PendingDestruction())
}
