package data

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"github.com/l1jgo/platcore/internal/component"
	"github.com/l1jgo/platcore/internal/core/ecs"
)

const sampleScene = `
entities:
  - name: hero
    transform: {x: 10, y: 20}
    velocity: {vx: 5}
    collider: {width: 32, height: 48, offset_y: 4}
    rigid_body: {mass: 1, use_gravity: true, gravity_scale: 1}
    player: {speed: 250, jump_force: 450}
    health: {current: 80, max: 100}
    sprite: {texture: hero.png, width: 32, height: 48}
  - name: sparks
    follow: {target: hero, offset_x: 16}
    transform: {x: 0, y: 0, scale_x: 2}
    emitter: {rate: 10, lifetime: 1, active: true, velocity_x: [-5, 5], velocity_y: [-10, -1]}
  - name: banner
    transform: {x: 100, y: 100}
    lifetime: 3.5
    animation: {sheet: banner.png, frame_width: 8, frame_height: 8, frames: 4, frame_time: 0.1, loop: true, playing: true}
scatter:
  - count: 4
    texture: ball.png
    size: 64
    x: [100, 200]
    y: [0, 50]
    scale: [0.5, 1.5]
    velocity_x: [-20, 20]
`

func TestParseSceneChecksum(t *testing.T) {
	s, err := ParseScene([]byte(sampleScene))
	require.NoError(t, err)
	assert.Equal(t, blake2b.Sum256([]byte(sampleScene)), s.Checksum)
	assert.Len(t, s.ChecksumHex(), 64)
	assert.Equal(t, 7, s.Count())

	other, err := ParseScene([]byte(sampleScene + "\n# edited\n"))
	require.NoError(t, err)
	assert.NotEqual(t, s.Checksum, other.Checksum)
}

func TestSpawnScene(t *testing.T) {
	s, err := ParseScene([]byte(sampleScene))
	require.NoError(t, err)

	w := ecs.NewWorld(32)
	out, err := s.Spawn(w, AssetNames{}, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)
	require.True(t, out.HasPlayer)
	assert.Equal(t, out.ByName["hero"], out.Player)
	assert.Equal(t, 7, w.Pool().Living())

	hero := out.Player
	tr, _ := ecs.GetComponent[component.Transform](w, hero)
	assert.Equal(t, component.Transform{X: 10, Y: 20, ScaleX: 1, ScaleY: 1}, *tr)
	c, _ := ecs.GetComponent[component.Collider](w, hero)
	assert.Equal(t, component.Collider{Width: 32, Height: 48, OffsetY: 4}, *c)
	pc, _ := ecs.GetComponent[component.PlayerController](w, hero)
	assert.Equal(t, 250.0, pc.Speed)
	assert.False(t, pc.IsGrounded)
	h, _ := ecs.GetComponent[component.Health](w, hero)
	assert.Equal(t, component.Health{Current: 80, Max: 100}, *h)
	sp, _ := ecs.GetComponent[component.Sprite](w, hero)
	assert.Equal(t, "hero.png", sp.Texture)
	name, _ := ecs.GetComponent[component.Name](w, hero)
	assert.Equal(t, "hero", name.Value)

	sparks := out.ByName["sparks"]
	f, ok := ecs.GetComponent[component.Follow](w, sparks)
	require.True(t, ok)
	assert.Equal(t, hero, f.Target)
	assert.Equal(t, 16.0, f.OffsetX)
	st, _ := ecs.GetComponent[component.Transform](w, sparks)
	assert.Equal(t, 2.0, st.ScaleX)
	assert.Equal(t, 1.0, st.ScaleY)
	em, _ := ecs.GetComponent[component.ParticleEmitter](w, sparks)
	assert.Equal(t, -10.0, em.MinVelocityY)
	assert.Equal(t, -1.0, em.MaxVelocityY)

	banner := out.ByName["banner"]
	lt, _ := ecs.GetComponent[component.Lifetime](w, banner)
	assert.Equal(t, 3.5, lt.Duration)
	anim, _ := ecs.GetComponent[component.Animation](w, banner)
	assert.Equal(t, "banner.png", anim.SpriteSheet)
	assert.Equal(t, 4, anim.TotalFrames)
}

func TestScatterStaysInRanges(t *testing.T) {
	s, err := ParseScene([]byte(sampleScene))
	require.NoError(t, err)
	w := ecs.NewWorld(32)
	out, err := s.Spawn(w, AssetNames{}, rand.New(rand.NewPCG(4, 2)))
	require.NoError(t, err)

	named := map[ecs.EntityID]bool{}
	for _, id := range out.ByName {
		named[id] = true
	}
	balls := 0
	for _, id := range ecs.EntitiesWith[component.RigidBody](w) {
		if named[id] {
			continue
		}
		balls++
		tr, _ := ecs.GetComponent[component.Transform](w, id)
		assert.True(t, tr.X >= 100 && tr.X < 200, "x %v", tr.X)
		assert.True(t, tr.Y >= 0 && tr.Y < 50, "y %v", tr.Y)
		assert.True(t, tr.ScaleX >= 0.5 && tr.ScaleX < 1.5, "scale %v", tr.ScaleX)
		c, _ := ecs.GetComponent[component.Collider](w, id)
		assert.InDelta(t, 64*tr.ScaleX, c.Width, 1e-9)
		assert.Equal(t, c.Width, c.Height)
		rb, _ := ecs.GetComponent[component.RigidBody](w, id)
		assert.Equal(t, component.RigidBody{Mass: 1, UseGravity: true, GravityScale: 1}, *rb)
		sp, _ := ecs.GetComponent[component.Sprite](w, id)
		assert.Equal(t, "ball.png", sp.Texture)
	}
	assert.Equal(t, 4, balls)
}

type failingAssets struct{}

func (failingAssets) Resolve(name string) (component.TextureHandle, error) {
	return nil, errors.New("no such asset: " + name)
}

func TestSpawnAssetError(t *testing.T) {
	s, err := ParseScene([]byte(sampleScene))
	require.NoError(t, err)
	_, err = s.Spawn(ecs.NewWorld(32), failingAssets{}, rand.New(rand.NewPCG(1, 1)))
	assert.ErrorContains(t, err, "hero.png")
}

func TestSpawnReportsEntityLimit(t *testing.T) {
	s, err := ParseScene([]byte(sampleScene))
	require.NoError(t, err)
	_, err = s.Spawn(ecs.NewWorld(5), AssetNames{}, rand.New(rand.NewPCG(1, 1)))
	assert.ErrorIs(t, err, ecs.ErrEntityLimit)
}

func TestParseSceneRejects(t *testing.T) {
	for _, tc := range []struct {
		name string
		yaml string
	}{
		{"bad yaml", "entities: [ {name: a"},
		{"unnamed", "entities:\n  - transform: {x: 1}"},
		{"duplicate", "entities:\n  - name: a\n  - name: a"},
		{"unknown follow", "entities:\n  - name: a\n    follow: {target: b}"},
		{"self follow", "entities:\n  - name: a\n    follow: {target: a}"},
		{"empty collider", "entities:\n  - name: a\n    collider: {width: 0, height: 5}"},
		{"overfull health", "entities:\n  - name: a\n    health: {current: 5, max: 3}"},
		{"reversed range", "scatter:\n  - {count: 1, size: 4, x: [5, 1], scale: [1, 1]}"},
		{"zero scale", "scatter:\n  - {count: 1, size: 4}"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScene([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadBundledScene(t *testing.T) {
	s, err := LoadScene(filepath.Join("..", "..", "data", "yaml", "scene.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 11, s.Count())

	w := ecs.NewWorld(64)
	out, err := s.Spawn(w, AssetNames{}, rand.New(rand.NewPCG(1, 0)))
	require.NoError(t, err)
	require.True(t, out.HasPlayer)
	f, ok := ecs.GetComponent[component.Follow](w, out.ByName["player_particles"])
	require.True(t, ok)
	assert.Equal(t, out.Player, f.Target)
}

func TestLoadSceneMissing(t *testing.T) {
	_, err := LoadScene(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
