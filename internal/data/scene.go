package data

import (
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"os"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"github.com/l1jgo/platcore/internal/component"
	"github.com/l1jgo/platcore/internal/core/ecs"
)

// Scene is a parsed scene file. Checksum is the blake2b-256 digest of the
// raw file and identifies the layout a checkpoint was taken against.
type Scene struct {
	Entities []EntitySpec  `yaml:"entities"`
	Scatter  []ScatterSpec `yaml:"scatter"`
	Checksum [32]byte      `yaml:"-"`
}

// EntitySpec is one named entity. Every component block is optional.
type EntitySpec struct {
	Name      string         `yaml:"name"`
	Transform *TransformSpec `yaml:"transform"`
	Velocity  *VelocitySpec  `yaml:"velocity"`
	Collider  *ColliderSpec  `yaml:"collider"`
	RigidBody *RigidBodySpec `yaml:"rigid_body"`
	Player    *PlayerSpec    `yaml:"player"`
	Health    *HealthSpec    `yaml:"health"`
	Sprite    *SpriteSpec    `yaml:"sprite"`
	Animation *AnimationSpec `yaml:"animation"`
	Emitter   *EmitterSpec   `yaml:"emitter"`
	Lifetime  *float64       `yaml:"lifetime"`
	Follow    *FollowSpec    `yaml:"follow"`
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
	ScaleX   float64 `yaml:"scale_x"` // 0 means 1
	ScaleY   float64 `yaml:"scale_y"`
}

type VelocitySpec struct {
	VX float64 `yaml:"vx"`
	VY float64 `yaml:"vy"`
}

type ColliderSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Trigger bool    `yaml:"trigger"`
}

type RigidBodySpec struct {
	Mass         float64 `yaml:"mass"`
	UseGravity   bool    `yaml:"use_gravity"`
	GravityScale float64 `yaml:"gravity_scale"`
	Static       bool    `yaml:"static"`
}

type PlayerSpec struct {
	Speed     float64 `yaml:"speed"`
	JumpForce float64 `yaml:"jump_force"`
}

type HealthSpec struct {
	Current int `yaml:"current"`
	Max     int `yaml:"max"`
}

type SpriteSpec struct {
	Texture string `yaml:"texture"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
}

type AnimationSpec struct {
	Sheet       string  `yaml:"sheet"`
	FrameWidth  int     `yaml:"frame_width"`
	FrameHeight int     `yaml:"frame_height"`
	Frames      int     `yaml:"frames"`
	FrameTime   float64 `yaml:"frame_time"`
	Loop        bool    `yaml:"loop"`
	Playing     bool    `yaml:"playing"`
}

type EmitterSpec struct {
	Rate         float64    `yaml:"rate"`
	Lifetime     float64    `yaml:"lifetime"`
	MaxParticles int        `yaml:"max_particles"`
	Active       bool       `yaml:"active"`
	VelocityX    [2]float64 `yaml:"velocity_x"`
	VelocityY    [2]float64 `yaml:"velocity_y"`
}

type FollowSpec struct {
	Target  string  `yaml:"target"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

// ScatterSpec spawns Count dynamic gravity bodies at random positions and
// scales inside the given ranges.
type ScatterSpec struct {
	Count     int        `yaml:"count"`
	Texture   string     `yaml:"texture"`
	Size      float64    `yaml:"size"`
	X         [2]float64 `yaml:"x"`
	Y         [2]float64 `yaml:"y"`
	Scale     [2]float64 `yaml:"scale"`
	VelocityX [2]float64 `yaml:"velocity_x"`
	Mass      float64    `yaml:"mass"`
}

// AssetResolver turns texture names from the scene into opaque handles.
type AssetResolver interface {
	Resolve(name string) (component.TextureHandle, error)
}

// AssetNames is the headless resolver: the handle is the name itself.
type AssetNames struct{}

func (AssetNames) Resolve(name string) (component.TextureHandle, error) {
	return name, nil
}

// LoadScene reads and validates a scene file.
func LoadScene(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := ParseScene(raw)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// ParseScene decodes and validates scene YAML.
func ParseScene(raw []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	s.Checksum = blake2b.Sum256(raw)
	return &s, nil
}

// ChecksumHex returns the scene checksum as lowercase hex.
func (s *Scene) ChecksumHex() string {
	return hex.EncodeToString(s.Checksum[:])
}

// Count returns the number of entities Spawn will create.
func (s *Scene) Count() int {
	n := len(s.Entities)
	for _, g := range s.Scatter {
		n += g.Count
	}
	return n
}

func (s *Scene) validate() error {
	names := make(map[string]bool, len(s.Entities))
	for i, e := range s.Entities {
		if e.Name == "" {
			return fmt.Errorf("entity %d has no name", i)
		}
		if names[e.Name] {
			return fmt.Errorf("duplicate entity name %q", e.Name)
		}
		names[e.Name] = true
		if e.Collider != nil && (e.Collider.Width <= 0 || e.Collider.Height <= 0) {
			return fmt.Errorf("entity %q: collider needs a positive size", e.Name)
		}
		if e.Health != nil && (e.Health.Max <= 0 || e.Health.Current > e.Health.Max) {
			return fmt.Errorf("entity %q: health %d/%d", e.Name, e.Health.Current, e.Health.Max)
		}
	}
	for _, e := range s.Entities {
		if e.Follow == nil {
			continue
		}
		if !names[e.Follow.Target] {
			return fmt.Errorf("entity %q follows unknown entity %q", e.Name, e.Follow.Target)
		}
		if e.Follow.Target == e.Name {
			return fmt.Errorf("entity %q follows itself", e.Name)
		}
	}
	for i, g := range s.Scatter {
		if g.Count < 0 || g.Size <= 0 {
			return fmt.Errorf("scatter %d: count %d size %g", i, g.Count, g.Size)
		}
		for _, r := range [][2]float64{g.X, g.Y, g.Scale, g.VelocityX} {
			if r[0] > r[1] {
				return fmt.Errorf("scatter %d: range %v is reversed", i, r)
			}
		}
		if g.Scale[1] <= 0 {
			return fmt.Errorf("scatter %d: scale must be positive", i)
		}
	}
	return nil
}

// Spawned maps scene names to the entities created for them.
type Spawned struct {
	ByName    map[string]ecs.EntityID
	Player    ecs.EntityID
	HasPlayer bool
}

// Spawn creates the scene's entities in w. The first entity with a player
// block becomes Spawned.Player. Scatter groups draw from rng.
func (s *Scene) Spawn(w *ecs.World, assets AssetResolver, rng *rand.Rand) (*Spawned, error) {
	out := &Spawned{ByName: make(map[string]ecs.EntityID, len(s.Entities))}

	for i := range s.Entities {
		e := &s.Entities[i]
		id, err := w.CreateEntity()
		if err != nil {
			return nil, fmt.Errorf("spawn %q: %w", e.Name, err)
		}
		if err := addComponents(w, id, e, assets); err != nil {
			return nil, fmt.Errorf("spawn %q: %w", e.Name, err)
		}
		out.ByName[e.Name] = id
		if e.Player != nil && !out.HasPlayer {
			out.Player, out.HasPlayer = id, true
		}
	}

	// Follow targets may appear later in the file.
	for _, e := range s.Entities {
		if e.Follow == nil {
			continue
		}
		ecs.AddComponent(w, out.ByName[e.Name], component.Follow{
			Target:  out.ByName[e.Follow.Target],
			OffsetX: e.Follow.OffsetX,
			OffsetY: e.Follow.OffsetY,
		})
	}

	for i, g := range s.Scatter {
		if err := scatter(w, g, assets, rng); err != nil {
			return nil, fmt.Errorf("scatter %d: %w", i, err)
		}
	}
	return out, nil
}

func addComponents(w *ecs.World, id ecs.EntityID, e *EntitySpec, assets AssetResolver) error {
	ecs.AddComponent(w, id, component.Name{Value: e.Name})
	if t := e.Transform; t != nil {
		ecs.AddComponent(w, id, component.Transform{
			X: t.X, Y: t.Y, Rotation: t.Rotation,
			ScaleX: orOne(t.ScaleX), ScaleY: orOne(t.ScaleY),
		})
	}
	if v := e.Velocity; v != nil {
		ecs.AddComponent(w, id, component.Velocity{VX: v.VX, VY: v.VY})
	}
	if c := e.Collider; c != nil {
		ecs.AddComponent(w, id, component.Collider{
			Width: c.Width, Height: c.Height,
			OffsetX: c.OffsetX, OffsetY: c.OffsetY,
			IsTrigger: c.Trigger,
		})
	}
	if rb := e.RigidBody; rb != nil {
		ecs.AddComponent(w, id, component.RigidBody{
			Mass: rb.Mass, UseGravity: rb.UseGravity,
			GravityScale: rb.GravityScale, IsStatic: rb.Static,
		})
	}
	if p := e.Player; p != nil {
		ecs.AddComponent(w, id, component.PlayerController{Speed: p.Speed, JumpForce: p.JumpForce})
	}
	if h := e.Health; h != nil {
		ecs.AddComponent(w, id, component.Health{Current: h.Current, Max: h.Max})
	}
	if sp := e.Sprite; sp != nil {
		tex, err := assets.Resolve(sp.Texture)
		if err != nil {
			return fmt.Errorf("texture %q: %w", sp.Texture, err)
		}
		ecs.AddComponent(w, id, component.Sprite{
			Texture: tex, Width: sp.Width, Height: sp.Height,
			SrcWidth: sp.Width, SrcHeight: sp.Height,
		})
	}
	if a := e.Animation; a != nil {
		sheet, err := assets.Resolve(a.Sheet)
		if err != nil {
			return fmt.Errorf("sprite sheet %q: %w", a.Sheet, err)
		}
		ecs.AddComponent(w, id, component.Animation{
			SpriteSheet: sheet,
			FrameWidth:  a.FrameWidth, FrameHeight: a.FrameHeight,
			TotalFrames: a.Frames, FrameTime: a.FrameTime,
			Loop: a.Loop, Playing: a.Playing,
		})
	}
	if em := e.Emitter; em != nil {
		ecs.AddComponent(w, id, component.ParticleEmitter{
			EmissionRate:     em.Rate,
			ParticleLifetime: em.Lifetime,
			MaxParticles:     em.MaxParticles,
			Active:           em.Active,
			MinVelocityX:     em.VelocityX[0],
			MaxVelocityX:     em.VelocityX[1],
			MinVelocityY:     em.VelocityY[0],
			MaxVelocityY:     em.VelocityY[1],
		})
	}
	if e.Lifetime != nil {
		ecs.AddComponent(w, id, component.Lifetime{Duration: *e.Lifetime})
	}
	return nil
}

func scatter(w *ecs.World, g ScatterSpec, assets AssetResolver, rng *rand.Rand) error {
	var tex component.TextureHandle
	if g.Texture != "" {
		var err error
		if tex, err = assets.Resolve(g.Texture); err != nil {
			return fmt.Errorf("texture %q: %w", g.Texture, err)
		}
	}
	mass := g.Mass
	if mass == 0 {
		mass = 1
	}
	for i := 0; i < g.Count; i++ {
		id, err := w.CreateEntity()
		if err != nil {
			return err
		}
		scale := between(rng, g.Scale)
		size := g.Size * scale
		ecs.AddComponent(w, id, component.Transform{
			X: between(rng, g.X), Y: between(rng, g.Y),
			ScaleX: scale, ScaleY: scale,
		})
		ecs.AddComponent(w, id, component.Velocity{VX: between(rng, g.VelocityX)})
		ecs.AddComponent(w, id, component.Collider{Width: size, Height: size})
		ecs.AddComponent(w, id, component.RigidBody{Mass: mass, UseGravity: true, GravityScale: 1})
		if tex != nil {
			px := int(g.Size)
			ecs.AddComponent(w, id, component.Sprite{
				Texture: tex, Width: px, Height: px, SrcWidth: px, SrcHeight: px,
			})
		}
	}
	return nil
}

func between(rng *rand.Rand, r [2]float64) float64 {
	return r[0] + rng.Float64()*(r[1]-r[0])
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
