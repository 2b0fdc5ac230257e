package component

// TextureHandle is an asset handle supplied by the asset collaborator.
// It is stored verbatim and never inspected by the simulation.
type TextureHandle any

// Sprite is what the renderer draws. A zero source rect means "whole texture".
type Sprite struct {
	Texture   TextureHandle
	Width     int
	Height    int
	SrcX      int
	SrcY      int
	SrcWidth  int
	SrcHeight int
}

// Animation steps through a horizontal strip of frames on a sprite sheet.
type Animation struct {
	SpriteSheet  TextureHandle
	FrameWidth   int
	FrameHeight  int
	TotalFrames  int
	CurrentFrame int
	FrameTime    float64 // seconds per frame
	ElapsedTime  float64
	Loop         bool
	Playing      bool
}

// ParticleEmitter spawns particles at its own Transform.
type ParticleEmitter struct {
	EmissionRate      float64 // particles per second
	ParticleLifetime  float64 // seconds
	TimeSinceLastEmit float64
	MaxParticles      int // 0 = unlimited
	Active            bool
	MinVelocityX      float64
	MaxVelocityX      float64
	MinVelocityY      float64
	MaxVelocityY      float64
}

// Particle is a short-lived point that fades out over its lifetime.
type Particle struct {
	Lifetime float64
	Age      float64
	ColorR   uint8
	ColorG   uint8
	ColorB   uint8
	ColorA   uint8
	Source   EntityRef
}

// Lifetime destroys its entity once Elapsed reaches Duration.
type Lifetime struct {
	Duration float64
	Elapsed  float64
}
