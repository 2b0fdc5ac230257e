package physics

import "github.com/l1jgo/platcore/internal/component"

// Defaults for Params.
const (
	DefaultGravity      = 980.0
	DefaultMaxFallSpeed = 900.0
)

// Params are the tunable physics constants.
type Params struct {
	Gravity      float64 // px/s^2, +Y is down
	MaxFallSpeed float64 // px/s
}

func DefaultParams() Params {
	return Params{Gravity: DefaultGravity, MaxFallSpeed: DefaultMaxFallSpeed}
}

// Bounds is the playable area. Margin is the body size kept inside the
// right and bottom edges.
type Bounds struct {
	Width  float64
	Height float64
	Margin float64
}

// ApplyGravity accelerates a non-static gravity body downward and caps the
// fall speed. Upward speed is never capped.
func ApplyGravity(v *component.Velocity, rb *component.RigidBody, p Params, dt float64) {
	if !rb.UseGravity || rb.IsStatic {
		return
	}
	v.VY += p.Gravity * rb.GravityScale * dt
	if v.VY > p.MaxFallSpeed {
		v.VY = p.MaxFallSpeed
	}
}

// Integrate advances position by velocity.
func Integrate(t *component.Transform, v *component.Velocity, dt float64) {
	t.X += v.VX * dt
	t.Y += v.VY * dt
}

// ClampToWorld keeps a body inside the horizontal bounds and above the floor.
// Horizontal contact zeroes VX. The floor zeroes VY only for downward
// motion, and nothing limits travel above y=0.
func ClampToWorld(t *component.Transform, v *component.Velocity, b Bounds) {
	if t.X < 0 {
		t.X = 0
		v.VX = 0
	}
	if maxX := b.Width - b.Margin; t.X > maxX {
		t.X = maxX
		v.VX = 0
	}
	if maxY := b.Height - b.Margin; t.Y > maxY {
		t.Y = maxY
		if v.VY > 0 {
			v.VY = 0
		}
	}
}
