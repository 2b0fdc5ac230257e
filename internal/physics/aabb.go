// Package physics holds the collision math shared by the frame systems:
// box derivation, overlap tests, gravity, integration and penetration
// resolution. It knows nothing about the world or its stores.
package physics

import (
	"math"

	"github.com/l1jgo/platcore/internal/component"
)

// AABB is an axis-aligned box. It is derived from Transform + Collider on
// every query and never cached.
type AABB struct {
	X, Y, Width, Height float64
}

// BoxOf derives the world-space box of a collider.
func BoxOf(t *component.Transform, c *component.Collider) AABB {
	return AABB{
		X:      t.X + c.OffsetX,
		Y:      t.Y + c.OffsetY,
		Width:  c.Width,
		Height: c.Height,
	}
}

func (a AABB) Right() float64  { return a.X + a.Width }
func (a AABB) Bottom() float64 { return a.Y + a.Height }

// Overlaps reports strict interior overlap; touching edges do not count.
func Overlaps(a, b AABB) bool {
	return a.X < b.X+b.Width &&
		a.X+a.Width > b.X &&
		a.Y < b.Y+b.Height &&
		a.Y+a.Height > b.Y
}

// Penetration returns the overlap depth of a and b on each axis.
// Both values are positive only when the boxes overlap.
func Penetration(a, b AABB) (overlapX, overlapY float64) {
	overlapX = math.Min(a.Right(), b.Right()) - math.Max(a.X, b.X)
	overlapY = math.Min(a.Bottom(), b.Bottom()) - math.Max(a.Y, b.Y)
	return overlapX, overlapY
}

// Ground probe geometry: a strip under the feet, inset from both sides.
const (
	ProbeInset  = 5.0
	ProbeHeight = 5.0
)

// GroundProbe returns the thin box just below a body used for ground checks.
func GroundProbe(body AABB) AABB {
	return AABB{
		X:      body.X + ProbeInset,
		Y:      body.Bottom(),
		Width:  body.Width - 2*ProbeInset,
		Height: ProbeHeight,
	}
}
