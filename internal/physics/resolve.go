package physics

import "github.com/l1jgo/platcore/internal/component"

// BounceDamping scales the reflected velocity of a non-static participant.
const BounceDamping = 0.5

// Axis names the axis a collision was resolved on.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Body is one side of a collision pair. Velocity may be nil for bodies that
// do not move; such a body must be passed as the static side.
type Body struct {
	Transform *component.Transform
	Velocity  *component.Velocity
	Collider  *component.Collider
}

// Resolve pushes overlapping bodies a and b apart along the axis of least
// penetration and applies the velocity response. a must be dynamic. When
// staticB is set, a absorbs the whole correction and b is left untouched;
// otherwise each moves half the overlap. Ties resolve on X.
//
// Horizontal contacts reflect VX at half speed. Vertical contacts against a
// static body stop a landing (VY>0 from above) or a head bump (VY<0 from
// below) instead of bouncing; between two dynamic bodies both VY reflect.
//
// It returns the resolution axis and false when the boxes do not overlap.
func Resolve(a, b Body, staticB bool) (Axis, bool) {
	boxA := BoxOf(a.Transform, a.Collider)
	boxB := BoxOf(b.Transform, b.Collider)
	if !Overlaps(boxA, boxB) {
		return AxisX, false
	}
	overlapX, overlapY := Penetration(boxA, boxB)

	var scratch component.Velocity
	vb := b.Velocity
	if vb == nil {
		vb = &scratch
	}
	va := a.Velocity
	if va == nil {
		va = &scratch
	}

	if overlapX <= overlapY {
		sign := 1.0
		if boxA.X < boxB.X {
			sign = -1.0
		}
		if staticB {
			a.Transform.X += sign * overlapX
		} else {
			a.Transform.X += sign * overlapX / 2
			b.Transform.X -= sign * overlapX / 2
		}
		va.VX = -va.VX * BounceDamping
		if !staticB {
			vb.VX = -vb.VX * BounceDamping
		}
		return AxisX, true
	}

	above := boxA.Y < boxB.Y
	sign := 1.0
	if above {
		sign = -1.0
	}
	if staticB {
		a.Transform.Y += sign * overlapY
		if above && va.VY > 0 {
			va.VY = 0
		}
		if !above && va.VY < 0 {
			va.VY = 0
		}
		return AxisY, true
	}
	a.Transform.Y += sign * overlapY / 2
	b.Transform.Y -= sign * overlapY / 2
	va.VY = -va.VY * BounceDamping
	vb.VY = -vb.VY * BounceDamping
	return AxisY, true
}
