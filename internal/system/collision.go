package system

import (
	"time"

	"github.com/l1jgo/platcore/internal/component"
	"github.com/l1jgo/platcore/internal/core/ecs"
	coresys "github.com/l1jgo/platcore/internal/core/system"
	"github.com/l1jgo/platcore/internal/physics"
)

// Contact records one overlapping collider pair seen this frame.
type Contact struct {
	A, B    ecs.EntityID
	Trigger bool
	Axis    physics.Axis
}

// CollisionSystem tests every collider pair once per frame and separates the
// solid ones. Trigger pairs are only recorded. Pairs where neither side can
// move, or where both are static, are left as they are.
// Phase 5 (Collision).
type CollisionSystem struct {
	colliders  *ecs.Store[component.Collider]
	transforms *ecs.Store[component.Transform]
	velocities *ecs.Store[component.Velocity]
	bodies     *ecs.Store[component.RigidBody]

	ids      []ecs.EntityID // reused pair snapshot
	contacts []Contact
}

func NewCollisionSystem(w *ecs.World) *CollisionSystem {
	return &CollisionSystem{
		colliders:  ecs.StoreOf[component.Collider](w),
		transforms: ecs.StoreOf[component.Transform](w),
		velocities: ecs.StoreOf[component.Velocity](w),
		bodies:     ecs.StoreOf[component.RigidBody](w),
	}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseCollision }

// Contacts returns the pairs found during the last Update. The slice is
// reused on the next frame.
func (s *CollisionSystem) Contacts() []Contact { return s.contacts }

func (s *CollisionSystem) Update(_ time.Duration) error {
	s.ids = append(s.ids[:0], s.colliders.Entities()...)
	s.contacts = s.contacts[:0]

	for i := 0; i < len(s.ids); i++ {
		a := s.ids[i]
		ta, ok := s.transforms.Get(a)
		if !ok {
			continue
		}
		ca := s.colliders.MustGet(a)
		for j := i + 1; j < len(s.ids); j++ {
			b := s.ids[j]
			tb, ok := s.transforms.Get(b)
			if !ok {
				continue
			}
			cb := s.colliders.MustGet(b)
			if !physics.Overlaps(physics.BoxOf(ta, ca), physics.BoxOf(tb, cb)) {
				continue
			}
			if ca.IsTrigger || cb.IsTrigger {
				s.contacts = append(s.contacts, Contact{A: a, B: b, Trigger: true})
				continue
			}
			if axis, ok := s.resolve(a, b, ta, tb, ca, cb); ok {
				s.contacts = append(s.contacts, Contact{A: a, B: b, Axis: axis})
			}
		}
	}
	return nil
}

func (s *CollisionSystem) resolve(a, b ecs.EntityID, ta, tb *component.Transform, ca, cb *component.Collider) (physics.Axis, bool) {
	va, movesA := s.velocities.Get(a)
	vb, movesB := s.velocities.Get(b)
	bodyA := physics.Body{Transform: ta, Velocity: va, Collider: ca}
	bodyB := physics.Body{Transform: tb, Velocity: vb, Collider: cb}

	switch {
	case movesA && movesB:
		staticA, staticB := s.isStatic(a), s.isStatic(b)
		switch {
		case staticA && staticB:
			return physics.AxisX, false
		case staticA:
			return physics.Resolve(bodyB, bodyA, true)
		default:
			return physics.Resolve(bodyA, bodyB, staticB)
		}
	case movesA:
		return physics.Resolve(bodyA, bodyB, true)
	case movesB:
		return physics.Resolve(bodyB, bodyA, true)
	default:
		return physics.AxisX, false
	}
}

func (s *CollisionSystem) isStatic(id ecs.EntityID) bool {
	rb, ok := s.bodies.Get(id)
	return ok && rb.IsStatic
}
