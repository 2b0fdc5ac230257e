package system

import (
	"time"

	"github.com/l1jgo/platcore/internal/component"
	"github.com/l1jgo/platcore/internal/core/ecs"
	"github.com/l1jgo/platcore/internal/core/event"
	coresys "github.com/l1jgo/platcore/internal/core/system"
	"github.com/l1jgo/platcore/internal/input"
)

// InputSystem applies the frame's input snapshot to player velocities.
// Horizontal speed is set outright each frame (left wins over right) and a
// jump only starts from the ground.
// Phase 1 (Input).
type InputSystem struct {
	source     input.Source
	bus        *event.Bus
	players    *ecs.Store[component.PlayerController]
	transforms *ecs.Store[component.Transform]
	velocities *ecs.Store[component.Velocity]
}

func NewInputSystem(w *ecs.World, source input.Source, bus *event.Bus) *InputSystem {
	return &InputSystem{
		source:     source,
		bus:        bus,
		players:    ecs.StoreOf[component.PlayerController](w),
		transforms: ecs.StoreOf[component.Transform](w),
		velocities: ecs.StoreOf[component.Velocity](w),
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) error {
	snap := s.source.Snapshot()
	s.players.Each(func(id ecs.EntityID, ctrl *component.PlayerController) {
		if !s.transforms.Has(id) {
			return
		}
		v, ok := s.velocities.Get(id)
		if !ok {
			return
		}

		v.VX = 0
		if snap.Right {
			v.VX = ctrl.Speed
		}
		if snap.Left {
			v.VX = -ctrl.Speed
		}

		if snap.Jump && ctrl.IsGrounded {
			v.VY = -ctrl.JumpForce
			ctrl.IsGrounded = false
			event.Emit(s.bus, event.Jumped{Entity: id})
		}
	})
	return nil
}
