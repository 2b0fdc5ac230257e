package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/platcore/internal/core/event"
	coresys "github.com/l1jgo/platcore/internal/core/system"
)

// EventSystem delivers the events emitted during this frame. Handlers run
// before cleanup, so the entities they name are still alive.
// Phase 10 (Events).
type EventSystem struct {
	bus *event.Bus
	log *zap.Logger
}

func NewEventSystem(bus *event.Bus, log *zap.Logger) *EventSystem {
	return &EventSystem{bus: bus, log: log}
}

func (s *EventSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *EventSystem) Update(_ time.Duration) error {
	s.bus.SwapBuffers()
	if n := s.bus.DispatchAll(); n > 0 {
		s.log.Debug("events dispatched", zap.Int("count", n))
	}
	return nil
}
