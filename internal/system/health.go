package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/platcore/internal/component"
	"github.com/l1jgo/platcore/internal/core/ecs"
	"github.com/l1jgo/platcore/internal/core/event"
	coresys "github.com/l1jgo/platcore/internal/core/system"
	"github.com/l1jgo/platcore/internal/input"
	"github.com/l1jgo/platcore/internal/scripting"
)

// HealthFormulas computes damage and heal amounts. *scripting.Engine
// implements it.
type HealthFormulas interface {
	Damage(ctx scripting.HealthContext) int
	Heal(ctx scripting.HealthContext) int
}

// HealthSystem applies damage/heal intents to player health and publishes
// the resulting transitions for the audio collaborator.
// Phase 2 (Health).
type HealthSystem struct {
	source   input.Source
	formulas HealthFormulas
	bus      *event.Bus
	log      *zap.Logger
	players  *ecs.Store[component.PlayerController]
	healths  *ecs.Store[component.Health]
}

func NewHealthSystem(w *ecs.World, source input.Source, formulas HealthFormulas, bus *event.Bus, log *zap.Logger) *HealthSystem {
	return &HealthSystem{
		source:   source,
		formulas: formulas,
		bus:      bus,
		log:      log,
		players:  ecs.StoreOf[component.PlayerController](w),
		healths:  ecs.StoreOf[component.Health](w),
	}
}

func (s *HealthSystem) Phase() coresys.Phase { return coresys.PhaseHealth }

func (s *HealthSystem) Update(_ time.Duration) error {
	snap := s.source.Snapshot()
	if !snap.Damage && !snap.Heal {
		return nil
	}
	for _, id := range s.players.Entities() {
		h, ok := s.healths.Get(id)
		if !ok {
			continue
		}
		prev := h.Current
		if snap.Damage {
			h.Current = clampHealth(h.Current-s.formulas.Damage(healthContext(id, h)), h.Max)
		}
		if snap.Heal {
			h.Current = clampHealth(h.Current+s.formulas.Heal(healthContext(id, h)), h.Max)
		}
		if h.Current == prev {
			continue
		}

		s.log.Debug("health changed",
			zap.Uint32("entity", uint32(id)),
			zap.Int("from", prev),
			zap.Int("to", h.Current))
		event.Emit(s.bus, event.HealthChanged{Entity: id, Previous: prev, Current: h.Current, Max: h.Max})
		if prev > 0 && h.Current == 0 {
			event.Emit(s.bus, event.HealthDepleted{Entity: id})
		}
	}
	return nil
}

// clampHealth bounds hp to [0, limit]. Amounts are bounded to int32 range
// by the formulas, so the sum cannot wrap.
func clampHealth(hp, limit int) int {
	return min(max(hp, 0), limit)
}

func healthContext(id ecs.EntityID, h *component.Health) scripting.HealthContext {
	return scripting.HealthContext{Entity: uint32(id), Current: h.Current, Max: h.Max}
}
