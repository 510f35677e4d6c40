package system

import (
	"github.com/kestrelgame/kestrel/internal/component"
	"github.com/kestrelgame/kestrel/internal/core/ecs"
	"github.com/kestrelgame/kestrel/internal/core/event"
)

// DamageSystem applies Health.DamagePerTick and emits EntityKilled when HP
// reaches zero. Phase Update.
type DamageSystem struct {
	bus  *event.Bus
	tick uint64
}

func NewDamageSystem(bus *event.Bus) *DamageSystem {
	return &DamageSystem{bus: bus}
}

func (s *DamageSystem) Phase() ecs.Phase { return ecs.PhaseUpdate }

func (s *DamageSystem) Update(w *ecs.World) {
	s.tick++
	ecs.Each1(w, component.TypeHealth, func(id ecs.EntityID, h *component.Health) {
		if h.HP <= 0 || h.DamagePerTick <= 0 {
			return
		}
		h.HP -= h.DamagePerTick
		if h.HP <= 0 {
			h.HP = 0
			event.Emit(s.bus, event.EntityKilled{Entity: id, Tick: s.tick})
		}
	})
}
