package system

import (
	"github.com/kestrelgame/kestrel/internal/component"
	"github.com/kestrelgame/kestrel/internal/core/ecs"
	"github.com/kestrelgame/kestrel/internal/core/event"
)

// LifetimeSystem counts Lifetime down and emits EntityExpired on the frame
// it reaches zero. Destruction itself happens after the event is delivered.
// Phase Update.
type LifetimeSystem struct {
	bus *event.Bus
}

func NewLifetimeSystem(bus *event.Bus) *LifetimeSystem {
	return &LifetimeSystem{bus: bus}
}

func (s *LifetimeSystem) Phase() ecs.Phase { return ecs.PhaseUpdate }

func (s *LifetimeSystem) Update(w *ecs.World) {
	ecs.Each1(w, component.TypeLifetime, func(id ecs.EntityID, l *component.Lifetime) {
		if l.Ticks <= 0 {
			return
		}
		l.Ticks--
		if l.Ticks == 0 {
			event.Emit(s.bus, event.EntityExpired{Entity: id})
		}
	})
}
