package system

import (
	"github.com/kestrelgame/kestrel/internal/core/ecs"
	"github.com/kestrelgame/kestrel/internal/core/event"
	"go.uber.org/zap"
)

// EventDispatchSystem swaps the bus buffers and delivers last frame's
// events. Phase PreUpdate, so handlers see a consistent world before logic runs.
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() ecs.Phase { return ecs.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ *ecs.World) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}

// SubscribeDespawn queues expired and killed entities for destruction at
// the end of the frame they are delivered in.
func SubscribeDespawn(bus *event.Bus, w *ecs.World, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	despawn := func(id ecs.EntityID, reason string) {
		if !w.IsValid(id) {
			return
		}
		log.Debug("despawn queued", zap.Stringer("entity", id), zap.String("reason", reason))
		w.MarkForDestruction(id)
	}
	event.Subscribe(bus, func(ev event.EntityExpired) { despawn(ev.Entity, "expired") })
	event.Subscribe(bus, func(ev event.EntityKilled) { despawn(ev.Entity, "killed") })
}
