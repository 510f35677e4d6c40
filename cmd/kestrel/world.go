package main

import (
	"fmt"
	"io"

	"github.com/kestrelgame/kestrel/internal/component"
	"github.com/kestrelgame/kestrel/internal/config"
	"github.com/kestrelgame/kestrel/internal/core/ecs"
	"github.com/kestrelgame/kestrel/internal/core/event"
	"github.com/kestrelgame/kestrel/internal/data"
	"github.com/kestrelgame/kestrel/internal/scripting"
	"github.com/kestrelgame/kestrel/internal/system"
	"go.uber.org/zap"
)

// newWorld builds the world and registers one pool per demo component type.
func newWorld(cfg *config.Config, log *zap.Logger) *ecs.World {
	w := ecs.NewWorld(cfg.World.MaxEntities, uint32(component.Count), cfg.World.MaxSystems,
		ecs.WithLogger(log.Named("ecs")),
		ecs.WithStrict(cfg.World.Strict),
	)
	n := cfg.PoolCapacity()
	ecs.RegisterComponent[component.Position](w, component.TypePosition, n, nil)
	ecs.RegisterComponent[component.Velocity](w, component.TypeVelocity, n, nil)
	ecs.RegisterComponent[component.Health](w, component.TypeHealth, n, nil)
	ecs.RegisterComponent[component.Lifetime](w, component.TypeLifetime, n, nil)
	ecs.RegisterComponent(w, component.TypeTag, n, func(t *component.Tag) {
		log.Debug("despawned", zap.String("prefab", t.Prefab))
		t.Prefab = ""
	})
	return w
}

// registerSystems wires the frame systems in dispatch order and returns the
// registration index of the stats system, which is run on demand.
func registerSystems(w *ecs.World, bus *event.Bus, prefabs *data.PrefabTable, lua *scripting.Engine, out io.Writer, frame func() uint64, log *zap.Logger) int {
	system.SubscribeDespawn(bus, w, log)
	w.Register(system.NewEventDispatchSystem(bus))
	w.Register(system.NewMovementSystem())
	w.Register(system.NewLifetimeSystem(bus))
	w.Register(system.NewDamageSystem(bus))
	w.Register(system.NewScriptSpawnSystem(lua, prefabs, log.Named("spawn")))
	w.Register(system.NewCleanupSystem(log))
	return w.Register(system.NewStatsSystem(out, frame))
}

func spawnInitial(w *ecs.World, prefabs *data.PrefabTable, spawns []config.SpawnConfig) (int, error) {
	total := 0
	for _, s := range spawns {
		if prefabs.Get(s.Prefab) == nil {
			return total, fmt.Errorf("initial spawn: unknown prefab %q", s.Prefab)
		}
		for i := 0; i < s.Count; i++ {
			if uint32(w.Alive()) >= w.MaxEntities() {
				return total, fmt.Errorf("initial spawn: entity capacity %d reached", w.MaxEntities())
			}
			prefabs.Spawn(w, s.Prefab)
			total++
		}
	}
	return total, nil
}
