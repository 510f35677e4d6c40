package system

import (
	"github.com/kestrelgame/kestrel/internal/core/ecs"
	"github.com/kestrelgame/kestrel/internal/data"
	"github.com/kestrelgame/kestrel/internal/scripting"
	"go.uber.org/zap"
)

// ScriptSpawnSystem asks the Lua on_tick hook what to spawn each frame and
// spawns it from the prefab table. Spawning stops at the world's entity
// capacity so a greedy script cannot exhaust the free list.
// Phase PostUpdate.
type ScriptSpawnSystem struct {
	lua     *scripting.Engine
	prefabs *data.PrefabTable
	log     *zap.Logger
	tick    uint64
	spawned int
}

func NewScriptSpawnSystem(lua *scripting.Engine, prefabs *data.PrefabTable, log *zap.Logger) *ScriptSpawnSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &ScriptSpawnSystem{lua: lua, prefabs: prefabs, log: log}
}

func (s *ScriptSpawnSystem) Phase() ecs.Phase { return ecs.PhasePostUpdate }

// Spawned returns the total number of entities this system has created.
func (s *ScriptSpawnSystem) Spawned() int { return s.spawned }

func (s *ScriptSpawnSystem) Update(w *ecs.World) {
	s.tick++
	reqs := s.lua.OnTick(scripting.TickContext{
		Tick:     s.tick,
		Alive:    w.Alive(),
		ForCount: w.ForCount(),
		Capacity: w.MaxEntities(),
		Prefabs:  s.prefabs.Names(),
	})
	for _, req := range reqs {
		if s.prefabs.Get(req.Prefab) == nil {
			s.log.Warn("script requested unknown prefab", zap.String("prefab", req.Prefab))
			continue
		}
		n := 0
		for ; n < req.Count && uint32(w.Alive()) < w.MaxEntities(); n++ {
			s.prefabs.Spawn(w, req.Prefab)
		}
		if n < req.Count {
			s.log.Warn("spawn capped at entity capacity",
				zap.String("prefab", req.Prefab), zap.Int("requested", req.Count), zap.Int("spawned", n))
		}
		s.spawned += n
	}
}
