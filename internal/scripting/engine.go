package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for spawn scripting.
// Single-goroutine access only (frame loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file in scriptsDir,
// in name order. A missing directory yields an engine with no scripts.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if scriptsDir == "" {
		return e, nil
	}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// LoadString runs a chunk of Lua source in the engine's VM.
func (e *Engine) LoadString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("load lua chunk: %w", err)
	}
	return nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

// TickContext is the read-only world summary handed to on_tick.
type TickContext struct {
	Tick     uint64
	Alive    int
	ForCount uint32
	Capacity uint32
	Prefabs  []string
}

// SpawnRequest asks the host to spawn Count copies of Prefab.
type SpawnRequest struct {
	Prefab string
	Count  int
}

// HasTickHook reports whether a global on_tick function is defined.
func (e *Engine) HasTickHook() bool {
	_, ok := e.vm.GetGlobal("on_tick").(*lua.LFunction)
	return ok
}

// OnTick calls the Lua on_tick(ctx) function. It returns the spawn requests
// from the returned array of {prefab=..., count=...} tables. A missing hook,
// a script error or a malformed result yields no requests.
func (e *Engine) OnTick(ctx TickContext) []SpawnRequest {
	fn, ok := e.vm.GetGlobal("on_tick").(*lua.LFunction)
	if !ok {
		return nil
	}

	t := e.vm.NewTable()
	t.RawSetString("tick", lua.LNumber(ctx.Tick))
	t.RawSetString("alive", lua.LNumber(ctx.Alive))
	t.RawSetString("for_count", lua.LNumber(ctx.ForCount))
	t.RawSetString("capacity", lua.LNumber(ctx.Capacity))
	prefabs := e.vm.NewTable()
	for _, name := range ctx.Prefabs {
		prefabs.Append(lua.LString(name))
	}
	t.RawSetString("prefabs", prefabs)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua on_tick error", zap.Error(err))
		return nil
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	if result == lua.LNil {
		return nil
	}
	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua on_tick returned non-table", zap.String("type", result.Type().String()))
		return nil
	}

	var out []SpawnRequest
	rt.ForEach(func(_, v lua.LValue) {
		req, ok := v.(*lua.LTable)
		if !ok {
			return
		}
		name := lua.LVAsString(req.RawGetString("prefab"))
		count := int(lua.LVAsNumber(req.RawGetString("count")))
		if name == "" || count <= 0 {
			e.log.Warn("lua on_tick: ignoring malformed spawn request",
				zap.String("prefab", name), zap.Int("count", count))
			return
		}
		out = append(out, SpawnRequest{Prefab: name, Count: count})
	})
	return out
}
