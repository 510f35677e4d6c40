package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnTickReturnsSpawnRequests(t *testing.T) {
	e, err := NewEngine("", nil)
	require.NoError(t, err)
	defer e.Close()

	require.NoError(t, e.LoadString(`
function on_tick(ctx)
  if ctx.alive >= ctx.capacity then return nil end
  return {
    { prefab = ctx.prefabs[1], count = ctx.tick },
    { prefab = "", count = 1 },
    "junk",
  }
end`))
	assert.True(t, e.HasTickHook())

	reqs := e.OnTick(TickContext{Tick: 3, Alive: 1, Capacity: 8, Prefabs: []string{"drifter", "crate"}})
	assert.Equal(t, []SpawnRequest{{Prefab: "drifter", Count: 3}}, reqs)

	assert.Nil(t, e.OnTick(TickContext{Tick: 1, Alive: 8, Capacity: 8}))
}

func TestOnTickWithoutHook(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "missing"), nil)
	require.NoError(t, err)
	defer e.Close()

	assert.False(t, e.HasTickHook())
	assert.Nil(t, e.OnTick(TickContext{}))
}

func TestOnTickScriptErrorYieldsNothing(t *testing.T) {
	e, err := NewEngine("", nil)
	require.NoError(t, err)
	defer e.Close()

	require.NoError(t, e.LoadString(`function on_tick(ctx) error("boom") end`))
	assert.Nil(t, e.OnTick(TickContext{}))

	require.NoError(t, e.LoadString(`function on_tick(ctx) return 5 end`))
	assert.Nil(t, e.OnTick(TickContext{}))
}

func TestNewEngineLoadsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lua"), []byte(`BASE = 2`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.lua"),
		[]byte(`function on_tick(ctx) return {{prefab = "p", count = BASE}} end`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`not lua`), 0o644))

	e, err := NewEngine(dir, nil)
	require.NoError(t, err)
	defer e.Close()
	assert.Equal(t, []SpawnRequest{{Prefab: "p", Count: 2}}, e.OnTick(TickContext{}))
}

func TestNewEngineReportsBrokenScript(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.lua"), []byte(`function (`), 0o644))
	_, err := NewEngine(dir, nil)
	assert.ErrorContains(t, err, "load scripts")
}
