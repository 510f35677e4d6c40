package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[world]
max_entities = 64
strict = true

[loop]
tick_rate = "10ms"

[[data.initial_spawn]]
prefab = "drifter"
count = 3
`))
	require.NoError(t, err)
	assert.Equal(t, uint32(64), cfg.World.MaxEntities)
	assert.True(t, cfg.World.Strict)
	assert.Equal(t, uint32(32), cfg.World.MaxSystems)
	assert.Equal(t, uint32(64), cfg.PoolCapacity())
	assert.Equal(t, 10*time.Millisecond, cfg.Loop.TickRate)
	assert.Equal(t, uint64(20), cfg.Loop.StatsEvery)
	assert.Equal(t, []SpawnConfig{{Prefab: "drifter", Count: 3}}, cfg.Data.InitialSpawn)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.False(t, cfg.Database.Enabled)
}

func TestParseRejectsInvalid(t *testing.T) {
	for name, src := range map[string]string{
		"zero entities": "[world]\nmax_entities = 0\n",
		"small pools":   "[world]\nmax_entities = 4\npool_capacity = 1\n",
		"bad tick":      "[loop]\ntick_rate = \"0s\"\n",
		"bad profile":   "[profile]\nmode = \"gpu\"\n",
		"bad spawn":     "[[data.initial_spawn]]\ncount = 1\n",
		"syntax":        "[world\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestPoolCapacityMayExceedEntities(t *testing.T) {
	cfg, err := Parse([]byte("[world]\nmax_entities = 4\npool_capacity = 8\n"))
	require.NoError(t, err)
	assert.Equal(t, uint32(8), cfg.PoolCapacity())

	_, err = Parse([]byte("[world]\nmax_entities = 4\npool_capacity = 3\n"))
	assert.ErrorContains(t, err, "pool_capacity 3 is below max_entities 4")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kestrel.toml")
	require.NoError(t, os.WriteFile(path, []byte("[world]\nmax_entities = 8\npool_capacity = 16\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(16), cfg.PoolCapacity())

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "read config")
}
