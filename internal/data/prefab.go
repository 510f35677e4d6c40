package data

import (
	"fmt"
	"os"

	"github.com/kestrelgame/kestrel/internal/component"
	"github.com/kestrelgame/kestrel/internal/core/ecs"
	"gopkg.in/yaml.v3"
)

// PrefabEntry describes the components a spawned entity starts with.
// Absent sections mean the component is not attached.
type PrefabEntry struct {
	Name     string       `yaml:"name"`
	Position *PositionDef `yaml:"position"`
	Velocity *VelocityDef `yaml:"velocity"`
	Health   *HealthDef   `yaml:"health"`
	Lifetime int32        `yaml:"lifetime"` // frames; 0 = immortal
}

type PositionDef struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type VelocityDef struct {
	DX float64 `yaml:"dx"`
	DY float64 `yaml:"dy"`
}

type HealthDef struct {
	HP            int32 `yaml:"hp"`
	MaxHP         int32 `yaml:"max_hp"`
	DamagePerTick int32 `yaml:"damage_per_tick"`
}

// PrefabTable provides lookup of prefabs by name.
type PrefabTable struct {
	prefabs map[string]*PrefabEntry
	names   []string
}

// LoadPrefabTable loads prefabs.yaml.
func LoadPrefabTable(path string) (*PrefabTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prefab list: %w", err)
	}
	return ParsePrefabTable(raw)
}

// ParsePrefabTable builds a table from YAML. Names must be unique and non-empty.
func ParsePrefabTable(raw []byte) (*PrefabTable, error) {
	var entries []PrefabEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse prefab list: %w", err)
	}
	t := &PrefabTable{
		prefabs: make(map[string]*PrefabEntry, len(entries)),
		names:   make([]string, 0, len(entries)),
	}
	for i := range entries {
		e := &entries[i]
		if e.Name == "" {
			return nil, fmt.Errorf("prefab #%d: missing name", i)
		}
		if _, dup := t.prefabs[e.Name]; dup {
			return nil, fmt.Errorf("prefab %q: duplicate name", e.Name)
		}
		if e.Health != nil && e.Health.MaxHP == 0 {
			e.Health.MaxHP = e.Health.HP
		}
		t.prefabs[e.Name] = e
		t.names = append(t.names, e.Name)
	}
	return t, nil
}

// Get returns the prefab with the given name, or nil if none.
func (t *PrefabTable) Get(name string) *PrefabEntry {
	return t.prefabs[name]
}

// Names returns prefab names in file order.
func (t *PrefabTable) Names() []string {
	return t.names
}

// Count returns the total number of prefabs loaded.
func (t *PrefabTable) Count() int {
	return len(t.prefabs)
}

// Spawn creates an entity from the named prefab and attaches its
// components. It reports false for an unknown prefab.
func (t *PrefabTable) Spawn(w *ecs.World, name string) (ecs.EntityID, bool) {
	p := t.prefabs[name]
	if p == nil {
		return 0, false
	}
	id := w.CreateEntity()
	if p.Position != nil {
		ecs.AddComponent(w, id, component.TypePosition, component.Position{X: p.Position.X, Y: p.Position.Y})
	}
	if p.Velocity != nil {
		ecs.AddComponent(w, id, component.TypeVelocity, component.Velocity{DX: p.Velocity.DX, DY: p.Velocity.DY})
	}
	if p.Health != nil {
		ecs.AddComponent(w, id, component.TypeHealth, component.Health{
			HP:            p.Health.HP,
			MaxHP:         p.Health.MaxHP,
			DamagePerTick: p.Health.DamagePerTick,
		})
	}
	if p.Lifetime > 0 {
		ecs.AddComponent(w, id, component.TypeLifetime, component.Lifetime{Ticks: p.Lifetime})
	}
	ecs.AddComponent(w, id, component.TypeTag, component.Tag{Prefab: p.Name})
	return id, true
}
