package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSystem struct {
	phase Phase
	runs  int
}

func (s *countingSystem) Phase() Phase    { return s.phase }
func (s *countingSystem) Update(_ *World) { s.runs++ }

func TestRunSystemBypassesPhase(t *testing.T) {
	w := NewWorld(1, 0, 4)
	render := &countingSystem{phase: PhaseRenderImmediate}
	update := &countingSystem{phase: PhaseUpdate}
	assert.Equal(t, 0, w.Register(update))
	idx := w.Register(render)
	require.Equal(t, 1, idx)

	w.RunSystem(idx)
	assert.Equal(t, 1, render.runs)
	assert.Equal(t, 0, update.runs)

	w.RunSystems(PhaseRender)
	assert.Equal(t, 1, render.runs, "RenderImmediate is not part of Render")
	assert.Equal(t, 2, w.Systems().Len())
	assert.Equal(t, 2, w.SystemCount())

	phase, ok := w.Systems().Phase(idx)
	assert.True(t, ok)
	assert.Equal(t, PhaseRenderImmediate, phase)
}

func TestRunSystemOutOfRange(t *testing.T) {
	log, logs := observedLogger()
	w := NewWorld(1, 0, 1, WithLogger(log))
	w.RunSystem(0)
	w.RunSystem(-1)
	assert.Equal(t, 2, logs.FilterMessage("run system").Len())
}

func TestRegistryFull(t *testing.T) {
	log, logs := observedLogger()
	w := NewWorld(1, 0, 1, WithLogger(log))
	ran := 0
	assert.Equal(t, 0, w.RegisterSystem(func(*World) { ran++ }, PhaseUpdate))
	assert.Equal(t, -1, w.RegisterSystem(func(*World) { ran += 10 }, PhaseUpdate))
	assert.Equal(t, 1, logs.FilterMessage("register system").Len())

	w.RunSystems(PhaseUpdate)
	assert.Equal(t, 1, ran)
}

func TestRegistryFullPanicsWhenStrict(t *testing.T) {
	w := NewWorld(1, 0, 0, WithStrict(true))
	assert.PanicsWithValue(t, ErrRegistryFull, func() {
		w.RegisterSystem(func(*World) {}, PhaseUpdate)
	})
}

func TestSystemsMayMutateTheWorld(t *testing.T) {
	w := NewWorld(4, 1, 2)
	RegisterComponent[int](w, 0, 4, nil)
	w.RegisterSystem(func(w *World) {
		e := w.CreateEntity()
		AddComponent(w, e, 0, w.Alive())
	}, PhaseUpdate)
	w.RegisterSystem(func(w *World) {
		for _, id := range w.Entities(0) {
			if *GetComponent[int](w, id, 0) == 1 {
				w.DestroyEntity(id)
			}
		}
	}, PhaseCleanup)

	w.RunSystems(PhaseUpdate)
	w.RunSystems(PhaseUpdate)
	w.RunSystems(PhaseCleanup)
	assert.Equal(t, 1, w.Alive())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "Update", PhaseUpdate.String())
	assert.Equal(t, "RenderImmediate", PhaseRenderImmediate.String())
	assert.Equal(t, "Unknown(42)", Phase(42).String())
}
