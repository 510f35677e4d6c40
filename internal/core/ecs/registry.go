package ecs

import (
	"fmt"

	"go.uber.org/zap"
)

// Phase groups systems for batched dispatch within a single frame.
type Phase int

const (
	PhasePreUpdate       Phase = iota // event delivery, input
	PhaseUpdate                       // game logic
	PhasePostUpdate                   // spawning, bookkeeping
	PhaseRender                       // buffered drawing
	PhaseRenderImmediate              // direct drawing, usually run by index
	PhaseCleanup                      // deferred destruction
)

func (p Phase) String() string {
	switch p {
	case PhasePreUpdate:
		return "PreUpdate"
	case PhaseUpdate:
		return "Update"
	case PhasePostUpdate:
		return "PostUpdate"
	case PhaseRender:
		return "Render"
	case PhaseRenderImmediate:
		return "RenderImmediate"
	case PhaseCleanup:
		return "Cleanup"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// SystemFunc is one piece of per-frame logic. It receives the whole world
// and may create or destroy entities freely.
type SystemFunc func(w *World)

// System is the struct form of a SystemFunc.
type System interface {
	Phase() Phase
	Update(w *World)
}

type systemEntry struct {
	fn    SystemFunc
	phase Phase
}

// SystemRegistry is a fixed-capacity, append-only list of systems. Order of
// registration is the order of dispatch.
type SystemRegistry struct {
	entries []systemEntry
	top     int
	log     *zap.Logger
	strict  bool
}

func newSystemRegistry(capacity uint32, log *zap.Logger, strict bool) *SystemRegistry {
	return &SystemRegistry{
		entries: make([]systemEntry, capacity),
		log:     log,
		strict:  strict,
	}
}

// Len returns the number of registered systems.
func (r *SystemRegistry) Len() int { return r.top }

// Phase returns the phase of the system at index.
func (r *SystemRegistry) Phase(index int) (Phase, bool) {
	if index < 0 || index >= r.top {
		return 0, false
	}
	return r.entries[index].phase, true
}

func (r *SystemRegistry) add(fn SystemFunc, phase Phase) int {
	if r.top >= len(r.entries) {
		if r.strict {
			panic(ErrRegistryFull)
		}
		r.log.Warn("register system", zap.Stringer("phase", phase), zap.Int("cap", len(r.entries)), zap.Error(ErrRegistryFull))
		return -1
	}
	r.entries[r.top] = systemEntry{fn: fn, phase: phase}
	r.top++
	return r.top - 1
}

// RegisterSystem appends fn under phase and returns its registration index,
// or -1 when the registry is full. Systems cannot be removed.
func (w *World) RegisterSystem(fn SystemFunc, phase Phase) int {
	return w.systems.add(fn, phase)
}

// SystemCount returns the number of registered systems.
func (w *World) SystemCount() int { return w.systems.top }

// Register appends a struct system.
func (w *World) Register(s System) int {
	return w.systems.add(s.Update, s.Phase())
}

// RunSystems invokes every system registered under phase, in registration order.
func (w *World) RunSystems(phase Phase) {
	r := w.systems
	for i := 0; i < r.top; i++ {
		if r.entries[i].phase == phase {
			r.entries[i].fn(w)
		}
	}
}

// RunSystem invokes the system at index directly, ignoring its phase.
func (w *World) RunSystem(index int) {
	r := w.systems
	if index < 0 || index >= r.top {
		w.log.Warn("run system", zap.Int("index", index), zap.Error(ErrNoSuchSystem))
		return
	}
	r.entries[index].fn(w)
}
