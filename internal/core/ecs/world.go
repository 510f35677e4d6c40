package ecs

import "go.uber.org/zap"

// ComponentType is a client-issued tag in [0, componentCount) naming one
// registered component type.
type ComponentType uint32

// World is the top-level ECS container. It owns the entity table, one pool
// per registered component type, the system registry, and a deferred
// destruction queue. It is not safe for concurrent use.
type World struct {
	maxEntities    uint32
	componentCount uint32

	versions   []uint32
	occupied   []bool
	components []uint32 // pool slot per (entity, type); meaningful only when the mask bit is set
	masks      []uint64
	maskWords  uint32

	maxIndex    uint32
	created     bool
	alive       int
	freeIndices *IndexStack

	pools   []componentStore
	systems *SystemRegistry

	destroyQueue []EntityID

	log    *zap.Logger
	strict bool
}

// Option configures a World.
type Option func(*World)

// WithLogger routes diagnostics to log. The default discards them.
func WithLogger(log *zap.Logger) Option {
	return func(w *World) {
		if log != nil {
			w.log = log
		}
	}
}

// WithStrict turns capacity exhaustion (free list underflow or overflow,
// full system registry) into panics instead of logged no-ops.
func WithStrict(strict bool) Option {
	return func(w *World) { w.strict = strict }
}

// NewWorld allocates every table up front. Capacities never grow. A world
// with no entity slots is logged; CreateEntity on it returns the zero id.
func NewWorld(maxEntities, componentCount, systemCount uint32, opts ...Option) *World {
	w := &World{
		maxEntities:    maxEntities,
		componentCount: componentCount,
		log:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if maxEntities == 0 {
		w.log.Warn("new world", zap.Error(ErrZeroCapacity))
	}
	w.maskWords = (componentCount + 63) / 64
	w.versions = make([]uint32, maxEntities)
	w.occupied = make([]bool, maxEntities)
	w.components = make([]uint32, uint64(maxEntities)*uint64(componentCount))
	w.masks = make([]uint64, uint64(maxEntities)*uint64(w.maskWords))
	w.freeIndices = newSeededStack(maxEntities, w.log.Named("entities"), w.strict)
	w.pools = make([]componentStore, componentCount)
	w.systems = newSystemRegistry(systemCount, w.log, w.strict)
	w.destroyQueue = make([]EntityID, 0, 64)
	return w
}

func (w *World) Logger() *zap.Logger      { return w.log }
func (w *World) ComponentCount() uint32   { return w.componentCount }
func (w *World) Systems() *SystemRegistry { return w.systems }

// Registered reports whether typ has a pool.
func (w *World) Registered(typ ComponentType) bool {
	return uint32(typ) < w.componentCount && w.pools[typ] != nil
}

// RegisterComponent creates the pool for typ with room for count payloads.
// Registering the same type twice or with a zero count is logged and ignored.
func RegisterComponent[T any](w *World, typ ComponentType, count uint32, destroy func(*T)) bool {
	if uint32(typ) >= w.componentCount {
		w.log.Warn("register component", zap.Uint32("component", uint32(typ)), zap.Error(ErrNotRegistered))
		return false
	}
	if w.pools[typ] != nil {
		w.log.Warn("register component", zap.Uint32("component", uint32(typ)), zap.Error(ErrAlreadyRegistered))
		return false
	}
	if count == 0 {
		w.log.Warn("register component", zap.Uint32("component", uint32(typ)), zap.Error(ErrZeroCapacity))
		return false
	}
	w.pools[typ] = NewPool[T](count, destroy, w.log.Named("pool"), w.strict)
	return true
}

// PoolOf returns the typed pool registered for typ, or nil.
func PoolOf[T any](w *World, typ ComponentType) *Pool[T] {
	if !w.Registered(typ) {
		return nil
	}
	p, _ := w.pools[typ].(*Pool[T])
	return p
}

// Release drops every pool and table. The world must not be used afterwards.
func (w *World) Release() {
	for i, store := range w.pools {
		if store != nil {
			store.Release()
			w.pools[i] = nil
		}
	}
	w.freeIndices.Release()
	w.versions = nil
	w.occupied = nil
	w.components = nil
	w.masks = nil
}

func (w *World) componentIndex(idx uint32, typ ComponentType) uint64 {
	return uint64(idx)*uint64(w.componentCount) + uint64(typ)
}

func (w *World) maskBit(idx uint32, typ ComponentType) bool {
	word := idx*w.maskWords + uint32(typ)>>6
	return w.masks[word]&(1<<(uint32(typ)&63)) != 0
}

func (w *World) setMaskBit(idx uint32, typ ComponentType) {
	word := idx*w.maskWords + uint32(typ)>>6
	w.masks[word] |= 1 << (uint32(typ) & 63)
}

func (w *World) clearMaskBit(idx uint32, typ ComponentType) {
	word := idx*w.maskWords + uint32(typ)>>6
	w.masks[word] &^= 1 << (uint32(typ) & 63)
}
