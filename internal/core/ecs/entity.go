package ecs

import (
	"fmt"

	"go.uber.org/zap"
)

// EntityID encodes a 32-bit index in the lower bits and a 32-bit version
// in the upper bits. The version increments on destroy to invalidate stale refs.
type EntityID uint64

func NewEntityID(index uint32, version uint32) EntityID {
	return EntityID(uint64(version)<<32 | uint64(index))
}

func (id EntityID) Index() uint32   { return uint32(id) }
func (id EntityID) Version() uint32 { return uint32(id >> 32) }

func (id EntityID) String() string {
	return fmt.Sprintf("%d:%d", id.Index(), id.Version())
}

func entityField(id EntityID) zap.Field { return zap.Stringer("entity", id) }

// CreateEntity takes the most recently freed index (or the lowest unused
// one) and returns it with the slot's current version. Creation never bumps
// the version; only DestroyEntity does.
func (w *World) CreateEntity() EntityID {
	exhausted := w.freeIndices.Empty()
	idx := w.freeIndices.Pop()
	if idx >= w.maxEntities {
		return 0
	}
	if !exhausted {
		w.occupied[idx] = true
		w.alive++
	}
	if !w.created || idx > w.maxIndex {
		w.maxIndex = idx
		w.created = true
	}
	return NewEntityID(idx, w.versions[idx])
}

// DestroyEntity invalidates id, removes every component it holds (running
// pool destructors) and recycles its index. Components are cleared before
// the index goes back on the free list so a new occupant never inherits
// stale masks. A stale id is logged and ignored.
func (w *World) DestroyEntity(id EntityID) {
	if !w.IsValid(id) {
		w.log.Warn("destroy entity", entityField(id), zap.Error(ErrStaleEntity))
		return
	}
	idx := id.Index()
	w.versions[idx]++
	for typ, store := range w.pools {
		if store == nil {
			continue
		}
		t := ComponentType(typ)
		if !w.maskBit(idx, t) {
			continue
		}
		store.release(w.components[w.componentIndex(idx, t)])
		w.clearMaskBit(idx, t)
	}
	w.occupied[idx] = false
	w.freeIndices.Push(idx)
	w.alive--
}

// IsValid reports whether id's version matches the slot's current version.
// No other operation re-checks this.
func (w *World) IsValid(id EntityID) bool {
	idx := id.Index()
	if idx >= w.maxEntities {
		return false
	}
	return w.versions[idx] == id.Version()
}

// Version returns the current version stored at id's index.
func (w *World) Version(id EntityID) uint32 {
	return w.versions[id.Index()]
}

// ForCount is the exclusive upper bound for scanning every slot ever
// handed out. It includes destroyed slots; callers filter with IsValid or
// mask checks. It is 0 until the first entity is created.
func (w *World) ForCount() uint32 {
	if !w.created {
		return 0
	}
	return w.maxIndex + 1
}

// EntityAt returns the id currently occupying index, whether or not it is alive.
func (w *World) EntityAt(idx uint32) EntityID {
	return NewEntityID(idx, w.versions[idx])
}

// Alive returns the number of live entities.
func (w *World) Alive() int { return w.alive }

func (w *World) MaxEntities() uint32 { return w.maxEntities }

// MarkForDestruction queues an entity for destruction at the next flush.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys all queued entities that are still valid.
// An entity queued twice is destroyed once.
func (w *World) FlushDestroyQueue() int {
	n := 0
	for _, id := range w.destroyQueue {
		if !w.IsValid(id) {
			continue
		}
		w.DestroyEntity(id)
		n++
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}

// Pending returns the number of queued destructions.
func (w *World) Pending() int { return len(w.destroyQueue) }
