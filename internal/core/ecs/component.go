package ecs

import "go.uber.org/zap"

func componentField(typ ComponentType) zap.Field { return zap.Uint32("component", uint32(typ)) }

// AddComponent copies value into a free slot of typ's pool and attaches it
// to id. Attaching is not overwriting: if id already holds typ the call is
// logged and ignored, so callers replace by removing first.
func AddComponent[T any](w *World, id EntityID, typ ComponentType, value T) bool {
	if !w.Registered(typ) {
		w.log.Warn("add component", entityField(id), componentField(typ), zap.Error(ErrNotRegistered))
		return false
	}
	pool, ok := w.pools[typ].(*Pool[T])
	if !ok {
		w.log.Warn("add component", entityField(id), componentField(typ), zap.Error(ErrTypeMismatch))
		return false
	}
	idx := id.Index()
	if w.maskBit(idx, typ) {
		w.log.Warn("add component", entityField(id), componentField(typ), zap.Error(ErrComponentPresent))
		return false
	}
	w.components[w.componentIndex(idx, typ)] = pool.Pop(value)
	w.setMaskBit(idx, typ)
	return true
}

// RemoveComponent detaches typ from id, running the pool's destructor on
// the payload before its slot is recycled.
func (w *World) RemoveComponent(id EntityID, typ ComponentType) bool {
	idx := id.Index()
	if !w.Registered(typ) || !w.maskBit(idx, typ) {
		w.log.Warn("remove component", entityField(id), componentField(typ), zap.Error(ErrComponentMissing))
		return false
	}
	w.pools[typ].release(w.components[w.componentIndex(idx, typ)])
	w.clearMaskBit(idx, typ)
	return true
}

// GetComponent returns a pointer to id's payload of type typ, or nil when
// it is absent. The pointer aliases pool storage; do not keep it across a
// call that could hand the slot to another entity.
func GetComponent[T any](w *World, id EntityID, typ ComponentType) *T {
	idx := id.Index()
	if !w.Registered(typ) || !w.maskBit(idx, typ) {
		w.log.Warn("get component", entityField(id), componentField(typ), zap.Error(ErrComponentMissing))
		return nil
	}
	pool, ok := w.pools[typ].(*Pool[T])
	if !ok {
		w.log.Warn("get component", entityField(id), componentField(typ), zap.Error(ErrTypeMismatch))
		return nil
	}
	return pool.At(w.components[w.componentIndex(idx, typ)])
}

// HasComponent is a plain mask read.
func (w *World) HasComponent(id EntityID, typ ComponentType) bool {
	if uint32(typ) >= w.componentCount || id.Index() >= w.maxEntities {
		return false
	}
	return w.maskBit(id.Index(), typ)
}

// HasMask reports whether id holds every type in types. An empty list matches.
func (w *World) HasMask(id EntityID, types ...ComponentType) bool {
	for _, typ := range types {
		if !w.HasComponent(id, typ) {
			return false
		}
	}
	return true
}

// ComponentsOf lists the types id currently holds, in tag order.
func (w *World) ComponentsOf(id EntityID) []ComponentType {
	var out []ComponentType
	for typ := range w.pools {
		if w.HasComponent(id, ComponentType(typ)) {
			out = append(out, ComponentType(typ))
		}
	}
	return out
}
