package ecs

// Each calls fn for every live entity holding all of types. The scan bound
// is taken once at loop start: entities fn creates past that bound wait for
// the next pass. Occupancy and mask are read per slot as it is reached, so
// an entity fn destroys before its slot comes up is skipped.
func (w *World) Each(fn func(EntityID), types ...ComponentType) {
	n := w.ForCount()
	for idx := uint32(0); idx < n; idx++ {
		id := w.EntityAt(idx)
		if !w.live(idx) || !w.HasMask(id, types...) {
			continue
		}
		fn(id)
	}
}

// Entities collects the live entities holding all of types.
func (w *World) Entities(types ...ComponentType) []EntityID {
	var out []EntityID
	w.Each(func(id EntityID) { out = append(out, id) }, types...)
	return out
}

// Each1 iterates entities holding component ta, passing its payload.
func Each1[A any](w *World, ta ComponentType, fn func(EntityID, *A)) {
	pa := PoolOf[A](w, ta)
	if pa == nil {
		return
	}
	w.Each(func(id EntityID) {
		fn(id, pa.At(w.components[w.componentIndex(id.Index(), ta)]))
	}, ta)
}

// Each2 iterates entities holding both ta and tb.
func Each2[A, B any](w *World, ta, tb ComponentType, fn func(EntityID, *A, *B)) {
	pa, pb := PoolOf[A](w, ta), PoolOf[B](w, tb)
	if pa == nil || pb == nil {
		return
	}
	w.Each(func(id EntityID) {
		idx := id.Index()
		fn(id,
			pa.At(w.components[w.componentIndex(idx, ta)]),
			pb.At(w.components[w.componentIndex(idx, tb)]))
	}, ta, tb)
}

// EntityRecord is a point-in-time view of one live entity.
type EntityRecord struct {
	ID         EntityID
	Components []ComponentType
}

// Snapshot lists every live entity and the component types it holds.
func (w *World) Snapshot() []EntityRecord {
	out := make([]EntityRecord, 0, w.alive)
	w.Each(func(id EntityID) {
		out = append(out, EntityRecord{ID: id, Components: w.ComponentsOf(id)})
	})
	return out
}

// live reports whether idx is held by an entity rather than sitting on the
// free list.
func (w *World) live(idx uint32) bool {
	return w.occupied[idx]
}
