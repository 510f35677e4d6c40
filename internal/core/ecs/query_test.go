package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEachFiltersByMaskAndLiveness(t *testing.T) {
	w := newIntWorld(t, 8, 8)
	a := w.CreateEntity()
	b := w.CreateEntity()
	c := w.CreateEntity()
	AddComponent(w, a, typeInt, 1)
	AddComponent(w, b, typeInt, 2)
	AddComponent(w, b, typeName, "b")
	AddComponent(w, c, typeName, "c")
	w.DestroyEntity(a)

	assert.Equal(t, []EntityID{b}, w.Entities(typeInt))
	assert.Equal(t, []EntityID{b, c}, w.Entities(typeName))
	assert.Equal(t, []EntityID{b, c}, w.Entities(), "destroyed slots are skipped even with no filter")
}

func TestEachSnapshotsBoundAndSkipsDestroyed(t *testing.T) {
	w := newIntWorld(t, 8, 8)
	first := w.CreateEntity()
	second := w.CreateEntity()
	AddComponent(w, first, typeInt, 1)
	AddComponent(w, second, typeInt, 2)

	var visited []EntityID
	w.Each(func(id EntityID) {
		visited = append(visited, id)
		if id == first {
			w.DestroyEntity(second)
			spawned := w.CreateEntity()
			AddComponent(w, spawned, typeInt, 3)
			spawned = w.CreateEntity()
			AddComponent(w, spawned, typeInt, 4)
		}
	}, typeInt)

	// second's slot was destroyed and immediately reused below the bound,
	// so its new occupant is visited; the one past the bound is not.
	require.Len(t, visited, 2)
	assert.Equal(t, first, visited[0])
	assert.Equal(t, second.Index(), visited[1].Index())
	assert.NotEqual(t, second, visited[1])
	assert.Equal(t, 3, *GetComponent[int](w, visited[1], typeInt))
	assert.Len(t, w.Entities(typeInt), 3)
}

func TestEach2PassesPayloads(t *testing.T) {
	w := newIntWorld(t, 4, 4)
	e := w.CreateEntity()
	AddComponent(w, e, typeInt, 10)
	AddComponent(w, e, typeName, "ten")
	only := w.CreateEntity()
	AddComponent(w, only, typeInt, 11)

	calls := 0
	Each2(w, typeInt, typeName, func(id EntityID, n *int, s *string) {
		calls++
		assert.Equal(t, e, id)
		assert.Equal(t, "ten", *s)
		*n++
	})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 11, *GetComponent[int](w, e, typeInt))

	sum := 0
	Each1(w, typeInt, func(_ EntityID, n *int) { sum += *n })
	assert.Equal(t, 22, sum)
}

func TestEachWithWrongPayloadTypeDoesNothing(t *testing.T) {
	w := newIntWorld(t, 4, 4)
	AddComponent(w, w.CreateEntity(), typeInt, 1)
	Each1(w, typeInt, func(EntityID, *float64) { t.Fatal("unexpected call") })
}

func TestSnapshot(t *testing.T) {
	w := newIntWorld(t, 4, 4)
	a := w.CreateEntity()
	b := w.CreateEntity()
	AddComponent(w, a, typeName, "a")
	AddComponent(w, b, typeInt, 1)
	AddComponent(w, b, typeName, "b")
	w.DestroyEntity(w.CreateEntity())

	snap := w.Snapshot()
	assert.Equal(t, []EntityRecord{
		{ID: a, Components: []ComponentType{typeName}},
		{ID: b, Components: []ComponentType{typeInt, typeName}},
	}, snap)
}
