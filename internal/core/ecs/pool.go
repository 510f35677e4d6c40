package ecs

import "go.uber.org/zap"

// Destroyer is implemented by component payloads that need cleanup when
// their pool slot is recycled.
type Destroyer interface {
	Destroy()
}

// componentStore is the type-erased view the World keeps of each Pool.
type componentStore interface {
	// release runs the destructor for slot and returns it to the free list.
	release(slot uint32)
	Cap() uint32
	Free() uint32
	Release()
}

// Pool is fixed-capacity storage for one component type. Slots are handed
// out from an IndexStack and never move; removal leaves the payload in
// place until the slot is reused.
type Pool[T any] struct {
	data    []T
	free    *IndexStack
	destroy func(*T)
}

// NewPool allocates count slots. destroy runs on a slot right before it is
// returned to the free list; when nil and *T implements Destroyer, its
// Destroy method is used instead.
func NewPool[T any](count uint32, destroy func(*T), log *zap.Logger, strict bool) *Pool[T] {
	if destroy == nil {
		var zero T
		if _, ok := any(&zero).(Destroyer); ok {
			destroy = func(v *T) { any(v).(Destroyer).Destroy() }
		}
	}
	return &Pool[T]{
		data:    make([]T, count),
		free:    newSeededStack(count, log, strict),
		destroy: destroy,
	}
}

// Pop takes a free slot, copies value into it and returns the slot index.
// Exhaustion is not guarded here: the stack's empty path yields slot 0.
// A zero-capacity pool stores nothing.
func (p *Pool[T]) Pop(value T) uint32 {
	slot := p.free.Pop()
	if int(slot) < len(p.data) {
		p.data[slot] = value
	}
	return slot
}

// Push runs the destructor on slot and returns it to the free list.
func (p *Pool[T]) Push(slot uint32) {
	if p.destroy != nil {
		p.destroy(&p.data[slot])
	}
	p.free.Push(slot)
}

// At returns a pointer into the pool's storage. It stays valid until the
// slot is popped again.
func (p *Pool[T]) At(slot uint32) *T {
	return &p.data[slot]
}

func (p *Pool[T]) Cap() uint32  { return uint32(len(p.data)) }
func (p *Pool[T]) Free() uint32 { return p.free.Len() }

func (p *Pool[T]) Release() {
	p.data = nil
	p.free.Release()
}

func (p *Pool[T]) release(slot uint32) { p.Push(slot) }
