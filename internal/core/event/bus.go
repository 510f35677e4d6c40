package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted during frame N are
// delivered during frame N+1, after SwapBuffers. Delivery order is the
// order event types were first subscribed or emitted, then emit order.
type Bus struct {
	mu       sync.Mutex // guards Emit and Subscribe; dispatch runs on the frame goroutine
	front    map[reflect.Type][]any
	back     map[reflect.Type][]any
	handlers map[reflect.Type][]func(any)
	types    []reflect.Type
}

func NewBus() *Bus {
	return &Bus{
		front:    make(map[reflect.Type][]any),
		back:     make(map[reflect.Type][]any),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func (b *Bus) track(t reflect.Type) {
	if _, ok := b.handlers[t]; !ok {
		b.handlers[t] = nil
		b.types = append(b.types, t)
	}
}

// Emit queues an event into the back buffer. It may be called from any goroutine.
func Emit[T any](b *Bus, event T) {
	t := typeOf[T]()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.track(t)
	b.back[t] = append(b.back[t], event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := typeOf[T]()
	b.track(t)
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
}

// SwapBuffers rotates back to front and clears the new back buffer.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front
	for k := range b.back {
		b.back[k] = b.back[k][:0]
	}
}

// DispatchAll delivers every front-buffer event to its handlers and
// returns the number of events delivered.
func (b *Bus) DispatchAll() int {
	n := 0
	for _, t := range b.types {
		events := b.front[t]
		for _, ev := range events {
			for _, h := range b.handlers[t] {
				h(ev)
			}
		}
		n += len(events)
	}
	return n
}

// Pending returns the number of events of type T waiting in the back buffer.
func Pending[T any](b *Bus) int {
	return len(b.back[typeOf[T]()])
}
