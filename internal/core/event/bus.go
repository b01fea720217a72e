package event

import "reflect"

// Bus is a double-buffered, typed event queue owned by a single room.
// Emit appends to the back buffer; Dispatch swaps buffers and delivers the
// swapped-in events to subscribers. The simulation emits while stepping and
// the game loop calls Dispatch once right after, so delta events reach the
// wire in the same tick they occur instead of waiting for the snapshot.
// Game loop goroutine only, no locks.
type Bus struct {
	front    map[reflect.Type][]any
	back     map[reflect.Type][]any
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		front:    make(map[reflect.Type][]any),
		back:     make(map[reflect.Type][]any),
		handlers: make(map[reflect.Type][]any),
	}
}

// Emit queues an event for the next Dispatch.
func Emit[T any](b *Bus, event T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.back[t] = append(b.back[t], event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// Dispatch rotates the buffers and delivers everything emitted since the
// previous Dispatch. Events emitted from inside a handler are delivered on
// the next call, which keeps delivery order well-defined.
func (b *Bus) Dispatch() {
	b.front, b.back = b.back, b.front
	for t, events := range b.front {
		handlers := b.handlers[t]
		for _, ev := range events {
			for _, h := range handlers {
				// Safe: Subscribe and Emit key handlers and events by the
				// same reflect.Type.
				reflect.ValueOf(h).Call([]reflect.Value{reflect.ValueOf(ev)})
			}
		}
		b.front[t] = b.front[t][:0]
	}
}
