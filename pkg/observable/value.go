// Package observable provides a single-value holder that notifies subscribers
// immediately before the value changes.
package observable

import "sync"

// WillChangeFunc is called right before a Value is mutated.
// prev and had describe the state the value is about to leave.
type WillChangeFunc[T any] func(prev T, had bool)

// Value holds at most one value of type T.
// The zero Value is empty and ready to use.
type Value[T any] struct {
	mu       sync.RWMutex
	current  T
	set      bool
	nextID   uint64
	handlers map[uint64]WillChangeFunc[T]
}

// Current returns the held value and whether one has been set.
func (v *Value[T]) Current() (T, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current, v.set
}

// Subscribe registers fn for will-change notifications and returns a function
// that removes it. Calling the returned function more than once is harmless.
func (v *Value[T]) Subscribe(fn WillChangeFunc[T]) (unsubscribe func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.handlers == nil {
		v.handlers = make(map[uint64]WillChangeFunc[T])
	}
	id := v.nextID
	v.nextID++
	v.handlers[id] = fn

	return func() {
		v.mu.Lock()
		delete(v.handlers, id)
		v.mu.Unlock()
	}
}

// Set notifies every subscriber with the prior state, then replaces the value.
// Subscribers run synchronously on the caller's goroutine, without the lock
// held, so they may call Current.
func (v *Value[T]) Set(next T) {
	v.mu.RLock()
	prev, had := v.current, v.set
	handlers := make([]WillChangeFunc[T], 0, len(v.handlers))
	for _, h := range v.handlers {
		handlers = append(handlers, h)
	}
	v.mu.RUnlock()

	for _, h := range handlers {
		h(prev, had)
	}

	v.mu.Lock()
	v.current = next
	v.set = true
	v.mu.Unlock()
}
