// Package observe provides a minimal reactive-state primitive: the latest
// value is always observable, and slow consumers see last-value-wins
// delivery rather than a backlog of stale intermediates.
package observe

import "sync"

// Value holds a current value and fans out updates to subscribers.
//
// Each subscriber gets a buffered channel of capacity one. When a new value
// arrives before the previous one is consumed, the stale value is dropped
// and replaced, so a subscriber always receives the most recent value at
// least once.
type Value[T any] struct {
	mu      sync.Mutex
	current T
	subs    map[int]chan T
	nextID  int
}

// NewValue creates a Value holding initial
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		current: initial,
		subs:    make(map[int]chan T),
	}
}

// Get returns the current value
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set publishes a new value to all subscribers
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.current = val
	for _, ch := range v.subs {
		// Drop the undelivered value, if any, then deliver the new one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- val:
		default:
		}
	}
}

// Update applies fn to the current value under the lock and publishes the
// result
func (v *Value[T]) Update(fn func(T) T) {
	v.mu.Lock()
	val := fn(v.current)
	v.current = val
	for _, ch := range v.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- val:
		default:
		}
	}
	v.mu.Unlock()
}

// Subscribe registers a new observer. The returned channel immediately
// carries the current value. Call cancel to unsubscribe and release the
// channel.
func (v *Value[T]) Subscribe() (<-chan T, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextID
	v.nextID++

	ch := make(chan T, 1)
	ch <- v.current
	v.subs[id] = ch

	cancel := func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.subs, id)
	}
	return ch, cancel
}
