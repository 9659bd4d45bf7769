// Package event provides single-pass event channels. Producers append,
// one designated consumer drains exactly once per scheduling pass, and
// whatever is left over is cleared when the pass ends. Events never
// persist beyond the pass they were readable in.
package event

import "sync"

// A Clearer is any per-pass channel that can drop its undrained events.
type Clearer interface {
	Clear()
}

// A Queue carries events of one type across a single scheduling pass.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
}

// NewQueue creates an empty Queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Write appends one event.
func (q *Queue[T]) Write(item T) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()
}

// Drain returns all buffered events in write order and empties the queue.
// The designated consumer calls this once per pass.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()

	return items
}

// Len returns the number of buffered events.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	n := len(q.items)
	q.mu.Unlock()

	return n
}

// Clear drops all buffered events without delivering them.
func (q *Queue[T]) Clear() {
	q.mu.Lock()
	q.items = nil
	q.mu.Unlock()
}
