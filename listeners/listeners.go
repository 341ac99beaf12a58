// Package listeners provides a small, thread-safe listener container.
package listeners

import "sync"

// Container holds an ordered set of listeners. Listeners are compared by
// identity: Remove detaches the first element equal to the provided one.
// The zero value is ready to use.
type Container[T comparable] struct {
	mu    sync.Mutex
	items []T
}

// Add appends a listener. Duplicates are allowed; each Add requires a
// matching Remove.
func (c *Container[T]) Add(listener T) {
	var zero T
	if listener == zero {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, listener)
}

// Remove detaches the first occurrence of the provided listener. No
// action is taken if the listener is not in the container.
func (c *Container[T]) Remove(listener T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, item := range c.items {
		if item == listener {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
}

// Each invokes fn for every registered listener, in registration order.
// The snapshot is taken under lock, so listeners added or removed by fn
// itself take effect on the next Each.
func (c *Container[T]) Each(fn func(listener T)) {
	c.mu.Lock()
	snapshot := make([]T, len(c.items))
	copy(snapshot, c.items)
	c.mu.Unlock()
	for _, item := range snapshot {
		fn(item)
	}
}

// Len returns the number of registered listeners.
func (c *Container[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
