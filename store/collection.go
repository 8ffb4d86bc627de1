package store

import "sync"

type identifiable interface {
	GetID() string
}

// collection is one resource's in-memory cache. The store is its only writer;
// readers always get a copy.
type collection[T identifiable] struct {
	mu    sync.RWMutex
	items []T
}

func (c *collection[T]) snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]T, len(c.items))
	copy(items, c.items)
	return items
}

func (c *collection[T]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *collection[T]) find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// replace swaps the whole collection for items.
func (c *collection[T]) replace(items []T) {
	fresh := make([]T, len(items))
	copy(fresh, items)

	c.mu.Lock()
	c.items = fresh
	c.mu.Unlock()
}

func (c *collection[T]) append(item T) {
	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()
}

// upsert replaces every entry identified by id with item, or appends item when there is none.
func (c *collection[T]) upsert(id string, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	found := false
	for i := range c.items {
		if c.items[i].GetID() == id {
			c.items[i] = item
			found = true
		}
	}
	if !found {
		c.items = append(c.items, item)
	}
}

// remove drops every entry identified by id, keeping the order of the others.
func (c *collection[T]) remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if item.GetID() != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
}
