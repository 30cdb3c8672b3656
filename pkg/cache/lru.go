// Package cache provides query-result caches satisfying
// executor.Store: an in-process LRU and a Badger-backed store for
// results that should survive process restarts.
package cache

import (
	"container/list"
	"sync"

	"github.com/cyphersynth/synth/pkg/executor"
)

type lruEntry struct {
	key   string
	table executor.Table
}

// LRU is a fixed-capacity, in-process cache of query results, evicting
// the least recently used entry once full: a doubly linked list for
// recency order plus a map for O(1) lookup, guarded by a single mutex.
type LRU struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	index    map[string]*list.Element
}

// NewLRU returns an LRU cache holding at most capacity entries.
func NewLRU(capacity int) *LRU {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRU{
		capacity: capacity,
		ll:       list.New(),
		index:    make(map[string]*list.Element, capacity),
	}
}

// Get returns the cached table for key, if present, and marks it most
// recently used.
func (c *LRU) Get(key string) (executor.Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if !ok {
		return executor.Table{}, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*lruEntry).table, true
}

// Set stores t under key, evicting the least recently used entry if
// the cache is at capacity.
func (c *LRU) Set(key string, t executor.Table) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		el.Value.(*lruEntry).table = t
		c.ll.MoveToFront(el)
		return
	}

	el := c.ll.PushFront(&lruEntry{key: key, table: t})
	c.index[key] = el

	if c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.index, oldest.Value.(*lruEntry).key)
		}
	}
}

// Len reports how many entries are currently cached.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
