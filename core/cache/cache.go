// Package cache provides a small LRU cache used to avoid re-decoding
// registry document bodies on repeated reads.
package cache

import (
	"container/list"
	"sync"
)

// Stats contains cache statistics.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	MaxSize   int
}

// entry is one key/value pair on the eviction list.
type entry[K comparable, V any] struct {
	key   K
	value V
}

// LRU is a thread-safe fixed-capacity LRU cache.
type LRU[K comparable, V any] struct {
	mu        sync.Mutex
	maxSize   int
	entries   map[K]*list.Element
	evictList *list.List
	stats     Stats
}

// New creates an LRU cache holding at most maxSize entries. A maxSize of 0
// or less disables the size limit.
func New[K comparable, V any](maxSize int) *LRU[K, V] {
	return &LRU[K, V]{
		maxSize:   maxSize,
		entries:   make(map[K]*list.Element),
		evictList: list.New(),
	}
}

// Get retrieves a value from the cache.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	c.evictList.MoveToFront(elem)
	c.stats.Hits++
	return elem.Value.(*entry[K, V]).value, true
}

// Put stores a value in the cache, evicting the least recently used entry
// when the cache is full.
func (c *LRU[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.evictList.MoveToFront(elem)
		elem.Value.(*entry[K, V]).value = value
		return
	}
	elem := c.evictList.PushFront(&entry[K, V]{key: key, value: value})
	c.entries[key] = elem

	if c.maxSize > 0 && c.evictList.Len() > c.maxSize {
		c.evictOldest()
	}
}

// Remove removes a value from the cache.
func (c *LRU[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.removeElement(elem)
	}
}

// Clear removes all entries from the cache.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*list.Element)
	c.evictList.Init()
}

// Len returns the number of entries in the cache.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// Stats returns a snapshot of cache statistics.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Size = c.evictList.Len()
	s.MaxSize = c.maxSize
	return s
}

func (c *LRU[K, V]) evictOldest() {
	if elem := c.evictList.Back(); elem != nil {
		c.removeElement(elem)
		c.stats.Evictions++
	}
}

func (c *LRU[K, V]) removeElement(elem *list.Element) {
	c.evictList.Remove(elem)
	delete(c.entries, elem.Value.(*entry[K, V]).key)
}
