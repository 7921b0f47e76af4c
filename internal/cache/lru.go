// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package cache

import (
	"sync"
	"time"
)

// EvictReason says why an entry left the cache.
type EvictReason int

const (
	// EvictCapacity means the entry was the least recently used when the cache was full.
	EvictCapacity EvictReason = iota
	// EvictExpired means the entry sat idle longer than the TTL.
	EvictExpired
)

// String returns the metric label for the reason.
func (r EvictReason) String() string {
	switch r {
	case EvictCapacity:
		return "capacity"
	case EvictExpired:
		return "idle"
	default:
		return "unknown"
	}
}

// Entry is a key/value pair handed back by Drain and eviction callbacks.
type Entry[V any] struct {
	Key   string
	Value V
}

// EvictFunc is called for every evicted entry, after the cache lock is released.
type EvictFunc[V any] func(key string, value V, reason EvictReason)

// lruEntry represents an entry in the LRU list with an idle deadline.
type lruEntry[V any] struct {
	key       string
	value     V
	prev      *lruEntry[V]
	next      *lruEntry[V]
	expiresAt time.Time
}

type evicted[V any] struct {
	entry  *lruEntry[V]
	reason EvictReason
}

// LRU implements a thread-safe Least Recently Used cache with idle TTL.
// It provides O(1) Get, Add and eviction.
//
// Every successful Get or Add pushes the entry's deadline out by the TTL, so
// the TTL measures idleness rather than age. A TTL of zero disables idle
// expiry; only capacity evicts. Evicted values are passed to the
// OnEvict callback outside the lock, which lets the callback do blocking work
// such as flushing a session to storage.
//
// This implementation uses a doubly-linked list for ordering and a hashmap for lookups.
type LRU[V any] struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	onEvict  EvictFunc[V]
	now      func() time.Time

	// items maps keys to linked list nodes for O(1) lookup
	items map[string]*lruEntry[V]

	// head.next is the most recently used, tail.prev is the least recently used
	head *lruEntry[V]
	tail *lruEntry[V]

	hits      int64
	misses    int64
	evictions int64
}

// Option configures an LRU.
type Option[V any] func(*LRU[V])

// WithEvictFunc registers the eviction callback.
func WithEvictFunc[V any](fn EvictFunc[V]) Option[V] {
	return func(c *LRU[V]) {
		c.onEvict = fn
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock[V any](now func() time.Time) Option[V] {
	return func(c *LRU[V]) {
		if now != nil {
			c.now = now
		}
	}
}

// NewLRU creates a new LRU cache with the specified capacity and idle TTL.
// ttl <= 0 means entries never expire.
func NewLRU[V any](capacity int, ttl time.Duration, opts ...Option[V]) *LRU[V] {
	if capacity <= 0 {
		capacity = 10000 // Default capacity
	}
	if ttl < 0 {
		ttl = 0
	}

	c := &LRU[V]{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		items:    make(map[string]*lruEntry[V], min(capacity, 1024)),
		head:     &lruEntry[V]{},
		tail:     &lruEntry[V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get retrieves a live entry and marks it most recently used.
// An entry found past its deadline is evicted and reported as a miss.
func (c *LRU[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.Lock()
	entry, exists := c.items[key]
	if !exists {
		c.misses++
		c.mu.Unlock()
		return zero, false
	}

	now := c.now()
	if c.expired(entry, now) {
		c.removeEntry(entry)
		c.misses++
		c.evictions++
		c.mu.Unlock()
		c.notify([]evicted[V]{{entry: entry, reason: EvictExpired}})
		return zero, false
	}

	entry.expiresAt = now.Add(c.ttl)
	c.moveToFront(entry)
	c.hits++
	value := entry.value
	c.mu.Unlock()
	return value, true
}

// Contains checks if a live key exists without updating access order.
func (c *LRU[V]) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.items[key]; exists {
		return !c.expired(entry, c.now())
	}
	return false
}

// Add adds or replaces an entry. If the cache is over capacity afterwards,
// least recently used entries are evicted.
func (c *LRU[V]) Add(key string, value V) {
	c.mu.Lock()

	expiresAt := c.now().Add(c.ttl)
	if entry, exists := c.items[key]; exists {
		entry.value = value
		entry.expiresAt = expiresAt
		c.moveToFront(entry)
		c.mu.Unlock()
		return
	}

	entry := &lruEntry[V]{
		key:       key,
		value:     value,
		expiresAt: expiresAt,
	}
	c.addToFront(entry)
	c.items[key] = entry

	var out []evicted[V]
	for len(c.items) > c.capacity {
		oldest := c.tail.prev
		c.removeEntry(oldest)
		c.evictions++
		out = append(out, evicted[V]{entry: oldest, reason: EvictCapacity})
	}
	c.mu.Unlock()

	c.notify(out)
}

// Remove deletes an entry without calling the eviction callback.
// It returns the removed value, if any.
func (c *LRU[V]) Remove(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.items[key]; exists {
		c.removeEntry(entry)
		return entry.value, true
	}
	var zero V
	return zero, false
}

// Len returns the current number of entries, expired ones included until swept.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *LRU[V]) expired(entry *lruEntry[V], now time.Time) bool {
	return c.ttl > 0 && now.After(entry.expiresAt)
}

// CleanupExpired evicts every entry past its idle deadline.
// Returns the number of entries removed.
func (c *LRU[V]) CleanupExpired() int {
	c.mu.Lock()

	now := c.now()
	var out []evicted[V]

	// Walk from tail (least recent) to head
	for entry := c.tail.prev; entry != c.head; {
		prev := entry.prev
		if c.expired(entry, now) {
			c.removeEntry(entry)
			c.evictions++
			out = append(out, evicted[V]{entry: entry, reason: EvictExpired})
		}
		entry = prev
	}
	c.mu.Unlock()

	c.notify(out)
	return len(out)
}

// Drain empties the cache and returns its entries, most recently used first.
// The eviction callback is not called.
func (c *LRU[V]) Drain() []Entry[V] {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Entry[V], 0, len(c.items))
	for entry := c.head.next; entry != c.tail; entry = entry.next {
		out = append(out, Entry[V]{Key: entry.key, Value: entry.value})
	}

	c.items = make(map[string]*lruEntry[V])
	c.head.next = c.tail
	c.tail.prev = c.head
	return out
}

// Stats returns cache hit/miss/eviction statistics.
func (c *LRU[V]) Stats() (hits, misses, evictions int64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, c.evictions, len(c.items)
}

func (c *LRU[V]) notify(out []evicted[V]) {
	if c.onEvict == nil {
		return
	}
	for _, ev := range out {
		c.onEvict(ev.entry.key, ev.entry.value, ev.reason)
	}
}

// Internal methods (must be called with lock held)

// addToFront adds an entry to the front of the list (most recently used).
func (c *LRU[V]) addToFront(entry *lruEntry[V]) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

// moveToFront moves an existing entry to the front of the list.
func (c *LRU[V]) moveToFront(entry *lruEntry[V]) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	c.addToFront(entry)
}

// removeEntry removes an entry from both the list and the map.
func (c *LRU[V]) removeEntry(entry *lruEntry[V]) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(c.items, entry.key)
}
