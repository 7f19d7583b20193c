// Package cache provides the build artifact cache: a sharded LRU keyed by
// geometry fingerprints.
package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

// Default configuration constants.
const (
	// DefaultShardCount is the number of shards. Must be a power of 2 for
	// shard selection by bitwise AND.
	DefaultShardCount = 16

	// DefaultCapacity is the default maximum entries per shard.
	DefaultCapacity = 256

	shardMask = DefaultShardCount - 1
)

// Hasher computes the shard-selection hash of a key.
type Hasher[K any] func(K) uint64

// StringHasher computes the FNV-1a hash of a string key.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// Stats is a snapshot of cache statistics.
type Stats struct {
	Len           int
	Capacity      int
	TotalCapacity int
	Hits          uint64
	Misses        uint64
	HitRate       float64
	Evictions     uint64
}

// Sharded is a thread-safe, sharded LRU cache.
//
// Each shard has its own lock and LRU order; capacity is enforced per
// shard. Statistics are atomic and can be read without locking.
type Sharded[K comparable, V any] struct {
	shards   [DefaultShardCount]*shard[K, V]
	hasher   Hasher[K]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[K, V]
	lru     *lruList[K]
}

type entry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

// NewSharded creates a cache holding up to capacity entries per shard.
// If capacity <= 0, DefaultCapacity is used.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K]) *Sharded[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Sharded[K, V]{hasher: hasher, capacity: capacity}
	for i := range c.shards {
		c.shards[i] = &shard[K, V]{
			entries: make(map[K]*entry[K, V]),
			lru:     newLRUList[K](),
		}
	}
	return c
}

func (c *Sharded[K, V]) shardFor(key K) *shard[K, V] {
	return c.shards[c.hasher(key)&shardMask]
}

// lookup returns the entry for key and refreshes its LRU position. The
// shard lock must be held.
func (s *shard[K, V]) lookup(key K) (*entry[K, V], bool) {
	e, ok := s.entries[key]
	if ok {
		s.lru.MoveToFront(e.node)
	}
	return e, ok
}

// insert stores value, evicting the oldest entries when the shard is full.
// The shard lock must be held. It returns the number of evictions.
func (s *shard[K, V]) insert(key K, value V, capacity int) uint64 {
	if e, ok := s.entries[key]; ok {
		e.value = value
		s.lru.MoveToFront(e.node)
		return 0
	}
	var evicted uint64
	for s.lru.Len() >= capacity {
		oldest, ok := s.lru.RemoveOldest()
		if !ok {
			break
		}
		delete(s.entries, oldest)
		evicted++
	}
	s.entries[key] = &entry[K, V]{value: value, node: s.lru.PushFront(key)}
	return evicted
}

// Get retrieves a cached value.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	var value V
	e, ok := s.lookup(key)
	if ok {
		value = e.value
	}
	s.mu.Unlock()
	if !ok {
		c.misses.Add(1)
		return value, false
	}
	c.hits.Add(1)
	return value, true
}

// Set stores a value. The value is stored as-is; callers must not modify
// it afterwards.
func (c *Sharded[K, V]) Set(key K, value V) {
	s := c.shardFor(key)
	s.mu.Lock()
	evicted := s.insert(key, value, c.capacity)
	s.mu.Unlock()
	c.evictions.Add(evicted)
}

// GetOrCompute returns the cached value for key, or computes and stores it.
// hit reports whether the value came from the cache. Errors are returned
// without caching anything.
//
// compute runs with the shard lock held, so concurrent callers for the same
// key wait for a single computation.
func (c *Sharded[K, V]) GetOrCompute(key K, compute func() (V, error)) (value V, hit bool, err error) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.lookup(key); ok {
		c.hits.Add(1)
		return e.value, true, nil
	}
	c.misses.Add(1)

	value, err = compute()
	if err != nil {
		var zero V
		return zero, false, err
	}
	c.evictions.Add(s.insert(key, value, c.capacity))
	return value, false, nil
}

// Delete removes an entry and reports whether it was present.
func (c *Sharded[K, V]) Delete(key K) bool {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false
	}
	s.lru.Remove(e.node)
	delete(s.entries, key)
	return true
}

// Clear removes all entries. Statistics are kept.
func (c *Sharded[K, V]) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.entries = make(map[K]*entry[K, V])
		s.lru.Clear()
		s.mu.Unlock()
	}
}

// Len returns the total number of entries.
func (c *Sharded[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

// Capacity returns the per-shard capacity.
func (c *Sharded[K, V]) Capacity() int { return c.capacity }

// TotalCapacity returns the capacity across all shards.
func (c *Sharded[K, V]) TotalCapacity() int { return c.capacity * DefaultShardCount }

// Stats returns current cache statistics.
func (c *Sharded[K, V]) Stats() Stats {
	hits, misses := c.hits.Load(), c.misses.Load()
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return Stats{
		Len:           c.Len(),
		Capacity:      c.capacity,
		TotalCapacity: c.TotalCapacity(),
		Hits:          hits,
		Misses:        misses,
		HitRate:       rate,
		Evictions:     c.evictions.Load(),
	}
}

// ResetStats zeroes the statistics counters.
func (c *Sharded[K, V]) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}
