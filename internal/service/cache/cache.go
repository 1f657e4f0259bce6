// Package cache holds the open picking sessions: an LRU keyed by transfer id,
// split into shards, where idle entries expire.
package cache

import (
	"sync"
	"time"
)

// EvictFunc is called with every entry dropped for capacity or idleness,
// outside the shard lock. Invalidate and Clear do not call it.
type EvictFunc[V any] func(key int64, value V)

// Metrics is a snapshot of cache activity.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// Options configures a Sharded cache.
type Options[V any] struct {
	// Capacity is the total number of entries, split evenly over shards.
	Capacity int
	// TTL is how long an entry may stay unused. Zero disables expiry.
	TTL time.Duration
	// Shards is rounded up to a power of two. Defaults to 16.
	Shards int
	// OnEvict receives entries that leave for capacity or idleness.
	OnEvict EvictFunc[V]
	// Now replaces the clock, for tests.
	Now func() time.Time
	// SweepInterval overrides how often expired entries are swept.
	SweepInterval time.Duration
}

// Sharded spreads entries over independent LRU shards by key.
type Sharded[V any] struct {
	shards []*lru[V]
	mask   int64
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// New creates a cache and starts its sweeper. Stop must be called to release it.
func New[V any](opts Options[V]) *Sharded[V] {
	n := 1
	for n < max(opts.Shards, 1) {
		n <<= 1
	}
	if opts.Shards <= 0 {
		n = 16
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &Sharded[V]{
		shards: make([]*lru[V], n),
		mask:   int64(n - 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	perShard := max(opts.Capacity/n, 1)
	for i := range c.shards {
		c.shards[i] = newLRU(perShard, opts.TTL, opts.Now, opts.OnEvict)
	}

	interval := opts.SweepInterval
	if interval <= 0 {
		interval = time.Minute
		if opts.TTL > 0 && opts.TTL < interval {
			interval = opts.TTL
		}
	}
	go c.sweepLoop(interval)
	return c
}

func (c *Sharded[V]) shard(key int64) *lru[V] {
	return c.shards[key&c.mask]
}

// Get returns a live entry and restarts its idle timer.
func (c *Sharded[V]) Get(key int64) (V, bool) {
	return c.shard(key).get(key)
}

// Set stores value, evicting the shard's least recently used entry when full.
func (c *Sharded[V]) Set(key int64, value V) {
	c.shard(key).set(key, value)
}

// Invalidate drops key without calling the evict hook.
func (c *Sharded[V]) Invalidate(key int64) {
	c.shard(key).remove(key)
}

// Len counts entries over all shards, expired but unswept ones included.
func (c *Sharded[V]) Len() int {
	n := 0
	for _, s := range c.shards {
		n += s.len()
	}
	return n
}

// Range calls fn for every live entry. fn runs outside the shard locks.
func (c *Sharded[V]) Range(fn func(key int64, value V)) {
	for _, s := range c.shards {
		for _, e := range s.live() {
			fn(e.key, e.value)
		}
	}
}

// Sweep evicts every expired entry now.
func (c *Sharded[V]) Sweep() {
	for _, s := range c.shards {
		s.sweep()
	}
}

// Clear drops every entry and resets the counters.
func (c *Sharded[V]) Clear() {
	for _, s := range c.shards {
		s.clear()
	}
}

// Stop ends the sweeper. It is safe to call more than once.
func (c *Sharded[V]) Stop() {
	c.once.Do(func() { close(c.stop) })
	<-c.done
}

// Metrics sums the counters of all shards.
func (c *Sharded[V]) Metrics() Metrics {
	var total Metrics
	for _, s := range c.shards {
		m := s.metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}

func (c *Sharded[V]) sweepLoop(interval time.Duration) {
	defer close(c.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Sweep()
		case <-c.stop:
			return
		}
	}
}
