package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/guttosm/picking-service/internal/metrics"
)

type entry[V any] struct {
	key       int64
	value     V
	expiresAt time.Time
}

// lru is one shard. The front of order is the most recently used entry.
type lru[V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	now      func() time.Time
	onEvict  EvictFunc[V]
	items    map[int64]*list.Element
	order    *list.List

	hits, misses, evictions int64
}

func newLRU[V any](capacity int, ttl time.Duration, now func() time.Time, onEvict EvictFunc[V]) *lru[V] {
	return &lru[V]{
		capacity: capacity,
		ttl:      ttl,
		now:      now,
		onEvict:  onEvict,
		items:    make(map[int64]*list.Element, capacity),
		order:    list.New(),
	}
}

func (c *lru[V]) expired(e *entry[V], at time.Time) bool {
	return c.ttl > 0 && at.After(e.expiresAt)
}

func (c *lru[V]) get(key int64) (V, bool) {
	var zero V

	c.mu.Lock()
	el, ok := c.items[key]
	if !ok {
		c.misses++
		c.mu.Unlock()
		metrics.RecordCacheOperation("get", "miss")
		return zero, false
	}

	e := el.Value.(*entry[V])
	at := c.now()
	if c.expired(e, at) {
		c.unlink(el)
		c.misses++
		c.evictions++
		c.mu.Unlock()
		metrics.RecordCacheOperation("get", "expired")
		c.evicted(e)
		return zero, false
	}

	e.expiresAt = at.Add(c.ttl)
	c.order.MoveToFront(el)
	c.hits++
	c.mu.Unlock()

	metrics.RecordCacheOperation("get", "hit")
	return e.value, true
}

func (c *lru[V]) set(key int64, value V) {
	c.mu.Lock()
	expiresAt := c.now().Add(c.ttl)
	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry[V])
		e.value = value
		e.expiresAt = expiresAt
		c.order.MoveToFront(el)
		c.mu.Unlock()
		metrics.RecordCacheOperation("set", "update")
		return
	}

	c.items[key] = c.order.PushFront(&entry[V]{key: key, value: value, expiresAt: expiresAt})

	var victim *entry[V]
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		victim = oldest.Value.(*entry[V])
		c.unlink(oldest)
		c.evictions++
	}
	c.mu.Unlock()

	metrics.RecordCacheOperation("set", "insert")
	if victim != nil {
		metrics.RecordCacheOperation("evict", "capacity")
		c.evicted(victim)
	}
}

func (c *lru[V]) remove(key int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.unlink(el)
		metrics.RecordCacheOperation("invalidate", "success")
	}
}

func (c *lru[V]) sweep() {
	c.mu.Lock()
	at := c.now()
	var gone []*entry[V]
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if e := el.Value.(*entry[V]); c.expired(e, at) {
			c.unlink(el)
			c.evictions++
			gone = append(gone, e)
		}
		el = prev
	}
	c.mu.Unlock()

	for _, e := range gone {
		metrics.RecordCacheOperation("evict", "expired")
		c.evicted(e)
	}
}

// live snapshots the unexpired entries, most recently used first.
func (c *lru[V]) live() []entry[V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	at := c.now()
	out := make([]entry[V], 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		if e := el.Value.(*entry[V]); !c.expired(e, at) {
			out = append(out, *e)
		}
	}
	return out
}

func (c *lru[V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *lru[V]) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[int64]*list.Element, c.capacity)
	c.order.Init()
	c.hits, c.misses, c.evictions = 0, 0, 0
	metrics.RecordCacheOperation("clear", "success")
}

func (c *lru[V]) metrics() Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Metrics{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      c.order.Len(),
		Capacity:  c.capacity,
	}
}

// unlink must be called with mu held.
func (c *lru[V]) unlink(el *list.Element) {
	delete(c.items, el.Value.(*entry[V]).key)
	c.order.Remove(el)
}

func (c *lru[V]) evicted(e *entry[V]) {
	if c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
}
