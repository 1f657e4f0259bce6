package middleware

import (
	"sync"
	"time"
)

// idempotencyCacheCapacity bounds the replay cache. A shift of scanners
// retrying over a flaky network never needs more than this within the TTL.
const idempotencyCacheCapacity = 10000

// idempotencyEntry is a reserved key. resp stays nil while the first request
// is running.
type idempotencyEntry struct {
	resp    *cachedResponse
	created time.Time
}

// idempotencyCache tracks running and completed requests by fingerprint.
type idempotencyCache struct {
	mu       sync.Mutex
	items    map[string]*idempotencyEntry
	ttl      time.Duration
	capacity int
	now      func() time.Time
	done     chan struct{}
	stopOnce sync.Once
}

func newIdempotencyCache(ttl time.Duration) *idempotencyCache {
	c := &idempotencyCache{
		items:    make(map[string]*idempotencyEntry),
		ttl:      ttl,
		capacity: idempotencyCacheCapacity,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go c.startCleanup()
	return c
}

// Reserve claims key for a new request. It returns the stored response when
// the request already completed, and reserved=false while it is running.
func (c *idempotencyCache) Reserve(key string) (cached *cachedResponse, reserved bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if e, ok := c.items[key]; ok && !c.expired(e, now) {
		return e.resp, false
	}
	if len(c.items) >= c.capacity {
		c.evictOldest()
	}
	c.items[key] = &idempotencyEntry{created: now}
	return nil, true
}

// Complete stores the response of a reserved key.
func (c *idempotencyCache) Complete(key string, resp *cachedResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = &idempotencyEntry{resp: resp, created: c.now()}
}

// Release drops a reservation so the request can be retried.
func (c *idempotencyCache) Release(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Len reports the number of tracked keys, expired ones included.
func (c *idempotencyCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stop ends the cleanup loop.
func (c *idempotencyCache) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

func (c *idempotencyCache) expired(e *idempotencyEntry, now time.Time) bool {
	return now.Sub(e.created) > c.ttl
}

func (c *idempotencyCache) startCleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.done:
			return
		}
	}
}

func (c *idempotencyCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.items {
		if c.expired(e, now) {
			delete(c.items, key)
		}
	}
}

// evictOldest must be called with mu held.
func (c *idempotencyCache) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for key, e := range c.items {
		if !found || e.created.Before(oldest) {
			oldestKey, oldest, found = key, e.created, true
		}
	}
	if found {
		delete(c.items, oldestKey)
	}
}
