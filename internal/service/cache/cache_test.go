//go:build !integration

package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type evictions struct {
	mu   sync.Mutex
	keys []int64
}

func (e *evictions) record(key int64, _ string) {
	e.mu.Lock()
	e.keys = append(e.keys, key)
	e.mu.Unlock()
}

func (e *evictions) got() []int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]int64(nil), e.keys...)
}

func newTestCache(t *testing.T, opts Options[string]) (*Sharded[string], *clock) {
	t.Helper()
	clk := &clock{t: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	opts.Now = clk.now
	opts.SweepInterval = time.Hour
	c := New(opts)
	t.Cleanup(c.Stop)
	return c, clk
}

func TestNew_Shards(t *testing.T) {
	tests := []struct {
		name   string
		shards int
		want   int
	}{
		{"default", 0, 16},
		{"power of two", 8, 8},
		{"rounded up", 5, 8},
		{"single", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCache(t, Options[string]{Capacity: 64, Shards: tt.shards})
			assert.Len(t, c.shards, tt.want)
			assert.Equal(t, int64(tt.want-1), c.mask)
		})
	}
}

func TestSharded_GetSet(t *testing.T) {
	c, _ := newTestCache(t, Options[string]{Capacity: 32, TTL: time.Minute})

	_, ok := c.Get(7)
	assert.False(t, ok)

	c.Set(7, "WH/INT/00007")
	v, ok := c.Get(7)
	require.True(t, ok)
	assert.Equal(t, "WH/INT/00007", v)

	c.Set(7, "updated")
	v, _ = c.Get(7)
	assert.Equal(t, "updated", v)
	assert.Equal(t, 1, c.Len())

	m := c.Metrics()
	assert.Equal(t, int64(2), m.Hits)
	assert.Equal(t, int64(1), m.Misses)
	assert.Equal(t, 1, m.Size)
	assert.Equal(t, 32, m.Capacity)
}

func TestSharded_CapacityEvictsLeastRecentlyUsed(t *testing.T) {
	var ev evictions
	c, _ := newTestCache(t, Options[string]{Capacity: 2, Shards: 1, OnEvict: ev.record})

	c.Set(1, "a")
	c.Set(2, "b")
	_, _ = c.Get(1)
	c.Set(3, "c")

	_, ok := c.Get(2)
	assert.False(t, ok)
	_, ok = c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, []int64{2}, ev.got())
	assert.Equal(t, int64(1), c.Metrics().Evictions)
}

func TestSharded_Expiry(t *testing.T) {
	t.Run("idle entry expires on get", func(t *testing.T) {
		var ev evictions
		c, clk := newTestCache(t, Options[string]{Capacity: 8, TTL: time.Minute, OnEvict: ev.record})
		c.Set(1, "a")

		clk.advance(61 * time.Second)
		_, ok := c.Get(1)
		assert.False(t, ok)
		assert.Equal(t, []int64{1}, ev.got())
		assert.Zero(t, c.Len())
	})

	t.Run("get restarts the idle timer", func(t *testing.T) {
		c, clk := newTestCache(t, Options[string]{Capacity: 8, TTL: time.Minute})
		c.Set(1, "a")

		for range 3 {
			clk.advance(40 * time.Second)
			_, ok := c.Get(1)
			require.True(t, ok)
		}
	})

	t.Run("sweep evicts expired entries only", func(t *testing.T) {
		var ev evictions
		c, clk := newTestCache(t, Options[string]{Capacity: 8, TTL: time.Minute, Shards: 1, OnEvict: ev.record})
		c.Set(1, "a")
		clk.advance(30 * time.Second)
		c.Set(2, "b")
		clk.advance(45 * time.Second)

		c.Sweep()
		assert.Equal(t, []int64{1}, ev.got())
		assert.Equal(t, 1, c.Len())
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		c, clk := newTestCache(t, Options[string]{Capacity: 8})
		c.Set(1, "a")
		clk.advance(24 * time.Hour)
		c.Sweep()
		_, ok := c.Get(1)
		assert.True(t, ok)
	})
}

func TestSharded_InvalidateAndClearSkipTheHook(t *testing.T) {
	var ev evictions
	c, _ := newTestCache(t, Options[string]{Capacity: 8, OnEvict: ev.record})
	c.Set(1, "a")
	c.Set(2, "b")
	c.Set(3, "c")

	c.Invalidate(1)
	c.Invalidate(99)
	assert.Equal(t, 2, c.Len())

	c.Clear()
	assert.Zero(t, c.Len())
	assert.Zero(t, c.Metrics().Hits)
	assert.Empty(t, ev.got())
}

func TestSharded_Range(t *testing.T) {
	c, clk := newTestCache(t, Options[string]{Capacity: 16, TTL: time.Minute, Shards: 4})
	c.Set(1, "a")
	clk.advance(50 * time.Second)
	c.Set(2, "b")
	c.Set(6, "c")
	clk.advance(20 * time.Second)

	seen := map[int64]string{}
	c.Range(func(k int64, v string) { seen[k] = v })
	assert.Equal(t, map[int64]string{2: "b", 6: "c"}, seen)
}

func TestSharded_HookMayUseTheCache(t *testing.T) {
	var c *Sharded[string]
	sizes := make(chan int, 1)
	c, _ = newTestCache(t, Options[string]{
		Capacity: 1,
		Shards:   1,
		OnEvict:  func(int64, string) { sizes <- c.Len() },
	})

	c.Set(1, "a")
	c.Set(2, "b")
	assert.Equal(t, 1, <-sizes)
}

func TestSharded_BackgroundSweep(t *testing.T) {
	var ev evictions
	c := New(Options[string]{Capacity: 4, TTL: 20 * time.Millisecond, OnEvict: ev.record})
	defer c.Stop()
	c.Set(5, "a")

	require.Eventually(t, func() bool { return len(ev.got()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Zero(t, c.Len())
}

func TestSharded_StopTwice(t *testing.T) {
	c := New(Options[string]{Capacity: 4})
	c.Stop()
	assert.NotPanics(t, c.Stop)
}

func TestSharded_Concurrency(t *testing.T) {
	c, _ := newTestCache(t, Options[string]{Capacity: 256, TTL: time.Minute})

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				key := int64(g*1000 + i%50)
				c.Set(key, "v")
				_, _ = c.Get(key)
				if i%7 == 0 {
					c.Invalidate(key)
				}
			}
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 256)
}
