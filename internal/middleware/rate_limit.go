package middleware

import (
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/internal/i18n"
)

const defaultNumShards = 16

// KeyFunc picks the bucket a request is charged to.
type KeyFunc func(c *gin.Context) string

// ByClientIP charges requests to the client address.
func ByClientIP(c *gin.Context) string {
	return "ip:" + c.ClientIP()
}

// ByOperator charges requests to the authenticated operator. Warehouse
// scanners often share one NAT address, so an IP bucket would throttle a
// whole shift. Requests without an operator fall back to the address.
func ByOperator(c *gin.Context) string {
	if operatorID := GetOperatorID(c); operatorID != "" {
		return "operator:" + operatorID
	}
	return ByClientIP(c)
}

// bucket is a token bucket refilled continuously, one token per window/rate.
type bucket struct {
	tokens float64
	last   time.Time
}

type rateLimiterShard struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

// ShardedRateLimiter is a token bucket limiter whose buckets are spread over
// shards to keep lock contention low. Bursts up to rate requests are allowed
// and the bucket refills evenly over window.
type ShardedRateLimiter struct {
	shards   []*rateLimiterShard
	rate     int
	window   time.Duration
	perToken time.Duration
	now      func() time.Time
	stop     chan struct{}
	once     sync.Once
}

// RateLimiter is the limiter used by the router.
type RateLimiter = ShardedRateLimiter

// RateLimiterStats reports tracked buckets.
type RateLimiterStats struct {
	Buckets  int
	PerShard []int
}

// NewRateLimiter creates a limiter allowing rate requests per window.
func NewRateLimiter(rate int, window time.Duration) *ShardedRateLimiter {
	return NewShardedRateLimiter(rate, window, defaultNumShards)
}

// NewShardedRateLimiter creates a limiter with a custom shard count.
func NewShardedRateLimiter(rate int, window time.Duration, numShards int) *ShardedRateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}
	if window <= 0 {
		window = time.Minute
	}

	rl := &ShardedRateLimiter{
		shards: make([]*rateLimiterShard, numShards),
		rate:   rate,
		window: window,
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	if rate > 0 {
		rl.perToken = window / time.Duration(rate)
	}
	for i := range rl.shards {
		rl.shards[i] = &rateLimiterShard{buckets: make(map[string]*bucket)}
	}

	go rl.cleanup()
	return rl
}

func (rl *ShardedRateLimiter) shard(key string) *rateLimiterShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return rl.shards[h.Sum32()%uint32(len(rl.shards))]
}

// take spends one token of key's bucket. When denied, retryAfter is the
// time until the next token.
func (rl *ShardedRateLimiter) take(key string) (allowed bool, remaining int, retryAfter time.Duration) {
	s := rl.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := rl.now()
	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(rl.rate), last: now}
		s.buckets[key] = b
	} else {
		if rl.perToken > 0 {
			refilled := float64(now.Sub(b.last)) / float64(rl.perToken)
			b.tokens = math.Min(float64(rl.rate), b.tokens+refilled)
		}
		b.last = now
	}

	if b.tokens < 1 {
		if rl.perToken <= 0 {
			return false, 0, rl.window
		}
		return false, 0, time.Duration((1 - b.tokens) * float64(rl.perToken))
	}
	b.tokens--
	return true, int(b.tokens), 0
}

// Limit returns a middleware charging each request to the bucket named by key.
func (rl *ShardedRateLimiter) Limit(key KeyFunc) gin.HandlerFunc {
	limit := strconv.Itoa(rl.rate)
	return func(c *gin.Context) {
		allowed, remaining, retryAfter := rl.take(key(c))

		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(max(seconds, 1)))
			abortWithError(c, http.StatusTooManyRequests, i18n.ErrKeyRateLimitExceeded)
			return
		}
		c.Next()
	}
}

// RateLimit limits requests per client address.
func (rl *ShardedRateLimiter) RateLimit() gin.HandlerFunc {
	return rl.Limit(ByClientIP)
}

// OperatorRateLimit limits requests per authenticated operator.
func (rl *ShardedRateLimiter) OperatorRateLimit() gin.HandlerFunc {
	return rl.Limit(ByOperator)
}

func (rl *ShardedRateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.dropFullBuckets()
		case <-rl.stop:
			return
		}
	}
}

// dropFullBuckets forgets buckets that have refilled completely; a new
// bucket starts full, so nothing is lost.
func (rl *ShardedRateLimiter) dropFullBuckets() {
	now := rl.now()
	for _, s := range rl.shards {
		s.mu.Lock()
		for key, b := range s.buckets {
			if now.Sub(b.last) >= rl.window {
				delete(s.buckets, key)
			}
		}
		s.mu.Unlock()
	}
}

// Stop ends the cleanup loop.
func (rl *ShardedRateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Stats returns the number of tracked buckets.
func (rl *ShardedRateLimiter) Stats() RateLimiterStats {
	stats := RateLimiterStats{PerShard: make([]int, len(rl.shards))}
	for i, s := range rl.shards {
		s.mu.Lock()
		stats.PerShard[i] = len(s.buckets)
		stats.Buckets += stats.PerShard[i]
		s.mu.Unlock()
	}
	return stats
}
