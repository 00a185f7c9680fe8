package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window. Zero disables limiting.
	Limit int
	// Key prefix for counter keys
	KeyPrefix string
}

// windowCounter increments the counter for key and reports the new count
type windowCounter interface {
	incr(ctx context.Context, key string, window time.Duration) (int, error)
}

// RateLimiter enforces a fixed-window limit per user
type RateLimiter struct {
	counter windowCounter
	config  RateLimitConfig
	now     func() time.Time
}

// NewRateLimiter creates a new rate limiter instance. A nil Redis client keeps
// counters in process memory, which is only correct for a single instance.
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	var counter windowCounter = newMemoryCounter()
	if redisClient != nil {
		counter = &redisCounter{client: redisClient}
	}
	return &RateLimiter{
		counter: counter,
		config:  config,
		now:     time.Now,
	}
}

// NewSyncRateLimiter limits shopping list syncs to limit per user per minute
func NewSyncRateLimiter(redisClient *redis.Client, limit int) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Minute,
		Limit:     limit,
		KeyPrefix: "rate_limit:shopping_list_sync",
	})
}

// RateLimitMiddleware returns a Gin middleware that enforces rate limiting
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.config.Limit <= 0 {
			c.Next()
			return
		}

		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			return
		}

		allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), userID.String())
		if err != nil {
			// Fail open when the counter store is down
			c.Header("X-RateLimit-Error", "rate limit check failed")
			_ = c.Error(err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			retryAfter := int(resetTime.Sub(rl.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"message":     fmt.Sprintf("You have exceeded the rate limit of %d requests per %v", rl.config.Limit, rl.config.Window),
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}

// IsAllowed checks if a request from the given user is allowed
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, userID string) (bool, int, time.Time, error) {
	windowStart := rl.now().Truncate(rl.config.Window)
	key := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, userID, windowStart.Unix())

	count, err := rl.counter.incr(ctx, key, rl.config.Window)
	if err != nil {
		return false, 0, time.Time{}, err
	}

	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= rl.config.Limit, remaining, windowStart.Add(rl.config.Window), nil
}

type redisCounter struct {
	client *redis.Client
}

func (r *redisCounter) incr(ctx context.Context, key string, window time.Duration) (int, error) {
	// Use Redis pipeline for atomic operations
	pipe := r.client.TxPipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return int(incrCmd.Val()), nil
}

type memoryCounter struct {
	mu      sync.Mutex
	counts  map[string]int
	expires map[string]time.Time
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{
		counts:  make(map[string]int),
		expires: make(map[string]time.Time),
	}
}

func (m *memoryCounter) incr(_ context.Context, key string, window time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for k, exp := range m.expires {
		if now.After(exp) {
			delete(m.counts, k)
			delete(m.expires, k)
		}
	}

	m.counts[key]++
	if _, ok := m.expires[key]; !ok {
		m.expires[key] = now.Add(window)
	}
	return m.counts[key], nil
}
