package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/questionbase/questionbase/api/internal/pkg/errors"
)

// Limiter counts requests per key over a sliding window
type Limiter interface {
	// Hit records one request for key and returns how many requests,
	// including this one, fall inside the current window
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisLimiter implements Limiter with one sorted set per key
type RedisLimiter struct {
	client redis.Cmdable
	prefix string
	now    func() time.Time
}

// NewRedisLimiter creates a sliding-window limiter backed by Redis
func NewRedisLimiter(client redis.Cmdable) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: "ratelimit:", now: time.Now}
}

// Hit trims entries older than the window, adds this request and counts
func (l *RedisLimiter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	now := l.now()
	redisKey := l.prefix + key
	windowStart := now.Add(-window).UnixNano()

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "-inf", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: fmt.Sprintf("%d:%s", now.UnixNano(), uuid.NewString()),
	})
	count := pipe.ZCard(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window*2)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to record request: %w", err)
	}
	return count.Val(), nil
}

// RateLimitConfig configures the rate limiter
type RateLimitConfig struct {
	// Max requests per window
	Max int
	// Window duration
	Window time.Duration
	// Timeout bounds each limiter call
	Timeout time.Duration
	// Key generator function
	KeyGenerator func(*fiber.Ctx) string
	// Skip function
	Skip func(*fiber.Ctx) bool
	// Logger receives limiter failures
	Logger *zap.Logger
}

// DefaultRateLimitConfig returns default rate limit config
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Max:     100,
		Window:  time.Minute,
		Timeout: 500 * time.Millisecond,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		Skip: HealthSkipper,
	}
}

// RateLimitMiddleware rejects clients that exceed Max requests per Window
type RateLimitMiddleware struct {
	limiter Limiter
	config  RateLimitConfig
}

// NewRateLimitMiddleware creates a new rate limit middleware. Unset config
// fields take their defaults.
func NewRateLimitMiddleware(limiter Limiter, config RateLimitConfig) *RateLimitMiddleware {
	defaults := DefaultRateLimitConfig()
	if config.Max <= 0 {
		config.Max = defaults.Max
	}
	if config.Window <= 0 {
		config.Window = defaults.Window
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.KeyGenerator == nil {
		config.KeyGenerator = defaults.KeyGenerator
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	return &RateLimitMiddleware{
		limiter: limiter,
		config:  config,
	}
}

// Handler returns the rate limit handler. Limiter failures let the request through.
func (m *RateLimitMiddleware) Handler() fiber.Handler {
	window := int64(m.config.Window.Seconds())

	return func(c *fiber.Ctx) error {
		if m.config.Skip != nil && m.config.Skip(c) {
			return c.Next()
		}

		ctx, cancel := context.WithTimeout(context.Background(), m.config.Timeout)
		count, err := m.limiter.Hit(ctx, m.config.KeyGenerator(c), m.config.Window)
		cancel()
		if err != nil {
			m.config.Logger.Warn("rate limiter unavailable",
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
			return c.Next()
		}

		reset := time.Now().Unix() + window
		c.Set("X-RateLimit-Limit", strconv.Itoa(m.config.Max))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(reset, 10))

		if count > int64(m.config.Max) {
			c.Set("X-RateLimit-Remaining", "0")
			c.Set(fiber.HeaderRetryAfter, strconv.FormatInt(window, 10))
			return apperrors.RateLimited()
		}

		c.Set("X-RateLimit-Remaining", strconv.FormatInt(int64(m.config.Max)-count, 10))
		return c.Next()
	}
}
