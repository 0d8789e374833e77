package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy defines the behavior when the rate limit store (Redis) is unavailable.
type FailPolicy int

const (
	// FailOpen allows the request to proceed if Redis is unavailable.
	FailOpen FailPolicy = iota
	// FailClosed blocks the request (503 Service Unavailable) if Redis is unavailable.
	FailClosed
)

var errNoRedis = errors.New("redis client is nil")

// Limiter counts requests per key in fixed windows stored in Redis.
type Limiter struct {
	rdb     *redis.Client
	enabled bool
}

// NewLimiter returns a Limiter. Limits are skipped outside production-like
// environments so local and test runs are not throttled.
func NewLimiter(rdb *redis.Client, env string) *Limiter {
	enabled := true
	switch env {
	case "", "test", "development", "stress":
		enabled = false
	}
	return &Limiter{rdb: rdb, enabled: enabled}
}

// Allow reports whether another request for resource/id fits in the window.
func (l *Limiter) Allow(ctx context.Context, resource, id string, limit int, window time.Duration) (bool, error) {
	if !l.enabled {
		return true, nil
	}
	if l.rdb == nil {
		return false, errNoRedis
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)

	cnt, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		l.rdb.Expire(ctx, key, window)
	}
	return cnt <= int64(limit), nil
}

// RateLimit returns a Fiber middleware enforcing `limit` requests per `window`.
// It keys by authenticated userID when present, otherwise by remote IP, and
// fails open.
func (l *Limiter) RateLimit(limit int, window time.Duration, name string) fiber.Handler {
	return l.RateLimitWithPolicy(limit, window, FailOpen, name)
}

// RateLimitWithPolicy is RateLimit with an explicit failure policy.
func (l *Limiter) RateLimitWithPolicy(limit int, window time.Duration, policy FailPolicy, name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := "ip:" + c.IP()
		if uid, ok := c.Locals("userID").(uint); ok {
			id = fmt.Sprintf("user:%d", uid)
		}

		resource := name
		if resource == "" {
			resource = c.Path()
		}

		allowed, err := l.Allow(c.UserContext(), resource, id, limit, window)
		if err != nil {
			if policy == FailClosed {
				Logger.WarnContext(c.UserContext(), "rate limit unavailable, failing closed",
					"resource", resource, "error", err.Error())
				return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
					StatusCode: fiber.StatusServiceUnavailable,
					Message:    "rate limit unavailable",
					Code:       models.CodeInternal,
				})
			}
			return c.Next()
		}

		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				StatusCode: fiber.StatusTooManyRequests,
				Message:    "rate limit exceeded",
				Code:       "RATE_LIMITED",
			})
		}
		return c.Next()
	}
}
