// Package ratelimit implements a Redis-backed fixed-window rate limiter.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"novacommerce/config"
	"novacommerce/internal/domain/service"
	"novacommerce/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// redisLimiter counts requests per key in fixed windows.
// Key format: ratelimit:<key>:<window_bucket>
type redisLimiter struct {
	client *redis.Client
	logger *slog.Logger
	limit  int
	window time.Duration
}

// Params defines the required parameters
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	Client *redis.Client
}

// NewRedisLimiter is the constructor for redisLimiter.
func NewRedisLimiter(params Params) service.RateLimiter {
	return &redisLimiter{
		client: params.Client,
		logger: params.Logger,
		limit:  params.Config.RateLimit.LoginRequests,
		window: params.Config.RateLimit.LoginWindow,
	}
}

// Allow increments the counter for the current window and reports whether the
// caller is still under the limit. When Redis is unreachable the limiter fails
// open so an infra outage does not lock everyone out.
func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := time.Now().Unix() / int64(l.window.Seconds())
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, bucket)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Warn("rate limiter unavailable, allowing request",
			slog.String("key", key),
			slog.Any("error", errors.Wrap(err, "rate limit check failed")))

		return true, nil
	}

	return incr.Val() <= int64(l.limit), nil
}
