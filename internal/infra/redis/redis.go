// Package redis provides the Redis client used by the login rate limiter.
package redis

import (
	"context"
	"log/slog"

	"novacommerce/config"
	"novacommerce/internal/domain/lifecycle"
	"novacommerce/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the Redis client and validates connectivity with a ping on start.
func New(params Params) (*redis.Client, error) {
	if params.Config.Redis == nil {
		return nil, errors.New("redis config is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr: params.Config.Redis.Addr,
		DB:   params.Config.Redis.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping Redis")
			}

			params.Logger.Info("Redis connected", slog.String("addr", params.Config.Redis.Addr))

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}
