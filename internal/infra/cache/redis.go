// Package cache holds the Redis client and the intake rate limiter built on it.
package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/vpvn/bugreports/internal/config"
)

const pingTimeout = 3 * time.Second

func options(cfg *config.Config) *redis.Options {
	opts := &redis.Options{
		Addr:       cfg.Redis.Addr,
		Password:   cfg.Redis.Password,
		DB:         cfg.Redis.DB,
		PoolSize:   cfg.Redis.PoolSize,
		ClientName: cfg.App.Name,
	}
	if cfg.Redis.EnableTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts
}

// New connects to cfg.Redis.Addr and fails fast when the server does not
// answer a PING.
func New(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(options(cfg))

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
	}
	return rdb, nil
}

// NewRateLimiterFromConfig applies the ratelimit section to rdb.
func NewRateLimiterFromConfig(rdb *redis.Client, cfg *config.Config) *RateLimiter {
	return NewRateLimiter(rdb, cfg.RateLimit.Requests, time.Duration(cfg.RateLimit.WindowSec)*time.Second)
}

// RegisterOpenTelemetryPlugin instruments rdb with the global tracer
// provider, so call it after telemetry.SetupTracing.
func RegisterOpenTelemetryPlugin(rdb *redis.Client) error {
	return redisotel.InstrumentTracing(rdb)
}

func Close(rdb *redis.Client) error {
	return rdb.Close()
}
