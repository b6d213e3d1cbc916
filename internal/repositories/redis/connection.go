package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Config selects the Redis server
type Config struct {
	Addr     string
	Password string
	DB       int
}

// RedisInternal wraps the Redis client shared by the rate limiter and the page cache
type RedisInternal struct {
	Redis *redis.Client
}

// NewRedisInternal connects to the first address in addrs that answers a ping
func NewRedisInternal(ctx context.Context, cfg Config, fallbacks ...string) (*RedisInternal, error) {
	addrs := append([]string{cfg.Addr}, fallbacks...)

	var lastErr error
	for _, addr := range addrs {
		if addr == "" {
			continue
		}
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			_ = rdb.Close()
			lastErr = err
			continue
		}
		return &RedisInternal{Redis: rdb}, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no address configured")
	}
	return nil, fmt.Errorf("connecting to Redis: %w", lastErr)
}

// Close closes the underlying client
func (r *RedisInternal) Close() error {
	return r.Redis.Close()
}
