package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Nil is returned by Get when the key does not exist
const Nil = redis.Nil

// Get returns the value of a key
func (r *RedisInternal) Get(ctx context.Context, key string) *redis.StringCmd {
	return r.Redis.Get(ctx, key)
}

// Set sets a key value pair
func (r *RedisInternal) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	return r.Redis.Set(ctx, key, value, expiration)
}

// TTL returns the time to live of a key
func (r *RedisInternal) TTL(ctx context.Context, key string) *redis.DurationCmd {
	return r.Redis.TTL(ctx, key)
}

// Incr increments a key
func (r *RedisInternal) Incr(ctx context.Context, key string) *redis.IntCmd {
	return r.Redis.Incr(ctx, key)
}

// Ping checks the connection
func (r *RedisInternal) Ping(ctx context.Context) error {
	return r.Redis.Ping(ctx).Err()
}
