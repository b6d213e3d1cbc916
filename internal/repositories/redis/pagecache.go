package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"calldeskrest/internal/feed"
	"calldeskrest/pkg/logger"
)

const (
	keyPrefix   = "calldesk:page:"
	firstCursor = "^"
)

// PageCache serves repeated page requests from Redis. Cache failures are
// logged and fall through to the wrapped source.
type PageCache[T any] struct {
	redis     *RedisInternal
	namespace string
	ttl       time.Duration
	source    feed.Source[T]
	log       logger.Logger
}

// CachePages wraps source. namespace must identify the entity and its scope,
// since cursors are only meaningful within one scope.
func CachePages[T any](r *RedisInternal, namespace string, ttl time.Duration, source feed.Source[T], log logger.Logger) *PageCache[T] {
	if log == nil {
		log = logger.Nop()
	}
	return &PageCache[T]{
		redis:     r,
		namespace: namespace,
		ttl:       ttl,
		source:    source,
		log:       log,
	}
}

// FetchPage implements feed.Source
func (c *PageCache[T]) FetchPage(ctx context.Context, cursor *string) (feed.Page[T], error) {
	key := c.key(cursor)

	raw, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var page feed.Page[T]
		if jsonErr := json.Unmarshal(raw, &page); jsonErr == nil {
			return page, nil
		}
		c.log.Warn("discarding unreadable cached page", map[string]interface{}{"key": key})
	case !errors.Is(err, Nil):
		c.log.Warn("page cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
	}

	page, err := c.source.FetchPage(ctx, cursor)
	if err != nil {
		return page, err
	}

	data, err := json.Marshal(page)
	if err != nil {
		c.log.Warn("page not cacheable", map[string]interface{}{"key": key, "error": err.Error()})
		return page, nil
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("page cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	return page, nil
}

func (c *PageCache[T]) key(cursor *string) string {
	var b strings.Builder
	b.WriteString(keyPrefix)
	b.WriteString(c.namespace)
	b.WriteByte(':')
	if cursor == nil {
		b.WriteString(firstCursor)
	} else {
		b.WriteString(*cursor)
	}
	return b.String()
}
