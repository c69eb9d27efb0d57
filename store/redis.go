package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores summaries in a remote Redis-compatible key-value service.
type RedisCache struct {
	rdb *redis.Client
}

// OpenRedis connects to the cache store at the given URL. A non-empty token
// overrides any password embedded in the URL.
func OpenRedis(url, token string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse cache url: %w", err)
	}
	if token != "" {
		opts.Password = token
	}
	return &RedisCache{rdb: redis.NewClient(opts)}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("cache get: %w", err)
	}
	return val, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string) error {
	if err := c.rdb.Set(ctx, key, value, SummaryTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *RedisCache) Name() string { return "redis" }

func (c *RedisCache) Close() error { return c.rdb.Close() }
