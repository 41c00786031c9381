// Package rediscache implements cache.Cache over a Redis server or cluster.
package rediscache

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/code19m/errx"
	"github.com/redis/go-redis/v9"

	"github.com/crudkit-go/crudkit/cache"
)

// Cache is the Redis-backed cache.Cache implementation. Hit and miss
// counters are tracked per client instance.
type Cache struct {
	client redis.UniversalClient

	hits   atomic.Int64
	misses atomic.Int64
}

var _ cache.Cache = (*Cache)(nil)

// New connects to Redis using the given config.
func New(cfg Config) *Cache {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:         strings.Split(cfg.Addrs, ","),
		Username:      cfg.Username,
		Password:      cfg.Password,
		IsClusterMode: cfg.IsClusterMode,
	})

	return &Cache{client: client}
}

// NewWithClient wraps an existing Redis client.
func NewWithClient(client redis.UniversalClient) *Cache {
	return &Cache{client: client}
}

// Close releases the underlying client connections.
func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		c.misses.Add(1)
		return "", errx.New(
			"key not found in cache",
			errx.WithCode(cache.CodeMiss),
			errx.WithType(errx.T_NotFound),
		)
	}
	if err != nil {
		return "", errx.Wrap(err)
	}

	c.hits.Add(1)
	return value, nil
}

func (c *Cache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errx.Wrap(err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return errx.Wrap(err)
	}
	return nil
}

func (c *Cache) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	if len(keys) == 0 {
		return map[string]string{}, nil
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errx.Wrap(err)
	}

	result := make(map[string]string, len(keys))
	for i, value := range values {
		if value == nil {
			c.misses.Add(1)
			continue
		}
		if s, ok := value.(string); ok {
			c.hits.Add(1)
			result[keys[i]] = s
		}
	}
	return result, nil
}

func (c *Cache) SetMany(ctx context.Context, values map[string]string, ttl time.Duration) error {
	if len(values) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()
	for key, value := range values {
		pipe.Set(ctx, key, value, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errx.Wrap(err)
	}
	return nil
}

func (c *Cache) DeleteMany(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return errx.Wrap(err)
	}
	return nil
}

func (c *Cache) ListAppend(ctx context.Context, key string, values ...string) error {
	if len(values) == 0 {
		return nil
	}

	args := make([]any, 0, len(values))
	for _, v := range values {
		args = append(args, v)
	}
	if err := c.client.RPush(ctx, key, args...).Err(); err != nil {
		return errx.Wrap(err)
	}
	return nil
}

func (c *Cache) ListRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	values, err := c.client.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return values, nil
}

func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, errx.Wrap(err)
	}
	return n > 0, nil
}

func (c *Cache) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := c.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, errx.Wrap(err)
	}
	return ttl, nil
}

func (c *Cache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if err := c.client.Expire(ctx, key, ttl).Err(); err != nil {
		return errx.Wrap(err)
	}
	return nil
}

func (c *Cache) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return keys, nil
}

func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return errx.Wrap(err)
	}
	return nil
}

func (c *Cache) Stats(ctx context.Context) (*cache.Stats, error) {
	size, err := c.client.DBSize(ctx).Result()
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return &cache.Stats{
		Keys:   size,
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}, nil
}
