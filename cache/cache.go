// Package cache defines a small key/value cache abstraction with string
// payloads, plus generic helpers for JSON values. Implementations live in
// subpackages.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/code19m/errx"
)

// CodeMiss marks lookups of keys that are not present in the cache.
const CodeMiss = "CACHE_MISS"

// Cache is the key/value store contract. Values are opaque strings;
// callers that need structure go through the JSON helpers.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// GetMany returns the present keys only. Missing keys are simply
	// absent from the result, not an error.
	GetMany(ctx context.Context, keys []string) (map[string]string, error)
	SetMany(ctx context.Context, values map[string]string, ttl time.Duration) error
	DeleteMany(ctx context.Context, keys []string) error

	// ListAppend pushes values to the tail of the list stored at key,
	// creating the list when it does not exist.
	ListAppend(ctx context.Context, key string, values ...string) error
	// ListRange returns the elements of the list at key between start and
	// stop inclusive. Negative offsets count from the tail.
	ListRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	Exists(ctx context.Context, key string) (bool, error)
	// TTL reports the remaining lifetime of key. Keys without an expiry
	// report a negative duration.
	TTL(ctx context.Context, key string) (time.Duration, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Keys(ctx context.Context, pattern string) ([]string, error)

	Ping(ctx context.Context) error
	Stats(ctx context.Context) (*Stats, error)
}

// Stats is a point-in-time snapshot of cache usage.
type Stats struct {
	// Keys is the number of keys currently stored.
	Keys int64
	// Hits and Misses count Get outcomes observed through this client.
	Hits   int64
	Misses int64
}

// IsMiss reports whether err is a cache miss.
func IsMiss(err error) bool {
	return err != nil && errx.AsErrorX(err).Code() == CodeMiss
}

// GetJSON reads key and unmarshals its value into T. A miss is returned
// unchanged so callers can branch on IsMiss.
func GetJSON[T any](ctx context.Context, c Cache, key string) (*T, error) {
	raw, err := c.Get(ctx, key)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, errx.Wrap(err)
	}
	return &value, nil
}

// SetJSON marshals value and stores it at key.
func SetJSON[T any](ctx context.Context, c Cache, key string, value *T, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errx.Wrap(err)
	}
	return c.Set(ctx, key, string(raw), ttl)
}
