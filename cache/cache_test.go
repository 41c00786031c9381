package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crudkit-go/crudkit/cache"
)

// memCache is a minimal in-process cache.Cache for exercising the package
// helpers.
type memCache struct {
	values map[string]string
}

func newMemCache() *memCache {
	return &memCache{values: map[string]string{}}
}

func (m *memCache) Get(_ context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", errx.New("not found", errx.WithCode(cache.CodeMiss))
	}
	return value, nil
}

func (m *memCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.values[key] = value
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func (m *memCache) GetMany(_ context.Context, keys []string) (map[string]string, error) {
	result := map[string]string{}
	for _, key := range keys {
		if value, ok := m.values[key]; ok {
			result[key] = value
		}
	}
	return result, nil
}

func (m *memCache) SetMany(_ context.Context, values map[string]string, _ time.Duration) error {
	for key, value := range values {
		m.values[key] = value
	}
	return nil
}

func (m *memCache) DeleteMany(_ context.Context, keys []string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *memCache) ListAppend(context.Context, string, ...string) error { return nil }

func (m *memCache) ListRange(context.Context, string, int64, int64) ([]string, error) {
	return nil, nil
}

func (m *memCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.values[key]
	return ok, nil
}

func (m *memCache) TTL(context.Context, string) (time.Duration, error) { return -1, nil }

func (m *memCache) Expire(context.Context, string, time.Duration) error { return nil }

func (m *memCache) Keys(context.Context, string) ([]string, error) { return nil, nil }

func (m *memCache) Ping(context.Context) error { return nil }

func (m *memCache) Stats(context.Context) (*cache.Stats, error) {
	return &cache.Stats{Keys: int64(len(m.values))}, nil
}

type session struct {
	UserID string `json:"user_id"`
	Roles  []string
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newMemCache()

	stored := &session{UserID: "u-1", Roles: []string{"admin"}}
	require.NoError(t, cache.SetJSON(ctx, c, "session:u-1", stored, time.Minute))

	loaded, err := cache.GetJSON[session](ctx, c, "session:u-1")
	require.NoError(t, err)
	assert.Equal(t, stored, loaded)
}

func TestGetJSON_Miss(t *testing.T) {
	t.Parallel()

	loaded, err := cache.GetJSON[session](context.Background(), newMemCache(), "absent")

	require.Error(t, err)
	assert.Nil(t, loaded)
	assert.True(t, cache.IsMiss(err))
}

func TestGetJSON_CorruptPayload(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newMemCache()
	require.NoError(t, c.Set(ctx, "bad", "{not json", 0))

	loaded, err := cache.GetJSON[session](ctx, c, "bad")

	require.Error(t, err)
	assert.Nil(t, loaded)
	assert.False(t, cache.IsMiss(err))
}

func TestIsMiss(t *testing.T) {
	t.Parallel()

	assert.False(t, cache.IsMiss(nil))
	assert.False(t, cache.IsMiss(assert.AnError))
	assert.True(t, cache.IsMiss(errx.New("gone", errx.WithCode(cache.CodeMiss))))
}
