package meta_test

import (
	"context"
	"testing"

	"github.com/crudkit-go/crudkit/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectMetaToContext(t *testing.T) {
	t.Parallel()

	t.Run("stores non-empty values", func(t *testing.T) {
		t.Parallel()

		ctx := meta.InjectMetaToContext(context.Background(), map[meta.ContextKey]string{
			meta.TraceID:   "trace-1",
			meta.ActorID:   "user-42",
			meta.ActorType: "customer",
		})

		assert.Equal(t, "trace-1", meta.Find(ctx, meta.TraceID))
		assert.Equal(t, "user-42", meta.Find(ctx, meta.ActorID))
		assert.Equal(t, "customer", meta.Find(ctx, meta.ActorType))
	})

	t.Run("skips empty values", func(t *testing.T) {
		t.Parallel()

		ctx := meta.InjectMetaToContext(context.Background(), map[meta.ContextKey]string{
			meta.TraceID: "",
		})

		assert.Empty(t, meta.Find(ctx, meta.TraceID))
		assert.Empty(t, meta.ExtractMetaFromContext(ctx))
	})

	t.Run("overwrites existing values", func(t *testing.T) {
		t.Parallel()

		ctx := meta.InjectMetaToContext(context.Background(), map[meta.ContextKey]string{
			meta.ServiceName: "orders",
		})
		ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{
			meta.ServiceName: "billing",
		})

		assert.Equal(t, "billing", meta.Find(ctx, meta.ServiceName))
	})
}

func TestExtractMetaFromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trips all predefined keys", func(t *testing.T) {
		t.Parallel()

		data := map[meta.ContextKey]string{
			meta.TraceID:          "trace-1",
			meta.ActorID:          "user-42",
			meta.ActorType:        "employee",
			meta.ActorRole:        "admin",
			meta.IPAddress:        "10.0.0.1",
			meta.UserAgent:        "curl/8.0",
			meta.AcceptLanguage:   "en",
			meta.ServiceName:      "orders",
			meta.ServiceVersion:   "1.2.3",
			meta.ClientAppName:    "mobile",
			meta.ClientAppVersion: "4.5.6",
			meta.TzOffset:         "+05:00",
		}

		ctx := meta.InjectMetaToContext(context.Background(), data)
		assert.Equal(t, data, meta.ExtractMetaFromContext(ctx))
	})

	t.Run("ignores non-string values", func(t *testing.T) {
		t.Parallel()

		ctx := context.WithValue(context.Background(), meta.TraceID, 123)
		assert.Empty(t, meta.ExtractMetaFromContext(ctx))
	})

	t.Run("empty context yields empty map", func(t *testing.T) {
		t.Parallel()

		got := meta.ExtractMetaFromContext(context.Background())
		assert.Empty(t, got)
	})
}

func TestFind(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), meta.ActorRole, "admin")
	ctx = context.WithValue(ctx, meta.TzOffset, 300)

	assert.Equal(t, "admin", meta.Find(ctx, meta.ActorRole))
	assert.Empty(t, meta.Find(ctx, meta.TraceID))
	assert.Empty(t, meta.Find(ctx, meta.TzOffset))
}

func TestShouldGetMeta(t *testing.T) {
	t.Parallel()

	t.Run("returns stored value", func(t *testing.T) {
		t.Parallel()

		ctx := context.WithValue(context.Background(), meta.ActorID, "user-42")

		got, err := meta.ShouldGetMeta(ctx, meta.ActorID)
		require.NoError(t, err)
		assert.Equal(t, "user-42", got)
	})

	t.Run("empty string is a valid value", func(t *testing.T) {
		t.Parallel()

		ctx := context.WithValue(context.Background(), meta.ActorID, "")

		got, err := meta.ShouldGetMeta(ctx, meta.ActorID)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("missing key fails", func(t *testing.T) {
		t.Parallel()

		_, err := meta.ShouldGetMeta(context.Background(), meta.TraceID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "key not found in context metadata")
	})

	t.Run("non-string value fails", func(t *testing.T) {
		t.Parallel()

		for name, value := range map[string]any{
			"int":    42,
			"struct": struct{ Name string }{Name: "x"},
			"slice":  []string{"a"},
		} {
			ctx := context.WithValue(context.Background(), meta.UserAgent, value)

			_, err := meta.ShouldGetMeta(ctx, meta.UserAgent)
			require.Error(t, err, name)
			assert.Contains(t, err.Error(), "type mismatch in context metadata")
		}
	})
}
