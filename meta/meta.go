// Package meta carries request metadata through the context: trace
// identity, the acting user, client details and the serving service.
package meta

import (
	"context"

	"github.com/code19m/errx"
)

// ContextKey is the type of metadata keys stored in the context.
type ContextKey string

const (
	// TraceID is the request correlation identifier.
	TraceID ContextKey = "trace_id"

	// ActorID identifies the user or system performing the request.
	ActorID ContextKey = "actor_id"

	// ActorType classifies the actor, e.g. "customer" or "employee".
	ActorType ContextKey = "actor_type"

	// ActorRole is the actor's current role.
	ActorRole ContextKey = "actor_role"

	// IPAddress is the client's IP address.
	IPAddress ContextKey = "ip_address"

	// UserAgent is the client's user agent string.
	UserAgent ContextKey = "user_agent"

	// AcceptLanguage is the locale preferred by the client.
	AcceptLanguage ContextKey = "accept-language"

	// ServiceName names the service handling the request.
	ServiceName ContextKey = "service_name"

	// ServiceVersion is the version of that service.
	ServiceVersion ContextKey = "service_version"

	// ClientAppName identifies the calling client application.
	ClientAppName ContextKey = "x-client-app-name"

	// ClientAppVersion is the calling client application's version.
	ClientAppVersion ContextKey = "x-client-app-version"

	// TzOffset is the client's timezone offset.
	TzOffset ContextKey = "x-tz-offset"
)

// allKeys lists every predefined key, in extraction order.
var allKeys = []ContextKey{ //nolint:gochecknoglobals // static lookup
	TraceID,
	ActorID,
	ActorType,
	ActorRole,
	IPAddress,
	UserAgent,
	AcceptLanguage,
	ServiceName,
	ServiceVersion,
	ClientAppName,
	ClientAppVersion,
	TzOffset,
}

// InjectMetaToContext stores every non-empty value of data in the context.
func InjectMetaToContext(ctx context.Context, data map[ContextKey]string) context.Context {
	for k, v := range data {
		if v != "" {
			ctx = context.WithValue(ctx, k, v) //nolint:fatcontext // finite number of keys
		}
	}
	return ctx
}

// ExtractMetaFromContext collects every predefined key present in the
// context with a non-empty string value.
func ExtractMetaFromContext(ctx context.Context) map[ContextKey]string {
	data := make(map[ContextKey]string)
	for _, k := range allKeys {
		if v, ok := ctx.Value(k).(string); ok && v != "" {
			data[k] = v
		}
	}
	return data
}

// Find returns the string value stored under key, or "" when the key is
// absent or holds a non-string value.
func Find(ctx context.Context, key ContextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

// ShouldGetMeta returns the string value stored under key, failing when the
// key is absent or holds a value of another type.
func ShouldGetMeta(ctx context.Context, key ContextKey) (string, error) {
	raw := ctx.Value(key)
	if raw == nil {
		return "", errx.New(
			"key not found in context metadata",
			errx.WithFields(errx.M{"key": string(key)}),
		)
	}

	v, ok := raw.(string)
	if !ok {
		return "", errx.New(
			"type mismatch in context metadata, expected string",
			errx.WithFields(errx.M{"key": string(key)}),
		)
	}
	return v, nil
}
