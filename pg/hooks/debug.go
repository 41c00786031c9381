// Package hooks contains bun query hooks used by the pg package.
package hooks

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/crudkit-go/crudkit/logger"
	"github.com/uptrace/bun"
)

var _ bun.QueryHook = (*DebugHook)(nil)

// DebugHook logs executed queries through the application logger, with slow
// query detection.
type DebugHook struct {
	log           logger.Logger
	enabled       bool
	verbose       bool
	slowThreshold time.Duration
}

// DebugHookOption configures a DebugHook.
type DebugHookOption func(*DebugHook)

// NewDebugHook creates a query hook writing to log. By default the hook is
// enabled, verbose, and flags queries slower than 100ms.
func NewDebugHook(log logger.Logger, opts ...DebugHookOption) *DebugHook {
	h := &DebugHook{
		log:           log.Named("bun_debug_hook"),
		enabled:       true,
		verbose:       true,
		slowThreshold: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// WithEnabled turns query logging on or off entirely.
func WithEnabled(enabled bool) DebugHookOption {
	return func(h *DebugHook) { h.enabled = enabled }
}

// WithVerbose controls whether successful queries are logged too. When false,
// only failures, empty results and slow queries are reported.
func WithVerbose(verbose bool) DebugHookOption {
	return func(h *DebugHook) { h.verbose = verbose }
}

// WithSlowQueryThreshold sets the duration after which a query is logged at
// warn level. Zero disables slow query detection.
func WithSlowQueryThreshold(threshold time.Duration) DebugHookOption {
	return func(h *DebugHook) { h.slowThreshold = threshold }
}

func (h *DebugHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

// queryOutcome classifies a finished query for log level selection.
type queryOutcome int

const (
	outcomeOK queryOutcome = iota
	outcomeSlow
	outcomeNoRows
	outcomeError
)

func (h *DebugHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if !h.enabled {
		return
	}

	duration := time.Since(event.StartTime)
	outcome := h.classify(event.Err, duration)

	if outcome == outcomeOK && !h.verbose {
		return
	}

	entry := h.log.
		WithContext(ctx).
		With("query", stripQuotes(event.Query)).
		With("duration", duration.Round(time.Microsecond))
	if len(event.QueryArgs) > 0 {
		entry = entry.With("args", event.QueryArgs)
	}

	msg := "[bun-debug] - " + event.Operation()
	switch outcome {
	case outcomeError:
		entry.With("error", event.Err).Error(msg)
	case outcomeNoRows:
		entry.With("error", event.Err).Warn(msg)
	case outcomeSlow:
		entry.Warn(msg)
	case outcomeOK:
		entry.Debug(msg)
	}
}

func (h *DebugHook) classify(err error, duration time.Duration) queryOutcome {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return outcomeNoRows
	case err != nil && !errors.Is(err, sql.ErrTxDone):
		return outcomeError
	case h.slowThreshold > 0 && duration >= h.slowThreshold:
		return outcomeSlow
	default:
		return outcomeOK
	}
}

// stripQuotes removes escaped quotes so queries stay readable in one log line.
func stripQuotes(query string) string {
	return strings.ReplaceAll(query, "\"", "")
}
