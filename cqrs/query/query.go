// Package query defines the read-side handler contract: a Query takes a
// typed input, reads state without changing it, and returns a typed result.
// WrapFunc middleware composes around handlers the same way as on the
// command side.
package query

import "context"

type (
	// Input is the input type of a query.
	Input any

	// Result is the result type of a query.
	Result any
)

// Query executes one read-only operation.
type Query[I Input, R Result] interface {
	Execute(context.Context, I) (R, error)
}

// WrapFunc composes middleware around a query handler.
type WrapFunc[I Input, R Result] func(Query[I, R]) Query[I, R]
