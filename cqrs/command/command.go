// Package command defines the write-side handler contract: a Command takes
// a typed input, may change state, and returns a typed result. WrapFunc
// middleware composes around handlers without touching business logic.
package command

import "context"

// EmptyResult is the result type of commands that return nothing.
type EmptyResult = struct{}

type (
	// Input is the input type of a command.
	Input any

	// Result is the result type of a command.
	Result any
)

// Command executes one state-changing operation.
type Command[I Input, R Result] interface {
	Execute(context.Context, I) (R, error)
}

// WrapFunc composes middleware around a command handler.
type WrapFunc[I Input, R Result] func(Command[I, R]) Command[I, R]
