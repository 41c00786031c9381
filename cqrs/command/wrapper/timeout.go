package wrapper

import (
	"context"
	"time"

	"github.com/crudkit-go/crudkit/cqrs/command"
)

// TimeoutCommandWrapper bounds the execution time of the wrapped command.
type TimeoutCommandWrapper[I command.Input, R command.Result] struct {
	next    command.Command[I, R]
	timeout time.Duration
}

func NewTimeoutCommandWrapper[I command.Input, R command.Result](timeout time.Duration) command.WrapFunc[I, R] {
	return func(next command.Command[I, R]) command.Command[I, R] {
		return &TimeoutCommandWrapper[I, R]{next: next, timeout: timeout}
	}
}

func (w *TimeoutCommandWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	return w.next.Execute(ctx, input)
}
