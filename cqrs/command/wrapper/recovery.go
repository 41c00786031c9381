package wrapper

import (
	"context"
	"fmt"
	"runtime"

	"github.com/code19m/errx"

	"github.com/crudkit-go/crudkit/cqrs/command"
	"github.com/crudkit-go/crudkit/logger"
)

// RecoveryCommandWrapper converts panics in the wrapped command into errors
// and logs them with the captured stack.
type RecoveryCommandWrapper[I command.Input, R command.Result] struct {
	logger  logger.Logger
	next    command.Command[I, R]
	cmdName string
}

func NewRecoveryCommandWrapper[I command.Input, R command.Result](
	logger logger.Logger,
	cmdName string,
) command.WrapFunc[I, R] {
	return func(next command.Command[I, R]) command.Command[I, R] {
		return &RecoveryCommandWrapper[I, R]{
			logger:  logger.Named("cqrs.command.recovery").With("command_name", cmdName),
			next:    next,
			cmdName: cmdName,
		}
	}
}

func (cmd *RecoveryCommandWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	var result R
	var err error

	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			stack = stack[:runtime.Stack(stack, false)]

			cmd.logger.
				WithContext(ctx).
				With("stack_trace", string(stack)).
				With("panic_values", fmt.Sprintf("%v", r)).
				Error("panic recovered in recovery wrapper")

			err = errx.New("panic recovered in recovery wrapper", errx.WithDetails(errx.D{
				"stack_trace":  string(stack),
				"panic_values": fmt.Sprintf("%v", r),
			}))
		}
	}()

	result, err = cmd.next.Execute(ctx, input)
	return result, err
}
