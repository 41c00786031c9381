package wrapper

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/code19m/errx"
	"github.com/crudkit-go/crudkit/cqrs/command"
	"github.com/crudkit-go/crudkit/logger"
	"github.com/crudkit-go/crudkit/mask"
)

// LoggerCommandWrapper logs every execution with its masked input, duration
// and outcome. It also converts panics of the inner command into errors so
// the log record is always written.
type LoggerCommandWrapper[I command.Input, R command.Result] struct {
	log     logger.Logger
	next    command.Command[I, R]
	cmdName string
}

func NewLoggerCommandWrapper[I command.Input, R command.Result](
	log logger.Logger,
	cmdName string,
) command.WrapFunc[I, R] {
	return func(next command.Command[I, R]) command.Command[I, R] {
		return &LoggerCommandWrapper[I, R]{
			log:     log.Named("cqrs.command.logger").With("command_name", cmdName),
			next:    next,
			cmdName: cmdName,
		}
	}
}

func (w *LoggerCommandWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	start := time.Now()
	result, err := w.runSafely(ctx, input)

	log := w.log.
		WithContext(ctx).
		With("command_name", w.cmdName).
		With("execution_time", time.Since(start).String()).
		With("input", mask.StructToOrdMap(input))

	if err != nil {
		log.With("error", errorRecord(err)).Error()
		return result, err
	}

	log.Info()
	return result, nil
}

func (w *LoggerCommandWrapper[I, R]) runSafely(ctx context.Context, input I) (_ R, err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			stack = stack[:runtime.Stack(stack, false)]
			err = errx.New("panic recovered in logger command wrapper", errx.WithDetails(errx.D{
				"stack_trace":  string(stack),
				"panic_values": fmt.Sprintf("%v", r),
			}))
		}
	}()

	return w.next.Execute(ctx, input)
}

func errorRecord(err error) map[string]any {
	e := errx.AsErrorX(err)
	return map[string]any{
		"code":    e.Code(),
		"message": e.Error(),
		"type":    e.Type().String(),
		"trace":   e.Trace(),
		"fields":  e.Fields(),
		"details": e.Details(),
	}
}
