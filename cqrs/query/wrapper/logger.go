package wrapper

import (
	"context"
	"time"

	"github.com/code19m/errx"
	"github.com/crudkit-go/crudkit/cqrs/query"
	"github.com/crudkit-go/crudkit/logger"
	"github.com/crudkit-go/crudkit/mask"
)

// LoggerQueryWrapper logs every execution with its masked input, duration
// and outcome.
type LoggerQueryWrapper[I query.Input, R query.Result] struct {
	log       logger.Logger
	next      query.Query[I, R]
	queryName string
}

func NewLoggerQueryWrapper[I query.Input, R query.Result](
	log logger.Logger,
	queryName string,
) query.WrapFunc[I, R] {
	return func(next query.Query[I, R]) query.Query[I, R] {
		return &LoggerQueryWrapper[I, R]{
			log:       log.Named("cqrs.query.logger").With("query_name", queryName),
			next:      next,
			queryName: queryName,
		}
	}
}

func (w *LoggerQueryWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	start := time.Now()
	result, err := w.next.Execute(ctx, input)

	log := w.log.
		WithContext(ctx).
		With("execution_time", time.Since(start).String()).
		With("input", mask.StructToOrdMap(input))

	if err != nil {
		log.With("error", errorRecord(err)).Error()
		return result, err
	}

	log.Info()
	return result, nil
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
