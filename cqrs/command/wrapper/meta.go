package wrapper

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/crudkit-go/crudkit/cqrs/command"
	"github.com/crudkit-go/crudkit/meta"
)

// MetaInjectCommandWrapper seeds the context with the trace identifier and
// the serving service before the command runs, so downstream logging and
// alerting can pick them up.
type MetaInjectCommandWrapper[I command.Input, R command.Result] struct {
	serviceName    string
	serviceVersion string
	next           command.Command[I, R]
}

func NewMetaInjectCommandWrapper[I command.Input, R command.Result](
	serviceName, serviceVersion string,
) command.WrapFunc[I, R] {
	return func(next command.Command[I, R]) command.Command[I, R] {
		return &MetaInjectCommandWrapper[I, R]{serviceName: serviceName, serviceVersion: serviceVersion, next: next}
	}
}

func (cmd *MetaInjectCommandWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{ //nolint:exhaustive // only the keys known here
		meta.TraceID:        traceIDOf(ctx),
		meta.ServiceName:    cmd.serviceName,
		meta.ServiceVersion: cmd.serviceVersion,
	})

	return cmd.next.Execute(ctx, input)
}

// traceIDOf reads the trace ID of the active span, minting a manual one
// when no span is recording.
func traceIDOf(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID()

	if traceID.IsValid() {
		return traceID.String()
	}

	return fmt.Sprintf("man-%s", uuid.New().String())
}
