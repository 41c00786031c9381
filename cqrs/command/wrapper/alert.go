package wrapper

import (
	"context"
	"fmt"
	"time"

	"github.com/code19m/errx"
	"github.com/crudkit-go/crudkit/alert"
	"github.com/crudkit-go/crudkit/cqrs/command"
	"github.com/crudkit-go/crudkit/logger"
	"github.com/crudkit-go/crudkit/meta"
)

const alertSendTimeout = 3 * time.Second

// AlertCommandWrapper reports every failed execution to the alert provider.
// Delivery happens in the background and never delays or alters the result.
type AlertCommandWrapper[I command.Input, R command.Result] struct {
	log      logger.Logger
	provider alert.Provider
	next     command.Command[I, R]
	cmdName  string
}

func NewAlertCommandWrapper[I command.Input, R command.Result](
	log logger.Logger,
	provider alert.Provider,
	cmdName string,
) command.WrapFunc[I, R] {
	return func(next command.Command[I, R]) command.Command[I, R] {
		return &AlertCommandWrapper[I, R]{
			log:      log.Named("cqrs.command.alerting"),
			provider: provider,
			next:     next,
			cmdName:  cmdName,
		}
	}
}

func (w *AlertCommandWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	result, err := w.next.Execute(ctx, input)
	if err == nil {
		return result, nil
	}

	details := make(map[string]string)
	for k, v := range meta.ExtractMetaFromContext(ctx) {
		details[string(k)] = v
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertSendTimeout)
	go func() {
		defer cancel()

		e := errx.AsErrorX(err)
		operation := fmt.Sprintf("command: %s", w.cmdName)
		if sendErr := w.provider.SendError(sendCtx, e.Code(), err.Error(), operation, details); sendErr != nil {
			w.log.With("alert_send_error", sendErr).Warn("failed to send error alert")
		}
	}()

	return result, err
}
