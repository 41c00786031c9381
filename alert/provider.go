// Package alert defines the contract for pushing error alerts to an
// external monitoring system.
package alert

import "context"

// Provider sends error alerts. Implementations must be safe for concurrent
// use; a failed delivery is reported but never interrupts the caller's flow.
type Provider interface {
	// SendError reports one error occurrence. errCode identifies the
	// error class, operation names the unit of work it happened in, and
	// details carries extra context as string pairs.
	SendError(ctx context.Context, errCode, msg, operation string, details map[string]string) error
}
