package command

import (
	"github.com/crudkit-go/crudkit/msgcat"
	"github.com/crudkit-go/crudkit/repogen"
	"github.com/crudkit-go/crudkit/response"
	"github.com/crudkit-go/crudkit/status"
)

// DefaultRangeBatchSize is the per-batch row count used by range handlers
// when no batch size is configured.
const DefaultRangeBatchSize = 100

// recoverToSystem converts a panic inside a handler into a SystemError
// response. Handlers are total functions: no panic or error may escape, the
// envelope is the only failure channel.
func recoverToSystem[R any](resp *response.Response[R]) {
	if r := recover(); r != nil {
		*resp = response.Fail[R](msgcat.SystemError)
	}
}

// applyStatus assigns a lifecycle status to every entity carrying the status
// capability. Entities without the capability pass through untouched.
func applyStatus[E any](entities []*E, override *status.Status, fallback status.Status) {
	st := fallback
	if override != nil {
		st = *override
	}
	for _, e := range entities {
		status.Apply(e, st)
	}
}

// pointersOf converts a value slice into a pointer slice over its elements.
func pointersOf[E any](entities []E) []*E {
	ptrs := make([]*E, len(entities))
	for i := range entities {
		ptrs[i] = &entities[i]
	}
	return ptrs
}

// bulkFailure builds a failure response carrying the per-row errors of a
// partially failed bulk run.
func bulkFailure[R any](result *repogen.BulkResult, m msgcat.Message) response.Response[R] {
	if result == nil || len(result.Errors) == 0 {
		return response.Fail[R](m)
	}
	errs := make([]any, 0, len(result.Errors))
	for _, e := range result.Errors {
		errs = append(errs, e)
	}
	return response.FailErrors[R](errs, m)
}

func rangeBatchSize(configured int) int {
	if configured <= 0 {
		return DefaultRangeBatchSize
	}
	return configured
}
