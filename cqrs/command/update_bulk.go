package command

import (
	"context"

	"github.com/crudkit-go/crudkit/msgcat"
	"github.com/crudkit-go/crudkit/repogen"
	"github.com/crudkit-go/crudkit/response"
	"github.com/crudkit-go/crudkit/status"
)

// UpdateBulkHandler merges a command into a large entity set through the
// chunked upsert engine. Rows without a stored counterpart are inserted; rows
// with one are merged through the Merge hook.
type UpdateBulkHandler[E any, F any, C any, R any, K comparable] struct {
	Repo repogen.Repo[E, F]
	Bulk repogen.BulkRepo[E, K]

	// FindFilter gates the update: without at least one match the command
	// fails with NotExistOnUpdate.
	FindFilter func(cmd *C) *F
	// MapToEntities builds the target state from the command and the
	// currently stored matches.
	MapToEntities func(cmd *C, existing []E) []E
	// Key describes entity identity for upsert matching.
	Key func(cmd *C) *repogen.KeySpec[E, K]
	// Merge combines a stored row with an incoming one. Nil leaves stored
	// rows untouched.
	Merge repogen.MergeFunc[E]
	// Options configures the bulk run. Nil uses DefaultBulkOptions.
	Options func(cmd *C) *repogen.BulkOptions
	// Progress receives a report after every committed chunk.
	Progress repogen.ProgressFunc
	// MapToResponse shapes the bulk outcome into the response payload.
	MapToResponse func(result *repogen.BulkResult) R
	// Validate short-circuits the handler when it returns a response.
	Validate func(ctx context.Context, entities []E) *response.Response[R]
	// NextStatus overrides the Verified default.
	NextStatus *status.Status
}

func (h *UpdateBulkHandler[E, F, C, R, K]) Execute(ctx context.Context, cmd *C) (resp response.Response[R], _ error) {
	defer recoverToSystem(&resp)

	if cmd == nil {
		return response.Fail[R](msgcat.InvalidInputData), nil
	}

	f := h.FindFilter(cmd)
	if f == nil {
		return response.Fail[R](msgcat.InvalidInputData), nil
	}

	existing, err := h.Repo.List(ctx, *f)
	if err != nil {
		return response.Fail[R](msgcat.SystemError), nil
	}
	if len(existing) == 0 {
		return response.Fail[R](msgcat.NotExistOnUpdate), nil
	}

	entities := h.MapToEntities(cmd, existing)
	if len(entities) == 0 {
		return response.Fail[R](msgcat.InvalidInputData), nil
	}

	applyStatus(pointersOf(entities), h.NextStatus, status.Verified)

	if h.Validate != nil {
		if r := h.Validate(ctx, entities); r != nil {
			return *r, nil
		}
	}

	var key *repogen.KeySpec[E, K]
	if h.Key != nil {
		key = h.Key(cmd)
	}
	var opts *repogen.BulkOptions
	if h.Options != nil {
		opts = h.Options(cmd)
	}

	result, err := h.Bulk.BulkUpsert(ctx, entities, key, h.Merge, opts, h.Progress)
	if err != nil || result == nil || !result.IsSuccess() {
		return bulkFailure[R](result, msgcat.FailOnUpdate), nil
	}

	return response.Ok(h.MapToResponse(result), msgcat.SuccessOnUpdate), nil
}
