package command

import (
	"context"

	"github.com/crudkit-go/crudkit/msgcat"
	"github.com/crudkit-go/crudkit/repogen"
	"github.com/crudkit-go/crudkit/response"
	"github.com/crudkit-go/crudkit/status"
)

// CreateBulkHandler persists a large set of entities through the chunked bulk
// engine, reporting partial failures row by row in the response envelope.
//
// Like CreateRangeHandler, mapping runs before the duplicate check.
type CreateBulkHandler[E any, F any, C any, R any, K comparable] struct {
	Repo repogen.Repo[E, F]
	Bulk repogen.BulkRepo[E, K]

	// MapToEntities converts the command into the entities to persist.
	MapToEntities func(cmd *C) []E
	// ExistenceFilter builds the duplicate-check filter. Nil skips the check.
	ExistenceFilter func(cmd *C) *F
	// Key describes entity identity for conflict resolution. Nil runs a
	// bare insert.
	Key func(cmd *C) *repogen.KeySpec[E, K]
	// Options configures the bulk run. Nil uses DefaultBulkOptions.
	Options func(cmd *C) *repogen.BulkOptions
	// Progress receives a report after every committed chunk.
	Progress repogen.ProgressFunc
	// MapToResponse shapes the bulk outcome into the response payload.
	MapToResponse func(result *repogen.BulkResult) R
	// Validate short-circuits the handler when it returns a response.
	Validate func(ctx context.Context, entities []E) *response.Response[R]
	// InitialStatus overrides the Unverified default.
	InitialStatus *status.Status
}

func (h *CreateBulkHandler[E, F, C, R, K]) Execute(ctx context.Context, cmd *C) (resp response.Response[R], _ error) {
	defer recoverToSystem(&resp)

	if cmd == nil {
		return response.Fail[R](msgcat.InvalidInputData), nil
	}

	entities := h.MapToEntities(cmd)
	if len(entities) == 0 {
		return response.Fail[R](msgcat.InvalidInputData), nil
	}

	if h.ExistenceFilter != nil {
		if f := h.ExistenceFilter(cmd); f != nil {
			exists, err := h.Repo.Exists(ctx, *f)
			if err != nil {
				return response.Fail[R](msgcat.SystemError), nil
			}
			if exists {
				return response.Fail[R](msgcat.ExistOnCreate), nil
			}
		}
	}

	applyStatus(pointersOf(entities), h.InitialStatus, status.Unverified)

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

	result, err := h.Bulk.BulkInsert(ctx, entities, key, opts, h.Progress)
	if err != nil || result == nil || !result.IsSuccess() {
		return bulkFailure[R](result, msgcat.FailOnCreate), nil
	}

	return response.Ok(h.MapToResponse(result), msgcat.SuccessOnCreate), nil
}
