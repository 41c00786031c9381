package command

import (
	"context"

	"github.com/crudkit-go/crudkit/msgcat"
	"github.com/crudkit-go/crudkit/repogen"
	"github.com/crudkit-go/crudkit/response"
	"github.com/crudkit-go/crudkit/status"
)

// UpdateRangeHandler merges a command into every matching entity and persists
// the whole set in batches.
type UpdateRangeHandler[E any, F any, C any, R any] struct {
	Repo repogen.Repo[E, F]

	// FindFilter locates the entities to update.
	FindFilter func(cmd *C) *F
	// MapToEntities merges the command into the loaded entities.
	MapToEntities func(cmd *C, existing []E) []E
	// MapToResponse shapes the persisted entities into the response payload.
	MapToResponse func(entities []E) R
	// Validate short-circuits the handler when it returns a response.
	Validate func(ctx context.Context, entities []E) *response.Response[R]
	// NextStatus overrides the Verified default.
	NextStatus *status.Status
	// BatchSize overrides the default per-batch row count.
	BatchSize int
}

func (h *UpdateRangeHandler[E, F, C, R]) Execute(ctx context.Context, cmd *C) (resp response.Response[R], _ error) {
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

	err = h.Repo.UpdateRange(ctx, entities, rangeBatchSize(h.BatchSize))
	if err != nil {
		return response.Fail[R](msgcat.FailOnUpdate), nil
	}

	return response.Ok(h.MapToResponse(entities), msgcat.SuccessOnUpdate), nil
}
