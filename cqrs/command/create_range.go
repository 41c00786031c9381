package command

import (
	"context"

	"github.com/crudkit-go/crudkit/msgcat"
	"github.com/crudkit-go/crudkit/repogen"
	"github.com/crudkit-go/crudkit/response"
	"github.com/crudkit-go/crudkit/status"
)

// CreateRangeHandler persists a set of entities built from one command.
//
// Unlike CreateHandler, mapping runs FIRST and the duplicate check second,
// so the existence filter can be derived from the mapped set.
type CreateRangeHandler[E any, F any, C any, R any] struct {
	Repo repogen.Repo[E, F]

	// MapToEntities converts the command into the entities to persist.
	MapToEntities func(cmd *C) []E
	// ExistenceFilter builds the duplicate-check filter. Nil skips the check.
	ExistenceFilter func(cmd *C) *F
	// MapToResponse shapes the persisted entities into the response payload.
	MapToResponse func(entities []E) R
	// Validate short-circuits the handler when it returns a response.
	Validate func(ctx context.Context, entities []E) *response.Response[R]
	// InitialStatus overrides the Unverified default.
	InitialStatus *status.Status
	// BatchSize overrides the default per-batch row count.
	BatchSize int
}

func (h *CreateRangeHandler[E, F, C, R]) Execute(ctx context.Context, cmd *C) (resp response.Response[R], _ error) {
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

	err := h.Repo.CreateRange(ctx, entities, rangeBatchSize(h.BatchSize))
	if err != nil {
		return response.Fail[R](msgcat.FailOnCreate), nil
	}

	return response.Ok(h.MapToResponse(entities), msgcat.SuccessOnCreate), nil
}
