package command

import (
	"context"

	"github.com/crudkit-go/crudkit/msgcat"
	"github.com/crudkit-go/crudkit/repogen"
	"github.com/crudkit-go/crudkit/response"
	"github.com/crudkit-go/crudkit/status"
)

// CreateHandler persists one entity built from a command.
//
// The orchestration is fixed; callers customize it through hooks:
// duplicate check runs BEFORE mapping, new entities start Unverified unless
// InitialStatus overrides it, and every failure is reported through the
// response envelope.
type CreateHandler[E any, F any, C any, R any] struct {
	Repo repogen.Repo[E, F]

	// ExistenceFilter builds the duplicate-check filter from the command.
	// Nil skips the check.
	ExistenceFilter func(cmd *C) *F
	// MapToEntity converts the command into the entity to persist.
	MapToEntity func(cmd *C) *E
	// MapToResponse shapes the persisted entity into the response payload.
	MapToResponse func(entity *E) R
	// Validate short-circuits the handler when it returns a response.
	Validate func(ctx context.Context, entity *E) *response.Response[R]
	// InitialStatus overrides the Unverified default for entities carrying
	// the status capability.
	InitialStatus *status.Status
}

func (h *CreateHandler[E, F, C, R]) Execute(ctx context.Context, cmd *C) (resp response.Response[R], _ error) {
	defer recoverToSystem(&resp)

	if cmd == nil {
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

	entity := h.MapToEntity(cmd)
	if entity == nil {
		return response.Fail[R](msgcat.InvalidInputData), nil
	}

	applyStatus([]*E{entity}, h.InitialStatus, status.Unverified)

	if h.Validate != nil {
		if r := h.Validate(ctx, entity); r != nil {
			return *r, nil
		}
	}

	created, err := h.Repo.Create(ctx, entity)
	if err != nil || created == nil {
		return response.Fail[R](msgcat.FailOnCreate), nil
	}

	return response.Ok(h.MapToResponse(created), msgcat.SuccessOnCreate), nil
}
