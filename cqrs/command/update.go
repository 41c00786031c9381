package command

import (
	"context"

	"github.com/crudkit-go/crudkit/msgcat"
	"github.com/crudkit-go/crudkit/repogen"
	"github.com/crudkit-go/crudkit/response"
	"github.com/crudkit-go/crudkit/status"
)

// UpdateHandler merges a command into one existing entity and persists it.
//
// Updated entities move to Verified unless NextStatus overrides it.
type UpdateHandler[E any, F any, C any, R any] struct {
	Repo repogen.Repo[E, F]

	// FindFilter locates the entity to update.
	FindFilter func(cmd *C) *F
	// MapToEntity merges the command into the loaded entity.
	MapToEntity func(cmd *C, existing *E) *E
	// MapToResponse shapes the persisted entity into the response payload.
	MapToResponse func(entity *E) R
	// Validate short-circuits the handler when it returns a response.
	Validate func(ctx context.Context, entity *E) *response.Response[R]
	// NextStatus overrides the Verified default for entities carrying the
	// status capability.
	NextStatus *status.Status
}

func (h *UpdateHandler[E, F, C, R]) Execute(ctx context.Context, cmd *C) (resp response.Response[R], _ error) {
	defer recoverToSystem(&resp)

	if cmd == nil {
		return response.Fail[R](msgcat.InvalidInputData), nil
	}

	f := h.FindFilter(cmd)
	if f == nil {
		return response.Fail[R](msgcat.InvalidInputData), nil
	}

	existing, err := h.Repo.FirstOrNil(ctx, *f)
	if err != nil {
		return response.Fail[R](msgcat.SystemError), nil
	}
	if existing == nil {
		return response.Fail[R](msgcat.NotExistOnUpdate), nil
	}

	merged := h.MapToEntity(cmd, existing)
	if merged == nil {
		return response.Fail[R](msgcat.InvalidInputData), nil
	}

	applyStatus([]*E{merged}, h.NextStatus, status.Verified)

	if h.Validate != nil {
		if r := h.Validate(ctx, merged); r != nil {
			return *r, nil
		}
	}

	updated, err := h.Repo.Update(ctx, merged)
	if err != nil || updated == nil {
		return response.Fail[R](msgcat.FailOnUpdate), nil
	}

	return response.Ok(h.MapToResponse(updated), msgcat.SuccessOnUpdate), nil
}
