package query

import (
	"context"

	"github.com/crudkit-go/crudkit/msgcat"
	"github.com/crudkit-go/crudkit/repogen"
	"github.com/crudkit-go/crudkit/response"
)

// GetByIDHandler loads one entity and shapes it into a view.
//
// Two read paths exist: when Selector is set the store query is pruned to
// SelectColumns and the selector shapes the view; otherwise the full entity
// is loaded and MapToView shapes it. Like every crudkit handler it is a
// total function: failures only ever surface through the response envelope.
type GetByIDHandler[E any, F any, Q any, V any] struct {
	Repo repogen.ReadOnlyRepo[E, F]

	// FindFilter locates the entity.
	FindFilter func(q *Q) *F
	// Selector shapes a column-pruned entity into the view.
	Selector func(entity *E) V
	// SelectColumns lists the columns the selector needs.
	SelectColumns []string
	// MapToView shapes a fully loaded entity into the view. Used when
	// Selector is nil.
	MapToView func(entity *E) V
	// ValidateQuery short-circuits the handler when it returns a response.
	ValidateQuery func(ctx context.Context, q *Q) *response.Response[V]
}

func (h *GetByIDHandler[E, F, Q, V]) Execute(ctx context.Context, q *Q) (resp response.Response[V], _ error) {
	defer recoverToSystem(&resp)

	if q == nil {
		return response.Fail[V](msgcat.InvalidInputData), nil
	}

	if h.ValidateQuery != nil {
		if r := h.ValidateQuery(ctx, q); r != nil {
			return *r, nil
		}
	}

	f := h.FindFilter(q)
	if f == nil {
		return response.Fail[V](msgcat.InvalidInputData), nil
	}

	var opts []repogen.Opt
	if h.Selector != nil && len(h.SelectColumns) > 0 {
		opts = append(opts, repogen.WithColumns(h.SelectColumns...))
	}

	entity, err := h.Repo.FirstOrNil(ctx, *f, opts...)
	if err != nil || entity == nil {
		return response.Fail[V](msgcat.FailOnGet), nil
	}

	view := h.shape(entity)
	return response.Ok(view, msgcat.SuccessOnGet), nil
}

func (h *GetByIDHandler[E, F, Q, V]) shape(entity *E) V {
	if h.Selector != nil {
		return h.Selector(entity)
	}
	return h.MapToView(entity)
}
