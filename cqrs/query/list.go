package query

import (
	"context"

	"github.com/samber/lo"

	"github.com/crudkit-go/crudkit/msgcat"
	"github.com/crudkit-go/crudkit/repogen"
	"github.com/crudkit-go/crudkit/response"
	"github.com/crudkit-go/crudkit/sorter"
)

// ListHandler loads every entity matching the query and shapes the set into
// views. The projection-or-map duality follows GetByIDHandler.
type ListHandler[E any, F any, Q any, V any] struct {
	Repo repogen.ReadOnlyRepo[E, F]

	// Filter narrows the set. Nil lists everything.
	Filter func(q *Q) *F
	// Sort orders the set.
	Sort func(q *Q) sorter.SortOpts
	// Relations are loaded alongside each entity on the map path.
	Relations []string
	// Selector shapes a column-pruned entity into the view.
	Selector func(entity *E) V
	// SelectColumns lists the columns the selector needs.
	SelectColumns []string
	// MapToView shapes a fully loaded entity into the view. Used when
	// Selector is nil.
	MapToView func(entity *E) V
	// ValidateQuery short-circuits the handler when it returns a response.
	ValidateQuery func(ctx context.Context, q *Q) *response.Response[[]V]
}

func (h *ListHandler[E, F, Q, V]) Execute(ctx context.Context, q *Q) (resp response.Response[[]V], _ error) {
	defer recoverToSystem(&resp)

	if q == nil {
		return response.Fail[[]V](msgcat.InvalidInputData), nil
	}

	if h.ValidateQuery != nil {
		if r := h.ValidateQuery(ctx, q); r != nil {
			return *r, nil
		}
	}

	var filters F
	if h.Filter != nil {
		if f := h.Filter(q); f != nil {
			filters = *f
		}
	}

	opts := h.buildOpts(q)
	entities, err := h.Repo.List(ctx, filters, opts...)
	if err != nil {
		return response.Fail[[]V](msgcat.FailOnGet), nil
	}

	views := lo.Map(entities, func(e E, _ int) V { return h.shape(&e) })
	return response.Ok(views, msgcat.SuccessOnGet), nil
}

func (h *ListHandler[E, F, Q, V]) buildOpts(q *Q) []repogen.Opt {
	var opts []repogen.Opt
	if h.Sort != nil {
		opts = append(opts, repogen.WithSort(h.Sort(q)))
	}
	if h.Selector != nil && len(h.SelectColumns) > 0 {
		opts = append(opts, repogen.WithColumns(h.SelectColumns...))
	} else if len(h.Relations) > 0 {
		opts = append(opts, repogen.WithRelations(h.Relations...))
	}
	return opts
}

func (h *ListHandler[E, F, Q, V]) shape(entity *E) V {
	if h.Selector != nil {
		return h.Selector(entity)
	}
	return h.MapToView(entity)
}
