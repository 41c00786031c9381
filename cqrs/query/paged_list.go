package query

import (
	"context"

	"github.com/samber/lo"

	"github.com/crudkit-go/crudkit/msgcat"
	"github.com/crudkit-go/crudkit/pagination"
	"github.com/crudkit-go/crudkit/repogen"
	"github.com/crudkit-go/crudkit/response"
	"github.com/crudkit-go/crudkit/sorter"
)

// PagedListHandler loads one page of matching entities plus the total count
// of the filtered, unpaged set. The query type must expose its page request
// through the Pager interface.
type PagedListHandler[E any, F any, Q Pager, V any] struct {
	Repo repogen.ReadOnlyRepo[E, F]

	// Filter narrows the set. Nil lists everything.
	Filter func(q *Q) *F
	// Sort orders the set before paging.
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
	ValidateQuery func(ctx context.Context, q *Q) *response.Response[pagination.PagedResult[V]]
}

func (h *PagedListHandler[E, F, Q, V]) Execute(
	ctx context.Context,
	q *Q,
) (resp response.Response[pagination.PagedResult[V]], _ error) {
	defer recoverToSystem(&resp)

	if q == nil {
		return response.Fail[pagination.PagedResult[V]](msgcat.InvalidInputData), nil
	}

	if h.ValidateQuery != nil {
		if r := h.ValidateQuery(ctx, q); r != nil {
			return *r, nil
		}
	}

	page := (*q).Pagination()
	page.Normalize()

	var filters F
	if h.Filter != nil {
		if f := h.Filter(q); f != nil {
			filters = *f
		}
	}

	if h.Selector != nil {
		return h.executeProjection(ctx, q, filters, page)
	}

	var opts []repogen.Opt
	if h.Sort != nil {
		opts = append(opts, repogen.WithSort(h.Sort(q)))
	}
	if len(h.Relations) > 0 {
		opts = append(opts, repogen.WithRelations(h.Relations...))
	}

	paged, err := h.Repo.ListPaged(ctx, filters, page, opts...)
	if err != nil {
		return response.Fail[pagination.PagedResult[V]](msgcat.FailOnGet), nil
	}

	views := lo.Map(paged.Data, func(e E, _ int) V { return h.MapToView(&e) })
	return response.Ok(pagination.NewPagedResult(views, paged.TotalCount, page), msgcat.SuccessOnGet), nil
}

// executeProjection counts the filtered, unpaged set first, then loads one
// ordered page pruned to the selector's columns.
func (h *PagedListHandler[E, F, Q, V]) executeProjection(
	ctx context.Context,
	q *Q,
	filters F,
	page pagination.Request,
) (response.Response[pagination.PagedResult[V]], error) {
	count, err := h.Repo.Count(ctx, filters)
	if err != nil {
		return response.Fail[pagination.PagedResult[V]](msgcat.FailOnGet), nil
	}

	opts := []repogen.Opt{repogen.WithColumns(h.SelectColumns...)}
	if h.Sort != nil {
		opts = append(opts, repogen.WithSort(h.Sort(q)))
	}
	if page.Paginated() {
		opts = append(opts, repogen.WithPage(page.PageSize, page.PageNumber))
	}

	entities, err := h.Repo.List(ctx, filters, opts...)
	if err != nil {
		return response.Fail[pagination.PagedResult[V]](msgcat.FailOnGet), nil
	}

	views := lo.Map(entities, func(e E, _ int) V { return h.Selector(&e) })
	return response.Ok(pagination.NewPagedResult(views, count, page), msgcat.SuccessOnGet), nil
}
