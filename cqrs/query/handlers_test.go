package query_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crudkit-go/crudkit/cqrs/query"
	"github.com/crudkit-go/crudkit/msgcat"
	"github.com/crudkit-go/crudkit/pagination"
	"github.com/crudkit-go/crudkit/repogen/repotest"
	"github.com/crudkit-go/crudkit/response"
)

type account struct {
	ID    int
	Login string
	Email string
}

type accountFilter struct {
	Login string
	All   bool
}

func matchAccount(a account, f accountFilter) bool {
	if f.All {
		return true
	}
	return f.Login != "" && a.Login == f.Login
}

func accountID(a account) any { return a.ID }

type accountView struct {
	ID    int
	Login string
}

func toAccountView(a *account) accountView {
	return accountView{ID: a.ID, Login: a.Login}
}

func newAccountRepo(n int) *repotest.MemRepo[account, accountFilter] {
	repo := repotest.NewMemRepo[account](accountID, matchAccount)
	rows := make([]account, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, account{
			ID:    i,
			Login: "user-" + strconv.Itoa(i),
			Email: "user-" + strconv.Itoa(i) + "@example.com",
		})
	}
	repo.Seed(rows...)
	return repo
}

type getAccountQuery struct {
	Login string
}

func TestGetByIDHandler(t *testing.T) {
	ctx := context.Background()

	newHandler := func(repo *repotest.MemRepo[account, accountFilter]) *query.GetByIDHandler[account, accountFilter, getAccountQuery, accountView] {
		return &query.GetByIDHandler[account, accountFilter, getAccountQuery, accountView]{
			Repo: repo,
			FindFilter: func(q *getAccountQuery) *accountFilter {
				return &accountFilter{Login: q.Login}
			},
			MapToView: toAccountView,
		}
	}

	t.Run("found", func(t *testing.T) {
		h := newHandler(newAccountRepo(3))

		resp, err := h.Execute(ctx, &getAccountQuery{Login: "user-2"})
		require.NoError(t, err)

		assert.True(t, resp.Succeeded)
		assert.Equal(t, "20001", resp.Code)
		assert.Equal(t, accountView{ID: 2, Login: "user-2"}, resp.Data)
	})

	t.Run("missing", func(t *testing.T) {
		h := newHandler(newAccountRepo(3))

		resp, err := h.Execute(ctx, &getAccountQuery{Login: "nobody"})
		require.NoError(t, err)

		assert.False(t, resp.Succeeded)
		assert.Equal(t, "10001", resp.Code)
		assert.Zero(t, resp.Data)
	})

	t.Run("nil query", func(t *testing.T) {
		h := newHandler(newAccountRepo(1))

		resp, err := h.Execute(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, msgcat.InvalidInputData.CodeString(), resp.Code)
	})

	t.Run("validate short-circuits", func(t *testing.T) {
		h := newHandler(newAccountRepo(1))
		denied := response.Fail[accountView](msgcat.AccessDenied)
		h.ValidateQuery = func(context.Context, *getAccountQuery) *response.Response[accountView] {
			return &denied
		}

		resp, err := h.Execute(ctx, &getAccountQuery{Login: "user-1"})
		require.NoError(t, err)
		assert.Equal(t, "10303", resp.Code)
	})

	t.Run("selector path shapes the view", func(t *testing.T) {
		h := newHandler(newAccountRepo(3))
		h.Selector = func(a *account) accountView { return accountView{ID: a.ID, Login: a.Login} }
		h.SelectColumns = []string{"id", "login"}

		resp, err := h.Execute(ctx, &getAccountQuery{Login: "user-1"})
		require.NoError(t, err)
		assert.True(t, resp.Succeeded)
		assert.Equal(t, 1, resp.Data.ID)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := newAccountRepo(1)
		repo.FailNext(errors.New("timeout"))
		h := newHandler(repo)

		resp, err := h.Execute(ctx, &getAccountQuery{Login: "user-1"})
		require.NoError(t, err)
		assert.Equal(t, "10001", resp.Code)
	})

	t.Run("panic maps to system error", func(t *testing.T) {
		h := newHandler(newAccountRepo(1))
		h.FindFilter = func(*getAccountQuery) *accountFilter { panic("boom") }

		resp, err := h.Execute(ctx, &getAccountQuery{Login: "user-1"})
		require.NoError(t, err)
		assert.Equal(t, "10601", resp.Code)
	})
}

type listAccountsQuery struct{}

func TestListHandler(t *testing.T) {
	ctx := context.Background()

	h := &query.ListHandler[account, accountFilter, listAccountsQuery, accountView]{
		Repo:      newAccountRepo(4),
		Filter:    func(*listAccountsQuery) *accountFilter { return &accountFilter{All: true} },
		MapToView: toAccountView,
	}

	resp, err := h.Execute(ctx, &listAccountsQuery{})
	require.NoError(t, err)

	assert.True(t, resp.Succeeded)
	assert.Equal(t, "20001", resp.Code)
	require.Len(t, resp.Data, 4)
	assert.Equal(t, "user-1", resp.Data[0].Login)
}

type pagedAccountsQuery struct {
	Page pagination.Request
}

func (q pagedAccountsQuery) Pagination() pagination.Request { return q.Page }

func TestPagedListHandler(t *testing.T) {
	ctx := context.Background()

	newHandler := func(repo *repotest.MemRepo[account, accountFilter]) *query.PagedListHandler[account, accountFilter, pagedAccountsQuery, accountView] {
		return &query.PagedListHandler[account, accountFilter, pagedAccountsQuery, accountView]{
			Repo:      repo,
			Filter:    func(*pagedAccountsQuery) *accountFilter { return &accountFilter{All: true} },
			MapToView: toAccountView,
		}
	}

	t.Run("fifteen rows at page size ten", func(t *testing.T) {
		h := newHandler(newAccountRepo(15))

		first, err := h.Execute(ctx, &pagedAccountsQuery{
			Page: pagination.Request{PageNumber: 1, PageSize: 10},
		})
		require.NoError(t, err)
		require.True(t, first.Succeeded)
		assert.Len(t, first.Data.Data, 10)
		assert.Equal(t, 15, first.Data.TotalCount)
		assert.Equal(t, 2, first.Data.TotalPages())
		assert.True(t, first.Data.HasNextPage())
		assert.False(t, first.Data.HasPreviousPage())

		second, err := h.Execute(ctx, &pagedAccountsQuery{
			Page: pagination.Request{PageNumber: 2, PageSize: 10},
		})
		require.NoError(t, err)
		assert.Len(t, second.Data.Data, 5)
		assert.False(t, second.Data.HasNextPage())
		assert.True(t, second.Data.HasPreviousPage())
	})

	t.Run("projection path counts the unpaged set", func(t *testing.T) {
		h := newHandler(newAccountRepo(15))
		h.Selector = func(a *account) accountView { return accountView{ID: a.ID, Login: a.Login} }
		h.SelectColumns = []string{"id", "login"}

		resp, err := h.Execute(ctx, &pagedAccountsQuery{
			Page: pagination.Request{PageNumber: 2, PageSize: 10},
		})
		require.NoError(t, err)
		assert.Len(t, resp.Data.Data, 5)
		assert.Equal(t, 15, resp.Data.TotalCount)
	})

	t.Run("unpaginated request returns everything", func(t *testing.T) {
		h := newHandler(newAccountRepo(7))

		resp, err := h.Execute(ctx, &pagedAccountsQuery{})
		require.NoError(t, err)
		assert.Len(t, resp.Data.Data, 7)
		assert.Equal(t, 7, resp.Data.TotalCount)
	})
}
