package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crudkit-go/crudkit/pagination"
)

func TestRequest_Normalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  pagination.Request
		opts []pagination.Option
		want pagination.Request
	}{
		{
			name: "zero page number defaults to first page",
			req:  pagination.Request{PageNumber: 0, PageSize: 10},
			want: pagination.Request{PageNumber: 1, PageSize: 10},
		},
		{
			name: "negative page number defaults to first page",
			req:  pagination.Request{PageNumber: -3, PageSize: 10},
			want: pagination.Request{PageNumber: 1, PageSize: 10},
		},
		{
			name: "zero page size stays zero",
			req:  pagination.Request{PageNumber: 2, PageSize: 0},
			want: pagination.Request{PageNumber: 2, PageSize: 0},
		},
		{
			name: "oversized page is clamped",
			req:  pagination.Request{PageNumber: 1, PageSize: 5000},
			want: pagination.Request{PageNumber: 1, PageSize: 1000},
		},
		{
			name: "custom max page size",
			req:  pagination.Request{PageNumber: 1, PageSize: 500},
			opts: []pagination.Option{pagination.WithMaxPageSize(100)},
			want: pagination.Request{PageNumber: 1, PageSize: 100},
		},
		{
			name: "valid request untouched",
			req:  pagination.Request{PageNumber: 3, PageSize: 25},
			want: pagination.Request{PageNumber: 3, PageSize: 25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := tt.req
			req.Normalize(tt.opts...)

			assert.Equal(t, tt.want, req)
		})
	}
}

func TestRequest_Offset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, pagination.Request{PageNumber: 1, PageSize: 10}.Offset())
	assert.Equal(t, 10, pagination.Request{PageNumber: 2, PageSize: 10}.Offset())
	assert.Equal(t, 50, pagination.Request{PageNumber: 6, PageSize: 10}.Offset())
	assert.Equal(t, 0, pagination.Request{PageNumber: 4, PageSize: 0}.Offset())
}

func TestRequest_Paginated(t *testing.T) {
	t.Parallel()

	assert.True(t, pagination.Request{PageSize: 1}.Paginated())
	assert.False(t, pagination.Request{PageSize: 0}.Paginated())
	assert.False(t, pagination.Request{PageSize: -1}.Paginated())
}

func TestPagedResult_TotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		totalCount int
		pageSize   int
		want       int
	}{
		{name: "exact division", totalCount: 20, pageSize: 10, want: 2},
		{name: "remainder rounds up", totalCount: 15, pageSize: 10, want: 2},
		{name: "single short page", totalCount: 3, pageSize: 10, want: 1},
		{name: "no rows", totalCount: 0, pageSize: 10, want: 0},
		{name: "unpaginated", totalCount: 40, pageSize: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := pagination.PagedResult[int]{TotalCount: tt.totalCount, PageSize: tt.pageSize}

			assert.Equal(t, tt.want, p.TotalPages())
		})
	}
}

func TestPagedResult_PageFlags(t *testing.T) {
	t.Parallel()

	// 15 rows at 10 per page: two pages.
	first := pagination.NewPagedResult(make([]int, 10), 15, pagination.Request{PageNumber: 1, PageSize: 10})
	assert.Equal(t, 2, first.TotalPages())
	assert.True(t, first.HasNextPage())
	assert.False(t, first.HasPreviousPage())

	second := pagination.NewPagedResult(make([]int, 5), 15, pagination.Request{PageNumber: 2, PageSize: 10})
	assert.Equal(t, 2, second.TotalPages())
	assert.False(t, second.HasNextPage())
	assert.True(t, second.HasPreviousPage())
}

func TestNewPagedResult(t *testing.T) {
	t.Parallel()

	items := []string{"a", "b"}
	got := pagination.NewPagedResult(items, 7, pagination.Request{PageNumber: 2, PageSize: 2})

	assert.Equal(t, items, got.Data)
	assert.Equal(t, 7, got.TotalCount)
	assert.Equal(t, 2, got.PageNumber)
	assert.Equal(t, 2, got.PageSize)
}
