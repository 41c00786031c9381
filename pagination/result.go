package pagination

// PagedResult is a data page plus the total count of the filtered, unpaged
// query it was cut from.
type PagedResult[T any] struct {
	Data       []T `json:"data"`
	TotalCount int `json:"total_count"`
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
}

// NewPagedResult builds a paged result from items, the unpaged total and the
// originating request.
func NewPagedResult[T any](items []T, totalCount int, req Request) PagedResult[T] {
	return PagedResult[T]{
		Data:       items,
		TotalCount: totalCount,
		PageNumber: req.PageNumber,
		PageSize:   req.PageSize,
	}
}

// TotalPages returns ceil(TotalCount / PageSize); zero when unpaginated.
func (p PagedResult[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	pages := p.TotalCount / p.PageSize
	if p.TotalCount%p.PageSize > 0 {
		pages++
	}
	return pages
}

// HasNextPage reports whether a later page exists.
func (p PagedResult[T]) HasNextPage() bool {
	return p.PageNumber < p.TotalPages()
}

// HasPreviousPage reports whether an earlier page exists.
func (p PagedResult[T]) HasPreviousPage() bool {
	return p.PageNumber > 1
}
