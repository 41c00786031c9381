// Package pagination provides page/size request parameters and the paged
// result envelope returned by list queries.
package pagination

type Request struct {
	PageNumber int `query:"page_number" json:"page_number"`
	PageSize   int `query:"page_size"   json:"page_size"`
}

// Normalize applies defaults and constraints.
// A PageSize of zero or less is left untouched: it means "no pagination".
func (r *Request) Normalize(opts ...Option) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if r.PageNumber <= 0 {
		r.PageNumber = 1
	}
	if r.PageSize > o.MaxPageSize {
		r.PageSize = o.MaxPageSize
	}
}

// Paginated reports whether the request asks for pagination at all.
func (r Request) Paginated() bool {
	return r.PageSize > 0
}

// Offset returns the number of rows to skip.
func (r Request) Offset() int {
	if !r.Paginated() {
		return 0
	}
	return (r.PageNumber - 1) * r.PageSize
}

// Limit returns the page size.
func (r Request) Limit() int {
	return r.PageSize
}
