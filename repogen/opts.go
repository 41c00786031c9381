package repogen

import "github.com/crudkit-go/crudkit/sorter"

// QueryOpts carries the per-call query shape: ordering, column pruning,
// relations to load and pagination.
type QueryOpts struct {
	Sort      sorter.SortOpts
	Columns   []string
	Relations []string

	PageSize   int // <= 0 disables pagination
	PageNumber int
}

// Opt mutates QueryOpts.
type Opt func(*QueryOpts)

// WithSort applies ordering options to the query.
func WithSort(s sorter.SortOpts) Opt {
	return func(o *QueryOpts) { o.Sort = s }
}

// WithColumns restricts the query to the given columns. Used by projection
// paths to avoid materializing full entities.
func WithColumns(cols ...string) Opt {
	return func(o *QueryOpts) { o.Columns = cols }
}

// WithRelations loads the named relations alongside the entity.
func WithRelations(rels ...string) Opt {
	return func(o *QueryOpts) { o.Relations = rels }
}

// WithPage applies skip/take pagination: skip = (number-1)*size.
// A size of zero or less disables pagination.
func WithPage(size, number int) Opt {
	return func(o *QueryOpts) {
		o.PageSize = size
		o.PageNumber = number
	}
}

func buildOpts(opts []Opt) QueryOpts {
	var o QueryOpts
	for _, opt := range opts {
		opt(&o)
	}
	if o.PageNumber <= 0 {
		o.PageNumber = 1
	}
	return o
}
