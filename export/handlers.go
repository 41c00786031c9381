package export

import (
	"context"
	"fmt"

	"github.com/code19m/errx"
	"github.com/samber/lo"

	"github.com/crudkit-go/crudkit/repogen"
	"github.com/crudkit-go/crudkit/sorter"
)

// CSVHandler lists every entity matching the query filter and renders the
// selected columns as CSV bytes. When nothing matches it returns a nil
// buffer with a nil error.
type CSVHandler[E any, F any, Q any] struct {
	Repo repogen.ReadOnlyRepo[E, F]

	// Filter maps the query into the repository filter struct. Nil means
	// list everything.
	Filter func(q *Q) *F
	// Sort orders the export. Nil keeps the repository default.
	Sort func(q *Q) *sorter.SortOpts
	// Relations are preloaded before rows are selected.
	Relations []string

	// Selector turns one entity into the cells of one row.
	Selector func(e E) []any
	Headers  []string
}

func (h *CSVHandler[E, F, Q]) Execute(ctx context.Context, query *Q) (file []byte, err error) {
	defer recoverToError(&file, &err)

	rows, err := listRows(ctx, h.Repo, query, h.Filter, h.Sort, h.Relations)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cells := lo.Map(rows, func(e E, _ int) []any { return h.Selector(e) })
	return WriteCSV(cells, h.Headers), nil
}

// ExcelHandler is the xlsx counterpart of CSVHandler. The result is a single
// sheet workbook with an optional title band and summary rows.
type ExcelHandler[E any, F any, Q any] struct {
	Repo repogen.ReadOnlyRepo[E, F]

	Filter    func(q *Q) *F
	Sort      func(q *Q) *sorter.SortOpts
	Relations []string

	Selector func(e E) []any
	Headers  []string

	SheetName string
	Title     string
	// Summary builds the label/value rows rendered above the header from
	// the full result set. Nil omits them.
	Summary func(q *Q, rows []E) [][2]string
}

func (h *ExcelHandler[E, F, Q]) Execute(ctx context.Context, query *Q) (file []byte, err error) {
	defer recoverToError(&file, &err)

	rows, err := listRows(ctx, h.Repo, query, h.Filter, h.Sort, h.Relations)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	sheet := Sheet{
		SheetName: h.SheetName,
		Title:     h.Title,
		Headers:   h.Headers,
		Rows:      lo.Map(rows, func(e E, _ int) []any { return h.Selector(e) }),
	}
	if h.Summary != nil {
		sheet.Summary = h.Summary(query, rows)
	}

	return WriteExcel([]Sheet{sheet})
}

func listRows[E any, F any, Q any](
	ctx context.Context,
	repo repogen.ReadOnlyRepo[E, F],
	query *Q,
	filterOf func(*Q) *F,
	sortOf func(*Q) *sorter.SortOpts,
	relations []string,
) ([]E, error) {
	var filters F
	if filterOf != nil {
		if f := filterOf(query); f != nil {
			filters = *f
		}
	}

	opts := make([]repogen.Opt, 0, 2)
	if len(relations) > 0 {
		opts = append(opts, repogen.WithRelations(relations...))
	}
	if sortOf != nil {
		if s := sortOf(query); s != nil {
			opts = append(opts, repogen.WithSort(*s))
		}
	}

	return repo.List(ctx, filters, opts...)
}

func recoverToError(file *[]byte, err *error) {
	if r := recover(); r != nil {
		*file = nil
		*err = errx.New(fmt.Sprintf("panic during export: %v", r))
	}
}
