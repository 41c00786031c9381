package repogen

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"

	"github.com/code19m/errx"
	"github.com/uptrace/bun"

	"github.com/crudkit-go/crudkit/pagination"
	"github.com/crudkit-go/crudkit/pg"
)

// PgReadOnlyRepo provides read-only access to a PostgreSQL database using bun ORM.
type PgReadOnlyRepo[E any, F any] struct {
	idb          bun.IDB
	schemaName   string
	idColumn     string
	notFoundCode string

	filterFunc func(q *bun.SelectQuery, filters F) *bun.SelectQuery
}

var _ ReadOnlyRepo[struct{}, struct{}] = (*PgReadOnlyRepo[struct{}, struct{}])(nil)

// PgReadOnlyRepoBuilder is a builder for PgReadOnlyRepo with sensible defaults.
type PgReadOnlyRepoBuilder[E any, F any] struct {
	idb          bun.IDB
	schemaName   string
	idColumn     string
	notFoundCode string
	filterFunc   func(q *bun.SelectQuery, filters F) *bun.SelectQuery
}

// NewPgReadOnlyRepoBuilder creates a new builder with sensible defaults.
func NewPgReadOnlyRepoBuilder[E any, F any](idb bun.IDB) *PgReadOnlyRepoBuilder[E, F] {
	return &PgReadOnlyRepoBuilder[E, F]{
		idb:          idb,
		schemaName:   "public",
		idColumn:     "id",
		notFoundCode: CodeNotFound,
		filterFunc:   func(q *bun.SelectQuery, _ F) *bun.SelectQuery { return q },
	}
}

// WithSchemaName sets the schema name.
func (b *PgReadOnlyRepoBuilder[E, F]) WithSchemaName(name string) *PgReadOnlyRepoBuilder[E, F] {
	b.schemaName = name
	return b
}

// WithIDColumn sets the primary key column used by GetByID and DeleteByID.
func (b *PgReadOnlyRepoBuilder[E, F]) WithIDColumn(col string) *PgReadOnlyRepoBuilder[E, F] {
	b.idColumn = col
	return b
}

// WithNotFoundCode sets the error code for not found errors.
func (b *PgReadOnlyRepoBuilder[E, F]) WithNotFoundCode(code string) *PgReadOnlyRepoBuilder[E, F] {
	b.notFoundCode = code
	return b
}

// WithFilterFunc sets the function that translates filter values into SQL.
func (b *PgReadOnlyRepoBuilder[E, F]) WithFilterFunc(
	fn func(q *bun.SelectQuery, filters F) *bun.SelectQuery,
) *PgReadOnlyRepoBuilder[E, F] {
	b.filterFunc = fn
	return b
}

// Build creates the PgReadOnlyRepo.
func (b *PgReadOnlyRepoBuilder[E, F]) Build() *PgReadOnlyRepo[E, F] {
	return &PgReadOnlyRepo[E, F]{
		idb:          b.idb,
		schemaName:   b.schemaName,
		idColumn:     b.idColumn,
		notFoundCode: b.notFoundCode,
		filterFunc:   b.filterFunc,
	}
}

// Queryable returns a model-bound select query scoped to the repository's
// schema, for queries the generic surface cannot express. Deliberately not
// part of ReadOnlyRepo: it ties the caller to bun.
func (r *PgReadOnlyRepo[E, F]) Queryable() *bun.SelectQuery {
	q := r.idb.NewSelect().Model((*E)(nil))
	return r.applyModelTableExpr(q)
}

func (r *PgReadOnlyRepo[E, F]) Get(ctx context.Context, filters F, opts ...Opt) (*E, error) {
	o := buildOpts(opts)

	var entities = make([]E, 0)
	q := r.idb.NewSelect().Model(&entities).Limit(2) //nolint:mnd // limit 2 to check for multiple rows
	q = r.applyModelTableExpr(q)
	q = r.filterFunc(q, filters)
	q = r.applyShape(q, &o)

	err := q.Scan(ctx)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	if len(entities) == 0 {
		return nil, errx.New(
			fmt.Sprintf("no %s found", nameOf(new(E))),
			errx.WithCode(r.notFoundCode),
			errx.WithDetails(pg.GetPgErrorDetails(err, q)),
		)
	}

	if len(entities) > 1 {
		return nil, errx.New(
			fmt.Sprintf("multiple %s found", nameOf(new(E))),
			errx.WithCode(CodeMultipleRowsFound),
			errx.WithDetails(pg.GetPgErrorDetails(err, q)),
		)
	}

	return &entities[0], nil
}

func (r *PgReadOnlyRepo[E, F]) FirstOrNil(ctx context.Context, filters F, opts ...Opt) (*E, error) {
	o := buildOpts(opts)

	var entities = make([]E, 0)
	q := r.idb.NewSelect().Model(&entities).Limit(1)
	q = r.applyModelTableExpr(q)
	q = r.filterFunc(q, filters)
	q = r.applyShape(q, &o)

	err := q.Scan(ctx)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	if len(entities) == 0 {
		return nil, nil //nolint:nilnil // Intentionally returning nil,nil as function name indicates
	}

	return &entities[0], nil
}

func (r *PgReadOnlyRepo[E, F]) GetByID(ctx context.Context, id any) (*E, error) {
	entity := new(E)
	q := r.idb.NewSelect().Model(entity).Where("? = ?", bun.Ident(r.idColumn), id)
	q = r.applyModelTableExpr(q)

	err := q.Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, errx.New(
				fmt.Sprintf("no %s found with id %v", nameOf(entity), id),
				errx.WithCode(r.notFoundCode),
			)
		}
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return entity, nil
}

func (r *PgReadOnlyRepo[E, F]) List(ctx context.Context, filters F, opts ...Opt) ([]E, error) {
	o := buildOpts(opts)

	var entities = make([]E, 0)
	q := r.idb.NewSelect().Model(&entities)
	q = r.applyModelTableExpr(q)
	q = r.filterFunc(q, filters)
	q = r.applyShape(q, &o)
	if o.PageSize > 0 {
		q = q.Limit(o.PageSize).Offset((o.PageNumber - 1) * o.PageSize)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return entities, nil
}

func (r *PgReadOnlyRepo[E, F]) ListPaged(
	ctx context.Context,
	filters F,
	page pagination.Request,
	opts ...Opt,
) (pagination.PagedResult[E], error) {
	page.Normalize()
	o := buildOpts(opts)

	count, err := r.Count(ctx, filters)
	if err != nil {
		return pagination.PagedResult[E]{}, err
	}

	var entities = make([]E, 0)
	q := r.idb.NewSelect().Model(&entities)
	q = r.applyModelTableExpr(q)
	q = r.filterFunc(q, filters)
	q = r.applyShape(q, &o)
	if page.Paginated() {
		q = q.Limit(page.Limit()).Offset(page.Offset())
	}

	err = q.Scan(ctx)
	if err != nil {
		return pagination.PagedResult[E]{}, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return pagination.NewPagedResult(entities, count, page), nil
}

func (r *PgReadOnlyRepo[E, F]) Exists(ctx context.Context, filters F) (bool, error) {
	q := r.idb.NewSelect().Model((*E)(nil))
	q = r.applyModelTableExpr(q)
	q = r.filterFunc(q, filters)

	exists, err := q.Exists(ctx)
	if err != nil {
		return false, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return exists, nil
}

func (r *PgReadOnlyRepo[E, F]) Count(ctx context.Context, filters F) (int, error) {
	q := r.idb.NewSelect().Model((*E)(nil))
	q = r.applyModelTableExpr(q)
	q = r.filterFunc(q, filters)
	q = q.Offset(0).Limit(0)

	count, err := q.Count(ctx)
	if err != nil {
		return 0, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return count, nil
}

func (r *PgReadOnlyRepo[E, F]) Raw(ctx context.Context, sql string, args ...any) ([]E, error) {
	var entities = make([]E, 0)
	err := r.idb.NewRaw(sql, args...).Scan(ctx, &entities)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return entities, nil
}

// applyShape applies ordering, column pruning and relations. Pagination is
// applied by the callers that support it.
func (r *PgReadOnlyRepo[E, F]) applyShape(q *bun.SelectQuery, o *QueryOpts) *bun.SelectQuery {
	if len(o.Columns) > 0 {
		q = q.Column(o.Columns...)
	}
	for _, rel := range o.Relations {
		q = q.Relation(rel)
	}
	return o.Sort.Apply(q)
}

func (r *PgReadOnlyRepo[E, F]) applyModelTableExpr(q *bun.SelectQuery) *bun.SelectQuery {
	table := q.GetModel().(bun.TableModel).Table() //nolint:errcheck // table name is always available
	return q.ModelTableExpr("?.? AS ?", bun.Ident(r.schemaName), bun.Ident(table.Name), bun.Ident(table.Alias))
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// nameOf returns the name of the type of the given value.
// If the value is a pointer, it returns the name of the pointed-to type.
func nameOf(v any) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		return t.Elem().Name()
	}
	return t.Name()
}
