package repogen

import (
	"context"
	"fmt"

	"github.com/code19m/errx"
	"github.com/samber/lo"
	"github.com/uptrace/bun"

	"github.com/crudkit-go/crudkit/pg"
)

// largeBulkSize is the batch size above which query text is dropped from
// error details to keep log entries bounded.
const largeBulkSize = 10

// PgRepo provides CRUD operations for a PostgreSQL database using bun ORM.
type PgRepo[E any, F any] struct {
	*PgReadOnlyRepo[E, F]

	// conflictCodesMap maps PostgreSQL constraint names to error codes.
	// E.g. map["users_email_key"] = "EMAIL_ALREADY_EXISTS"
	conflictCodesMap map[string]string
}

var _ Repo[struct{}, struct{}] = (*PgRepo[struct{}, struct{}])(nil)

// PgRepoBuilder is a builder for PgRepo with sensible defaults.
type PgRepoBuilder[E any, F any] struct {
	ro               *PgReadOnlyRepoBuilder[E, F]
	conflictCodesMap map[string]string
}

// NewPgRepoBuilder creates a new builder with sensible defaults.
func NewPgRepoBuilder[E any, F any](idb bun.IDB) *PgRepoBuilder[E, F] {
	return &PgRepoBuilder[E, F]{
		ro:               NewPgReadOnlyRepoBuilder[E, F](idb),
		conflictCodesMap: map[string]string{},
	}
}

// WithSchemaName sets the schema name.
func (b *PgRepoBuilder[E, F]) WithSchemaName(name string) *PgRepoBuilder[E, F] {
	b.ro.WithSchemaName(name)
	return b
}

// WithIDColumn sets the primary key column used by GetByID and DeleteByID.
func (b *PgRepoBuilder[E, F]) WithIDColumn(col string) *PgRepoBuilder[E, F] {
	b.ro.WithIDColumn(col)
	return b
}

// WithNotFoundCode sets the error code for not found errors.
func (b *PgRepoBuilder[E, F]) WithNotFoundCode(code string) *PgRepoBuilder[E, F] {
	b.ro.WithNotFoundCode(code)
	return b
}

// WithFilterFunc sets the function that translates filter values into SQL.
func (b *PgRepoBuilder[E, F]) WithFilterFunc(
	fn func(q *bun.SelectQuery, filters F) *bun.SelectQuery,
) *PgRepoBuilder[E, F] {
	b.ro.WithFilterFunc(fn)
	return b
}

// WithConflictCodes maps PostgreSQL constraint names to error codes surfaced
// on conflicting writes.
func (b *PgRepoBuilder[E, F]) WithConflictCodes(m map[string]string) *PgRepoBuilder[E, F] {
	b.conflictCodesMap = m
	return b
}

// Build creates the PgRepo.
func (b *PgRepoBuilder[E, F]) Build() *PgRepo[E, F] {
	return &PgRepo[E, F]{
		PgReadOnlyRepo:   b.ro.Build(),
		conflictCodesMap: b.conflictCodesMap,
	}
}

func (r *PgRepo[E, F]) Create(ctx context.Context, entity *E) (*E, error) {
	q := r.idb.NewInsert().Model(entity).Returning("*")
	q = r.applyInsertModelTableExpr(q)
	_, err := q.Exec(ctx)
	if err != nil {
		if code, exists := r.conflictCodesMap[pg.ConstraintName(err)]; exists {
			return nil, errx.New(
				fmt.Sprintf("conflict while creating %s", nameOf(entity)),
				errx.WithCode(code),
				errx.WithDetails(pg.GetPgErrorDetails(err, q)),
			)
		}
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return entity, nil
}

// CreateRange inserts entities in batches. Each batch commits independently:
// a failure in a later batch leaves earlier batches applied.
func (r *PgRepo[E, F]) CreateRange(ctx context.Context, entities []E, batchSize int) error {
	if len(entities) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = len(entities)
	}

	for _, batch := range lo.Chunk(entities, batchSize) {
		q := r.idb.NewInsert().Model(&batch)
		q = r.applyInsertModelTableExpr(q)
		_, err := q.Exec(ctx)
		if err != nil {
			if len(batch) > largeBulkSize {
				q = nil // avoid huge log size in large inserts
			}
			if code, exists := r.conflictCodesMap[pg.ConstraintName(err)]; exists {
				return errx.New(
					fmt.Sprintf("conflict while batch creating %s", nameOf(new(E))),
					errx.WithCode(code),
					errx.WithDetails(pg.GetPgErrorDetails(err, q)),
				)
			}
			return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
		}
	}

	return nil
}

func (r *PgRepo[E, F]) Update(ctx context.Context, entity *E) (*E, error) {
	q := r.idb.NewUpdate().Model(entity).WherePK().Returning("*")
	q = r.applyUpdateModelTableExpr(q)
	result, err := q.Exec(ctx)
	if err != nil {
		if code, exists := r.conflictCodesMap[pg.ConstraintName(err)]; exists {
			return nil, errx.New(
				fmt.Sprintf("conflict while updating %s", nameOf(entity)),
				errx.WithCode(code),
				errx.WithDetails(pg.GetPgErrorDetails(err, q)),
			)
		}
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	if rowsAffected == 0 {
		return nil, errx.New(
			fmt.Sprintf("no %s found to update", nameOf(entity)),
			errx.WithCode(CodeIncorrectAffection),
			errx.WithDetails(pg.GetPgErrorDetails(err, q)),
		)
	}

	return entity, nil
}

// UpdateRange updates entities by primary key in batches, committing each
// batch independently.
func (r *PgRepo[E, F]) UpdateRange(ctx context.Context, entities []E, batchSize int) error {
	if len(entities) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = len(entities)
	}

	for _, batch := range lo.Chunk(entities, batchSize) {
		if err := r.updateBatch(ctx, batch); err != nil {
			return err
		}
	}

	return nil
}

func (r *PgRepo[E, F]) updateBatch(ctx context.Context, batch []E) error {
	q := r.idb.NewUpdate().Model(&batch).Bulk()
	q = r.applyUpdateModelTableExpr(q)
	result, err := q.Exec(ctx)
	if err != nil {
		if len(batch) > largeBulkSize {
			q = nil // avoid huge log size in large updates
		}
		if code, exists := r.conflictCodesMap[pg.ConstraintName(err)]; exists {
			return errx.New(
				fmt.Sprintf("conflict while batch updating %s", nameOf(new(E))),
				errx.WithCode(code),
				errx.WithDetails(pg.GetPgErrorDetails(err, q)),
			)
		}
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	if rowsAffected != int64(len(batch)) {
		if len(batch) > largeBulkSize {
			q = nil
		}
		return errx.New(
			fmt.Sprintf("not all %s were updated", nameOf(new(E))),
			errx.WithCode(CodeIncorrectAffection),
			errx.WithDetails(pg.GetPgErrorDetails(err, q)),
		)
	}

	return nil
}

// UpdateWhere loads matching rows, applies the transform to each and persists
// them in one bulk update. Returns the number of rows changed.
func (r *PgRepo[E, F]) UpdateWhere(ctx context.Context, filters F, apply func(*E)) (int, error) {
	entities, err := r.List(ctx, filters)
	if err != nil {
		return 0, err
	}
	if len(entities) == 0 {
		return 0, nil
	}

	for i := range entities {
		apply(&entities[i])
	}

	if err := r.updateBatch(ctx, entities); err != nil {
		return 0, err
	}

	return len(entities), nil
}

func (r *PgRepo[E, F]) Delete(ctx context.Context, entity *E) error {
	q := r.idb.NewDelete().Model(entity).WherePK()
	q = r.applyDeleteModelTableExpr(q)
	result, err := q.Exec(ctx)
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	if rowsAffected == 0 {
		return errx.New(
			fmt.Sprintf("no %s found to delete", nameOf(entity)),
			errx.WithCode(CodeIncorrectAffection),
			errx.WithDetails(pg.GetPgErrorDetails(err, q)),
		)
	}

	return nil
}

func (r *PgRepo[E, F]) DeleteByID(ctx context.Context, id any) error {
	q := r.idb.NewDelete().Model((*E)(nil)).Where("? = ?", bun.Ident(r.idColumn), id)
	q = r.applyDeleteModelTableExpr(q)
	result, err := q.Exec(ctx)
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	if rowsAffected == 0 {
		return errx.New(
			fmt.Sprintf("no %s found with id %v", nameOf(new(E)), id),
			errx.WithCode(r.notFoundCode),
		)
	}

	return nil
}

// DeleteRange deletes entities by primary key in batches, committing each
// batch independently.
func (r *PgRepo[E, F]) DeleteRange(ctx context.Context, entities []E, batchSize int) error {
	if len(entities) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = len(entities)
	}

	for _, batch := range lo.Chunk(entities, batchSize) {
		q := r.idb.NewDelete().Model(&batch).WherePK()
		q = r.applyDeleteModelTableExpr(q)
		result, err := q.Exec(ctx)
		if err != nil {
			if len(batch) > largeBulkSize {
				q = nil // avoid huge log size in large deletes
			}
			return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
		}

		if rowsAffected != int64(len(batch)) {
			if len(batch) > largeBulkSize {
				q = nil
			}
			return errx.New(
				fmt.Sprintf("not all %s were deleted", nameOf(new(E))),
				errx.WithCode(CodeIncorrectAffection),
				errx.WithDetails(pg.GetPgErrorDetails(err, q)),
			)
		}
	}

	return nil
}

// DeleteWhere loads matching rows and deletes them by primary key. Returns
// the number of rows removed.
func (r *PgRepo[E, F]) DeleteWhere(ctx context.Context, filters F) (int, error) {
	entities, err := r.List(ctx, filters)
	if err != nil {
		return 0, err
	}
	if len(entities) == 0 {
		return 0, nil
	}

	if err := r.DeleteRange(ctx, entities, 0); err != nil {
		return 0, err
	}

	return len(entities), nil
}

// RunInTx runs fn against a transaction-scoped copy of the repository.
func (r *PgRepo[E, F]) RunInTx(ctx context.Context, fn func(ctx context.Context, tx Repo[E, F]) error) error {
	err := r.idb.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		txRepo := &PgRepo[E, F]{
			PgReadOnlyRepo: &PgReadOnlyRepo[E, F]{
				idb:          tx,
				schemaName:   r.schemaName,
				idColumn:     r.idColumn,
				notFoundCode: r.notFoundCode,
				filterFunc:   r.filterFunc,
			},
			conflictCodesMap: r.conflictCodesMap,
		}
		return fn(ctx, txRepo)
	})
	if err != nil {
		return errx.Wrap(err)
	}
	return nil
}

func (r *PgRepo[E, F]) applyInsertModelTableExpr(q *bun.InsertQuery) *bun.InsertQuery {
	table := q.GetModel().(bun.TableModel).Table() //nolint:errcheck // table name is always available
	return q.ModelTableExpr("?.? AS ?", bun.Ident(r.schemaName), bun.Ident(table.Name), bun.Ident(table.Alias))
}

func (r *PgRepo[E, F]) applyUpdateModelTableExpr(q *bun.UpdateQuery) *bun.UpdateQuery {
	table := q.GetModel().(bun.TableModel).Table() //nolint:errcheck // table name is always available
	return q.ModelTableExpr("?.? AS ?", bun.Ident(r.schemaName), bun.Ident(table.Name), bun.Ident(table.Alias))
}

func (r *PgRepo[E, F]) applyDeleteModelTableExpr(q *bun.DeleteQuery) *bun.DeleteQuery {
	table := q.GetModel().(bun.TableModel).Table() //nolint:errcheck // table name is always available
	return q.ModelTableExpr("?.? AS ?", bun.Ident(r.schemaName), bun.Ident(table.Name), bun.Ident(table.Alias))
}
