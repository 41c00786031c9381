package repogen

import (
	"context"
	"fmt"
	"strings"

	"github.com/code19m/errx"
	"github.com/uptrace/bun"

	"github.com/crudkit-go/crudkit/pg"
)

// PgBulkStore adapts a PostgreSQL database to the bulk engine. Conflict
// resolution is pushed down to the database with ON CONFLICT clauses built
// from the key columns.
type PgBulkStore[E any, K comparable] struct {
	idb        bun.IDB
	schemaName string
}

var _ BulkStore[struct{}, string] = (*PgBulkStore[struct{}, string])(nil)

// NewPgBulkStore creates a PgBulkStore on the public schema.
func NewPgBulkStore[E any, K comparable](idb bun.IDB) *PgBulkStore[E, K] {
	return &PgBulkStore[E, K]{idb: idb, schemaName: "public"}
}

// WithSchemaName sets the schema name.
func (s *PgBulkStore[E, K]) WithSchemaName(name string) *PgBulkStore[E, K] {
	s.schemaName = name
	return s
}

// NewPgBulkRepo wires a PgBulkStore into the bulk engine.
func NewPgBulkRepo[E any, K comparable](idb bun.IDB) BulkRepo[E, K] {
	return NewBulkRepo[E, K](NewPgBulkStore[E, K](idb))
}

func (s *PgBulkStore[E, K]) InsertChunk(
	ctx context.Context,
	chunk []E,
	key *KeySpec[E, K],
	opts *BulkOptions,
) (inserted, skipped int, err error) {
	if len(chunk) == 0 {
		return 0, 0, nil
	}

	q := s.idb.NewInsert().Model(&chunk)
	q = s.applyInsertModelTableExpr(q)
	q = applyConflictClause(q, key, opts)

	result, err := q.Exec(ctx)
	if err != nil {
		if len(chunk) > largeBulkSize {
			q = nil // avoid huge log size in large inserts
		}
		if pg.IsConflict(err) {
			return 0, 0, errx.Wrap(err,
				errx.WithCode(CodeBulkConflict),
				errx.WithDetails(pg.GetPgErrorDetails(err, q)),
			)
		}
		return 0, 0, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, 0, errx.Wrap(err)
	}

	inserted = int(rowsAffected)
	skipped = len(chunk) - inserted
	return inserted, skipped, nil
}

func (s *PgBulkStore[E, K]) FetchExisting(ctx context.Context, key *KeySpec[E, K], keys []K) ([]E, error) {
	if key.Filter == nil {
		return nil, errx.New("key filter is required to match existing rows")
	}

	var entities = make([]E, 0)
	q := s.idb.NewSelect().Model(&entities)
	table := q.GetModel().(bun.TableModel).Table() //nolint:errcheck // table name is always available
	q = q.ModelTableExpr("?.? AS ?", bun.Ident(s.schemaName), bun.Ident(table.Name), bun.Ident(table.Alias))
	q = key.Filter(q, keys)

	err := q.Scan(ctx)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return entities, nil
}

func (s *PgBulkStore[E, K]) UpdateChunk(ctx context.Context, chunk []E) error {
	if len(chunk) == 0 {
		return nil
	}

	q := s.idb.NewUpdate().Model(&chunk).Bulk()
	table := q.GetModel().(bun.TableModel).Table() //nolint:errcheck // table name is always available
	q = q.ModelTableExpr("?.? AS ?", bun.Ident(s.schemaName), bun.Ident(table.Name), bun.Ident(table.Alias))

	_, err := q.Exec(ctx)
	if err != nil {
		if len(chunk) > largeBulkSize {
			q = nil // avoid huge log size in large updates
		}
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return nil
}

func (s *PgBulkStore[E, K]) InTx(
	ctx context.Context,
	fn func(ctx context.Context, store BulkStore[E, K]) error,
) error {
	return s.idb.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, &PgBulkStore[E, K]{idb: tx, schemaName: s.schemaName})
	})
}

// applyConflictClause renders the configured conflict strategy as an
// ON CONFLICT clause over the key columns. Without key columns, or with the
// throw-error strategy, the insert runs bare and conflicts surface as errors.
func applyConflictClause[E any, K comparable](
	q *bun.InsertQuery,
	key *KeySpec[E, K],
	opts *BulkOptions,
) *bun.InsertQuery {
	if key == nil || len(key.Columns) == 0 || opts.ConflictStrategy == ConflictThrowError {
		return q
	}

	target := strings.Join(key.Columns, ", ")

	switch opts.ConflictStrategy {
	case ConflictUpdate, ConflictReplace:
		if len(opts.UpdateColumns) == 0 {
			return q.On(fmt.Sprintf("CONFLICT (%s) DO NOTHING", target))
		}
		q = q.On(fmt.Sprintf("CONFLICT (%s) DO UPDATE", target))
		for _, col := range opts.UpdateColumns {
			q = q.Set("? = EXCLUDED.?", bun.Ident(col), bun.Ident(col))
		}
		return q
	default:
		return q.On(fmt.Sprintf("CONFLICT (%s) DO NOTHING", target))
	}
}

func (s *PgBulkStore[E, K]) applyInsertModelTableExpr(q *bun.InsertQuery) *bun.InsertQuery {
	table := q.GetModel().(bun.TableModel).Table() //nolint:errcheck // table name is always available
	return q.ModelTableExpr("?.? AS ?", bun.Ident(s.schemaName), bun.Ident(table.Name), bun.Ident(table.Alias))
}
