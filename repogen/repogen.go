// Package repogen provides generic, entity-agnostic repositories for CRUD and
// bulk data access.
//
// Every repository is parameterized by an entity type E and a filter type F.
// F is a plain struct describing what to match; how F translates into SQL is
// supplied once, at repository construction, as a filter function over a
// select query. Handlers and other callers only ever produce F values, which
// keeps them independent of the storage engine and easy to test against
// in-memory implementations.
package repogen

import (
	"context"

	"github.com/crudkit-go/crudkit/pagination"
)

// Error codes surfaced by the repositories.
const (
	CodeNotFound             = "OBJECT_NOT_FOUND"
	CodeMultipleRowsFound    = "MULTIPLE_ROWS_FOUND"
	CodeIncorrectAffection   = "INCORRECT_ROWS_AFFECTION"
	CodeBulkConflict         = "BULK_CONFLICT"
	CodeBulkValidationFailed = "BULK_VALIDATION_FAILED"
)

// ReadOnlyRepo defines the generic query surface for entities of type E with
// filter type F.
type ReadOnlyRepo[E any, F any] interface {
	// Get returns the first entity matching the filters.
	// Fails with a CodeNotFound error when nothing matches.
	Get(ctx context.Context, filters F, opts ...Opt) (*E, error)
	// FirstOrNil returns the first match, or nil when nothing matches.
	FirstOrNil(ctx context.Context, filters F, opts ...Opt) (*E, error)
	// GetByID looks an entity up by primary key.
	// Fails with a CodeNotFound error when absent.
	GetByID(ctx context.Context, id any) (*E, error)
	// List returns entities matching the filters. Ordering, column pruning,
	// relations and pagination are applied through opts; without a page
	// option every match is returned.
	List(ctx context.Context, filters F, opts ...Opt) ([]E, error)
	// ListPaged returns one page of matches plus the total count of the
	// filtered, unpaged query. The count is taken before ordering and
	// paging are applied.
	ListPaged(ctx context.Context, filters F, page pagination.Request, opts ...Opt) (pagination.PagedResult[E], error)
	// Exists checks whether any entity matches the filters.
	Exists(ctx context.Context, filters F) (bool, error)
	// Count returns the number of entities matching the filters.
	Count(ctx context.Context, filters F) (int, error)
	// Raw runs a parameterized raw SQL query and scans the result into
	// entities. The caller owns SQL correctness and injection safety.
	Raw(ctx context.Context, sql string, args ...any) ([]E, error)
}

// Repo defines the generic mutation surface on top of ReadOnlyRepo.
//
// Range operations commit per batch, not in one all-or-nothing transaction:
// a failure in batch N leaves batches 1..N-1 durably applied. Callers that
// need cross-operation atomicity compose inside RunInTx.
type Repo[E any, F any] interface {
	ReadOnlyRepo[E, F]

	// Create persists one entity and returns it with store-assigned fields.
	Create(ctx context.Context, entity *E) (*E, error)
	// CreateRange inserts entities in batches of batchSize, committing each
	// batch independently. batchSize <= 0 inserts everything in one batch.
	CreateRange(ctx context.Context, entities []E, batchSize int) error
	// Update persists one entity by primary key.
	// Fails with CodeIncorrectAffection when no row was affected.
	Update(ctx context.Context, entity *E) (*E, error)
	// UpdateRange updates entities in batches, committing each batch
	// independently.
	UpdateRange(ctx context.Context, entities []E, batchSize int) error
	// UpdateWhere loads matches, applies a transform to each row and
	// persists them. Returns the affected row count.
	UpdateWhere(ctx context.Context, filters F, apply func(*E)) (int, error)
	// Delete removes one entity by primary key.
	Delete(ctx context.Context, entity *E) error
	// DeleteByID removes the entity with the given primary key.
	DeleteByID(ctx context.Context, id any) error
	// DeleteRange removes entities in batches, committing each batch
	// independently.
	DeleteRange(ctx context.Context, entities []E, batchSize int) error
	// DeleteWhere removes all matches and returns the affected row count.
	DeleteWhere(ctx context.Context, filters F) (int, error)

	// RunInTx runs fn against a transaction-scoped view of the repository.
	// The transaction commits when fn returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Repo[E, F]) error) error
}

// BulkRepo defines the high-throughput mutation surface: chunked inserts and
// upserts with conflict handling, progress reporting and partial-failure
// aggregation. K is the identity key type used for upsert matching.
type BulkRepo[E any, K comparable] interface {
	// BulkInsert inserts entities in chunks of options.BatchSize, committing
	// per chunk and reporting progress after each one. The returned result
	// accounts for every input row exactly once. The error return is nil
	// except under the ThrowOnError handling mode.
	BulkInsert(
		ctx context.Context,
		entities []E,
		key *KeySpec[E, K],
		opts *BulkOptions,
		progress ProgressFunc,
	) (*BulkResult, error)

	// BulkUpsert inserts new rows and merges rows whose key already exists.
	// A nil key degrades to BulkInsert. A nil merge leaves existing rows
	// untouched (counted as skipped).
	BulkUpsert(
		ctx context.Context,
		entities []E,
		key *KeySpec[E, K],
		merge MergeFunc[E],
		opts *BulkOptions,
		progress ProgressFunc,
	) (*BulkResult, error)
}

// MergeFunc combines an existing row with an incoming one during upsert.
// It must be pure and must preserve the primary key of existing.
type MergeFunc[E any] func(existing, incoming E) E

// BulkImport maps an arbitrary source sequence to entities and delegates to
// BulkInsert. A mapper failure aborts the whole call and is reported as one
// aggregate error result.
func BulkImport[S any, E any, K comparable](
	ctx context.Context,
	repo BulkRepo[E, K],
	source []S,
	mapper func(S) (E, error),
	key *KeySpec[E, K],
	opts *BulkOptions,
	progress ProgressFunc,
) (*BulkResult, error) {
	entities := make([]E, 0, len(source))
	for i, src := range source {
		e, err := mapper(src)
		if err != nil {
			return &BulkResult{
				ErroredRecords: 1,
				Errors: []BulkError{{
					RowIndex: i,
					Message:  err.Error(),
					Err:      err,
				}},
			}, nil
		}
		entities = append(entities, e)
	}

	return repo.BulkInsert(ctx, entities, key, opts, progress)
}
