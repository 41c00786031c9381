package repogen

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/code19m/errx"
	"github.com/samber/lo"

	"github.com/crudkit-go/crudkit/val"
)

// BulkStore is the storage backend driven by the bulk engine. Implementations
// only deal with one chunk at a time; chunking, retries, transactions, error
// policies and progress reporting live in the engine.
type BulkStore[E any, K comparable] interface {
	// InsertChunk writes one chunk, resolving identity conflicts per
	// opts.ConflictStrategy, and reports how many rows were inserted and
	// how many were left untouched.
	InsertChunk(ctx context.Context, chunk []E, key *KeySpec[E, K], opts *BulkOptions) (inserted, skipped int, err error)
	// FetchExisting loads the stored rows whose identity key is in keys.
	FetchExisting(ctx context.Context, key *KeySpec[E, K], keys []K) ([]E, error)
	// UpdateChunk persists already-merged rows by primary key.
	UpdateChunk(ctx context.Context, chunk []E) error
	// InTx runs fn against a transaction-scoped view of the store.
	InTx(ctx context.Context, fn func(ctx context.Context, store BulkStore[E, K]) error) error
}

// NewBulkRepo builds a BulkRepo on top of any BulkStore.
func NewBulkRepo[E any, K comparable](store BulkStore[E, K]) BulkRepo[E, K] {
	return &bulkRepo[E, K]{store: store}
}

type bulkRepo[E any, K comparable] struct {
	store BulkStore[E, K]
}

// bulkRow carries an entity together with its position in the caller's input
// so partial-failure reports can point back at the offending row.
type bulkRow[E any] struct {
	idx    int
	entity E
}

func (r *bulkRepo[E, K]) BulkInsert(
	ctx context.Context,
	entities []E,
	key *KeySpec[E, K],
	opts *BulkOptions,
	progress ProgressFunc,
) (*BulkResult, error) {
	opts = opts.normalized()
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	result := &BulkResult{TotalRecords: len(entities)}

	rows, err := screenRows(entities, opts, result)
	if err != nil {
		result.Duration = time.Since(start)
		return result, err
	}

	chunks := lo.Chunk(rows, opts.BatchSize)
	for ci, chunk := range chunks {
		var inserted, skipped int
		runErr := r.runChunk(ctx, opts, func(ctx context.Context, store BulkStore[E, K]) error {
			inserted, skipped = 0, 0
			ins, skip, err := store.InsertChunk(ctx, rowEntities(chunk), key, opts)
			if err != nil {
				return err
			}
			inserted, skipped = ins, skip
			return nil
		})
		if runErr != nil {
			recordChunkFailure(result, opts, chunk, runErr)
			if opts.ErrorHandling == ThrowOnError {
				skipRemaining(result, chunks[ci+1:])
				report(progress, result, start)
				result.Duration = time.Since(start)
				return result, errx.Wrap(runErr)
			}
		} else {
			result.SuccessfulInserts += inserted
			result.SkippedRecords += skipped
		}
		report(progress, result, start)
	}

	result.Duration = time.Since(start)
	return result, nil
}

func (r *bulkRepo[E, K]) BulkUpsert(
	ctx context.Context,
	entities []E,
	key *KeySpec[E, K],
	merge MergeFunc[E],
	opts *BulkOptions,
	progress ProgressFunc,
) (*BulkResult, error) {
	if key == nil {
		return r.BulkInsert(ctx, entities, key, opts, progress)
	}

	opts = opts.normalized()
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	result := &BulkResult{TotalRecords: len(entities)}

	rows, err := screenRows(entities, opts, result)
	if err != nil {
		result.Duration = time.Since(start)
		return result, err
	}

	chunks := lo.Chunk(rows, opts.BatchSize)
	for ci, chunk := range chunks {
		var inserted, updated, skipped int
		runErr := r.runChunk(ctx, opts, func(ctx context.Context, store BulkStore[E, K]) error {
			inserted, updated, skipped = 0, 0, 0
			return upsertChunk(ctx, store, chunk, key, merge, opts, &inserted, &updated, &skipped)
		})
		if runErr != nil {
			recordChunkFailure(result, opts, chunk, runErr)
			if opts.ErrorHandling == ThrowOnError {
				skipRemaining(result, chunks[ci+1:])
				report(progress, result, start)
				result.Duration = time.Since(start)
				return result, errx.Wrap(runErr)
			}
		} else {
			result.SuccessfulInserts += inserted
			result.UpdatedRecords += updated
			result.SkippedRecords += skipped
		}
		report(progress, result, start)
	}

	result.Duration = time.Since(start)
	return result, nil
}

func upsertChunk[E any, K comparable](
	ctx context.Context,
	store BulkStore[E, K],
	chunk []bulkRow[E],
	key *KeySpec[E, K],
	merge MergeFunc[E],
	opts *BulkOptions,
	inserted, updated, skipped *int,
) error {
	keys := lo.Map(chunk, func(r bulkRow[E], _ int) K { return key.Of(r.entity) })

	existing, err := store.FetchExisting(ctx, key, keys)
	if err != nil {
		return err
	}
	byKey := make(map[K]E, len(existing))
	for _, e := range existing {
		byKey[key.Of(e)] = e
	}

	var fresh, merged []E
	for _, row := range chunk {
		if ex, ok := byKey[key.Of(row.entity)]; ok {
			if merge == nil {
				*skipped++
				continue
			}
			merged = append(merged, merge(ex, row.entity))
			continue
		}
		fresh = append(fresh, row.entity)
	}

	if len(fresh) > 0 {
		ins, skip, err := store.InsertChunk(ctx, fresh, key, opts)
		if err != nil {
			return err
		}
		*inserted += ins
		*skipped += skip
	}
	if len(merged) > 0 {
		if err := store.UpdateChunk(ctx, merged); err != nil {
			return err
		}
		*updated += len(merged)
	}
	return nil
}

// runChunk executes one chunk of work, wrapping it in a per-chunk transaction
// and retry loop per opts. The work function must be restartable.
func (r *bulkRepo[E, K]) runChunk(
	ctx context.Context,
	opts *BulkOptions,
	fn func(ctx context.Context, store BulkStore[E, K]) error,
) error {
	attempt := func() error {
		if opts.UseTransaction {
			return r.store.InTx(ctx, fn)
		}
		return fn(ctx, r.store)
	}
	if opts.MaxRetries == 0 {
		return attempt()
	}
	return retry.Do(
		attempt,
		retry.Attempts(opts.MaxRetries+1),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
}

// screenRows runs optional per-entity validation and returns the surviving
// rows with their original indices. Under ThrowOnError the first invalid
// entity aborts the run; every unwritten row is then counted as skipped so
// the result still accounts for the full input.
func screenRows[E any](entities []E, opts *BulkOptions, result *BulkResult) ([]bulkRow[E], error) {
	rows := make([]bulkRow[E], 0, len(entities))
	if !opts.ValidateEntities {
		for i, e := range entities {
			rows = append(rows, bulkRow[E]{idx: i, entity: e})
		}
		return rows, nil
	}

	for i, e := range entities {
		err := val.ValidateSchema(e)
		if err == nil {
			rows = append(rows, bulkRow[E]{idx: i, entity: e})
			continue
		}

		switch opts.ErrorHandling {
		case SkipErrors:
			result.SkippedRecords++
		case ThrowOnError:
			result.ErroredRecords++
			if opts.ReturnDetailedResults {
				result.Errors = append(result.Errors, BulkError{
					RowIndex:     i,
					Message:      err.Error(),
					Err:          err,
					FailedEntity: e,
				})
			}
			result.SkippedRecords += len(rows) + (len(entities) - i - 1)
			return nil, errx.Wrap(err, errx.WithCode(CodeBulkValidationFailed))
		default:
			result.ErroredRecords++
			if opts.ReturnDetailedResults {
				result.Errors = append(result.Errors, BulkError{
					RowIndex:     i,
					Message:      err.Error(),
					Err:          err,
					FailedEntity: e,
				})
			}
		}
	}
	return rows, nil
}

// recordChunkFailure charges a failed chunk to the result per the configured
// error mode. SkipErrors counts the rows as skipped without detail; the other
// modes count them as errored.
func recordChunkFailure[E any](result *BulkResult, opts *BulkOptions, chunk []bulkRow[E], err error) {
	if opts.ErrorHandling == SkipErrors {
		result.SkippedRecords += len(chunk)
		return
	}
	result.ErroredRecords += len(chunk)
	if !opts.ReturnDetailedResults {
		return
	}
	for _, row := range chunk {
		result.Errors = append(result.Errors, BulkError{
			RowIndex:     row.idx,
			Message:      err.Error(),
			Err:          err,
			FailedEntity: row.entity,
		})
	}
}

// skipRemaining counts every row of the unprocessed chunks as skipped after
// an aborting failure.
func skipRemaining[E any](result *BulkResult, rest [][]bulkRow[E]) {
	for _, chunk := range rest {
		result.SkippedRecords += len(chunk)
	}
}

func rowEntities[E any](chunk []bulkRow[E]) []E {
	return lo.Map(chunk, func(r bulkRow[E], _ int) E { return r.entity })
}

func report(progress ProgressFunc, result *BulkResult, start time.Time) {
	if progress == nil {
		return
	}
	progress(BulkProgress{
		TotalRecords:      result.TotalRecords,
		ProcessedRecords:  result.Processed(),
		SuccessfulRecords: result.SuccessfulInserts + result.UpdatedRecords,
		ErroredRecords:    result.ErroredRecords,
		Elapsed:           time.Since(start),
	})
}
