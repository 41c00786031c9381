package repogen

import (
	"time"

	"github.com/uptrace/bun"
)

// BulkResult summarizes one bulk run. The four outcome counters partition the
// input: every row is counted exactly once as inserted, updated, skipped or
// errored.
type BulkResult struct {
	TotalRecords      int
	SuccessfulInserts int
	UpdatedRecords    int
	SkippedRecords    int
	ErroredRecords    int
	Errors            []BulkError
	Duration          time.Duration
}

// IsSuccess holds iff no row errored.
func (r *BulkResult) IsSuccess() bool {
	return r.ErroredRecords == 0
}

// Processed returns the number of rows accounted for so far.
func (r *BulkResult) Processed() int {
	return r.SuccessfulInserts + r.UpdatedRecords + r.SkippedRecords + r.ErroredRecords
}

// BulkError describes one failed row or chunk.
type BulkError struct {
	// RowIndex is the zero-based index of the first affected input row.
	RowIndex     int
	Message      string
	Err          error
	FailedEntity any
}

// BulkProgress is a transient snapshot pushed to the progress observer after
// each chunk commits. Snapshots arrive synchronously, in chunk order, exactly
// once per chunk.
type BulkProgress struct {
	TotalRecords      int
	ProcessedRecords  int
	SuccessfulRecords int
	ErroredRecords    int
	Elapsed           time.Duration
}

// Percentage returns processed/total as 0-100.
func (p BulkProgress) Percentage() float64 {
	if p.TotalRecords <= 0 {
		return 0
	}
	return float64(p.ProcessedRecords) / float64(p.TotalRecords) * 100 //nolint:mnd // percent
}

// ProgressFunc receives progress snapshots. May be nil.
type ProgressFunc func(BulkProgress)

// KeySpec describes entity identity for upsert matching and conflict
// resolution.
type KeySpec[E any, K comparable] struct {
	// Of extracts the identity key from an entity.
	Of func(E) K
	// Filter narrows a select query to rows whose key is in keys. Only
	// store-backed repositories use it; in-memory doubles rely on Of.
	Filter func(q *bun.SelectQuery, keys []K) *bun.SelectQuery
	// Columns lists the unique-constraint columns behind the key, used to
	// build store-side conflict clauses.
	Columns []string
}
