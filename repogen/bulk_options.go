package repogen

import "time"

// ConflictStrategy tells a bulk insert what to do when a row collides with an
// existing one on the identity key.
type ConflictStrategy int

const (
	// ConflictSkip leaves the existing row untouched and counts the
	// incoming one as skipped.
	ConflictSkip ConflictStrategy = iota
	// ConflictUpdate overwrites the columns listed in UpdateColumns.
	ConflictUpdate
	// ConflictReplace overwrites the existing row with the incoming values
	// for every listed column.
	ConflictReplace
	// ConflictThrowError surfaces the store conflict as a chunk failure.
	ConflictThrowError
)

// ErrorMode tells the bulk engine what to do with a failing chunk.
type ErrorMode int

const (
	// ContinueOnError records the chunk rows as errored and moves on.
	ContinueOnError ErrorMode = iota
	// ThrowOnError stops the run at the failing chunk; earlier chunks stay
	// applied and the returned result reflects the partial application.
	ThrowOnError
	// SkipErrors counts failing chunk rows as skipped without error detail.
	SkipErrors
)

const (
	DefaultBulkBatchSize = 1000
	DefaultBulkTimeout   = 300 * time.Second
)

// BulkOptions configures one bulk run.
type BulkOptions struct {
	// BatchSize is the number of entities committed per chunk.
	BatchSize int
	// UseTransaction wraps each chunk in its own transaction. Chunks are
	// still committed independently of each other.
	UseTransaction bool
	// Timeout bounds the whole bulk operation.
	Timeout time.Duration
	// ConflictStrategy resolves identity collisions during insert.
	ConflictStrategy ConflictStrategy
	// UpdateColumns lists the columns overwritten by ConflictUpdate and
	// ConflictReplace.
	UpdateColumns []string
	// ValidateEntities runs struct validation on every entity before it is
	// written; rows failing validation are handled per ErrorHandling.
	ValidateEntities bool
	// ErrorHandling selects the failure policy for chunks and rows.
	ErrorHandling ErrorMode
	// ReturnDetailedResults collects per-row errors into BulkResult.Errors.
	ReturnDetailedResults bool
	// MaxRetries retries a failing chunk before the failure policy applies.
	MaxRetries uint
}

// DefaultBulkOptions returns the default configuration: batches of 1000,
// per-chunk transactions, 300s timeout, skip conflicts, continue on error,
// detailed results.
func DefaultBulkOptions() *BulkOptions {
	return &BulkOptions{
		BatchSize:             DefaultBulkBatchSize,
		UseTransaction:        true,
		Timeout:               DefaultBulkTimeout,
		ConflictStrategy:      ConflictSkip,
		ValidateEntities:      true,
		ErrorHandling:         ContinueOnError,
		ReturnDetailedResults: true,
	}
}

func (o *BulkOptions) normalized() *BulkOptions {
	if o == nil {
		return DefaultBulkOptions()
	}
	out := *o
	if out.BatchSize <= 0 {
		out.BatchSize = DefaultBulkBatchSize
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultBulkTimeout
	}
	return &out
}
