package repotest

import (
	"context"
	"slices"
	"sync"

	"github.com/code19m/errx"

	"github.com/crudkit-go/crudkit/repogen"
)

// MemBulkStore is an in-memory BulkStore with fault injection, used to drive
// the bulk engine through partial-failure and durability scenarios.
type MemBulkStore[E any, K comparable] struct {
	mu    sync.Mutex
	rows  []E
	keyOf func(E) K

	// failAfterRows makes any insert that would push the stored row count
	// past the threshold fail with failErr. Zero disables fault injection.
	failAfterRows int
	failErr       error
	failuresLeft  int
}

var _ repogen.BulkStore[struct{}, string] = (*MemBulkStore[struct{}, string])(nil)

// NewMemBulkStore builds an empty MemBulkStore. keyOf extracts the identity
// key used to match rows on update and conflict checks.
func NewMemBulkStore[E any, K comparable](keyOf func(E) K) *MemBulkStore[E, K] {
	return &MemBulkStore[E, K]{keyOf: keyOf}
}

// Seed replaces the stored rows.
func (s *MemBulkStore[E, K]) Seed(rows ...E) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = slices.Clone(rows)
}

// FailAfterRows injects a fault: once afterRows rows are stored, the next
// times inserts fail with err. times < 0 means every subsequent insert fails.
func (s *MemBulkStore[E, K]) FailAfterRows(afterRows, times int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAfterRows = afterRows
	s.failuresLeft = times
	s.failErr = err
}

// Rows returns a copy of the stored rows.
func (s *MemBulkStore[E, K]) Rows() []E {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.rows)
}

// Len returns the number of stored rows.
func (s *MemBulkStore[E, K]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *MemBulkStore[E, K]) InsertChunk(
	_ context.Context,
	chunk []E,
	key *repogen.KeySpec[E, K],
	opts *repogen.BulkOptions,
) (inserted, skipped int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAfterRows > 0 && len(s.rows)+len(chunk) > s.failAfterRows && s.failuresLeft != 0 {
		if s.failuresLeft > 0 {
			s.failuresLeft--
		}
		return 0, 0, s.failErr
	}

	if key == nil || key.Of == nil {
		s.rows = append(s.rows, chunk...)
		return len(chunk), 0, nil
	}

	existing := make(map[K]struct{}, len(s.rows))
	for _, row := range s.rows {
		existing[key.Of(row)] = struct{}{}
	}

	for _, row := range chunk {
		k := key.Of(row)
		if _, dup := existing[k]; dup {
			switch opts.ConflictStrategy {
			case repogen.ConflictThrowError:
				return 0, 0, errx.New("duplicate key", errx.WithCode(repogen.CodeBulkConflict))
			case repogen.ConflictUpdate, repogen.ConflictReplace:
				s.replaceByKey(row)
				inserted++
			default:
				skipped++
			}
			continue
		}
		existing[k] = struct{}{}
		s.rows = append(s.rows, row)
		inserted++
	}

	return inserted, skipped, nil
}

func (s *MemBulkStore[E, K]) FetchExisting(_ context.Context, key *repogen.KeySpec[E, K], keys []K) ([]E, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[K]struct{}, len(keys))
	for _, k := range keys {
		wanted[k] = struct{}{}
	}

	var found []E
	for _, row := range s.rows {
		if _, ok := wanted[key.Of(row)]; ok {
			found = append(found, row)
		}
	}
	return found, nil
}

func (s *MemBulkStore[E, K]) UpdateChunk(_ context.Context, chunk []E) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range chunk {
		if !s.replaceByKey(row) {
			return errx.New("no row found to update")
		}
	}
	return nil
}

// replaceByKey swaps the stored row carrying the same identity key.
func (s *MemBulkStore[E, K]) replaceByKey(row E) bool {
	k := s.keyOf(row)
	for i, stored := range s.rows {
		if s.keyOf(stored) == k {
			s.rows[i] = row
			return true
		}
	}
	return false
}

func (s *MemBulkStore[E, K]) InTx(
	ctx context.Context,
	fn func(ctx context.Context, store repogen.BulkStore[E, K]) error,
) error {
	s.mu.Lock()
	snapshot := slices.Clone(s.rows)
	s.mu.Unlock()

	if err := fn(ctx, s); err != nil {
		s.mu.Lock()
		s.rows = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}
