// Package repotest provides in-memory repository implementations for tests.
// They honor the same contracts as the PostgreSQL repositories so handler and
// engine logic can be exercised without a database.
package repotest

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/code19m/errx"

	"github.com/crudkit-go/crudkit/pagination"
	"github.com/crudkit-go/crudkit/repogen"
)

// MemRepo is an in-memory Repo backed by a slice. Filters are interpreted by
// the match function given at construction, mirroring how the PostgreSQL
// repository interprets them through its filter function.
type MemRepo[E any, F any] struct {
	mu   sync.Mutex
	rows []E

	idOf  func(E) any
	match func(E, F) bool

	failNext error
}

var _ repogen.Repo[struct{}, struct{}] = (*MemRepo[struct{}, struct{}])(nil)

// NewMemRepo builds an empty MemRepo. idOf extracts the primary key of an
// entity; match reports whether an entity satisfies a filter value.
func NewMemRepo[E any, F any](idOf func(E) any, match func(E, F) bool) *MemRepo[E, F] {
	return &MemRepo[E, F]{
		idOf:  idOf,
		match: match,
	}
}

// Seed replaces the stored rows.
func (r *MemRepo[E, F]) Seed(rows ...E) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = slices.Clone(rows)
}

// FailNext makes the next operation return err instead of executing.
func (r *MemRepo[E, F]) FailNext(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failNext = err
}

// Rows returns a copy of the stored rows.
func (r *MemRepo[E, F]) Rows() []E {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.rows)
}

// Len returns the number of stored rows.
func (r *MemRepo[E, F]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *MemRepo[E, F]) takeFailure() error {
	err := r.failNext
	r.failNext = nil
	return err
}

func (r *MemRepo[E, F]) Get(_ context.Context, filters F, _ ...repogen.Opt) (*E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}

	var found []E
	for _, row := range r.rows {
		if r.match(row, filters) {
			found = append(found, row)
		}
	}
	switch len(found) {
	case 0:
		return nil, errx.New("no rows found", errx.WithCode(repogen.CodeNotFound))
	case 1:
		return &found[0], nil
	default:
		return nil, errx.New("multiple rows found", errx.WithCode(repogen.CodeMultipleRowsFound))
	}
}

func (r *MemRepo[E, F]) FirstOrNil(_ context.Context, filters F, _ ...repogen.Opt) (*E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}

	for _, row := range r.rows {
		if r.match(row, filters) {
			return &row, nil
		}
	}
	return nil, nil //nolint:nilnil // mirrors the store contract
}

func (r *MemRepo[E, F]) GetByID(_ context.Context, id any) (*E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}

	for _, row := range r.rows {
		if r.idOf(row) == id {
			return &row, nil
		}
	}
	return nil, errx.New(
		fmt.Sprintf("no row found with id %v", id),
		errx.WithCode(repogen.CodeNotFound),
	)
}

func (r *MemRepo[E, F]) List(_ context.Context, filters F, opts ...repogen.Opt) ([]E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	return r.page(r.filtered(filters), opts), nil
}

func (r *MemRepo[E, F]) ListPaged(
	_ context.Context,
	filters F,
	page pagination.Request,
	_ ...repogen.Opt,
) (pagination.PagedResult[E], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return pagination.PagedResult[E]{}, err
	}

	page.Normalize()
	matched := r.filtered(filters)
	total := len(matched)
	if page.Paginated() {
		matched = cut(matched, page.Offset(), page.Limit())
	}
	return pagination.NewPagedResult(matched, total, page), nil
}

func (r *MemRepo[E, F]) Exists(_ context.Context, filters F) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return false, err
	}

	for _, row := range r.rows {
		if r.match(row, filters) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemRepo[E, F]) Count(_ context.Context, filters F) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return 0, err
	}
	return len(r.filtered(filters)), nil
}

func (r *MemRepo[E, F]) Raw(context.Context, string, ...any) ([]E, error) {
	return nil, errx.New("raw queries are not supported by the in-memory repository")
}

func (r *MemRepo[E, F]) Create(_ context.Context, entity *E) (*E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}

	r.rows = append(r.rows, *entity)
	return entity, nil
}

func (r *MemRepo[E, F]) CreateRange(_ context.Context, entities []E, _ int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return err
	}

	r.rows = append(r.rows, entities...)
	return nil
}

func (r *MemRepo[E, F]) Update(_ context.Context, entity *E) (*E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}

	if !r.replace(*entity) {
		return nil, errx.New("no row found to update", errx.WithCode(repogen.CodeIncorrectAffection))
	}
	return entity, nil
}

func (r *MemRepo[E, F]) UpdateRange(_ context.Context, entities []E, _ int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return err
	}

	for _, e := range entities {
		if !r.replace(e) {
			return errx.New("not all rows were updated", errx.WithCode(repogen.CodeIncorrectAffection))
		}
	}
	return nil
}

func (r *MemRepo[E, F]) UpdateWhere(_ context.Context, filters F, apply func(*E)) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return 0, err
	}

	changed := 0
	for i := range r.rows {
		if r.match(r.rows[i], filters) {
			apply(&r.rows[i])
			changed++
		}
	}
	return changed, nil
}

func (r *MemRepo[E, F]) Delete(_ context.Context, entity *E) error {
	return r.DeleteByID(context.Background(), r.idOf(*entity))
}

func (r *MemRepo[E, F]) DeleteByID(_ context.Context, id any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return err
	}

	for i, row := range r.rows {
		if r.idOf(row) == id {
			r.rows = slices.Delete(r.rows, i, i+1)
			return nil
		}
	}
	return errx.New(
		fmt.Sprintf("no row found with id %v", id),
		errx.WithCode(repogen.CodeNotFound),
	)
}

func (r *MemRepo[E, F]) DeleteRange(ctx context.Context, entities []E, _ int) error {
	for _, e := range entities {
		if err := r.DeleteByID(ctx, r.idOf(e)); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemRepo[E, F]) DeleteWhere(_ context.Context, filters F) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return 0, err
	}

	kept := r.rows[:0]
	removed := 0
	for _, row := range r.rows {
		if r.match(row, filters) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	r.rows = kept
	return removed, nil
}

// RunInTx snapshots the rows and restores them when fn fails, giving tests
// the same commit-or-rollback behavior as the database.
func (r *MemRepo[E, F]) RunInTx(ctx context.Context, fn func(ctx context.Context, tx repogen.Repo[E, F]) error) error {
	r.mu.Lock()
	snapshot := slices.Clone(r.rows)
	r.mu.Unlock()

	if err := fn(ctx, r); err != nil {
		r.mu.Lock()
		r.rows = snapshot
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *MemRepo[E, F]) filtered(filters F) []E {
	var matched []E
	for _, row := range r.rows {
		if r.match(row, filters) {
			matched = append(matched, row)
		}
	}
	return matched
}

func (r *MemRepo[E, F]) replace(entity E) bool {
	id := r.idOf(entity)
	for i, row := range r.rows {
		if r.idOf(row) == id {
			r.rows[i] = entity
			return true
		}
	}
	return false
}

func (r *MemRepo[E, F]) page(matched []E, opts []repogen.Opt) []E {
	var o repogen.QueryOpts
	for _, opt := range opts {
		opt(&o)
	}
	if o.PageSize <= 0 {
		return matched
	}
	number := o.PageNumber
	if number <= 0 {
		number = 1
	}
	return cut(matched, (number-1)*o.PageSize, o.PageSize)
}

func cut[E any](rows []E, offset, limit int) []E {
	if offset >= len(rows) {
		return nil
	}
	rows = rows[offset:]
	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
