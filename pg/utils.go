package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint errors.
const uniqueViolation = "23505"

// IsConflict reports whether err is a unique constraint violation.
func IsConflict(err error) bool {
	pgErr := asPgError(err)
	return pgErr != nil && pgErr.Code == uniqueViolation
}

// ConstraintName returns the name of the violated constraint, or an empty
// string when err is not a PostgreSQL error.
func ConstraintName(err error) string {
	if pgErr := asPgError(err); pgErr != nil {
		return pgErr.ConstraintName
	}
	return ""
}

// IsNotFound reports whether err means no rows were found.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// GetPgErrorDetails collects the failing query and, when err is a PostgreSQL
// error, the server-side diagnostics into an errx detail map.
func GetPgErrorDetails(err error, query fmt.Stringer) errx.D {
	details := make(errx.D)
	if qs := safeQueryString(query); qs != "" {
		details["query"] = strings.ReplaceAll(qs, `"`, ``)
	}

	pgErr := asPgError(err)
	if pgErr == nil {
		return details
	}

	for key, value := range map[string]string{
		"pg.code":       pgErr.Code,
		"pg.severity":   pgErr.Severity,
		"pg.message":    pgErr.Message,
		"pg.detail":     pgErr.Detail,
		"pg.hint":       pgErr.Hint,
		"pg.schema":     pgErr.SchemaName,
		"pg.table":      pgErr.TableName,
		"pg.column":     pgErr.ColumnName,
		"pg.data_type":  pgErr.DataTypeName,
		"pg.constraint": pgErr.ConstraintName,
	} {
		details[key] = value
	}
	return details
}

func asPgError(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return nil
}

// safeQueryString renders a query to SQL text. Some bun query types panic in
// String() on incomplete queries, so panics are swallowed and yield "".
func safeQueryString(query fmt.Stringer) (s string) {
	defer func() { _ = recover() }()

	if query == nil {
		return ""
	}
	return query.String()
}
