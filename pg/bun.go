// Package pg provides PostgreSQL database connection and utility functions.
//
// It offers abstractions for creating connection pools, working with the Bun ORM,
// handling PostgreSQL-specific errors, and managing database models with automatic
// timestamp tracking. The package integrates with OpenTelemetry for observability.
package pg

import (
	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/extra/bunotel"

	"github.com/crudkit-go/crudkit/logger"
	"github.com/crudkit-go/crudkit/pg/hooks"
)

// NewBunDB creates a new Bun database connection with the provided
// configuration. Queries are logged through log when cfg.Debug is set.
func NewBunDB(cfg Config, log logger.Logger) (*bun.DB, error) {
	pool, err := NewPool(cfg)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	sqldb := stdlib.OpenDBFromPool(pool)

	bunDB := bun.NewDB(sqldb, pgdialect.New())
	applyHooks(bunDB, cfg.Debug, log)

	return bunDB, nil
}

// applyHooks attaches the debug logging hook and the OpenTelemetry tracing
// hook. The debug hook only fires when debug is set; tracing is always on.
func applyHooks(db *bun.DB, debug bool, log logger.Logger) {
	db.AddQueryHook(
		hooks.NewDebugHook(
			log,
			hooks.WithEnabled(debug),
			hooks.WithVerbose(true),
		),
	)

	db.AddQueryHook(bunotel.NewQueryHook())
}
