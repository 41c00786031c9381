package pg

import (
	"context"

	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool opens a pgx connection pool sized and timed per cfg.
func NewPool(cfg Config) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.dsn())
	if err != nil {
		return nil, errx.Wrap(err)
	}

	pc.MinConns = cfg.PoolMinConns
	pc.MaxConns = cfg.PoolMaxConns
	pc.MaxConnLifetime = cfg.PoolMaxConnLifetime
	pc.MaxConnIdleTime = cfg.PoolMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(context.Background(), pc)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return pool, nil
}
