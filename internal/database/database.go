// Package database opens the postgres pool and runs the embedded goose
// migrations for either backend.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/PhonesBot_Go/internal/database/migrations"
	"github.com/osse101/PhonesBot_Go/internal/logger"
)

// Pool interface for database connection pool operations
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// PoolConfig sizes the postgres pool
type PoolConfig struct {
	MaxConns    int
	MaxConnIdle time.Duration
	MaxConnLife time.Duration
}

// NewPool creates a new PostgreSQL connection pool
func NewPool(ctx context.Context, connString string, cfg PoolConfig) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	maxConns := min(cfg.MaxConns, math.MaxInt32)
	if maxConns > 0 {
		config.MaxConns = int32(maxConns) //nolint:gosec // clamped above
	}
	config.MinConns = min(DefaultMinConnections, config.MaxConns)
	if cfg.MaxConnLife > 0 {
		config.MaxConnLifetime = cfg.MaxConnLife
	}
	if cfg.MaxConnIdle > 0 {
		config.MaxConnIdleTime = cfg.MaxConnIdle
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	logger.FromContext(ctx).Info(LogMsgSuccessfullyConnectedToDatabase)
	return pool, nil
}

// OpenStdlib exposes a pgx pool as *sql.DB for goose
func OpenStdlib(pool *pgxpool.Pool) *sql.DB {
	return stdlib.OpenDBFromPool(pool)
}

func newProvider(db *sql.DB, dialect goose.Dialect) (*goose.Provider, error) {
	var dir string
	switch dialect {
	case goose.DialectPostgres:
		dir = migrations.DirPostgres
	case goose.DialectSQLite3:
		dir = migrations.DirSQLite
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownDialect, dialect)
	}

	sub, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpenMigrations, err)
	}

	provider, err := goose.NewProvider(dialect, db, sub)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpenMigrations, err)
	}
	return provider, nil
}

// Migrate applies every pending migration of dialect
func Migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
	provider, err := newProvider(db, dialect)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}

	log := logger.FromContext(ctx)
	if len(results) == 0 {
		log.Info(LogMsgMigrationsUpToDate, "dialect", string(dialect))
	}
	for _, r := range results {
		log.Info(LogMsgMigrationApplied, "version", r.Source.Version, "path", r.Source.Path, "duration", r.Duration)
	}
	return nil
}

// MigrationStatus reports each known migration and whether it is applied
func MigrationStatus(ctx context.Context, db *sql.DB, dialect goose.Dialect) ([]*goose.MigrationStatus, error) {
	provider, err := newProvider(db, dialect)
	if err != nil {
		return nil, err
	}

	status, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToReadStatus, err)
	}
	return status, nil
}

// MigratePool applies the postgres migrations through a short-lived stdlib
// handle over pool. The pool stays open.
func MigratePool(ctx context.Context, pool *pgxpool.Pool) error {
	db := OpenStdlib(pool)
	defer db.Close()
	return Migrate(ctx, db, goose.DialectPostgres)
}

// PoolMigrationStatus is MigrationStatus for a postgres pool
func PoolMigrationStatus(ctx context.Context, pool *pgxpool.Pool) ([]*goose.MigrationStatus, error) {
	db := OpenStdlib(pool)
	defer db.Close()
	return MigrationStatus(ctx, db, goose.DialectPostgres)
}
