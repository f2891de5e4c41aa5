// Package sqlite implements the ledger on an embedded SQLite file. A single
// connection serializes every transaction, which stands in for the row
// locks the postgres backend takes.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/PhonesBot_Go/internal/repository"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Ledger implements repository.Ledger for SQLite
type Ledger struct {
	db        *sql.DB
	txTimeout time.Duration
}

// Open opens (creating if needed) the database at path. Migrations are not
// applied here; see database.Migrate.
func Open(path string, txTimeout time.Duration) (*Ledger, error) {
	db, err := sql.Open(DriverName, fmt.Sprintf(dsnFormat, path, txTimeout.Milliseconds()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpen, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return &Ledger{db: db, txTimeout: txTimeout}, nil
}

// DB exposes the handle for migrations and diagnostics
func (l *Ledger) DB() *sql.DB {
	return l.db
}

// LedgerTx implements repository.LedgerTx
type LedgerTx struct {
	tx     *sql.Tx
	ctx    context.Context
	cancel context.CancelFunc
}

// BeginTx waits at most the transaction timeout for the connection. The
// whole transaction shares that deadline.
func (l *Ledger) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	txCtx, cancel := context.WithTimeout(ctx, l.txTimeout)

	tx, err := l.db.BeginTx(txCtx, nil)
	if err != nil {
		cancel()
		return nil, wrapErr(ErrMsgFailedToBeginTransaction, err)
	}
	return &LedgerTx{tx: tx, ctx: txCtx, cancel: cancel}, nil
}

// Ping checks the database file is usable
func (l *Ledger) Ping(ctx context.Context) error {
	if err := l.db.PingContext(ctx); err != nil {
		return wrapErr("ping", err)
	}
	return nil
}

// Close closes the database
func (l *Ledger) Close() {
	_ = l.db.Close()
}

// Commit commits the transaction
func (t *LedgerTx) Commit(ctx context.Context) error {
	defer t.cancel()
	if err := t.tx.Commit(); err != nil {
		// database/sql rolls back on its own once the deadline passes
		if errors.Is(err, sql.ErrTxDone) && t.ctx.Err() != nil {
			err = t.ctx.Err()
		}
		return wrapErr(ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// Rollback rolls back the transaction
func (t *LedgerTx) Rollback(ctx context.Context) error {
	defer t.cancel()
	if err := t.tx.Rollback(); err != nil {
		if errors.Is(err, sql.ErrTxDone) {
			return repository.ErrTxClosed
		}
		return wrapErr("rollback", err)
	}
	return nil
}

func fromNanos(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := time.Unix(0, n.Int64).UTC()
	return &t
}

func toNanos(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixNano()
}

var (
	_ repository.Ledger   = (*Ledger)(nil)
	_ repository.LedgerTx = (*LedgerTx)(nil)
)
