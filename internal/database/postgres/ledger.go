// Package postgres implements the ledger on PostgreSQL with row-level locks.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PhonesBot_Go/internal/repository"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Ledger implements repository.Ledger for PostgreSQL
type Ledger struct {
	pool      *pgxpool.Pool
	txTimeout time.Duration
}

// NewLedger creates a ledger. txTimeout bounds pool acquisition, lock waits
// and each statement of a transaction.
func NewLedger(pool *pgxpool.Pool, txTimeout time.Duration) *Ledger {
	return &Ledger{pool: pool, txTimeout: txTimeout}
}

// LedgerTx implements repository.LedgerTx
type LedgerTx struct {
	tx pgx.Tx
}

// BeginTx starts a READ COMMITTED transaction with SET LOCAL timeouts
func (l *Ledger) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	acquireCtx, cancel := context.WithTimeout(ctx, l.txTimeout)
	defer cancel()

	tx, err := l.pool.BeginTx(acquireCtx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToBeginTransaction, err)
	}

	timeout := fmt.Sprintf("%dms", l.txTimeout.Milliseconds())
	if _, err := tx.Exec(ctx, sqlSetTxTimeouts, timeout); err != nil {
		_ = tx.Rollback(ctx)
		return nil, wrapErr(ErrMsgFailedToSetTimeouts, err)
	}

	return &LedgerTx{tx: tx}, nil
}

// Ping checks connectivity
func (l *Ledger) Ping(ctx context.Context) error {
	if err := l.pool.Ping(ctx); err != nil {
		return wrapErr("ping", err)
	}
	return nil
}

// Close closes the pool
func (l *Ledger) Close() {
	l.pool.Close()
}

// Commit commits the transaction
func (t *LedgerTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return wrapErr(ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// Rollback rolls back the transaction
func (t *LedgerTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return repository.ErrTxClosed
		}
		return wrapErr("rollback", err)
	}
	return nil
}

func notFoundOr(err error, notFound error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	return wrapErr(msg, err)
}

func utc(t time.Time) time.Time {
	return t.UTC()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

var (
	_ repository.Ledger   = (*Ledger)(nil)
	_ repository.LedgerTx = (*LedgerTx)(nil)
	_ querier             = (*pgxpool.Pool)(nil)
)
