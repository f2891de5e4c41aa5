package repository

import (
	"context"
	"errors"

	"github.com/osse101/PhonesBot_Go/internal/domain"
)

// ErrTxClosed is returned by Rollback or Commit on a finished transaction.
// Backends translate their driver-specific equivalent into it.
var ErrTxClosed = errors.New(domain.ErrMsgTxClosed)

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// LedgerTx is one atomic unit of work against the ledger. Reads that
// precede a write take row locks where the backend supports them.
type LedgerTx interface {
	Tx
	UserTx
	ItemTx
}
