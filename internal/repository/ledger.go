// Package repository declares the persistence contracts shared by the
// postgres and sqlite ledgers.
package repository

import "context"

// Ledger is the store of accounts, items and perks.
//
// Methods on Ledger itself are snapshot reads taken outside any
// transaction. Callers must not invoke them while holding a LedgerTx from
// the same Ledger: the sqlite backend serializes on a single connection.
type Ledger interface {
	UserReader
	ItemReader

	// BeginTx starts a READ COMMITTED transaction bounded by the configured
	// transaction timeout. Failure to obtain one in time is domain.ErrStoreUnavailable.
	BeginTx(ctx context.Context) (LedgerTx, error)

	// Ping checks that the store is reachable
	Ping(ctx context.Context) error

	// Close releases the underlying connections
	Close()
}
