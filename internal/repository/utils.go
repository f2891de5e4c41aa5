package repository

import (
	"context"
	"errors"

	"github.com/osse101/PhonesBot_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error. It is meant to
// be deferred right after BeginTx; after a Commit the rollback is a no-op.
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		// Check for common "closed" errors to avoid noise
		if !errors.Is(err, ErrTxClosed) {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}
