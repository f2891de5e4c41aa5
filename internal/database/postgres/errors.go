package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/repository"
)

// isTransient reports whether err is a lock wait, timeout, serialization
// conflict or lost connection, all of which a caller may retry.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrorCodeLockNotAvailable, PgErrorCodeQueryCanceled,
			PgErrorCodeSerializationFailure, PgErrorCodeDeadlockDetected,
			PgErrorCodeAdminShutdown:
			return true
		}
		return strings.HasPrefix(pgErr.Code, PgErrorClassConnection)
	}

	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr) || pgconn.SafeToRetry(err)
}

// wrapErr annotates err with msg and marks transient failures as
// domain.ErrStoreUnavailable
func wrapErr(msg string, err error) error {
	if errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("%s: %w", msg, repository.ErrTxClosed)
	}
	if isTransient(err) {
		return fmt.Errorf("%s: %w: %w", msg, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
