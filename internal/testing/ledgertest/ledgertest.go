// Package ledgertest builds migrated throwaway sqlite ledgers for service tests.
package ledgertest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PhonesBot_Go/internal/database"
	"github.com/osse101/PhonesBot_Go/internal/database/sqlite"
	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/repository"
)

// DefaultTxTimeout is generous enough for slow CI disks
const DefaultTxTimeout = 5 * time.Second

// New returns a migrated ledger in a temp dir, closed on cleanup
func New(t testing.TB) *sqlite.Ledger {
	t.Helper()
	return NewWithTimeout(t, DefaultTxTimeout)
}

// NewWithTimeout is New with a custom transaction timeout
func NewWithTimeout(t testing.TB, txTimeout time.Duration) *sqlite.Ledger {
	t.Helper()

	l, err := sqlite.Open(filepath.Join(t.TempDir(), "ledger.db"), txTimeout)
	require.NoError(t, err)
	t.Cleanup(l.Close)

	require.NoError(t, database.Migrate(context.Background(), l.DB(), goose.DialectSQLite3))
	return l
}

// Seed registers a user with balance and returns it
func Seed(t testing.TB, l repository.Ledger, id string, balance int64) *domain.User {
	t.Helper()
	ctx := context.Background()

	tx, err := l.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	u, _, err := tx.UpsertUser(ctx, repository.UserRegistration{
		ID:              id,
		Username:        "user" + id,
		UsernameKey:     "user" + id,
		FirstName:       "Player " + id,
		StartingBalance: balance,
		At:              time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
	return u
}

// GiveItem inserts an item for userID and bumps the user's item count
func GiveItem(t testing.TB, l repository.Ledger, userID, name string, rarity domain.Rarity, price int64) *domain.Item {
	t.Helper()
	ctx := context.Background()

	tx, err := l.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	u, err := tx.GetUserForUpdate(ctx, userID)
	require.NoError(t, err)
	it, err := tx.InsertItem(ctx, domain.NewItem{UserID: userID, Name: name, Rarity: rarity, Price: price}, time.Now().UTC())
	require.NoError(t, err)
	u.TotalItems++
	require.NoError(t, tx.UpdateUser(ctx, u))
	require.NoError(t, tx.Commit(ctx))
	return it
}

// SetUser applies mutate to the stored user
func SetUser(t testing.TB, l repository.Ledger, userID string, mutate func(*domain.User)) {
	t.Helper()
	ctx := context.Background()

	tx, err := l.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	u, err := tx.GetUserForUpdate(ctx, userID)
	require.NoError(t, err)
	mutate(u)
	require.NoError(t, tx.UpdateUser(ctx, u))
	require.NoError(t, tx.Commit(ctx))
}

// GrantPerk records perk for userID
func GrantPerk(t testing.TB, l repository.Ledger, userID string, perk domain.Perk) {
	t.Helper()
	ctx := context.Background()

	tx, err := l.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	require.NoError(t, tx.AddPerk(ctx, userID, perk, time.Now().UTC()))
	require.NoError(t, tx.Commit(ctx))
}
