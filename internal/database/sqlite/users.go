package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/repository"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u                   domain.User
		lastDraw, lastDaily sql.NullInt64
		lastFarm            sql.NullInt64
		createdAt           int64
	)
	err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.Balance, &u.DrawCount, &u.TotalItems, &u.FarmIncome,
		&lastDraw, &lastDaily, &lastFarm, &createdAt)
	if err != nil {
		return nil, err
	}
	u.LastDrawAt = fromNanos(lastDraw)
	u.LastDailyAt = fromNanos(lastDaily)
	u.LastFarmAt = fromNanos(lastFarm)
	u.CreatedAt = time.Unix(0, createdAt).UTC()
	return &u, nil
}

func getUser(ctx context.Context, q querier, userID string) (*domain.User, error) {
	u, err := scanUser(q.QueryRowContext(ctx, sqlGetUser, userID))
	if err != nil {
		return nil, notFoundOr(err, domain.ErrUserNotFound, ErrMsgFailedToGetUser)
	}
	return u, nil
}

// GetUser reads a user
func (l *Ledger) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return getUser(ctx, l.db, userID)
}

// GetUserByUsernameKey finds a user by case-folded username
func (l *Ledger) GetUserByUsernameKey(ctx context.Context, key string) (*domain.User, error) {
	u, err := scanUser(l.db.QueryRowContext(ctx, sqlGetUserByUsernameKey, key))
	if err != nil {
		return nil, notFoundOr(err, domain.ErrUserNotFound, ErrMsgFailedToGetUser)
	}
	return u, nil
}

// Leaderboard returns the richest users
func (l *Ledger) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := l.db.QueryContext(ctx, sqlLeaderboard, limit)
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToReadLeaders, err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.FirstName, &e.Balance, &e.ItemCount); err != nil {
			return nil, wrapErr(ErrMsgFailedToReadLeaders, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(ErrMsgFailedToReadLeaders, err)
	}
	return entries, nil
}

// CountRicherThan counts users with a strictly greater balance
func (l *Ledger) CountRicherThan(ctx context.Context, balance int64) (int, error) {
	var n int
	if err := l.db.QueryRowContext(ctx, sqlCountRicher, balance).Scan(&n); err != nil {
		return 0, wrapErr(ErrMsgFailedToCountRicher, err)
	}
	return n, nil
}

// GetPerks reads the perks a user owns
func (l *Ledger) GetPerks(ctx context.Context, userID string) (domain.PerkSet, error) {
	return getPerks(ctx, l.db, userID)
}

// GetPerksTx reads the perks a user owns inside the transaction
func (t *LedgerTx) GetPerksTx(ctx context.Context, userID string) (domain.PerkSet, error) {
	return getPerks(ctx, t.tx, userID)
}

func getPerks(ctx context.Context, q querier, userID string) (domain.PerkSet, error) {
	rows, err := q.QueryContext(ctx, sqlGetPerks, userID)
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToGetPerks, err)
	}
	defer rows.Close()

	set := make(domain.PerkSet)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, wrapErr(ErrMsgFailedToGetPerks, err)
		}
		set[domain.Perk(p)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(ErrMsgFailedToGetPerks, err)
	}
	return set, nil
}

// UpsertUser creates the user or refreshes its names
func (t *LedgerTx) UpsertUser(ctx context.Context, reg repository.UserRegistration) (*domain.User, bool, error) {
	var existing int
	if err := t.tx.QueryRowContext(ctx, sqlUserExists, reg.ID).Scan(&existing); err != nil {
		return nil, false, wrapErr(ErrMsgFailedToUpsertUser, err)
	}

	_, err := t.tx.ExecContext(ctx, sqlUpsertUser,
		reg.ID, reg.Username, reg.UsernameKey, reg.FirstName, reg.StartingBalance, reg.At.UnixNano())
	if err != nil {
		return nil, false, wrapErr(ErrMsgFailedToUpsertUser, err)
	}

	u, err := getUser(ctx, t.tx, reg.ID)
	if err != nil {
		return nil, false, err
	}
	return u, existing == 0, nil
}

// GetUserForUpdate reads the user row. The single connection already
// excludes other writers for the life of the transaction.
func (t *LedgerTx) GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	return getUser(ctx, t.tx, userID)
}

// UpdateUser writes the mutable counters of u
func (t *LedgerTx) UpdateUser(ctx context.Context, u *domain.User) error {
	res, err := t.tx.ExecContext(ctx, sqlUpdateUser,
		u.Balance, u.DrawCount, u.TotalItems, u.FarmIncome,
		toNanos(u.LastDrawAt), toNanos(u.LastDailyAt), toNanos(u.LastFarmAt),
		u.ID,
	)
	if err != nil {
		return wrapErr(ErrMsgFailedToUpdateUser, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateUser, domain.ErrUserNotFound)
	}
	return nil
}

// AddPerk records a perk purchase
func (t *LedgerTx) AddPerk(ctx context.Context, userID string, perk domain.Perk, at time.Time) error {
	if _, err := t.tx.ExecContext(ctx, sqlAddPerk, userID, string(perk), at.UnixNano()); err != nil {
		return wrapErr(ErrMsgFailedToAddPerk, err)
	}
	return nil
}
