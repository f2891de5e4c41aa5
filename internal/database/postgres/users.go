package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/repository"
)

func scanUser(row pgx.Row, extra ...any) (*domain.User, error) {
	var u domain.User
	dest := append([]any{
		&u.ID, &u.Username, &u.FirstName, &u.Balance, &u.DrawCount, &u.TotalItems, &u.FarmIncome,
		&u.LastDrawAt, &u.LastDailyAt, &u.LastFarmAt, &u.CreatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	u.LastDrawAt = utcPtr(u.LastDrawAt)
	u.LastDailyAt = utcPtr(u.LastDailyAt)
	u.LastFarmAt = utcPtr(u.LastFarmAt)
	u.CreatedAt = utc(u.CreatedAt)
	return &u, nil
}

// GetUser reads a user without locking
func (l *Ledger) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	u, err := scanUser(l.pool.QueryRow(ctx, sqlGetUser, userID))
	if err != nil {
		return nil, notFoundOr(err, domain.ErrUserNotFound, ErrMsgFailedToGetUser)
	}
	return u, nil
}

// GetUserByUsernameKey finds a user by case-folded username
func (l *Ledger) GetUserByUsernameKey(ctx context.Context, key string) (*domain.User, error) {
	u, err := scanUser(l.pool.QueryRow(ctx, sqlGetUserByUsernameKey, key))
	if err != nil {
		return nil, notFoundOr(err, domain.ErrUserNotFound, ErrMsgFailedToGetUser)
	}
	return u, nil
}

// Leaderboard returns the richest users
func (l *Ledger) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := l.pool.Query(ctx, sqlLeaderboard, limit)
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToReadLeaders, err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LeaderboardEntry, error) {
		var e domain.LeaderboardEntry
		err := row.Scan(&e.UserID, &e.Username, &e.FirstName, &e.Balance, &e.ItemCount)
		return e, err
	})
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToReadLeaders, err)
	}
	return entries, nil
}

// CountRicherThan counts users with a strictly greater balance
func (l *Ledger) CountRicherThan(ctx context.Context, balance int64) (int, error) {
	var n int
	if err := l.pool.QueryRow(ctx, sqlCountRicher, balance).Scan(&n); err != nil {
		return 0, wrapErr(ErrMsgFailedToCountRicher, err)
	}
	return n, nil
}

// GetPerks reads the perks a user owns
func (l *Ledger) GetPerks(ctx context.Context, userID string) (domain.PerkSet, error) {
	return getPerks(ctx, l.pool, userID)
}

// GetPerksTx reads the perks a user owns inside the transaction
func (t *LedgerTx) GetPerksTx(ctx context.Context, userID string) (domain.PerkSet, error) {
	return getPerks(ctx, t.tx, userID)
}

func getPerks(ctx context.Context, q querier, userID string) (domain.PerkSet, error) {
	rows, err := q.Query(ctx, sqlGetPerks, userID)
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToGetPerks, err)
	}
	perks, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToGetPerks, err)
	}

	set := make(domain.PerkSet, len(perks))
	for _, p := range perks {
		set[domain.Perk(p)] = true
	}
	return set, nil
}

// UpsertUser creates the user or refreshes its names
func (t *LedgerTx) UpsertUser(ctx context.Context, reg repository.UserRegistration) (*domain.User, bool, error) {
	var created bool
	u, err := scanUser(t.tx.QueryRow(ctx, sqlUpsertUser,
		reg.ID, reg.Username, reg.UsernameKey, reg.FirstName, reg.StartingBalance, reg.At,
	), &created)
	if err != nil {
		return nil, false, wrapErr(ErrMsgFailedToUpsertUser, err)
	}
	return u, created, nil
}

// GetUserForUpdate reads and locks the user row
func (t *LedgerTx) GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	u, err := scanUser(t.tx.QueryRow(ctx, sqlGetUserForUpdate, userID))
	if err != nil {
		return nil, notFoundOr(err, domain.ErrUserNotFound, ErrMsgFailedToLockUser)
	}
	return u, nil
}

// UpdateUser writes the mutable counters of u
func (t *LedgerTx) UpdateUser(ctx context.Context, u *domain.User) error {
	tag, err := t.tx.Exec(ctx, sqlUpdateUser,
		u.ID, u.Balance, u.DrawCount, u.TotalItems, u.FarmIncome,
		u.LastDrawAt, u.LastDailyAt, u.LastFarmAt,
	)
	if err != nil {
		return wrapErr(ErrMsgFailedToUpdateUser, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateUser, domain.ErrUserNotFound)
	}
	return nil
}

// AddPerk records a perk purchase
func (t *LedgerTx) AddPerk(ctx context.Context, userID string, perk domain.Perk, at time.Time) error {
	if _, err := t.tx.Exec(ctx, sqlAddPerk, userID, string(perk), at); err != nil {
		return wrapErr(ErrMsgFailedToAddPerk, err)
	}
	return nil
}
