package repository

import (
	"context"
	"time"

	"github.com/osse101/PhonesBot_Go/internal/domain"
)

// UserReader holds the lock-free account reads
type UserReader interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	// GetUserByUsernameKey finds a user by case-folded username
	GetUserByUsernameKey(ctx context.Context, key string) (*domain.User, error)
	// Leaderboard returns up to limit users by balance DESC, user_id ASC.
	// Rank is left for the caller to fill.
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	// CountRicherThan returns the number of users with a balance strictly above balance
	CountRicherThan(ctx context.Context, balance int64) (int, error)
	GetPerks(ctx context.Context, userID string) (domain.PerkSet, error)
}

// UserTx holds the account operations available inside a transaction
type UserTx interface {
	// UpsertUser creates the account or refreshes its names. The balance of
	// an existing account is never touched. Reports whether it was created.
	UpsertUser(ctx context.Context, reg UserRegistration) (*domain.User, bool, error)
	// GetUserForUpdate reads and locks the user row
	GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error)
	// UpdateUser persists the mutable counters and timestamps of u
	UpdateUser(ctx context.Context, u *domain.User) error
	GetPerksTx(ctx context.Context, userID string) (domain.PerkSet, error)
	AddPerk(ctx context.Context, userID string, perk domain.Perk, at time.Time) error
}

// UserRegistration carries the fields of a first contact
type UserRegistration struct {
	ID              string
	Username        string
	UsernameKey     string
	FirstName       string
	StartingBalance int64
	At              time.Time
}
