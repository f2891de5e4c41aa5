// Package user manages account registration, profiles and username lookups.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/event"
	"github.com/osse101/PhonesBot_Go/internal/logger"
	"github.com/osse101/PhonesBot_Go/internal/repository"
)

// Service defines the account operations
type Service interface {
	// Register creates the account on first contact and refreshes its
	// names afterwards. It reports whether the account was created.
	Register(ctx context.Context, id, username, firstName string) (*domain.User, bool, error)
	Profile(ctx context.Context, id string) (*domain.Profile, error)
	// FindByUsername looks a user up by case-insensitive username or @mention
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// ResolveRecipient accepts a username, @mention or numeric id
	ResolveRecipient(ctx context.Context, ref string) (*domain.User, error)
}

// Option configures the service
type Option func(*service)

// WithStartingBalance sets the balance of new accounts
func WithStartingBalance(balance int64) Option {
	return func(s *service) {
		s.startingBalance = balance
	}
}

// WithCache sets the username cache size and TTL
func WithCache(size int, ttl time.Duration) Option {
	return func(s *service) {
		s.cache = newUsernameCache(size, ttl)
	}
}

// WithClock replaces the wall clock, for tests
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

type service struct {
	ledger          repository.Ledger
	publisher       event.Publisher
	cache           *usernameCache
	startingBalance int64
	now             func() time.Time
}

// NewService creates a user service
func NewService(ledger repository.Ledger, publisher event.Publisher, opts ...Option) Service {
	s := &service{
		ledger:          ledger,
		publisher:       publisher,
		startingBalance: DefaultStartingBalance,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = newUsernameCache(DefaultCacheSize, DefaultCacheTTL)
	}
	return s
}

func (s *service) Register(ctx context.Context, id, username, firstName string) (*domain.User, bool, error) {
	if id == "" {
		return nil, false, fmt.Errorf(ErrFmtMissingID, domain.ErrInvalidInput)
	}
	username = NormalizeRef(username)
	key := UsernameKey(username)

	tx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, false, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, created, err := tx.UpsertUser(ctx, repository.UserRegistration{
		ID:              id,
		Username:        username,
		UsernameKey:     key,
		FirstName:       firstName,
		StartingBalance: s.startingBalance,
		At:              s.now().UTC(),
	})
	if err != nil {
		return nil, false, fmt.Errorf(ErrMsgUpsertFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf(ErrMsgCommitFailed, err)
	}
	s.cache.Invalidate(key, id)

	log := logger.FromContext(ctx)
	if created {
		log.Info(LogMsgUserRegistered, "user_id", id, "username", username)
		s.publisher.PublishWithRetry(ctx, event.NewUserRegisteredEvent(user))
	} else {
		log.Debug(LogMsgUserRefreshed, "user_id", id, "username", username)
	}
	return user, created, nil
}

func (s *service) Profile(ctx context.Context, id string) (*domain.Profile, error) {
	user, err := s.ledger.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserFailed, err)
	}

	value, err := s.ledger.CollectionValue(ctx, id)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCollectionValue, err)
	}

	richer, err := s.ledger.CountRicherThan(ctx, user.Balance)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgRankFailed, err)
	}

	perks, err := s.ledger.GetPerks(ctx, id)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetPerksFailed, err)
	}

	return &domain.Profile{
		User:            *user,
		CollectionValue: value,
		Rank:            richer + 1,
		Perks:           perks.List(),
		Achievements:    Achievements(user),
	}, nil
}

func (s *service) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	key := UsernameKey(username)
	if key == "" {
		return nil, fmt.Errorf(ErrFmtUsernameNotFound, domain.ErrUserNotFound, username)
	}

	if id, ok := s.cache.Get(key); ok {
		user, err := s.ledger.GetUser(ctx, id)
		if err == nil && UsernameKey(user.Username) == key {
			logger.FromContext(ctx).Debug(LogMsgCacheHit, "username", key)
			return user, nil
		}
		s.cache.Invalidate(key, id)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf(ErrMsgLookupFailed, err)
		}
	}

	user, err := s.ledger.GetUserByUsernameKey(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf(ErrFmtUsernameNotFound, domain.ErrUserNotFound, username)
		}
		return nil, fmt.Errorf(ErrMsgLookupFailed, err)
	}
	s.cache.Set(key, user.ID)
	return user, nil
}

func (s *service) ResolveRecipient(ctx context.Context, ref string) (*domain.User, error) {
	ref = NormalizeRef(ref)

	user, err := s.FindByUsername(ctx, ref)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if isNumericID(ref) {
		user, err = s.ledger.GetUser(ctx, ref)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf(ErrMsgGetUserFailed, err)
		}
	}
	return nil, fmt.Errorf(ErrFmtRecipientNotFound, domain.ErrRecipientNotFound, ref)
}
