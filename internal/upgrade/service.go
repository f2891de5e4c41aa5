// Package upgrade implements the gamble that consumes an item for a chance
// at one of the next rarity tier.
package upgrade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/PhonesBot_Go/internal/catalog"
	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/event"
	"github.com/osse101/PhonesBot_Go/internal/logger"
	"github.com/osse101/PhonesBot_Go/internal/repository"
	"github.com/osse101/PhonesBot_Go/internal/rng"
)

// Service defines the upgrade operation
type Service interface {
	// Upgrade consumes itemID. On success the user receives a random phone
	// of the next tier; on failure the item is simply lost.
	Upgrade(ctx context.Context, userID string, itemID int64) (*domain.UpgradeResult, error)
}

// Option configures the service
type Option func(*service)

// WithLuckBonus sets the upgrade_luck perk bonus in percentage points
func WithLuckBonus(bonus float64) Option {
	return func(s *service) {
		s.luckBonus = bonus
	}
}

// WithClock replaces the wall clock, for tests
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

type service struct {
	ledger    repository.Ledger
	table     *catalog.Table
	rnd       rng.Source
	publisher event.Publisher
	luckBonus float64
	now       func() time.Time
}

// NewService creates an upgrade service
func NewService(ledger repository.Ledger, table *catalog.Table, rnd rng.Source, publisher event.Publisher, opts ...Option) Service {
	s := &service{
		ledger:    ledger,
		table:     table,
		rnd:       rnd,
		publisher: publisher,
		luckBonus: DefaultLuckBonus,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Chance returns the success percentage for an item of rarity r, including
// the luck bonus when lucky. The top tier stays at 0.
func Chance(table *catalog.Table, r domain.Rarity, lucky bool, bonus float64) float64 {
	if r >= table.MaxRarity() {
		return 0
	}
	chance := table.UpgradeChance(r)
	if lucky {
		chance = min(chance+bonus, MaxChance)
	}
	return chance
}

func (s *service) Upgrade(ctx context.Context, userID string, itemID int64) (*domain.UpgradeResult, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgUpgradeCalled, "user_id", userID, "item_id", itemID)

	tx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserFailed, err)
	}

	old, err := tx.GetItemForUpdate(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetItemFailed, itemID, err)
	}
	if old.UserID != userID {
		return nil, fmt.Errorf(ErrFmtNotOwned, domain.ErrNotOwned, itemID)
	}
	if old.Rarity >= s.table.MaxRarity() {
		return nil, fmt.Errorf(ErrFmtMaxRarity, domain.ErrAlreadyMaxRarity, itemID, old.Rarity)
	}

	perks, err := tx.GetPerksTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetPerksFailed, err)
	}

	chance := Chance(s.table, old.Rarity, perks.Has(domain.PerkUpgradeLuck), s.luckBonus)
	roll := s.rnd.Float100()
	res := &domain.UpgradeResult{
		Success: roll < chance,
		OldItem: *old,
		Chance:  chance,
		Roll:    roll,
	}

	if res.Success {
		entry, err := s.table.Pick(old.Rarity+1, s.rnd)
		if err != nil {
			if errors.Is(err, domain.ErrEmptyRarityPool) {
				log.Error(LogMsgEmptyPoolUpgrade, "user_id", userID, "rarity", old.Rarity+1)
			}
			return nil, err
		}
		if err := tx.DeleteItem(ctx, old.ID); err != nil {
			return nil, fmt.Errorf(ErrMsgDeleteItemFailed, old.ID, err)
		}
		promoted, err := tx.InsertItem(ctx, domain.NewItem{
			UserID: userID,
			Name:   entry.Name,
			Rarity: entry.Rarity,
			Price:  entry.Price,
		}, s.now().UTC())
		if err != nil {
			return nil, fmt.Errorf(ErrMsgInsertItemFailed, err)
		}
		res.NewItem = promoted
		res.Delta = promoted.Price - old.Price
	} else {
		if err := tx.DeleteItem(ctx, old.ID); err != nil {
			return nil, fmt.Errorf(ErrMsgDeleteItemFailed, old.ID, err)
		}
		user.TotalItems--
		if err := tx.UpdateUser(ctx, user); err != nil {
			return nil, fmt.Errorf(ErrMsgUpdateUserFailed, err)
		}
		res.Delta = -old.Price
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitFailed, err)
	}

	if res.Success {
		log.Info(LogMsgUpgradeSucceeded, "user_id", userID, "from", old.Name, "to", res.NewItem.Name, "roll", roll, "chance", chance)
	} else {
		log.Info(LogMsgUpgradeFailed, "user_id", userID, "item", old.Name, "roll", roll, "chance", chance)
	}
	s.publisher.PublishWithRetry(ctx, event.NewItemUpgradedEvent(userID, res))

	return res, nil
}
