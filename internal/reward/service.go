// Package reward implements the periodic card draw.
package reward

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/PhonesBot_Go/internal/catalog"
	"github.com/osse101/PhonesBot_Go/internal/cooldown"
	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/event"
	"github.com/osse101/PhonesBot_Go/internal/logger"
	"github.com/osse101/PhonesBot_Go/internal/repository"
	"github.com/osse101/PhonesBot_Go/internal/rng"
)

// Service defines the card draw
type Service interface {
	// DrawCard gives the user one random phone if the draw cooldown has elapsed
	DrawCard(ctx context.Context, userID string) (*domain.DrawResult, error)
}

type service struct {
	ledger    repository.Ledger
	table     *catalog.Table
	rnd       rng.Source
	cooldowns cooldown.Service
	publisher event.Publisher
}

// NewService creates a reward service
func NewService(ledger repository.Ledger, table *catalog.Table, rnd rng.Source, cooldowns cooldown.Service, publisher event.Publisher) Service {
	return &service{
		ledger:    ledger,
		table:     table,
		rnd:       rnd,
		cooldowns: cooldowns,
		publisher: publisher,
	}
}

func (s *service) DrawCard(ctx context.Context, userID string) (*domain.DrawResult, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgDrawCalled, "user_id", userID)

	tx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserFailed, err)
	}

	perks, err := tx.GetPerksTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetPerksFailed, err)
	}

	action := domain.ActionDraw
	if perks.Has(domain.PerkDrawCooldown) {
		action = domain.ActionDrawWithPerk
	}
	if err := s.cooldowns.Check(ctx, userID, action, user.LastDrawAt); err != nil {
		return nil, err
	}

	rarity := s.table.Draw(s.rnd)
	entry, err := s.table.Pick(rarity, s.rnd)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyRarityPool) {
			log.Error(LogMsgEmptyPoolDraw, "user_id", userID, "rarity", rarity)
		}
		return nil, err
	}

	now := s.cooldowns.Now()
	item, err := tx.InsertItem(ctx, domain.NewItem{
		UserID: userID,
		Name:   entry.Name,
		Rarity: entry.Rarity,
		Price:  entry.Price,
	}, now)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgInsertItemFailed, err)
	}

	user.LastDrawAt = &now
	user.DrawCount++
	user.TotalItems++
	if err := tx.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateUserFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitFailed, err)
	}

	log.Info(LogMsgCardDrawn, "user_id", userID, "item", item.Name, "rarity", item.Rarity, "price", item.Price)
	s.publisher.PublishWithRetry(ctx, event.NewCardDrawnEvent(*item))

	return &domain.DrawResult{
		Item:      *item,
		DrawCount: user.DrawCount,
		NextDraw:  s.cooldowns.NextAvailable(action, now),
	}, nil
}
