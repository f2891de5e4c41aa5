package economy

import (
	"context"
	"fmt"

	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/event"
	"github.com/osse101/PhonesBot_Go/internal/logger"
	"github.com/osse101/PhonesBot_Go/internal/repository"
)

func (s *service) BuyPerk(ctx context.Context, userID string, perk domain.Perk) (*domain.User, error) {
	info, ok := domain.Perks[perk]
	if !ok {
		return nil, fmt.Errorf(ErrFmtUnknownPerk, domain.ErrUnknownPerk, perk)
	}

	tx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := lockUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if !info.Repeatable {
		owned, err := tx.GetPerksTx(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgGetPerksFailed, err)
		}
		if owned.Has(perk) {
			return nil, fmt.Errorf(ErrFmtPerkAlreadyOwned, domain.ErrPerkAlreadyOwned, perk)
		}
	}
	if err := requireFunds(user, info.Price); err != nil {
		return nil, err
	}

	user.Balance -= info.Price
	if perk == domain.PerkFarm {
		// repeatable: each purchase raises the stored rate instead of adding a row
		user.FarmIncome = s.farmIncome(user) + s.cfg.FarmPerkIncomeStep
	} else if err := tx.AddPerk(ctx, userID, perk, s.cooldowns.Now()); err != nil {
		return nil, fmt.Errorf(ErrMsgAddPerkFailed, err)
	}
	if err := tx.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateUserFailed, userID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgPerkPurchased, "user_id", userID, "perk", perk, "price", info.Price)
	s.publisher.PublishWithRetry(ctx, event.NewPerkPurchasedEvent(userID, info))
	return user, nil
}
