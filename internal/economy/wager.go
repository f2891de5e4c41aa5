package economy

import (
	"context"
	"fmt"

	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/event"
	"github.com/osse101/PhonesBot_Go/internal/logger"
	"github.com/osse101/PhonesBot_Go/internal/repository"
)

func (s *service) Wager(ctx context.Context, userID string, stake int64) (*domain.WagerResult, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgWagerCalled, "user_id", userID, "stake", stake)

	if err := s.validateStake(stake); err != nil {
		return nil, err
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
	if err := requireFunds(user, stake); err != nil {
		return nil, err
	}

	res := s.spin(stake)
	user.Balance += res.Delta
	if err := tx.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateUserFailed, userID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}
	res.Balance = user.Balance

	log.Info(LogMsgWagerSettled, "user_id", userID, "won", res.Won, "multiplier", res.Multiplier, "delta", res.Delta)
	s.publisher.PublishWithRetry(ctx, event.NewWagerSettledEvent(userID, res))
	return res, nil
}

// spin rolls one roulette outcome. A win pays stake*(mult-1) on top of the
// returned stake; a loss forfeits it.
func (s *service) spin(stake int64) *domain.WagerResult {
	res := &domain.WagerResult{Stake: stake}
	if s.rnd.Float100() >= s.cfg.WagerWinChance {
		res.Delta = -stake
		return res
	}
	res.Won = true
	res.Multiplier = s.rnd.IntRange(s.cfg.WagerMinMultiplier, s.cfg.WagerMaxMultiplier)
	res.Delta = stake * int64(res.Multiplier-1)
	return res
}
