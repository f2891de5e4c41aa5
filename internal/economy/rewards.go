package economy

import (
	"context"
	"fmt"

	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/event"
	"github.com/osse101/PhonesBot_Go/internal/logger"
	"github.com/osse101/PhonesBot_Go/internal/repository"
)

func (s *service) ClaimDaily(ctx context.Context, userID string) (*domain.ClaimResult, error) {
	tx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := lockUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.cooldowns.Check(ctx, userID, domain.ActionDaily, user.LastDailyAt); err != nil {
		return nil, err
	}

	perks, err := tx.GetPerksTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetPerksFailed, err)
	}
	reward := s.cfg.DailyReward
	if perks.Has(domain.PerkDailyBonus) {
		reward = s.cfg.DailyBonusReward
	}

	now := s.cooldowns.Now()
	user.Balance += reward
	user.LastDailyAt = &now
	if err := tx.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateUserFailed, userID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgDailyClaimed, "user_id", userID, "reward", reward)
	s.publisher.PublishWithRetry(ctx, event.NewRewardClaimedEvent(userID, domain.RewardSourceDaily, reward))

	return &domain.ClaimResult{
		Reward:    reward,
		Balance:   user.Balance,
		NextClaim: s.cooldowns.NextAvailable(domain.ActionDaily, now),
	}, nil
}

func (s *service) CollectFarm(ctx context.Context, userID string) (*domain.ClaimResult, error) {
	tx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := lockUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.cooldowns.Check(ctx, userID, domain.ActionFarm, user.LastFarmAt); err != nil {
		return nil, err
	}

	reward := s.farmIncome(user) * s.cfg.FarmHours
	now := s.cooldowns.Now()
	user.Balance += reward
	user.LastFarmAt = &now
	if err := tx.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateUserFailed, userID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgFarmCollected, "user_id", userID, "reward", reward)
	s.publisher.PublishWithRetry(ctx, event.NewRewardClaimedEvent(userID, domain.RewardSourceFarm, reward))

	return &domain.ClaimResult{
		Reward:    reward,
		Balance:   user.Balance,
		NextClaim: s.cooldowns.NextAvailable(domain.ActionFarm, now),
	}, nil
}

// farmIncome is the stored farm rate of user; zero means the default rate
func (s *service) farmIncome(user *domain.User) int64 {
	if user.FarmIncome == 0 {
		return s.cfg.FarmDefaultIncome
	}
	return user.FarmIncome
}
