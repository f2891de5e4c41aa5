package economy

import (
	"fmt"
	"slices"

	"github.com/osse101/PhonesBot_Go/internal/domain"
)

// validateRarity rejects tiers the loaded table does not define
func (s *service) validateRarity(r domain.Rarity) error {
	if !s.table.Has(r) {
		return fmt.Errorf(ErrFmtInvalidRarity, domain.ErrInvalidRarity, r)
	}
	return nil
}

func (s *service) validateStake(stake int64) error {
	if !slices.Contains(s.cfg.WagerStakes, stake) {
		return fmt.Errorf(ErrFmtInvalidStake, domain.ErrInvalidStake, stake)
	}
	return nil
}

func requireFunds(user *domain.User, cost int64) error {
	if user.Balance < cost {
		return fmt.Errorf(ErrFmtInsufficient, domain.ErrInsufficientBalance, cost, user.Balance)
	}
	return nil
}

// saleProceeds applies the sell rate to a price total, truncating toward zero
func (s *service) saleProceeds(total int64) int64 {
	return total * s.cfg.SellRatePercent / 100
}

// clampLimit maps a requested leaderboard size into [1, max]. Zero means
// the default size.
func (s *service) clampLimit(limit int) int {
	if limit == 0 {
		limit = s.cfg.LeaderboardDefaultLimit
	}
	return max(1, min(limit, s.cfg.LeaderboardMaxLimit))
}
