package economy

import (
	"context"
	"fmt"
	"slices"

	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/logger"
)

// Leaderboard serves a short-lived snapshot. Concurrent misses for the same
// limit share one store read.
func (s *service) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	limit = s.clampLimit(limit)

	if s.boardCache != nil {
		if cached, ok := s.boardCache.Get(limit); ok {
			return slices.Clone(cached), nil
		}
	}

	v, err, _ := s.boardGroup.Do(boardKey(limit), func() (interface{}, error) {
		// Callers coalesced onto this load must not inherit the first
		// caller's cancellation.
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), LeaderboardLoadTimeout)
		defer cancel()

		entries, err := s.ledger.Leaderboard(loadCtx, limit)
		if err != nil {
			return nil, err
		}
		for i := range entries {
			entries[i].Rank = i + 1
		}
		logger.FromContext(ctx).Debug(LogMsgLeaderboardLoaded, "limit", limit, "rows", len(entries))
		if s.boardCache != nil {
			s.boardCache.Add(limit, entries)
		}
		return entries, nil
	})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLeaderboardFailed, err)
	}
	return slices.Clone(v.([]domain.LeaderboardEntry)), nil
}
