// Package economy implements the points ledger operations: trading items
// with the shop, transfers, the roulette, periodic rewards, perks and the
// leaderboard.
package economy

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/osse101/PhonesBot_Go/internal/catalog"
	"github.com/osse101/PhonesBot_Go/internal/config"
	"github.com/osse101/PhonesBot_Go/internal/cooldown"
	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/event"
	"github.com/osse101/PhonesBot_Go/internal/repository"
	"github.com/osse101/PhonesBot_Go/internal/rng"
)

// Service defines the interface for economy operations
type Service interface {
	Balance(ctx context.Context, userID string) (int64, error)
	ListItems(ctx context.Context, userID string, rarity *domain.Rarity) ([]domain.Item, error)
	Buy(ctx context.Context, userID string, ref domain.CatalogRef) (*domain.Item, error)
	Sell(ctx context.Context, userID string, itemID int64) (*domain.SaleResult, error)
	SellAll(ctx context.Context, userID string, rarity domain.Rarity) (*domain.SaleResult, error)
	Transfer(ctx context.Context, senderID, recipientRef string, amount int64) (*domain.TransferResult, error)
	Wager(ctx context.Context, userID string, stake int64) (*domain.WagerResult, error)
	ClaimDaily(ctx context.Context, userID string) (*domain.ClaimResult, error)
	CollectFarm(ctx context.Context, userID string) (*domain.ClaimResult, error)
	BuyPerk(ctx context.Context, userID string, perk domain.Perk) (*domain.User, error)
	ShopListing(ctx context.Context, rarity domain.Rarity) ([]catalog.Entry, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

// RecipientResolver finds the target of a transfer from a username or id
type RecipientResolver interface {
	ResolveRecipient(ctx context.Context, ref string) (*domain.User, error)
}

// Config holds the economy balance knobs
type Config struct {
	SellRatePercent int64
	ShopMaxRarity   domain.Rarity

	DailyReward      int64
	DailyBonusReward int64

	FarmDefaultIncome  int64
	FarmHours          int64
	FarmPerkIncomeStep int64

	WagerWinChance     float64
	WagerMinMultiplier int
	WagerMaxMultiplier int
	WagerStakes        []int64

	LeaderboardDefaultLimit int
	LeaderboardMaxLimit     int
	// LeaderboardCacheTTL of zero disables the cache
	LeaderboardCacheTTL  time.Duration
	LeaderboardCacheSize int
}

// ConfigFromTuning maps the tuning file onto the economy config
func ConfigFromTuning(t *config.Tuning, cacheSize int) Config {
	if cacheSize <= 0 {
		cacheSize = DefaultLeaderboardCacheSize
	}
	return Config{
		SellRatePercent:         t.SellRatePercent,
		ShopMaxRarity:           domain.Rarity(t.ShopMaxRarity),
		DailyReward:             t.Daily.Reward,
		DailyBonusReward:        t.Daily.BonusReward,
		FarmDefaultIncome:       t.Farm.DefaultIncome,
		FarmHours:               t.Farm.Hours,
		FarmPerkIncomeStep:      t.Farm.PerkIncomeStep,
		WagerWinChance:          t.Wager.WinChance,
		WagerMinMultiplier:      t.Wager.MinMultiplier,
		WagerMaxMultiplier:      t.Wager.MaxMultiplier,
		WagerStakes:             append([]int64(nil), t.Wager.Stakes...),
		LeaderboardDefaultLimit: t.Leaderboard.DefaultLimit,
		LeaderboardMaxLimit:     t.Leaderboard.MaxLimit,
		LeaderboardCacheTTL:     t.Leaderboard.CacheTTL,
		LeaderboardCacheSize:    cacheSize,
	}
}

// DefaultConfig returns the stock economy
func DefaultConfig() Config {
	return ConfigFromTuning(config.DefaultTuning(), DefaultLeaderboardCacheSize)
}

type service struct {
	ledger    repository.Ledger
	table     *catalog.Table
	rnd       rng.Source
	cooldowns cooldown.Service
	users     RecipientResolver
	publisher event.Publisher
	cfg       Config

	boardCache *expirable.LRU[int, []domain.LeaderboardEntry]
	boardGroup singleflight.Group
}

// NewService creates a new economy service
func NewService(
	ledger repository.Ledger,
	table *catalog.Table,
	rnd rng.Source,
	cooldowns cooldown.Service,
	users RecipientResolver,
	publisher event.Publisher,
	cfg Config,
) Service {
	s := &service{
		ledger:    ledger,
		table:     table,
		rnd:       rnd,
		cooldowns: cooldowns,
		users:     users,
		publisher: publisher,
		cfg:       cfg,
	}
	if cfg.LeaderboardCacheTTL > 0 {
		s.boardCache = expirable.NewLRU[int, []domain.LeaderboardEntry](cfg.LeaderboardCacheSize, nil, cfg.LeaderboardCacheTTL)
	}
	return s
}

func (s *service) Balance(ctx context.Context, userID string) (int64, error) {
	user, err := s.ledger.GetUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgGetUserFailed, err)
	}
	return user.Balance, nil
}

func (s *service) ListItems(ctx context.Context, userID string, rarity *domain.Rarity) ([]domain.Item, error) {
	if rarity != nil {
		if err := s.validateRarity(*rarity); err != nil {
			return nil, err
		}
	}
	if _, err := s.ledger.GetUser(ctx, userID); err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserFailed, err)
	}

	items, err := s.ledger.ListItems(ctx, userID, rarity)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListItemsFailed, err)
	}
	return items, nil
}

func (s *service) ShopListing(_ context.Context, rarity domain.Rarity) ([]catalog.Entry, error) {
	if err := s.validateRarity(rarity); err != nil {
		return nil, err
	}
	if rarity > s.cfg.ShopMaxRarity {
		return nil, fmt.Errorf(ErrFmtNotBuyable, domain.ErrNotBuyable, rarity, "tier")
	}
	return s.table.EntriesByPrice(rarity), nil
}

// lockUser reads and locks userID inside tx
func lockUser(ctx context.Context, tx repository.LedgerTx, userID string) (*domain.User, error) {
	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserFailed, err)
	}
	return user, nil
}

func boardKey(limit int) string {
	return strconv.Itoa(limit)
}
