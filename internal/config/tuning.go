package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/osse101/PhonesBot_Go/internal/logger"
)

// Tuning holds the game balance knobs. Every field has a default, so a
// tuning file only needs to name what it overrides.
type Tuning struct {
	Cooldowns       CooldownTuning    `yaml:"cooldowns"`
	StartingBalance int64             `yaml:"starting_balance"`
	SellRatePercent int64             `yaml:"sell_rate_percent"`
	UpgradeLuck     float64           `yaml:"upgrade_luck_bonus"`
	ShopMaxRarity   int               `yaml:"shop_max_rarity"`
	Daily           DailyTuning       `yaml:"daily"`
	Farm            FarmTuning        `yaml:"farm"`
	Wager           WagerTuning       `yaml:"wager"`
	Leaderboard     LeaderboardTuning `yaml:"leaderboard"`
}

// CooldownTuning configures the wall-clock gates
type CooldownTuning struct {
	Draw         time.Duration `yaml:"draw"`
	DrawWithPerk time.Duration `yaml:"draw_with_perk"`
	Daily        time.Duration `yaml:"daily"`
	Farm         time.Duration `yaml:"farm"`
}

// DailyTuning configures the daily reward
type DailyTuning struct {
	Reward      int64 `yaml:"reward"`
	BonusReward int64 `yaml:"bonus_reward"`
}

// FarmTuning configures passive income
type FarmTuning struct {
	DefaultIncome  int64 `yaml:"default_income"`
	Hours          int64 `yaml:"hours"`
	PerkIncomeStep int64 `yaml:"perk_income_step"`
}

// WagerTuning configures the roulette
type WagerTuning struct {
	WinChance     float64 `yaml:"win_chance"`
	MinMultiplier int     `yaml:"min_multiplier"`
	MaxMultiplier int     `yaml:"max_multiplier"`
	Stakes        []int64 `yaml:"stakes"`
}

// LeaderboardTuning configures leaderboard reads
type LeaderboardTuning struct {
	DefaultLimit int           `yaml:"default_limit"`
	MaxLimit     int           `yaml:"max_limit"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
}

// DefaultTuning returns the stock game balance
func DefaultTuning() *Tuning {
	return &Tuning{
		Cooldowns: CooldownTuning{
			Draw:         3 * time.Hour,
			DrawWithPerk: 150 * time.Minute,
			Daily:        24 * time.Hour,
			Farm:         24 * time.Hour,
		},
		StartingBalance: 500,
		SellRatePercent: 75,
		UpgradeLuck:     5,
		ShopMaxRarity:   5,
		Daily:           DailyTuning{Reward: 100, BonusReward: 150},
		Farm:            FarmTuning{DefaultIncome: 100, Hours: 24, PerkIncomeStep: 50},
		Wager: WagerTuning{
			WinChance:     40,
			MinMultiplier: 2,
			MaxMultiplier: 5,
			Stakes:        []int64{100, 500, 1000},
		},
		Leaderboard: LeaderboardTuning{
			DefaultLimit: 10,
			MaxLimit:     100,
			CacheTTL:     30 * time.Second,
		},
	}
}

// LoadTuning reads the YAML tuning file at path over the defaults. An empty
// path or a missing file yields the defaults. Unknown keys are rejected.
func LoadTuning(ctx context.Context, path string) (*Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.FromContext(ctx).Warn(LogMsgTuningFileMissing, "path", path)
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgOpenTuningFailed, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(t); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf(ErrMsgDecodeTuningFailed, err)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate rejects settings that would break the economy's invariants
func (t *Tuning) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(t.Cooldowns.Draw >= 0 && t.Cooldowns.DrawWithPerk >= 0 &&
		t.Cooldowns.Daily >= 0 && t.Cooldowns.Farm >= 0, "cooldowns must not be negative")
	check(t.Cooldowns.DrawWithPerk <= t.Cooldowns.Draw, "draw_with_perk cooldown %v exceeds draw cooldown %v",
		t.Cooldowns.DrawWithPerk, t.Cooldowns.Draw)
	check(t.StartingBalance >= 0, "starting_balance must not be negative")
	check(t.SellRatePercent >= 0 && t.SellRatePercent <= 100, "sell_rate_percent %d outside [0,100]", t.SellRatePercent)
	check(t.UpgradeLuck >= 0 && t.UpgradeLuck <= 100, "upgrade_luck_bonus %v outside [0,100]", t.UpgradeLuck)
	check(t.ShopMaxRarity >= 0, "shop_max_rarity must not be negative")
	check(t.Daily.Reward > 0 && t.Daily.BonusReward > 0, "daily rewards must be positive")
	check(t.Farm.DefaultIncome > 0 && t.Farm.Hours > 0 && t.Farm.PerkIncomeStep > 0, "farm settings must be positive")
	check(t.Wager.WinChance >= 0 && t.Wager.WinChance <= 100, "win_chance %v outside [0,100]", t.Wager.WinChance)
	check(t.Wager.MinMultiplier >= 1 && t.Wager.MinMultiplier <= t.Wager.MaxMultiplier,
		"multiplier range [%d,%d] invalid", t.Wager.MinMultiplier, t.Wager.MaxMultiplier)
	check(len(t.Wager.Stakes) > 0 && !slices.ContainsFunc(t.Wager.Stakes, func(s int64) bool { return s <= 0 }),
		"stakes must be a non-empty list of positive amounts")
	check(t.Leaderboard.MaxLimit >= 1 && t.Leaderboard.DefaultLimit >= 1 &&
		t.Leaderboard.DefaultLimit <= t.Leaderboard.MaxLimit, "leaderboard limits invalid")
	check(t.Leaderboard.CacheTTL >= 0, "leaderboard cache_ttl must not be negative")

	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", ErrMsgInvalidTuning, errors.Join(errs...))
	}
	return nil
}
