package domain

import "time"

// Cooldown action names
const (
	ActionDraw         = "draw"
	ActionDrawWithPerk = "draw_with_perk"
	ActionDaily        = "daily"
	ActionFarm         = "farm"
)

// Default cooldown durations
const (
	DrawCooldownDuration         = 3 * time.Hour
	DrawCooldownDurationWithPerk = 150 * time.Minute
	DailyCooldownDuration        = 24 * time.Hour
	FarmCooldownDuration         = 24 * time.Hour
)

// Reward sources used in events and metrics
const (
	RewardSourceDaily = "daily"
	RewardSourceFarm  = "farm"
	RewardSourceWager = "wager"
	RewardSourceSale  = "sale"
)
