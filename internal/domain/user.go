package domain

import "time"

// User is a player account. Balance is never negative after a committed
// operation and TotalItems always equals the number of items owned.
type User struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name"`
	Balance     int64      `json:"balance"`
	DrawCount   int        `json:"draw_count"`
	TotalItems  int        `json:"total_items"`
	FarmIncome  int64      `json:"farm_income"`
	LastDrawAt  *time.Time `json:"last_draw_at,omitempty"`
	LastDailyAt *time.Time `json:"last_daily_at,omitempty"`
	LastFarmAt  *time.Time `json:"last_farm_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LeaderboardEntry is one row of the balance leaderboard
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	Balance   int64  `json:"balance"`
	ItemCount int    `json:"item_count"`
}

// Profile is the account overview shown to a user
type Profile struct {
	User            User          `json:"user"`
	CollectionValue int64         `json:"collection_value"`
	Rank            int           `json:"rank"`
	Perks           []Perk        `json:"perks"`
	Achievements    []Achievement `json:"achievements"`
}

// Achievement is a milestone derived from account counters
type Achievement struct {
	Key       string `json:"key"`
	Threshold int64  `json:"threshold"`
}
