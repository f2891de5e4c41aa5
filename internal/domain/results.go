package domain

import "time"

// DrawResult is returned by a successful card draw
type DrawResult struct {
	Item      Item      `json:"item"`
	DrawCount int       `json:"draw_count"`
	NextDraw  time.Time `json:"next_draw"`
}

// UpgradeResult describes the outcome of an upgrade attempt.
// NewItem is nil when the upgrade failed and the item was destroyed.
type UpgradeResult struct {
	Success bool    `json:"success"`
	OldItem Item    `json:"old_item"`
	NewItem *Item   `json:"new_item,omitempty"`
	Delta   int64   `json:"delta"`
	Chance  float64 `json:"chance"`
	Roll    float64 `json:"roll"`
}

// SaleResult is returned by single and bulk sales
type SaleResult struct {
	Count    int   `json:"count"`
	Proceeds int64 `json:"proceeds"`
	Balance  int64 `json:"balance"`
}

// TransferResult is returned by a peer transfer
type TransferResult struct {
	SenderID         string `json:"sender_id"`
	RecipientID      string `json:"recipient_id"`
	RecipientName    string `json:"recipient_name"`
	Amount           int64  `json:"amount"`
	SenderBalance    int64  `json:"sender_balance"`
	RecipientBalance int64  `json:"recipient_balance"`
}

// WagerResult is the outcome of one roulette spin. Multiplier is zero on a loss.
type WagerResult struct {
	Won        bool  `json:"won"`
	Stake      int64 `json:"stake"`
	Multiplier int   `json:"multiplier,omitempty"`
	Delta      int64 `json:"delta"`
	Balance    int64 `json:"balance"`
}

// ClaimResult is returned by daily and farm claims
type ClaimResult struct {
	Reward    int64     `json:"reward"`
	Balance   int64     `json:"balance"`
	NextClaim time.Time `json:"next_claim"`
}
