package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "item.sold")
const (
	// EventTypeCardDrawn is published after a card draw commits
	EventTypeCardDrawn = "card.drawn"

	// EventTypeItemUpgraded is published after an upgrade attempt commits, successful or not
	EventTypeItemUpgraded = "item.upgraded"

	// EventTypeItemBought is published after a catalog purchase
	EventTypeItemBought = "item.bought"

	// EventTypeItemSold is published after a single or bulk sale
	EventTypeItemSold = "item.sold"

	// EventTypePointsTransferred is published after a peer transfer
	EventTypePointsTransferred = "points.transferred"

	// EventTypeWagerSettled is published after a roulette spin
	EventTypeWagerSettled = "wager.settled"

	// EventTypeRewardClaimed is published after a daily or farm claim
	EventTypeRewardClaimed = "reward.claimed"

	// EventTypePerkPurchased is published after a perk purchase
	EventTypePerkPurchased = "perk.purchased"

	// EventTypeUserRegistered is published when a new account is created
	EventTypeUserRegistered = "user.registered"
)

// CardDrawnPayload is the payload for EventTypeCardDrawn
type CardDrawnPayload struct {
	UserID    string `json:"user_id"`
	ItemID    int64  `json:"item_id"`
	ItemName  string `json:"item_name"`
	Rarity    Rarity `json:"rarity"`
	Price     int64  `json:"price"`
	Timestamp int64  `json:"timestamp"`
}

// ItemUpgradedPayload is the payload for EventTypeItemUpgraded
type ItemUpgradedPayload struct {
	UserID     string `json:"user_id"`
	Success    bool   `json:"success"`
	FromRarity Rarity `json:"from_rarity"`
	Delta      int64  `json:"delta"`
	Timestamp  int64  `json:"timestamp"`
}

// ItemTradedPayload is the payload for EventTypeItemBought and EventTypeItemSold
type ItemTradedPayload struct {
	UserID     string `json:"user_id"`
	Count      int    `json:"count"`
	Rarity     Rarity `json:"rarity"`
	TotalValue int64  `json:"total_value"`
	Timestamp  int64  `json:"timestamp"`
}

// PointsTransferredPayload is the payload for EventTypePointsTransferred
type PointsTransferredPayload struct {
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`
	Amount      int64  `json:"amount"`
	Timestamp   int64  `json:"timestamp"`
}

// WagerSettledPayload is the payload for EventTypeWagerSettled
type WagerSettledPayload struct {
	UserID     string `json:"user_id"`
	Won        bool   `json:"won"`
	Stake      int64  `json:"stake"`
	Multiplier int    `json:"multiplier"`
	Delta      int64  `json:"delta"`
	Timestamp  int64  `json:"timestamp"`
}

// RewardClaimedPayload is the payload for EventTypeRewardClaimed
type RewardClaimedPayload struct {
	UserID    string `json:"user_id"`
	Source    string `json:"source"`
	Amount    int64  `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

// PerkPurchasedPayload is the payload for EventTypePerkPurchased
type PerkPurchasedPayload struct {
	UserID    string `json:"user_id"`
	Perk      Perk   `json:"perk"`
	Price     int64  `json:"price"`
	Timestamp int64  `json:"timestamp"`
}

// UserRegisteredPayload is the payload for EventTypeUserRegistered
type UserRegisteredPayload struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Timestamp int64  `json:"timestamp"`
}
