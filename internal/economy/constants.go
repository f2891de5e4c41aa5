package economy

import "time"

// DefaultLeaderboardCacheSize bounds the number of distinct limits cached
const DefaultLeaderboardCacheSize = 16

// LeaderboardLoadTimeout bounds one shared leaderboard read
const LeaderboardLoadTimeout = 5 * time.Second

// ==================== Error Messages ====================

// Database operation error messages
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgGetUserFailed           = "failed to get user: %w"
	ErrMsgGetItemFailed           = "failed to get item %d: %w"
	ErrMsgGetPerksFailed          = "failed to get perks: %w"
	ErrMsgListItemsFailed         = "failed to list items: %w"
	ErrMsgInsertItemFailed        = "failed to insert item: %w"
	ErrMsgDeleteItemFailed        = "failed to delete item %d: %w"
	ErrMsgDeleteItemsFailed       = "failed to delete items of rarity %d: %w"
	ErrMsgUpdateUserFailed        = "failed to update user %s: %w"
	ErrMsgAddPerkFailed           = "failed to record perk: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgLeaderboardFailed       = "failed to load leaderboard: %w"
	ErrMsgResolveRecipientFailed  = "failed to resolve recipient: %w"
)

// Formatted domain error details
const (
	ErrFmtNotOwned          = "%w: item %d"
	ErrFmtInsufficient      = "%w: need %d, have %d"
	ErrFmtCatalogEntry      = "%w: %q in tier %d"
	ErrFmtNotBuyable        = "%w: tier %d %s"
	ErrFmtInvalidRarity     = "%w: %d"
	ErrFmtInvalidStake      = "%w: %d"
	ErrFmtInvalidAmount     = "%w: %d"
	ErrFmtUnknownPerk       = "%w: %q"
	ErrFmtPerkAlreadyOwned  = "%w: %s"
	ErrFmtNoneOwned         = "%w: tier %d"
	ErrFmtRecipientVanished = "%w: %s"
)

// ==================== Log Messages ====================

const (
	LogMsgBuyCalled         = "Buy called"
	LogMsgItemPurchased     = "Item purchased"
	LogMsgSellCalled        = "Sell called"
	LogMsgItemSold          = "Item sold"
	LogMsgSellAllCalled     = "SellAll called"
	LogMsgItemsSold         = "Items sold in bulk"
	LogMsgTransferCalled    = "Transfer called"
	LogMsgPointsTransferred = "Points transferred"
	LogMsgWagerCalled       = "Wager called"
	LogMsgWagerSettled      = "Wager settled"
	LogMsgDailyClaimed      = "Daily reward claimed"
	LogMsgFarmCollected     = "Farm income collected"
	LogMsgPerkPurchased     = "Perk purchased"
	LogMsgLeaderboardLoaded = "Leaderboard loaded from store"
)
