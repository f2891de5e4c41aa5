package upgrade

// DefaultLuckBonus is the percentage points the upgrade_luck perk adds
const DefaultLuckBonus = 5.0

// MaxChance caps any boosted upgrade chance
const MaxChance = 100.0

// Error messages
const (
	ErrMsgBeginTxFailed    = "failed to begin transaction: %w"
	ErrMsgGetUserFailed    = "failed to get user: %w"
	ErrMsgGetItemFailed    = "failed to get item %d: %w"
	ErrMsgGetPerksFailed   = "failed to get perks: %w"
	ErrMsgDeleteItemFailed = "failed to delete item %d: %w"
	ErrMsgInsertItemFailed = "failed to insert upgraded item: %w"
	ErrMsgUpdateUserFailed = "failed to update user: %w"
	ErrMsgCommitFailed     = "failed to commit upgrade: %w"
	ErrFmtNotOwned         = "%w: item %d"
	ErrFmtMaxRarity        = "%w: item %d is rarity %d"
)

// Log messages
const (
	LogMsgUpgradeCalled    = "Upgrade called"
	LogMsgUpgradeSucceeded = "Upgrade succeeded"
	LogMsgUpgradeFailed    = "Upgrade failed, item destroyed"
	LogMsgEmptyPoolUpgrade = "Upgrade target tier has no catalog entries"
)
