package reward

// Error messages
const (
	ErrMsgBeginTxFailed    = "failed to begin transaction: %w"
	ErrMsgGetUserFailed    = "failed to get user: %w"
	ErrMsgGetPerksFailed   = "failed to get perks: %w"
	ErrMsgInsertItemFailed = "failed to insert drawn item: %w"
	ErrMsgUpdateUserFailed = "failed to update user: %w"
	ErrMsgCommitFailed     = "failed to commit draw: %w"
)

// Log messages
const (
	LogMsgDrawCalled    = "DrawCard called"
	LogMsgCardDrawn     = "Card drawn"
	LogMsgEmptyPoolDraw = "Draw landed on a rarity tier with no catalog entries"
)
