package user

import "time"

// ============================================================================
// Cache Configuration
// ============================================================================

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// DefaultCacheSize is the default maximum number of cache entries
const DefaultCacheSize = 1000

// DefaultCacheTTL is the default time-to-live for cache entries
const DefaultCacheTTL = 5 * time.Minute

// DefaultStartingBalance is the balance of a new account
const DefaultStartingBalance = 500

// ============================================================================
// Achievements
// ============================================================================

const (
	AchievementFirstPhone = "first_phone"
	AchievementCollector1 = "collector_1"
	AchievementCollector2 = "collector_2"
	AchievementCollector3 = "collector_3"
	AchievementRich1      = "rich_1"
	AchievementRich2      = "rich_2"
	AchievementRich3      = "rich_3"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgBeginTxFailed     = "failed to begin transaction: %w"
	ErrMsgUpsertFailed      = "failed to register user: %w"
	ErrMsgCommitFailed      = "failed to commit registration: %w"
	ErrMsgGetUserFailed     = "failed to get user: %w"
	ErrMsgCollectionValue   = "failed to compute collection value: %w"
	ErrMsgRankFailed        = "failed to compute rank: %w"
	ErrMsgGetPerksFailed    = "failed to get perks: %w"
	ErrMsgLookupFailed      = "failed to look up username: %w"
	ErrFmtMissingID         = "%w: user id is required"
	ErrFmtRecipientNotFound = "%w: %q"
	ErrFmtUsernameNotFound  = "%w: username %q"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgUserRegistered = "User registered"
	LogMsgUserRefreshed  = "User names refreshed"
	LogMsgCacheHit       = "Username cache hit"
)
