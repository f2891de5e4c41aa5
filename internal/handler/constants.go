package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidItemID         = "Invalid item id"
	ErrMsgInvalidRarityParam    = "Invalid rarity parameter"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
)

// User-facing messages derived from domain errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnavailableError   = "Server is temporarily unavailable. Please try again later."
	ErrMsgEmptyPoolError     = "No phones are available for that rarity"

	ErrMsgUserNotFoundError      = "User not found"
	ErrMsgRecipientNotFoundError = "Recipient not found"
	ErrMsgItemNotFoundError      = "Item not found"
	ErrMsgCatalogEntryError      = "That phone is not in the catalog"
	ErrMsgNotOwnedError          = "You don't own that phone"
	ErrMsgNoneOwnedError         = "You don't own any phones of that rarity"
	ErrMsgMaxRarityError         = "That phone is already at the highest rarity"
	ErrMsgNotEnoughPointsError   = "Not enough points"
	ErrMsgNotBuyableError        = "That rarity cannot be bought"
	ErrMsgSelfTransferError      = "You cannot send points to yourself"
	ErrMsgInvalidAmountError     = "Amount must be positive"
	ErrMsgInvalidStakeError      = "That stake is not allowed"
	ErrMsgInvalidRarityError     = "Invalid rarity"
	ErrMsgUnknownPerkError       = "Unknown perk"
	ErrMsgPerkOwnedError         = "You already own that perk"
	ErrMsgOnCooldownError        = "Action is on cooldown. Try again later"
	ErrMsgInvalidInputError      = "Invalid request. Please check your inputs."
)

// Log messages
const (
	LogMsgDecodeFailed    = "Failed to decode request"
	LogMsgRequestDecoded  = "Request decoded"
	LogMsgServiceError    = "Request failed"
	LogMsgServerError     = "Request failed with server error"
	LogMsgReadinessFailed = "Readiness check failed"
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
)

// Health check values
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	HealthMsgStoreDown      = "store ping failed"
)

// Query and path parameter names
const (
	ParamUserID = "id"
	ParamItemID = "itemID"
	ParamRarity = "rarity"
	ParamLimit  = "limit"
)

// HeaderRetryAfter is set on 429 and 503 responses
const HeaderRetryAfter = "Retry-After"

// storeRetryAfterSeconds is advertised when the store is unavailable
const storeRetryAfterSeconds = 1
