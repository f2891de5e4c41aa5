package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound      = "user not found"
	ErrMsgRecipientNotFound = "recipient not found"
	ErrMsgSelfTransfer      = "cannot transfer to yourself"

	// Item errors
	ErrMsgItemNotFound      = "item not found"
	ErrMsgNotOwned          = "item is not owned by user"
	ErrMsgNoneOwned         = "no items of that rarity owned"
	ErrMsgAlreadyMaxRarity  = "item is already at maximum rarity"
	ErrMsgEmptyRarityPool   = "rarity tier has no catalog entries"
	ErrMsgInvalidRarity     = "invalid rarity"
	ErrMsgCatalogEntryFound = "catalog entry not found"

	// Economy errors
	ErrMsgInsufficientBalance = "insufficient balance"
	ErrMsgNotBuyable          = "is not buyable"
	ErrMsgInvalidAmount       = "amount must be positive"
	ErrMsgInvalidStake        = "stake is not allowed"
	ErrMsgUnknownPerk         = "unknown perk"
	ErrMsgPerkAlreadyOwned    = "perk already owned"

	// Database/System errors
	ErrMsgStoreUnavailable = "store unavailable"
	ErrMsgTxClosed         = "tx is closed"

	// Cooldown errors
	ErrMsgOnCooldown = "action on cooldown"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound      = errors.New(ErrMsgUserNotFound)
	ErrRecipientNotFound = errors.New(ErrMsgRecipientNotFound)
	ErrSelfTransfer      = errors.New(ErrMsgSelfTransfer)

	// Item errors
	ErrItemNotFound         = errors.New(ErrMsgItemNotFound)
	ErrNotOwned             = errors.New(ErrMsgNotOwned)
	ErrNoneOwned            = errors.New(ErrMsgNoneOwned)
	ErrAlreadyMaxRarity     = errors.New(ErrMsgAlreadyMaxRarity)
	ErrEmptyRarityPool      = errors.New(ErrMsgEmptyRarityPool)
	ErrInvalidRarity        = errors.New(ErrMsgInvalidRarity)
	ErrCatalogEntryNotFound = errors.New(ErrMsgCatalogEntryFound)

	// Economy errors
	ErrInsufficientBalance = errors.New(ErrMsgInsufficientBalance)
	ErrNotBuyable          = errors.New(ErrMsgNotBuyable)
	ErrInvalidAmount       = errors.New(ErrMsgInvalidAmount)
	ErrInvalidStake        = errors.New(ErrMsgInvalidStake)
	ErrUnknownPerk         = errors.New(ErrMsgUnknownPerk)
	ErrPerkAlreadyOwned    = errors.New(ErrMsgPerkAlreadyOwned)

	// Database/System errors
	// ErrStoreUnavailable marks transient store failures (timeouts, lock waits,
	// serialization conflicts). Callers may retry.
	ErrStoreUnavailable = errors.New(ErrMsgStoreUnavailable)

	// Cooldown errors
	ErrOnCooldown = errors.New(ErrMsgOnCooldown)

	// Input errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
