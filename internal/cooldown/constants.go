package cooldown

import "time"

const (
	// DefaultCooldownDuration is the fallback cooldown when no specific duration is configured
	DefaultCooldownDuration = 5 * time.Minute
)

const (
	// LogMsgDevModeBypass is logged when dev mode bypasses cooldown enforcement
	LogMsgDevModeBypass = "DEV_MODE: Bypassing cooldown enforcement"

	// LogMsgCooldownActive is logged at debug level when a gate rejects an action
	LogMsgCooldownActive = "Action rejected by cooldown"
)

// Format strings for ErrOnCooldown.Error()
const (
	ErrFmtCooldownWithHours   = "You can %s again in %dh %dm"
	ErrFmtCooldownWithMinutes = "You can %s again in %dm %ds"
	ErrFmtCooldownSecondsOnly = "You can %s again in %ds"
)
