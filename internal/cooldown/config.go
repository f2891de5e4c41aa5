package cooldown

import (
	"time"

	"github.com/osse101/PhonesBot_Go/internal/domain"
)

// Config holds cooldown service configuration
type Config struct {
	// DevMode bypasses all cooldowns when true
	DevMode bool

	// Cooldowns overrides the built-in duration per action
	Cooldowns map[string]time.Duration
}

var builtInDurations = map[string]time.Duration{
	domain.ActionDraw:         domain.DrawCooldownDuration,
	domain.ActionDrawWithPerk: domain.DrawCooldownDurationWithPerk,
	domain.ActionDaily:        domain.DailyCooldownDuration,
	domain.ActionFarm:         domain.FarmCooldownDuration,
}

// GetCooldownDuration returns the configured duration for action, then the
// built-in one, then DefaultCooldownDuration for unknown actions. A zero
// override is honoured and means no cooldown.
func (c *Config) GetCooldownDuration(action string) time.Duration {
	if d, ok := c.Cooldowns[action]; ok {
		return d
	}
	if d, ok := builtInDurations[action]; ok {
		return d
	}
	return DefaultCooldownDuration
}
