// Package cooldown evaluates the lazy wall-clock gates on draws, daily
// claims and farm collection. The last-use timestamps live on the user row
// and are read under its lock, so the gate itself holds no state.
package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/logger"
)

// Service manages action cooldowns for users
type Service interface {
	// Check returns ErrOnCooldown when last is within the action's cooldown
	Check(ctx context.Context, userID, action string, last *time.Time) error

	// Duration returns the configured cooldown of action
	Duration(action string) time.Duration

	// NextAvailable returns when action may run again after a use at from
	NextAvailable(action string, from time.Time) time.Time

	// Now returns the service clock in UTC
	Now() time.Time
}

// ErrOnCooldown is returned when action is still on cooldown
type ErrOnCooldown struct {
	Action    string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	hours := int(e.Remaining.Hours())
	minutes := int(e.Remaining.Minutes()) % 60
	seconds := int(e.Remaining.Seconds()) % 60

	switch {
	case hours > 0:
		return fmt.Sprintf(ErrFmtCooldownWithHours, e.Action, hours, minutes)
	case minutes > 0:
		return fmt.Sprintf(ErrFmtCooldownWithMinutes, e.Action, minutes, seconds)
	default:
		return fmt.Sprintf(ErrFmtCooldownSecondsOnly, e.Action, seconds)
	}
}

// Is allows errors.Is() to match any ErrOnCooldown as well as domain.ErrOnCooldown
func (e ErrOnCooldown) Is(target error) bool {
	if target == domain.ErrOnCooldown {
		return true
	}
	_, ok := target.(ErrOnCooldown)
	return ok
}

// Option configures the service
type Option func(*service)

// WithClock replaces the wall clock, for tests
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

type service struct {
	config Config
	now    func() time.Time
}

// NewService creates a cooldown service
func NewService(config Config, opts ...Option) Service {
	s := &service{config: config, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Check(ctx context.Context, userID, action string, last *time.Time) error {
	if s.config.DevMode {
		logger.FromContext(ctx).Debug(LogMsgDevModeBypass, "user_id", userID, "action", action)
		return nil
	}

	remaining := Remaining(last, s.Duration(action), s.Now())
	if remaining <= 0 {
		return nil
	}

	logger.FromContext(ctx).Debug(LogMsgCooldownActive, "user_id", userID, "action", action, "remaining", remaining)
	if action == domain.ActionDrawWithPerk {
		action = domain.ActionDraw
	}
	return ErrOnCooldown{Action: action, Remaining: remaining}
}

func (s *service) Duration(action string) time.Duration {
	return s.config.GetCooldownDuration(action)
}

func (s *service) NextAvailable(action string, from time.Time) time.Time {
	return from.Add(s.Duration(action))
}

func (s *service) Now() time.Time {
	return s.now().UTC()
}

// Remaining returns how long is left on a cooldown of length d that started
// at last. A nil last, or an elapsed cooldown, yields 0.
func Remaining(last *time.Time, d time.Duration, now time.Time) time.Duration {
	if last == nil {
		return 0
	}
	elapsed := now.Sub(*last)
	if elapsed >= d {
		return 0
	}
	return d - elapsed
}
