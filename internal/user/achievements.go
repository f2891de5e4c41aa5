package user

import "github.com/osse101/PhonesBot_Go/internal/domain"

type milestone struct {
	key       string
	threshold int64
	value     func(u *domain.User) int64
}

func itemCount(u *domain.User) int64 { return int64(u.TotalItems) }
func balance(u *domain.User) int64   { return u.Balance }

var milestones = []milestone{
	{AchievementFirstPhone, 1, itemCount},
	{AchievementCollector1, 10, itemCount},
	{AchievementCollector2, 50, itemCount},
	{AchievementCollector3, 100, itemCount},
	{AchievementRich1, 1000, balance},
	{AchievementRich2, 10000, balance},
	{AchievementRich3, 100000, balance},
}

// Achievements derives the milestones u has reached. Nothing is stored, so
// a user who sells below a threshold loses it again.
func Achievements(u *domain.User) []domain.Achievement {
	out := make([]domain.Achievement, 0, len(milestones))
	for _, m := range milestones {
		if m.value(u) >= m.threshold {
			out = append(out, domain.Achievement{Key: m.key, Threshold: m.threshold})
		}
	}
	return out
}
