package jobs

import (
	"time"

	"github.com/templui/footprint/internal/repository"
	"github.com/templui/footprint/internal/service"
)

// Job names, also accepted by RunNow.
const (
	ResetStreaks       = "reset-streaks"
	CleanupTokens      = "cleanup-tokens"
	PurgeNotifications = "purge-notifications"
	CompleteGoals      = "complete-goals"
	WeeklyDigest       = "weekly-digest"
)

const (
	tokenRetention        = 30 * 24 * time.Hour
	notificationRetention = 90 * 24 * time.Hour
)

// Services are the dependencies of the maintenance jobs.
type Services struct {
	Gamification  *service.GamificationService
	Tokens        repository.TokenRepository
	Notifications *service.NotificationService
	Goals         *service.GoalService
	Digests       *service.DigestService
}

// Maintenance returns the standard job set. digestSpec schedules the weekly
// digest email.
func Maintenance(s Services, digestSpec string) []Job {
	return []Job{
		{
			Name: ResetStreaks,
			Spec: "5 0 * * *",
			Run:  s.Gamification.ResetLapsedStreaks,
		},
		{
			Name: CleanupTokens,
			Spec: "0 3 * * *",
			Run: func() (int64, error) {
				return s.Tokens.CleanupExpired(tokenRetention)
			},
		},
		{
			Name: PurgeNotifications,
			Spec: "0 4 * * *",
			Run: func() (int64, error) {
				return s.Notifications.Purge(notificationRetention)
			},
		},
		{
			Name: CompleteGoals,
			Spec: "@hourly",
			Run: func() (int64, error) {
				n, err := s.Goals.CompleteReached()
				return int64(n), err
			},
		},
		{
			Name: WeeklyDigest,
			Spec: digestSpec,
			Run: func() (int64, error) {
				n, err := s.Digests.SendWeekly()
				return int64(n), err
			},
		},
	}
}
