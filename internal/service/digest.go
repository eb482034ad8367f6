package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/templui/footprint/internal/gamification"
	"github.com/templui/footprint/internal/repository"
)

// WeeklyDigest is one user's last seven days.
type WeeklyDigest struct {
	CarbonSaved float64
	Activities  int
	Level       int
	Streak      int
}

type DigestService struct {
	users        repository.UserRepository
	profiles     repository.ProfileRepository
	stats        repository.StatsRepository
	activities   repository.ActivityRepository
	emailService *EmailService
	now          func() time.Time
}

func NewDigestService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	stats repository.StatsRepository,
	activities repository.ActivityRepository,
	emailService *EmailService,
) *DigestService {
	return &DigestService{
		users:        users,
		profiles:     profiles,
		stats:        stats,
		activities:   activities,
		emailService: emailService,
		now:          time.Now,
	}
}

func (s *DigestService) Digest(userID string) (WeeklyDigest, error) {
	now := s.now()
	weekAgo := now.AddDate(0, 0, -7)

	stats, err := s.stats.Get(userID)
	if err != nil {
		return WeeklyDigest{}, err
	}
	saved, err := s.stats.CarbonSavedSince(userID, weekAgo)
	if err != nil {
		return WeeklyDigest{}, err
	}
	count, err := s.activities.Count(userID, weekAgo.Format(gamification.DateLayout), now.Format(gamification.DateLayout))
	if err != nil {
		return WeeklyDigest{}, err
	}

	return WeeklyDigest{
		CarbonSaved: saved,
		Activities:  count,
		Level:       gamification.Level(stats.Points),
		Streak:      stats.CurrentStreak,
	}, nil
}

// SendWeekly emails a digest to every user active in the last seven days.
// Failures for one user are logged and do not stop the run.
func (s *DigestService) SendWeekly() (int, error) {
	since := s.now().AddDate(0, 0, -7).Format(gamification.DateLayout)
	users, err := s.users.ActiveSince(since)
	if err != nil {
		return 0, fmt.Errorf("failed to list active users: %w", err)
	}

	sent := 0
	for _, u := range users {
		digest, err := s.Digest(u.ID)
		if err != nil {
			slog.Error("failed to build digest", "error", err, "user_id", u.ID)
			continue
		}

		name := "there"
		profile, err := s.profiles.ByUserID(u.ID)
		if err == nil && profile.Name != "" {
			name = profile.Name
		}

		err = s.emailService.SendWeeklyDigest(u.Email, name, digest)
		if err != nil {
			slog.Error("failed to send digest", "error", err, "user_id", u.ID)
			continue
		}
		sent++
	}
	return sent, nil
}
