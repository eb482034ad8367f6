package service

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"time"

	"github.com/templui/footprint/internal/gamification"
	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/repository"
	"gopkg.in/yaml.v3"
)

var ErrChallengeClosed = errors.New("challenge is not running")

// Participation is a joined challenge with the user's progress.
type Participation struct {
	Challenge *model.Challenge            `json:"challenge"`
	Progress  *model.ChallengeParticipant `json:"progress"`
}

type ChallengeService struct {
	repo          repository.ChallengeRepository
	activities    repository.ActivityRepository
	stats         repository.StatsRepository
	gamification  *GamificationService
	notifications *NotificationService
	now           func() time.Time
}

func NewChallengeService(
	repo repository.ChallengeRepository,
	activities repository.ActivityRepository,
	stats repository.StatsRepository,
	gamification *GamificationService,
	notifications *NotificationService,
) *ChallengeService {
	return &ChallengeService{
		repo:          repo,
		activities:    activities,
		stats:         stats,
		gamification:  gamification,
		notifications: notifications,
		now:           time.Now,
	}
}

func (s *ChallengeService) today() string {
	return s.now().Format(gamification.DateLayout)
}

// SeedCatalog upserts catalog/challenges.yaml from content.
func (s *ChallengeService) SeedCatalog(content fs.FS) error {
	raw, err := fs.ReadFile(content, "catalog/challenges.yaml")
	if err != nil {
		return fmt.Errorf("failed to read challenge catalog: %w", err)
	}

	var challenges []*model.Challenge
	err = yaml.Unmarshal(raw, &challenges)
	if err != nil {
		return fmt.Errorf("failed to parse challenge catalog: %w", err)
	}

	for _, c := range challenges {
		err = s.repo.Upsert(c)
		if err != nil {
			return fmt.Errorf("failed to upsert challenge %s: %w", c.ID, err)
		}
	}
	slog.Info("challenge catalog seeded", "count", len(challenges))
	return nil
}

// List returns the challenges running today.
func (s *ChallengeService) List() ([]*model.Challenge, error) {
	challenges, err := s.repo.Active(s.today())
	if err != nil {
		return nil, err
	}
	if challenges == nil {
		challenges = []*model.Challenge{}
	}
	return challenges, nil
}

// Join enrolls the user once and computes the starting progress, so a
// target the user already meets completes right away.
func (s *ChallengeService) Join(userID, challengeID string) (*model.ChallengeParticipant, error) {
	c, err := s.repo.ByID(challengeID)
	if err != nil {
		return nil, err
	}
	if !c.IsActive || !c.Ongoing(s.today()) {
		return nil, ErrChallengeClosed
	}

	p, err := s.repo.Join(c.ID, userID)
	if err != nil {
		return nil, err
	}
	slog.Info("challenge joined", "user_id", userID, "challenge_id", c.ID)

	err = s.update(c, p)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ChallengeService) Leave(userID, challengeID string) error {
	return s.repo.Leave(challengeID, userID)
}

func (s *ChallengeService) Mine(userID string) ([]Participation, error) {
	ps, err := s.repo.ByUser(userID)
	if err != nil {
		return nil, err
	}

	out := make([]Participation, 0, len(ps))
	for _, p := range ps {
		c, err := s.repo.ByID(p.ChallengeID)
		if err != nil {
			return nil, err
		}
		out = append(out, Participation{Challenge: c, Progress: p})
	}
	return out, nil
}

// Refresh recomputes every open participation of the user. It runs after
// each activity.
func (s *ChallengeService) Refresh(userID string) error {
	open, err := s.repo.Open(userID)
	if err != nil {
		return fmt.Errorf("failed to list participations: %w", err)
	}

	for _, p := range open {
		c, err := s.repo.ByID(p.ChallengeID)
		if err != nil {
			return err
		}
		err = s.update(c, p)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *ChallengeService) update(c *model.Challenge, p *model.ChallengeParticipant) error {
	progress, err := s.progress(c, p.UserID)
	if err != nil {
		return err
	}

	if progress < 100 {
		if progress == p.Progress {
			return nil
		}
		p.Progress = progress
		return s.repo.SaveProgress(p)
	}

	done, err := s.repo.Complete(c.ID, p.UserID)
	if err != nil {
		return fmt.Errorf("failed to complete challenge: %w", err)
	}
	if !done {
		return nil
	}
	now := s.now()
	p.Progress = 100
	p.Completed = true
	p.CompletedAt = &now

	if c.RewardPoints > 0 {
		_, err = s.gamification.Credit(p.UserID, Gain{Points: c.RewardPoints})
		if err != nil {
			return err
		}
	}
	s.notifications.Notify(p.UserID, model.NotificationChallenge, "Challenge completed: "+c.Name,
		fmt.Sprintf("You earned %d points and the %s badge.", c.RewardPoints, c.BadgeName), c.ID)
	slog.Info("challenge completed", "user_id", p.UserID, "challenge_id", c.ID)
	return nil
}

// progress is the share of the target reached, in percent capped at 100.
func (s *ChallengeService) progress(c *model.Challenge, userID string) (float64, error) {
	if c.TargetValue <= 0 {
		return 0, nil
	}

	var value float64
	switch c.TargetType {
	case model.ChallengeTargetCO2Saved:
		saved, err := s.activities.SavedBetween(userID, c.StartDate, c.EndDate)
		if err != nil {
			return 0, err
		}
		value = saved
	case model.ChallengeTargetActivities:
		n, err := s.activities.Count(userID, c.StartDate, c.EndDate)
		if err != nil {
			return 0, err
		}
		value = float64(n)
	case model.ChallengeTargetStreak:
		stats, err := s.stats.Get(userID)
		if err != nil {
			return 0, err
		}
		value = float64(stats.CurrentStreak)
	default:
		return 0, nil
	}

	return math.Min(100, math.Round(value/c.TargetValue*1000)/10), nil
}
