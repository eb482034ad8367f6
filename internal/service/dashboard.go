package service

import (
	"errors"

	"github.com/templui/footprint/internal/gamification"
	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/repository"
	"golang.org/x/sync/errgroup"
)

// Overview is everything the dashboard shows on load.
type Overview struct {
	Profile        *model.Profile      `json:"profile"`
	Stats          *StatsView          `json:"stats"`
	Latest         *model.Calculation  `json:"latest_footprint,omitempty"`
	Rank           *gamification.Entry `json:"rank,omitempty"`
	Today          *ActivitySummary    `json:"today"`
	Challenges     []Participation     `json:"challenges"`
	Goals          []*GoalView         `json:"goals"`
	Tips           *ImplementedTips    `json:"tips"`
	UnreadMessages int                 `json:"unread_notifications"`
}

type DashboardService struct {
	profiles      *ProfileService
	footprints    *FootprintService
	gamification  *GamificationService
	leaderboard   *LeaderboardService
	activities    *ActivityService
	challenges    *ChallengeService
	goals         *GoalService
	tips          *TipService
	notifications *NotificationService
}

func NewDashboardService(
	profiles *ProfileService,
	footprints *FootprintService,
	gamification *GamificationService,
	leaderboard *LeaderboardService,
	activities *ActivityService,
	challenges *ChallengeService,
	goals *GoalService,
	tips *TipService,
	notifications *NotificationService,
) *DashboardService {
	return &DashboardService{
		profiles:      profiles,
		footprints:    footprints,
		gamification:  gamification,
		leaderboard:   leaderboard,
		activities:    activities,
		challenges:    challenges,
		goals:         goals,
		tips:          tips,
		notifications: notifications,
	}
}

// Overview loads the dashboard sections concurrently. A missing calculation
// or an unranked user leaves that section empty.
func (s *DashboardService) Overview(userID string) (*Overview, error) {
	o := &Overview{}
	var g errgroup.Group

	g.Go(func() error {
		var err error
		o.Profile, err = s.profiles.ByUserID(userID)
		if err != nil {
			return err
		}
		o.Rank, err = s.leaderboard.UserRank(userID, o.Profile.Category)
		if errors.Is(err, ErrNotRanked) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		var err error
		o.Stats, err = s.gamification.Stats(userID)
		return err
	})
	g.Go(func() error {
		latest, err := s.footprints.Latest(userID)
		if errors.Is(err, repository.ErrCalculationNotFound) {
			return nil
		}
		o.Latest = latest
		return err
	})
	g.Go(func() error {
		var err error
		o.Today, err = s.activities.Summary(userID, PeriodDay)
		return err
	})
	g.Go(func() error {
		var err error
		o.Challenges, err = s.challenges.Mine(userID)
		return err
	})
	g.Go(func() error {
		var err error
		o.Goals, err = s.goals.Goals(userID, repository.GoalSortDeadline)
		return err
	})
	g.Go(func() error {
		var err error
		o.Tips, err = s.tips.Implemented(userID)
		return err
	})
	g.Go(func() error {
		var err error
		o.UnreadMessages, err = s.notifications.UnreadCount(userID)
		return err
	})

	err := g.Wait()
	if err != nil {
		return nil, err
	}
	return o, nil
}
