package service

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/templui/footprint/internal/emissions"
	"github.com/templui/footprint/internal/gamification"
	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/repository"
)

// Gain is a change to a user's eco stats. Points may be negative to revoke.
type Gain struct {
	Points   int
	CarbonKg float64
	Trees    int
	// Action counts towards the action total.
	Action bool
	// Active marks today as an active day and advances the streak.
	Active bool
}

// Outcome is the user's state after a Gain.
type Outcome struct {
	Stats           *model.EcoStats            `json:"stats"`
	Level           gamification.LevelProgress `json:"level"`
	LevelUp         bool                       `json:"level_up"`
	NewAchievements []gamification.Achievement `json:"new_achievements"`
	Action          *model.UserAction          `json:"action,omitempty"`
}

type AchievementStatus struct {
	gamification.Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// StatsView is the profile snapshot served to clients.
type StatsView struct {
	Points        int                        `json:"points"`
	PointsSpent   int                        `json:"points_spent"`
	Balance       int                        `json:"balance"`
	Level         gamification.LevelProgress `json:"level"`
	TreesPlanted  int                        `json:"trees_planted"`
	CarbonSaved   float64                    `json:"carbon_saved"`
	ActionsCount  int                        `json:"actions_count"`
	CurrentStreak int                        `json:"current_streak"`
	LongestStreak int                        `json:"longest_streak"`
	DaysActive    int                        `json:"days_active"`
	Equivalents   emissions.Equivalents      `json:"equivalents"`
	Achievements  []AchievementStatus        `json:"achievements"`
}

type GamificationService struct {
	stats         repository.StatsRepository
	calculations  repository.CalculationRepository
	tips          repository.TipRepository
	notifications *NotificationService

	onActivity []func(userID string) error
	locks      sync.Map
	now        func() time.Time
}

func NewGamificationService(
	stats repository.StatsRepository,
	calculations repository.CalculationRepository,
	tips repository.TipRepository,
	notifications *NotificationService,
) *GamificationService {
	return &GamificationService{
		stats:         stats,
		calculations:  calculations,
		tips:          tips,
		notifications: notifications,
		now:           time.Now,
	}
}

// OnActivity registers fn to run after every Gain that marks the user active.
func (s *GamificationService) OnActivity(fn func(userID string) error) {
	s.onActivity = append(s.onActivity, fn)
}

func (s *GamificationService) lock(userID string) func() {
	m, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// LogAction records quantity units of a catalog action and credits its
// points and carbon.
func (s *GamificationService) LogAction(userID, actionType string, quantity int, details string) (*Outcome, error) {
	if quantity == 0 {
		quantity = 1
	}
	reward, err := gamification.Apply(actionType, quantity)
	if err != nil {
		return nil, err
	}

	action := &model.UserAction{
		UserID:     userID,
		ActionType: actionType,
		Quantity:   quantity,
		Points:     reward.Points,
		CarbonKg:   reward.CarbonKg,
		Details:    strings.TrimSpace(details),
	}
	err = s.stats.RecordAction(action)
	if err != nil {
		return nil, fmt.Errorf("failed to record action: %w", err)
	}

	outcome, err := s.Credit(userID, Gain{
		Points:   reward.Points,
		CarbonKg: reward.CarbonKg,
		Trees:    reward.TreesPlanted,
		Action:   true,
		Active:   true,
	})
	if err != nil {
		return nil, err
	}
	outcome.Action = action

	slog.Info("action logged", "user_id", userID, "action", actionType, "quantity", quantity, "points", reward.Points)
	return outcome, nil
}

// Credit applies g to the user's stats, then re-checks achievements.
func (s *GamificationService) Credit(userID string, g Gain) (*Outcome, error) {
	stats, before, err := s.apply(userID, g)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		Stats: stats,
		Level: gamification.Progress(stats.Points),
	}

	if outcome.Level.Level > before {
		outcome.LevelUp = true
		s.notifications.Notify(userID, model.NotificationLevelUp,
			fmt.Sprintf("Level %d reached", outcome.Level.Level),
			fmt.Sprintf("You reached level %d with %d points.", outcome.Level.Level, stats.Points), "")
	}

	if g.Active {
		for _, fn := range s.onActivity {
			hookErr := fn(userID)
			if hookErr != nil {
				slog.Error("activity hook failed", "error", hookErr, "user_id", userID)
			}
		}
	}

	outcome.NewAchievements, err = s.CheckAchievements(userID)
	if err != nil {
		return nil, err
	}

	// hooks and achievements may have moved the numbers again
	latest, err := s.stats.Get(userID)
	if err == nil {
		outcome.Stats = latest
		outcome.Level = gamification.Progress(latest.Points)
	}

	return outcome, nil
}

// Revoke takes back points that were credited earlier. It fails with
// repository.ErrInsufficientPoints when the points were already spent.
func (s *GamificationService) Revoke(userID string, points int) error {
	unlock := s.lock(userID)
	defer unlock()

	return s.stats.AddPoints(userID, -points)
}

func (s *GamificationService) apply(userID string, g Gain) (*model.EcoStats, int, error) {
	unlock := s.lock(userID)
	defer unlock()

	stats, err := s.stats.Get(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get stats: %w", err)
	}
	before := gamification.Level(stats.Points)

	stats.Points += g.Points
	if stats.Points < stats.PointsSpent {
		stats.Points = stats.PointsSpent
	}
	stats.CarbonSaved = emissions.Round3(stats.CarbonSaved + g.CarbonKg)
	stats.TreesPlanted += g.Trees
	if g.Action {
		stats.ActionsCount++
	}

	if g.Active {
		now := s.now()
		streak := gamification.Streak{
			Current:  stats.CurrentStreak,
			Longest:  stats.LongestStreak,
			LastDate: stats.LastActiveDate,
		}.Touch(now)
		stats.CurrentStreak = streak.Current
		stats.LongestStreak = streak.Longest
		stats.LastActiveDate = streak.LastDate

		err = s.stats.MarkActiveDay(userID, now.Format(gamification.DateLayout))
		if err != nil {
			return nil, 0, fmt.Errorf("failed to mark active day: %w", err)
		}
	}

	err = s.stats.Save(stats)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to save stats: %w", err)
	}
	return stats, before, nil
}

func (s *GamificationService) Snapshot(userID string) (gamification.Snapshot, error) {
	stats, err := s.stats.Get(userID)
	if err != nil {
		return gamification.Snapshot{}, err
	}
	days, err := s.stats.DaysActive(userID)
	if err != nil {
		return gamification.Snapshot{}, err
	}
	footprints, err := s.calculations.Count(userID)
	if err != nil {
		return gamification.Snapshot{}, err
	}
	tips, err := s.tips.Count(userID)
	if err != nil {
		return gamification.Snapshot{}, err
	}

	return gamification.Snapshot{
		Points:          stats.Points,
		TreesPlanted:    stats.TreesPlanted,
		CarbonSaved:     stats.CarbonSaved,
		ActionsCount:    stats.ActionsCount,
		DaysActive:      days,
		LongestStreak:   stats.LongestStreak,
		Footprints:      footprints,
		ImplementedTips: tips,
	}, nil
}

// CheckAchievements unlocks every achievement the user now qualifies for
// and returns the ones unlocked by this call.
func (s *GamificationService) CheckAchievements(userID string) ([]gamification.Achievement, error) {
	snap, err := s.Snapshot(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot: %w", err)
	}

	rows, err := s.stats.Achievements(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get achievements: %w", err)
	}
	unlocked := make(map[string]bool, len(rows))
	for _, row := range rows {
		unlocked[row.AchievementID] = true
	}

	var fresh []gamification.Achievement
	for _, a := range gamification.Evaluate(snap, unlocked) {
		isNew, err := s.stats.Unlock(userID, a.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to unlock %s: %w", a.ID, err)
		}
		if !isNew {
			continue
		}
		fresh = append(fresh, a)
		s.notifications.Notify(userID, model.NotificationAchievement,
			"Achievement unlocked: "+a.Name, a.Description, a.ID)
		slog.Info("achievement unlocked", "user_id", userID, "achievement", a.ID)
	}
	return fresh, nil
}

func (s *GamificationService) Achievements(userID string) ([]AchievementStatus, error) {
	rows, err := s.stats.Achievements(userID)
	if err != nil {
		return nil, err
	}
	at := make(map[string]time.Time, len(rows))
	for _, row := range rows {
		at[row.AchievementID] = row.UnlockedAt
	}

	all := gamification.Achievements()
	out := make([]AchievementStatus, 0, len(all))
	for _, a := range all {
		status := AchievementStatus{Achievement: a}
		if t, ok := at[a.ID]; ok {
			status.Unlocked = true
			status.UnlockedAt = &t
		}
		out = append(out, status)
	}
	return out, nil
}

func (s *GamificationService) Stats(userID string) (*StatsView, error) {
	stats, err := s.stats.Get(userID)
	if err != nil {
		return nil, err
	}
	days, err := s.stats.DaysActive(userID)
	if err != nil {
		return nil, err
	}
	achievements, err := s.Achievements(userID)
	if err != nil {
		return nil, err
	}

	return &StatsView{
		Points:        stats.Points,
		PointsSpent:   stats.PointsSpent,
		Balance:       stats.Balance(),
		Level:         gamification.Progress(stats.Points),
		TreesPlanted:  stats.TreesPlanted,
		CarbonSaved:   stats.CarbonSaved,
		ActionsCount:  stats.ActionsCount,
		CurrentStreak: stats.CurrentStreak,
		LongestStreak: stats.LongestStreak,
		DaysActive:    days,
		Equivalents:   emissions.Equivalent(stats.CarbonSaved),
		Achievements:  achievements,
	}, nil
}

func (s *GamificationService) Actions(userID string, limit int) ([]*model.UserAction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.stats.Actions(userID, limit)
}

// ResetLapsedStreaks zeroes streaks of users with no activity yesterday or today.
func (s *GamificationService) ResetLapsedStreaks() (int64, error) {
	yesterday := s.now().AddDate(0, 0, -1).Format(gamification.DateLayout)
	return s.stats.ResetLapsedStreaks(yesterday)
}
