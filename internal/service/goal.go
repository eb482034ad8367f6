package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/templui/footprint/internal/gamification"
	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/repository"
	"github.com/templui/footprint/internal/validation"
)

// MaxActiveGoals caps concurrently active goals per user.
const (
	MaxActiveGoals = 10
	maxGoalKg      = 100000
)

var (
	ErrGoalLimitReached     = errors.New("active goal limit reached")
	ErrGoalAlreadyCompleted = errors.New("goal already completed")
)

type GoalInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	TargetKg    float64 `json:"target_kg"`
	Deadline    string  `json:"deadline"`
}

// GoalView is a goal with its live progress.
type GoalView struct {
	*model.Goal
	SavedKg  float64 `json:"saved_kg"`
	Progress float64 `json:"progress"`
}

type GoalService struct {
	repo          repository.GoalRepository
	stats         repository.StatsRepository
	notifications *NotificationService
}

func NewGoalService(repo repository.GoalRepository, stats repository.StatsRepository, notifications *NotificationService) *GoalService {
	return &GoalService{
		repo:          repo,
		stats:         stats,
		notifications: notifications,
	}
}

func validateGoal(in *GoalInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Deadline = strings.TrimSpace(in.Deadline)

	if in.Title == "" {
		return invalid(errors.New("title is required"))
	}
	if utf8.RuneCountInString(in.Title) > 100 {
		return invalid(errors.New("title is too long (max 100 characters)"))
	}
	err := validation.Positive("target_kg", in.TargetKg, maxGoalKg)
	if err != nil {
		return invalid(err)
	}
	if in.Deadline != "" {
		_, err = time.Parse(gamification.DateLayout, in.Deadline)
		if err != nil {
			return invalid(errors.New("deadline must be YYYY-MM-DD"))
		}
	}
	return nil
}

// Create starts a goal measured from the user's current carbon saved.
func (s *GoalService) Create(userID string, in GoalInput) (*GoalView, error) {
	err := validateGoal(&in)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountActive(userID)
	if err != nil {
		return nil, err
	}
	if count >= MaxActiveGoals {
		return nil, ErrGoalLimitReached
	}

	stats, err := s.stats.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	goal := &model.Goal{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		TargetKg:    in.TargetKg,
		BaselineKg:  stats.CarbonSaved,
		Deadline:    in.Deadline,
		Status:      model.GoalStatusActive,
	}
	err = s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return view(goal, stats.CarbonSaved), nil
}

func view(g *model.Goal, carbonSaved float64) *GoalView {
	saved := carbonSaved - g.BaselineKg
	if saved < 0 {
		saved = 0
	}
	return &GoalView{Goal: g, SavedKg: saved, Progress: g.Progress(carbonSaved)}
}

func (s *GoalService) ByID(userID, goalID string) (*GoalView, error) {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}
	stats, err := s.stats.Get(userID)
	if err != nil {
		return nil, err
	}
	return view(goal, stats.CarbonSaved), nil
}

func (s *GoalService) Goals(userID, sortBy string) ([]*GoalView, error) {
	goals, err := s.repo.Goals(userID, sortBy)
	if err != nil {
		return nil, err
	}
	stats, err := s.stats.Get(userID)
	if err != nil {
		return nil, err
	}

	views := make([]*GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, view(g, stats.CarbonSaved))
	}
	return views, nil
}

// Update edits a goal. Completed goals are read only.
func (s *GoalService) Update(userID, goalID string, in GoalInput) (*GoalView, error) {
	err := validateGoal(&in)
	if err != nil {
		return nil, err
	}

	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal.Status == model.GoalStatusCompleted {
		return nil, ErrGoalAlreadyCompleted
	}

	goal.Title = in.Title
	goal.Description = in.Description
	goal.TargetKg = in.TargetKg
	goal.Deadline = in.Deadline
	err = s.repo.Update(goal)
	if err != nil {
		return nil, err
	}
	return s.ByID(userID, goalID)
}

func (s *GoalService) Delete(userID, goalID string) error {
	return s.repo.Delete(userID, goalID)
}

// CompleteReached marks every active goal at 100% as completed and notifies
// its owner. It returns the number of goals completed.
func (s *GoalService) CompleteReached() (int, error) {
	goals, err := s.repo.Active()
	if err != nil {
		return 0, fmt.Errorf("failed to list active goals: %w", err)
	}

	saved := make(map[string]float64)
	completed := 0
	for _, g := range goals {
		carbon, ok := saved[g.UserID]
		if !ok {
			stats, err := s.stats.Get(g.UserID)
			if err != nil {
				slog.Error("failed to get stats for goal", "error", err, "user_id", g.UserID, "goal_id", g.ID)
				continue
			}
			carbon = stats.CarbonSaved
			saved[g.UserID] = carbon
		}
		if g.Progress(carbon) < 100 {
			continue
		}

		now := time.Now()
		g.Status = model.GoalStatusCompleted
		g.CompletedAt = &now
		err = s.repo.Update(g)
		if err != nil {
			slog.Error("failed to complete goal", "error", err, "goal_id", g.ID)
			continue
		}
		completed++
		s.notifications.Notify(g.UserID, model.NotificationSystem, "Goal reached: "+g.Title,
			fmt.Sprintf("You saved %.1f kg of CO2 towards this goal.", g.TargetKg), g.ID)
	}
	return completed, nil
}
