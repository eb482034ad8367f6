package service

import (
	"errors"

	"github.com/templui/footprint/internal/gamification"
	"github.com/templui/footprint/internal/repository"
)

var ErrNotRanked = errors.New("user is not on the leaderboard")

const defaultLeaderboardSize = 50

type LeaderboardService struct {
	repo repository.LeaderboardRepository
}

func NewLeaderboardService(repo repository.LeaderboardRepository) *LeaderboardService {
	return &LeaderboardService{repo: repo}
}

// Board is a ranked leaderboard with its podium.
type Board struct {
	Category string               `json:"category,omitempty"`
	Podium   []gamification.Entry `json:"podium"`
	Entries  []gamification.Entry `json:"entries"`
	Total    int                  `json:"total"`
}

// ranked merges demo competitors and real users, ranked by points. Users
// who haven't picked a name yet are left out.
func (s *LeaderboardService) ranked(category string) ([]gamification.Entry, error) {
	demo, err := s.repo.DemoCompetitors(category)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.Standings(category)
	if err != nil {
		return nil, err
	}

	entries := make([]gamification.Entry, 0, len(demo)+len(users))
	for _, d := range demo {
		entries = append(entries, gamification.Entry{
			Name:         d.Name,
			Avatar:       d.Avatar,
			District:     d.District,
			Category:     d.Category,
			Points:       d.Points,
			TreesPlanted: d.TreesPlanted,
			CarbonSaved:  d.CarbonSaved,
			ActionsCount: d.ActionsCount,
			Demo:         true,
		})
	}
	for _, r := range users {
		if r.Name == "" {
			continue
		}
		entries = append(entries, gamification.Entry{
			UserID:       r.UserID,
			Name:         r.Name,
			Avatar:       gamification.Initials(r.Name),
			District:     r.District,
			Category:     r.Category,
			Points:       r.Points,
			TreesPlanted: r.TreesPlanted,
			CarbonSaved:  r.CarbonSaved,
			ActionsCount: r.ActionsCount,
		})
	}
	return gamification.Rank(entries), nil
}

// Standings returns the top limit entries. An empty category ranks everyone.
func (s *LeaderboardService) Standings(category string, limit int) (*Board, error) {
	entries, err := s.ranked(category)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}

	board := &Board{
		Category: category,
		Podium:   gamification.Podium(entries),
		Total:    len(entries),
		Entries:  entries,
	}
	if len(entries) > limit {
		board.Entries = entries[:limit]
	}
	return board, nil
}

// UserRank finds the user's own entry in the given category.
func (s *LeaderboardService) UserRank(userID, category string) (*gamification.Entry, error) {
	entries, err := s.ranked(category)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].UserID == userID {
			return &entries[i], nil
		}
	}
	return nil, ErrNotRanked
}
