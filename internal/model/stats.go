package model

import "time"

// EcoStats is the per-user gamification state.
type EcoStats struct {
	UserID         string    `db:"user_id" json:"-"`
	Points         int       `db:"points" json:"points"`
	PointsSpent    int       `db:"points_spent" json:"points_spent"`
	TreesPlanted   int       `db:"trees_planted" json:"trees_planted"`
	CarbonSaved    float64   `db:"carbon_saved" json:"carbon_saved"`
	ActionsCount   int       `db:"actions_count" json:"actions_count"`
	CurrentStreak  int       `db:"current_streak" json:"current_streak"`
	LongestStreak  int       `db:"longest_streak" json:"longest_streak"`
	LastActiveDate string    `db:"last_active_date" json:"last_active_date"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Balance is the spendable part of Points.
func (s *EcoStats) Balance() int {
	return s.Points - s.PointsSpent
}

type UserAction struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"-"`
	ActionType string    `db:"action_type" json:"action_type"`
	Quantity   int       `db:"quantity" json:"quantity"`
	Points     int       `db:"points" json:"points"`
	CarbonKg   float64   `db:"carbon_kg" json:"carbon_kg"`
	Details    string    `db:"details" json:"details"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type UserAchievement struct {
	UserID        string    `db:"user_id" json:"-"`
	AchievementID string    `db:"achievement_id" json:"achievement_id"`
	UnlockedAt    time.Time `db:"unlocked_at" json:"unlocked_at"`
}

type ImplementedTip struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"-"`
	Slug      string    `db:"slug" json:"slug"`
	Title     string    `db:"title" json:"title"`
	Savings   string    `db:"savings" json:"savings"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type DemoCompetitor struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Avatar       string  `db:"avatar"`
	District     string  `db:"district"`
	Category     string  `db:"category"`
	Points       int     `db:"points"`
	TreesPlanted int     `db:"trees_planted"`
	CarbonSaved  float64 `db:"carbon_saved"`
	ActionsCount int     `db:"actions_count"`
}

// Standing is a real user's leaderboard row, joined from profiles and stats.
type Standing struct {
	UserID       string  `db:"user_id"`
	Name         string  `db:"name"`
	District     string  `db:"district"`
	Category     string  `db:"category"`
	Points       int     `db:"points"`
	TreesPlanted int     `db:"trees_planted"`
	CarbonSaved  float64 `db:"carbon_saved"`
	ActionsCount int     `db:"actions_count"`
}
