package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/footprint/internal/model"
)

var (
	ErrInsufficientPoints = errors.New("not enough points")
)

// StatsRepository owns eco_stats and the records that feed it: logged
// actions, active days and unlocked achievements.
type StatsRepository interface {
	Get(userID string) (*model.EcoStats, error)
	Save(stats *model.EcoStats) error
	AddPoints(userID string, points int) error
	Spend(userID string, points int) error
	Refund(userID string, points int) error

	RecordAction(action *model.UserAction) error
	Actions(userID string, limit int) ([]*model.UserAction, error)
	CarbonSavedSince(userID string, since time.Time) (float64, error)

	MarkActiveDay(userID, day string) error
	DaysActive(userID string) (int, error)
	ResetLapsedStreaks(before string) (int64, error)

	Achievements(userID string) ([]*model.UserAchievement, error)
	Unlock(userID, achievementID string) (bool, error)
}

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

// ensure creates the zero row so later UPDATEs always match.
func (r *statsRepository) ensure(userID string) error {
	_, err := r.db.Exec(`
		INSERT INTO eco_stats (user_id, updated_at) VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`, userID, time.Now())
	return err
}

func (r *statsRepository) Get(userID string) (*model.EcoStats, error) {
	err := r.ensure(userID)
	if err != nil {
		return nil, err
	}

	stats := &model.EcoStats{}
	err = r.db.Get(stats, `SELECT * FROM eco_stats WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Save writes the counters and streak. points_spent only moves through
// Spend and Refund.
func (r *statsRepository) Save(stats *model.EcoStats) error {
	err := r.ensure(stats.UserID)
	if err != nil {
		return err
	}

	stats.UpdatedAt = time.Now()
	_, err = r.db.Exec(`
		UPDATE eco_stats
		SET points = $1, trees_planted = $2, carbon_saved = $3, actions_count = $4,
		    current_streak = $5, longest_streak = $6, last_active_date = $7, updated_at = $8
		WHERE user_id = $9
	`, stats.Points, stats.TreesPlanted, stats.CarbonSaved, stats.ActionsCount,
		stats.CurrentStreak, stats.LongestStreak, stats.LastActiveDate, stats.UpdatedAt, stats.UserID)
	return err
}

// AddPoints adjusts lifetime points. A negative adjustment only applies
// when the unspent balance covers it.
func (r *statsRepository) AddPoints(userID string, points int) error {
	err := r.ensure(userID)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(`
		UPDATE eco_stats
		SET points = points + $1, updated_at = $2
		WHERE user_id = $3 AND points - points_spent + $1 >= 0
	`, points, time.Now(), userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrInsufficientPoints
	}
	return nil
}

// Spend moves points from the balance to points_spent. The balance check
// and the debit happen in one statement.
func (r *statsRepository) Spend(userID string, points int) error {
	err := r.ensure(userID)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(`
		UPDATE eco_stats
		SET points_spent = points_spent + $1, updated_at = $2
		WHERE user_id = $3 AND points - points_spent >= $1
	`, points, time.Now(), userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrInsufficientPoints
	}
	return nil
}

func (r *statsRepository) Refund(userID string, points int) error {
	_, err := r.db.Exec(`
		UPDATE eco_stats
		SET points_spent = CASE WHEN points_spent < $1 THEN 0 ELSE points_spent - $1 END, updated_at = $2
		WHERE user_id = $3
	`, points, time.Now(), userID)
	return err
}

func (r *statsRepository) RecordAction(action *model.UserAction) error {
	if action.ID == "" {
		action.ID = uuid.New().String()
	}
	if action.CreatedAt.IsZero() {
		action.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(`
		INSERT INTO user_actions (id, user_id, action_type, quantity, points, carbon_kg, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, action.ID, action.UserID, action.ActionType, action.Quantity, action.Points, action.CarbonKg,
		action.Details, action.CreatedAt)
	return err
}

func (r *statsRepository) Actions(userID string, limit int) ([]*model.UserAction, error) {
	var actions []*model.UserAction
	err := r.db.Select(&actions, `
		SELECT * FROM user_actions WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	return actions, nil
}

// CarbonSavedSince sums logged actions and positive activities after since.
func (r *statsRepository) CarbonSavedSince(userID string, since time.Time) (float64, error) {
	var total float64
	err := r.db.Get(&total, `
		SELECT
			COALESCE((SELECT SUM(carbon_kg) FROM user_actions WHERE user_id = $1 AND created_at >= $2), 0) +
			COALESCE((SELECT SUM(co2_kg) FROM activities WHERE user_id = $1 AND created_at >= $2 AND co2_kg > 0), 0)
	`, userID, since)
	return total, err
}

func (r *statsRepository) MarkActiveDay(userID, day string) error {
	_, err := r.db.Exec(`
		INSERT INTO active_days (user_id, day) VALUES ($1, $2)
		ON CONFLICT (user_id, day) DO NOTHING
	`, userID, day)
	return err
}

func (r *statsRepository) DaysActive(userID string) (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM active_days WHERE user_id = $1`, userID)
	return count, err
}

// ResetLapsedStreaks zeroes current streaks whose last active day is
// earlier than before.
func (r *statsRepository) ResetLapsedStreaks(before string) (int64, error) {
	result, err := r.db.Exec(`
		UPDATE eco_stats
		SET current_streak = 0, updated_at = $1
		WHERE current_streak > 0 AND last_active_date <> '' AND last_active_date < $2
	`, time.Now(), before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *statsRepository) Achievements(userID string) ([]*model.UserAchievement, error) {
	var unlocked []*model.UserAchievement
	err := r.db.Select(&unlocked, `
		SELECT * FROM user_achievements WHERE user_id = $1 ORDER BY unlocked_at
	`, userID)
	if err != nil {
		return nil, err
	}
	return unlocked, nil
}

// Unlock records an achievement once. It reports false when it was
// already unlocked.
func (r *statsRepository) Unlock(userID, achievementID string) (bool, error) {
	result, err := r.db.Exec(`
		INSERT INTO user_achievements (user_id, achievement_id, unlocked_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
	`, userID, achievementID, time.Now())
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
