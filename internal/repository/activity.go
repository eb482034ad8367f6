package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/footprint/internal/model"
)

type ActivityRepository interface {
	Create(a *model.Activity) error
	List(userID, category string, limit int) ([]*model.Activity, error)
	Between(userID, fromDay, toDay string) ([]*model.Activity, error)
	Count(userID, fromDay, toDay string) (int, error)
	SavedBetween(userID, fromDay, toDay string) (float64, error)
}

type activityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(a *model.Activity) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	if a.ActivityDate == "" {
		a.ActivityDate = a.CreatedAt.Format(time.DateOnly)
	}

	_, err := r.db.Exec(`
		INSERT INTO activities (id, user_id, category, activity_type, details, co2_kg, points, activity_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, a.ID, a.UserID, a.Category, a.ActivityType, a.Details, a.CO2Kg, a.Points, a.ActivityDate, a.CreatedAt)
	return err
}

// List returns the newest activities. An empty category lists all.
func (r *activityRepository) List(userID, category string, limit int) ([]*model.Activity, error) {
	var as []*model.Activity
	err := r.db.Select(&as, `
		SELECT * FROM activities
		WHERE user_id = $1 AND ($2 = '' OR category = $2)
		ORDER BY activity_date DESC, created_at DESC
		LIMIT $3
	`, userID, category, limit)
	if err != nil {
		return nil, err
	}
	return as, nil
}

// Between returns activities with fromDay <= date <= toDay, oldest first.
func (r *activityRepository) Between(userID, fromDay, toDay string) ([]*model.Activity, error) {
	var as []*model.Activity
	err := r.db.Select(&as, `
		SELECT * FROM activities
		WHERE user_id = $1 AND activity_date >= $2 AND activity_date <= $3
		ORDER BY activity_date ASC, created_at ASC
	`, userID, fromDay, toDay)
	if err != nil {
		return nil, err
	}
	return as, nil
}

func (r *activityRepository) Count(userID, fromDay, toDay string) (int, error) {
	var count int
	err := r.db.Get(&count, `
		SELECT COUNT(*) FROM activities WHERE user_id = $1 AND activity_date >= $2 AND activity_date <= $3
	`, userID, fromDay, toDay)
	return count, err
}

// SavedBetween sums positive impacts only.
func (r *activityRepository) SavedBetween(userID, fromDay, toDay string) (float64, error) {
	var total float64
	err := r.db.Get(&total, `
		SELECT COALESCE(SUM(co2_kg), 0) FROM activities
		WHERE user_id = $1 AND activity_date >= $2 AND activity_date <= $3 AND co2_kg > 0
	`, userID, fromDay, toDay)
	return total, err
}
