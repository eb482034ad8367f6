package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/footprint/internal/model"
)

const (
	GoalSortRecent   = "recent"
	GoalSortDeadline = "deadline"
	GoalSortTitle    = "title"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(userID, goalID string) (*model.Goal, error)
	Goals(userID, sortBy string) ([]*model.Goal, error)
	Active() ([]*model.Goal, error)
	CountActive(userID string) (int, error)
	Update(goal *model.Goal) error
	Delete(userID, goalID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	now := time.Now()
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = now
	}
	goal.UpdatedAt = now
	if goal.Status == "" {
		goal.Status = model.GoalStatusActive
	}

	query := `INSERT INTO goals (id, user_id, title, description, target_kg, baseline_kg, deadline, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.TargetKg,
		goal.BaselineKg,
		goal.Deadline,
		goal.Status,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByID(userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2`

	err := r.db.Get(goal, query, goalID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

func (r *goalRepository) Goals(userID, sortBy string) ([]*model.Goal, error) {
	var goals []*model.Goal

	var orderBy string
	switch sortBy {
	case GoalSortDeadline:
		// goals without a deadline sort last
		orderBy = "ORDER BY CASE WHEN deadline = '' THEN 1 ELSE 0 END, deadline ASC"
	case GoalSortTitle:
		orderBy = "ORDER BY LOWER(title) ASC"
	default: // GoalSortRecent or empty
		orderBy = "ORDER BY updated_at DESC"
	}

	query := `SELECT * FROM goals WHERE user_id = $1 ` + orderBy

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

// Active returns every active goal across users, for the status job.
func (r *goalRepository) Active() ([]*model.Goal, error) {
	var goals []*model.Goal
	err := r.db.Select(&goals, `SELECT * FROM goals WHERE status = $1`, model.GoalStatusActive)
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *goalRepository) CountActive(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals WHERE user_id = $1 AND status = $2`
	err := r.db.QueryRow(query, userID, model.GoalStatusActive).Scan(&count)
	return count, err
}

func (r *goalRepository) Update(goal *model.Goal) error {
	goal.UpdatedAt = time.Now()
	query := `UPDATE goals
	          SET title = $1, description = $2, target_kg = $3, deadline = $4, status = $5, completed_at = $6, updated_at = $7
	          WHERE id = $8 AND user_id = $9`

	result, err := r.db.Exec(query,
		goal.Title,
		goal.Description,
		goal.TargetKg,
		goal.Deadline,
		goal.Status,
		goal.CompletedAt,
		goal.UpdatedAt,
		goal.ID,
		goal.UserID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) Delete(userID, goalID string) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, goalID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
