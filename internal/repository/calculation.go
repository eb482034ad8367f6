package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/footprint/internal/model"
)

var (
	ErrCalculationNotFound = errors.New("calculation not found")
)

type CalculationRepository interface {
	// Append stores calc as the newest record and drops the oldest records of
	// the same method beyond keep.
	Append(calc *model.Calculation, keep int) error
	ByID(userID, id string) (*model.Calculation, error)
	List(userID, method string) ([]*model.Calculation, error)
	Count(userID string) (int, error)
	Delete(userID, id string) error
	Clear(userID, method string) (int64, error)
}

type calculationRepository struct {
	db *sqlx.DB
}

func NewCalculationRepository(db *sqlx.DB) CalculationRepository {
	return &calculationRepository{db: db}
}

func (r *calculationRepository) Append(calc *model.Calculation, keep int) error {
	if calc.ID == "" {
		calc.ID = uuid.New().String()
	}
	if calc.CreatedAt.IsZero() {
		calc.CreatedAt = time.Now()
	}
	if calc.Method == "" {
		calc.Method = model.MethodStandard
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO calculations (id, user_id, method, input, transport, energy, lifestyle, total, eco_level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, calc.ID, calc.UserID, calc.Method, calc.Input, calc.Transport, calc.Energy, calc.Lifestyle,
		calc.Total, calc.EcoLevel, calc.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert calculation: %w", err)
	}

	_, err = tx.Exec(`
		DELETE FROM calculations
		WHERE user_id = $1 AND method = $2 AND id NOT IN (
			SELECT id FROM calculations
			WHERE user_id = $1 AND method = $2
			ORDER BY created_at DESC, id DESC
			LIMIT $3
		)
	`, calc.UserID, calc.Method, keep)
	if err != nil {
		return fmt.Errorf("evict calculations: %w", err)
	}

	return tx.Commit()
}

func (r *calculationRepository) ByID(userID, id string) (*model.Calculation, error) {
	calc := &model.Calculation{}
	err := r.db.Get(calc, `SELECT * FROM calculations WHERE id = $1 AND user_id = $2`, id, userID)
	if err == sql.ErrNoRows {
		return nil, ErrCalculationNotFound
	}
	return calc, err
}

// List returns records newest first. An empty method lists all methods.
func (r *calculationRepository) List(userID, method string) ([]*model.Calculation, error) {
	var calcs []*model.Calculation
	var err error
	if method == "" {
		err = r.db.Select(&calcs, `SELECT * FROM calculations WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	} else {
		err = r.db.Select(&calcs, `SELECT * FROM calculations WHERE user_id = $1 AND method = $2 ORDER BY created_at DESC, id DESC`, userID, method)
	}
	if err != nil {
		return nil, err
	}
	return calcs, nil
}

func (r *calculationRepository) Count(userID string) (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM calculations WHERE user_id = $1`, userID)
	return count, err
}

func (r *calculationRepository) Delete(userID, id string) error {
	result, err := r.db.Exec(`DELETE FROM calculations WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCalculationNotFound
	}
	return nil
}

// Clear removes a user's history. An empty method clears everything.
func (r *calculationRepository) Clear(userID, method string) (int64, error) {
	var result sql.Result
	var err error
	if method == "" {
		result, err = r.db.Exec(`DELETE FROM calculations WHERE user_id = $1`, userID)
	} else {
		result, err = r.db.Exec(`DELETE FROM calculations WHERE user_id = $1 AND method = $2`, userID, method)
	}
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
