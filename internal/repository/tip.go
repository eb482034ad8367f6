package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/footprint/internal/model"
)

var (
	ErrTipNotFound           = errors.New("implemented tip not found")
	ErrTipAlreadyImplemented = errors.New("tip already implemented")
)

type TipRepository interface {
	Create(tip *model.ImplementedTip) error
	ByUser(userID string) ([]*model.ImplementedTip, error)
	Count(userID string) (int, error)
	Delete(userID, id string) (*model.ImplementedTip, error)
}

type tipRepository struct {
	db *sqlx.DB
}

func NewTipRepository(db *sqlx.DB) TipRepository {
	return &tipRepository{db: db}
}

func (r *tipRepository) Create(tip *model.ImplementedTip) error {
	if tip.ID == "" {
		tip.ID = uuid.New().String()
	}
	if tip.CreatedAt.IsZero() {
		tip.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(`
		INSERT INTO implemented_tips (id, user_id, slug, title, savings, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, tip.ID, tip.UserID, tip.Slug, tip.Title, tip.Savings, tip.CreatedAt)
	if err != nil && isUniqueViolation(err) {
		return ErrTipAlreadyImplemented
	}
	return err
}

func (r *tipRepository) ByUser(userID string) ([]*model.ImplementedTip, error) {
	var tips []*model.ImplementedTip
	err := r.db.Select(&tips, `SELECT * FROM implemented_tips WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return tips, nil
}

func (r *tipRepository) Count(userID string) (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM implemented_tips WHERE user_id = $1`, userID)
	return count, err
}

// Delete removes a tip and returns what was removed.
func (r *tipRepository) Delete(userID, id string) (*model.ImplementedTip, error) {
	tip := &model.ImplementedTip{}
	err := r.db.Get(tip, `DELETE FROM implemented_tips WHERE id = $1 AND user_id = $2 RETURNING *`, id, userID)
	if err == sql.ErrNoRows {
		return nil, ErrTipNotFound
	}
	if err != nil {
		return nil, err
	}
	return tip, nil
}
