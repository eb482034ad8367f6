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
	ErrOffsetNotFound = errors.New("offset purchase not found")
)

type OffsetRepository interface {
	Create(p *model.OffsetPurchase) error
	ByID(id string) (*model.OffsetPurchase, error)
	ByUser(userID string) ([]*model.OffsetPurchase, error)
	SetProviderRef(id, ref string) error
	MarkPaid(id string) (*model.OffsetPurchase, error)
}

type offsetRepository struct {
	db *sqlx.DB
}

func NewOffsetRepository(db *sqlx.DB) OffsetRepository {
	return &offsetRepository{db: db}
}

func (r *offsetRepository) Create(p *model.OffsetPurchase) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.Status == "" {
		p.Status = model.OffsetStatusPending
	}

	_, err := r.db.Exec(`
		INSERT INTO offset_purchases (id, user_id, kg, amount_cents, currency, provider, provider_ref, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.UserID, p.Kg, p.AmountCents, p.Currency, p.Provider, p.ProviderRef, p.Status, p.CreatedAt)
	return err
}

func (r *offsetRepository) ByID(id string) (*model.OffsetPurchase, error) {
	p := &model.OffsetPurchase{}
	err := r.db.Get(p, `SELECT * FROM offset_purchases WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrOffsetNotFound
	}
	return p, err
}

func (r *offsetRepository) ByUser(userID string) ([]*model.OffsetPurchase, error) {
	var ps []*model.OffsetPurchase
	err := r.db.Select(&ps, `SELECT * FROM offset_purchases WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *offsetRepository) SetProviderRef(id, ref string) error {
	_, err := r.db.Exec(`UPDATE offset_purchases SET provider_ref = $1 WHERE id = $2`, ref, id)
	return err
}

// MarkPaid flips a pending purchase to paid exactly once. Webhook retries
// for an already paid purchase get ErrOffsetNotFound.
func (r *offsetRepository) MarkPaid(id string) (*model.OffsetPurchase, error) {
	p := &model.OffsetPurchase{}
	err := r.db.Get(p, `
		UPDATE offset_purchases
		SET status = $1, paid_at = $2
		WHERE id = $3 AND status = $4
		RETURNING *
	`, model.OffsetStatusPaid, time.Now(), id, model.OffsetStatusPending)
	if err == sql.ErrNoRows {
		return nil, ErrOffsetNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
