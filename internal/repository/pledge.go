package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/footprint/internal/model"
)

// PledgeSeed is the public counter value before the first stored pledge.
const PledgeSeed = 127

var (
	ErrPledgeNotFound = errors.New("pledge not found")
)

type PledgeRepository interface {
	Create(pledge *model.Pledge) error
	ByID(id string) (*model.Pledge, error)
	Count() (int, error)
}

type pledgeRepository struct {
	db *sqlx.DB
}

func NewPledgeRepository(db *sqlx.DB) PledgeRepository {
	return &pledgeRepository{db: db}
}

// Create assigns the next pledge number in the same statement as the insert.
func (r *pledgeRepository) Create(pledge *model.Pledge) error {
	if pledge.ID == "" {
		pledge.ID = uuid.New().String()
	}
	if pledge.CreatedAt.IsZero() {
		pledge.CreatedAt = time.Now()
	}

	return r.db.Get(&pledge.Number, `
		INSERT INTO pledges (id, user_id, name, district, number, created_at)
		SELECT $1, $2, $3, $4, COALESCE(MAX(number), $5) + 1, $6 FROM pledges
		RETURNING number
	`, pledge.ID, pledge.UserID, pledge.Name, pledge.District, PledgeSeed, pledge.CreatedAt)
}

func (r *pledgeRepository) ByID(id string) (*model.Pledge, error) {
	pledge := &model.Pledge{}
	err := r.db.Get(pledge, `SELECT * FROM pledges WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrPledgeNotFound
	}
	return pledge, err
}

// Count returns the public counter: the seed plus stored pledges.
func (r *pledgeRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COALESCE(MAX(number), $1) FROM pledges`, PledgeSeed)
	return count, err
}
