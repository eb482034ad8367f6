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
	ErrRewardNotFound     = errors.New("reward not found")
	ErrOutOfStock         = errors.New("reward out of stock")
	ErrRedemptionNotFound = errors.New("redemption not found")
)

type RewardRepository interface {
	Upsert(reward *model.Reward) error
	List(category string) ([]*model.Reward, error)
	ByID(id string) (*model.Reward, error)
	TakeStock(id string) error
	ReturnStock(id string) error

	CreateRedemption(redemption *model.Redemption) error
	Redemption(userID, id string) (*model.Redemption, error)
	Redemptions(userID string) ([]*model.Redemption, error)
	UpdateRedemptionStatus(id, fromStatus, toStatus string) error

	CreateDonation(donation *model.Donation) error
	Donations(userID string) ([]*model.Donation, error)
}

type rewardRepository struct {
	db *sqlx.DB
}

func NewRewardRepository(db *sqlx.DB) RewardRepository {
	return &rewardRepository{db: db}
}

// Upsert writes catalog entries. Stock is only set on first insert so
// redemptions are not undone by a restart.
func (r *rewardRepository) Upsert(reward *model.Reward) error {
	if reward.CreatedAt.IsZero() {
		reward.CreatedAt = time.Now()
	}
	_, err := r.db.Exec(`
		INSERT INTO rewards (id, title, description, category, points_required, partner_name, stock, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			category = excluded.category,
			points_required = excluded.points_required,
			partner_name = excluded.partner_name,
			is_active = excluded.is_active
	`, reward.ID, reward.Title, reward.Description, reward.Category, reward.PointsRequired,
		reward.PartnerName, reward.Stock, reward.IsActive, reward.CreatedAt)
	return err
}

// List returns active rewards, cheapest first. An empty category lists all.
func (r *rewardRepository) List(category string) ([]*model.Reward, error) {
	var rewards []*model.Reward
	err := r.db.Select(&rewards, `
		SELECT * FROM rewards
		WHERE is_active = TRUE AND ($1 = '' OR category = $1)
		ORDER BY points_required ASC, title ASC
	`, category)
	if err != nil {
		return nil, err
	}
	return rewards, nil
}

func (r *rewardRepository) ByID(id string) (*model.Reward, error) {
	reward := &model.Reward{}
	err := r.db.Get(reward, `SELECT * FROM rewards WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrRewardNotFound
	}
	return reward, err
}

// TakeStock decrements limited stock. Unlimited rewards (-1) are untouched.
func (r *rewardRepository) TakeStock(id string) error {
	result, err := r.db.Exec(`
		UPDATE rewards
		SET stock = CASE WHEN stock < 0 THEN stock ELSE stock - 1 END
		WHERE id = $1 AND stock <> 0
	`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrOutOfStock
	}
	return nil
}

func (r *rewardRepository) ReturnStock(id string) error {
	_, err := r.db.Exec(`UPDATE rewards SET stock = stock + 1 WHERE id = $1 AND stock >= 0`, id)
	return err
}

func (r *rewardRepository) CreateRedemption(redemption *model.Redemption) error {
	if redemption.ID == "" {
		redemption.ID = uuid.New().String()
	}
	now := time.Now()
	if redemption.CreatedAt.IsZero() {
		redemption.CreatedAt = now
	}
	redemption.UpdatedAt = now

	_, err := r.db.Exec(`
		INSERT INTO redemptions (id, user_id, reward_id, points_spent, code, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, redemption.ID, redemption.UserID, redemption.RewardID, redemption.PointsSpent, redemption.Code,
		redemption.Status, redemption.CreatedAt, redemption.UpdatedAt)
	return err
}

func (r *rewardRepository) Redemption(userID, id string) (*model.Redemption, error) {
	redemption := &model.Redemption{}
	err := r.db.Get(redemption, `SELECT * FROM redemptions WHERE id = $1 AND user_id = $2`, id, userID)
	if err == sql.ErrNoRows {
		return nil, ErrRedemptionNotFound
	}
	return redemption, err
}

func (r *rewardRepository) Redemptions(userID string) ([]*model.Redemption, error) {
	var redemptions []*model.Redemption
	err := r.db.Select(&redemptions, `SELECT * FROM redemptions WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return redemptions, nil
}

// UpdateRedemptionStatus moves a redemption only if it is still in fromStatus.
func (r *rewardRepository) UpdateRedemptionStatus(id, fromStatus, toStatus string) error {
	result, err := r.db.Exec(`
		UPDATE redemptions SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`, toStatus, time.Now(), id, fromStatus)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRedemptionNotFound
	}
	return nil
}

func (r *rewardRepository) CreateDonation(donation *model.Donation) error {
	if donation.ID == "" {
		donation.ID = uuid.New().String()
	}
	if donation.CreatedAt.IsZero() {
		donation.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(`
		INSERT INTO donations (id, user_id, points, trees, created_at) VALUES ($1, $2, $3, $4, $5)
	`, donation.ID, donation.UserID, donation.Points, donation.Trees, donation.CreatedAt)
	return err
}

func (r *rewardRepository) Donations(userID string) ([]*model.Donation, error) {
	var donations []*model.Donation
	err := r.db.Select(&donations, `SELECT * FROM donations WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return donations, nil
}
