package model

import "time"

type Pledge struct {
	ID        string    `db:"id" json:"id"`
	UserID    *string   `db:"user_id" json:"-"`
	Name      string    `db:"name" json:"name"`
	District  string    `db:"district" json:"district"`
	Number    int       `db:"number" json:"number"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

const (
	RewardCategoryDiscount     = "discount"
	RewardCategoryVoucher      = "voucher"
	RewardCategoryTreePlanting = "tree_planting"
	RewardCategoryMerchandise  = "merchandise"
	RewardCategoryDonation     = "donation"
	RewardCategoryExperience   = "experience"
)

type Reward struct {
	ID             string    `db:"id" json:"id" yaml:"id"`
	Title          string    `db:"title" json:"title" yaml:"title"`
	Description    string    `db:"description" json:"description" yaml:"description"`
	Category       string    `db:"category" json:"category" yaml:"category"`
	PointsRequired int       `db:"points_required" json:"points_required" yaml:"points_required"`
	PartnerName    string    `db:"partner_name" json:"partner_name" yaml:"partner_name"`
	Stock          int       `db:"stock" json:"stock" yaml:"stock"` // -1 = unlimited
	IsActive       bool      `db:"is_active" json:"is_active" yaml:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"-" yaml:"-"`
}

func (r *Reward) InStock() bool {
	return r.Stock != 0
}

const (
	RedemptionStatusPending    = "pending"
	RedemptionStatusApproved   = "approved"
	RedemptionStatusProcessing = "processing"
	RedemptionStatusDelivered  = "delivered"
	RedemptionStatusCompleted  = "completed"
	RedemptionStatusCancelled  = "cancelled"
)

type Redemption struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"-"`
	RewardID    string    `db:"reward_id" json:"reward_id"`
	PointsSpent int       `db:"points_spent" json:"points_spent"`
	Code        string    `db:"code" json:"code"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Cancellable reports whether points can still be refunded.
func (r *Redemption) Cancellable() bool {
	return r.Status == RedemptionStatusPending || r.Status == RedemptionStatusApproved
}

type Donation struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"-"`
	Points    int       `db:"points" json:"points"`
	Trees     int       `db:"trees" json:"trees"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

const (
	ChallengeTargetCO2Saved   = "co2_saved"
	ChallengeTargetActivities = "activities_count"
	ChallengeTargetStreak     = "streak"
)

type Challenge struct {
	ID            string  `db:"id" json:"id" yaml:"id"`
	Name          string  `db:"name" json:"name" yaml:"name"`
	Description   string  `db:"description" json:"description" yaml:"description"`
	ChallengeType string  `db:"challenge_type" json:"challenge_type" yaml:"challenge_type"`
	Difficulty    string  `db:"difficulty" json:"difficulty" yaml:"difficulty"`
	TargetType    string  `db:"target_type" json:"target_type" yaml:"target_type"`
	TargetValue   float64 `db:"target_value" json:"target_value" yaml:"target_value"`
	RewardPoints  int     `db:"reward_points" json:"reward_points" yaml:"reward_points"`
	BadgeName     string  `db:"badge_name" json:"badge_name" yaml:"badge_name"`
	StartDate     string  `db:"start_date" json:"start_date" yaml:"start_date"`
	EndDate       string  `db:"end_date" json:"end_date" yaml:"end_date"`
	IsActive      bool    `db:"is_active" json:"is_active" yaml:"is_active"`

	Participants int `db:"-" json:"participants"`
}

// Ongoing reports whether day (YYYY-MM-DD) falls inside the challenge window.
func (c *Challenge) Ongoing(day string) bool {
	return c.StartDate <= day && day <= c.EndDate
}

type ChallengeParticipant struct {
	ChallengeID string     `db:"challenge_id" json:"challenge_id"`
	UserID      string     `db:"user_id" json:"-"`
	Progress    float64    `db:"progress" json:"progress"`
	Completed   bool       `db:"completed" json:"completed"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	JoinedAt    time.Time  `db:"joined_at" json:"joined_at"`
}

const (
	NotificationAchievement = "achievement"
	NotificationChallenge   = "challenge"
	NotificationReward      = "reward"
	NotificationLevelUp     = "level_up"
	NotificationSystem      = "system"
)

type Notification struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"-"`
	Type      string    `db:"type" json:"type"`
	Title     string    `db:"title" json:"title"`
	Message   string    `db:"message" json:"message"`
	RelatedID string    `db:"related_id" json:"related_id,omitempty"`
	Read      bool      `db:"read" json:"read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
