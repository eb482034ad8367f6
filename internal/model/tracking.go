package model

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

type Activity struct {
	ID           string         `db:"id" json:"id"`
	UserID       string         `db:"user_id" json:"-"`
	Category     string         `db:"category" json:"category"`
	ActivityType string         `db:"activity_type" json:"activity_type"`
	Details      types.JSONText `db:"details" json:"details"`
	CO2Kg        float64        `db:"co2_kg" json:"co2_kg"` // positive = saved
	Points       int            `db:"points" json:"points"`
	ActivityDate string         `db:"activity_date" json:"activity_date"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

const (
	OffsetStatusPending = "pending"
	OffsetStatusPaid    = "paid"
)

type OffsetPurchase struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"-"`
	Kg          float64    `db:"kg" json:"kg"`
	AmountCents int64      `db:"amount_cents" json:"amount_cents"`
	Currency    string     `db:"currency" json:"currency"`
	Provider    string     `db:"provider" json:"provider"`
	ProviderRef string     `db:"provider_ref" json:"-"`
	Status      string     `db:"status" json:"status"`
	PaidAt      *time.Time `db:"paid_at" json:"paid_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

const (
	ProviderPolar  = "polar"
	ProviderStripe = "stripe"
)
