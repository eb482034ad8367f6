package model

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

const (
	MethodStandard  = "standard"
	MethodHousehold = "household"
)

// Calculation is one saved footprint result. Input holds the raw request
// so a record can be recomputed or exported as entered.
type Calculation struct {
	ID        string         `db:"id" json:"id"`
	UserID    string         `db:"user_id" json:"-"`
	Method    string         `db:"method" json:"method"`
	Input     types.JSONText `db:"input" json:"input"`
	Transport float64        `db:"transport" json:"transport"`
	Energy    float64        `db:"energy" json:"energy"`
	Lifestyle float64        `db:"lifestyle" json:"lifestyle"`
	Total     float64        `db:"total" json:"total"`
	EcoLevel  string         `db:"eco_level" json:"eco_level"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}
