package model

import (
	"time"
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
)

// Goal is a carbon reduction target. Progress counts carbon saved since
// BaselineKg was captured at creation.
type Goal struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"-"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	TargetKg    float64    `db:"target_kg" json:"target_kg"`
	BaselineKg  float64    `db:"baseline_kg" json:"-"`
	Deadline    string     `db:"deadline" json:"deadline,omitempty"`
	Status      string     `db:"status" json:"status"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// Progress returns the completed share in percent, capped at 100.
func (g *Goal) Progress(carbonSaved float64) float64 {
	if g.TargetKg <= 0 {
		return 0
	}
	p := (carbonSaved - g.BaselineKg) / g.TargetKg * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
