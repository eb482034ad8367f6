package model

import "time"

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Profile struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	District  string    `db:"district" json:"district"`
	Category  string    `db:"category" json:"category"` // leaderboard bucket: workers, students, free
	Theme     string    `db:"theme" json:"theme"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
