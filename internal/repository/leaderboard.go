package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/templui/footprint/internal/model"
)

type LeaderboardRepository interface {
	DemoCompetitors(category string) ([]*model.DemoCompetitor, error)
	Standings(category string) ([]*model.Standing, error)
}

type leaderboardRepository struct {
	db *sqlx.DB
}

func NewLeaderboardRepository(db *sqlx.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

// DemoCompetitors lists seeded competitors. An empty category lists all.
func (r *leaderboardRepository) DemoCompetitors(category string) ([]*model.DemoCompetitor, error) {
	var demo []*model.DemoCompetitor
	err := r.db.Select(&demo, `
		SELECT * FROM demo_competitors
		WHERE $1 = '' OR category = $1
		ORDER BY points DESC
	`, category)
	if err != nil {
		return nil, err
	}
	return demo, nil
}

// Standings lists real users with their points. Users without a stats row
// count as zero.
func (r *leaderboardRepository) Standings(category string) ([]*model.Standing, error) {
	var rows []*model.Standing
	err := r.db.Select(&rows, `
		SELECT p.user_id, p.name, p.district, p.category,
		       COALESCE(s.points, 0) AS points,
		       COALESCE(s.trees_planted, 0) AS trees_planted,
		       COALESCE(s.carbon_saved, 0) AS carbon_saved,
		       COALESCE(s.actions_count, 0) AS actions_count
		FROM profiles p
		LEFT JOIN eco_stats s ON s.user_id = p.user_id
		WHERE $1 = '' OR p.category = $1
		ORDER BY points DESC
	`, category)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
