package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/footprint/internal/model"
)

var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrAlreadyJoined     = errors.New("already joined this challenge")
	ErrNotParticipating  = errors.New("not participating in this challenge")
)

type ChallengeRepository interface {
	Upsert(challenge *model.Challenge) error
	Active(day string) ([]*model.Challenge, error)
	ByID(id string) (*model.Challenge, error)

	Join(challengeID, userID string) (*model.ChallengeParticipant, error)
	Open(userID string) ([]*model.ChallengeParticipant, error)
	ByUser(userID string) ([]*model.ChallengeParticipant, error)
	SaveProgress(p *model.ChallengeParticipant) error
	Complete(challengeID, userID string) (bool, error)
	Leave(challengeID, userID string) error
}

type challengeRepository struct {
	db *sqlx.DB
}

func NewChallengeRepository(db *sqlx.DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

func (r *challengeRepository) Upsert(c *model.Challenge) error {
	_, err := r.db.Exec(`
		INSERT INTO challenges (id, name, description, challenge_type, difficulty, target_type, target_value,
		                        reward_points, badge_name, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			challenge_type = excluded.challenge_type,
			difficulty = excluded.difficulty,
			target_type = excluded.target_type,
			target_value = excluded.target_value,
			reward_points = excluded.reward_points,
			badge_name = excluded.badge_name,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			is_active = excluded.is_active
	`, c.ID, c.Name, c.Description, c.ChallengeType, c.Difficulty, c.TargetType, c.TargetValue,
		c.RewardPoints, c.BadgeName, c.StartDate, c.EndDate, c.IsActive)
	return err
}

// Active lists active challenges whose window contains day, with
// participant counts.
func (r *challengeRepository) Active(day string) ([]*model.Challenge, error) {
	var rows []struct {
		model.Challenge
		Count int `db:"participants"`
	}
	err := r.db.Select(&rows, `
		SELECT c.*, (SELECT COUNT(*) FROM challenge_participants p WHERE p.challenge_id = c.id) AS participants
		FROM challenges c
		WHERE c.is_active = TRUE AND c.start_date <= $1 AND c.end_date >= $1
		ORDER BY c.start_date DESC, c.name ASC
	`, day)
	if err != nil {
		return nil, err
	}

	challenges := make([]*model.Challenge, 0, len(rows))
	for i := range rows {
		c := rows[i].Challenge
		c.Participants = rows[i].Count
		challenges = append(challenges, &c)
	}
	return challenges, nil
}

func (r *challengeRepository) ByID(id string) (*model.Challenge, error) {
	c := &model.Challenge{}
	err := r.db.Get(c, `SELECT * FROM challenges WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrChallengeNotFound
	}
	return c, err
}

func (r *challengeRepository) Join(challengeID, userID string) (*model.ChallengeParticipant, error) {
	p := &model.ChallengeParticipant{
		ChallengeID: challengeID,
		UserID:      userID,
		JoinedAt:    time.Now(),
	}
	_, err := r.db.Exec(`
		INSERT INTO challenge_participants (challenge_id, user_id, progress, completed, joined_at)
		VALUES ($1, $2, 0, FALSE, $3)
	`, p.ChallengeID, p.UserID, p.JoinedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyJoined
		}
		return nil, err
	}
	return p, nil
}

// Open returns the user's participations that are not completed yet.
func (r *challengeRepository) Open(userID string) ([]*model.ChallengeParticipant, error) {
	var ps []*model.ChallengeParticipant
	err := r.db.Select(&ps, `
		SELECT * FROM challenge_participants WHERE user_id = $1 AND completed = FALSE ORDER BY joined_at
	`, userID)
	if err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *challengeRepository) ByUser(userID string) ([]*model.ChallengeParticipant, error) {
	var ps []*model.ChallengeParticipant
	err := r.db.Select(&ps, `SELECT * FROM challenge_participants WHERE user_id = $1 ORDER BY joined_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *challengeRepository) SaveProgress(p *model.ChallengeParticipant) error {
	_, err := r.db.Exec(`
		UPDATE challenge_participants
		SET progress = $1, completed = $2, completed_at = $3
		WHERE challenge_id = $4 AND user_id = $5
	`, p.Progress, p.Completed, p.CompletedAt, p.ChallengeID, p.UserID)
	return err
}

// Complete marks a participation finished at 100%. It reports false when an
// earlier call already did, so the reward is paid once.
func (r *challengeRepository) Complete(challengeID, userID string) (bool, error) {
	result, err := r.db.Exec(`
		UPDATE challenge_participants
		SET progress = 100, completed = TRUE, completed_at = $1
		WHERE challenge_id = $2 AND user_id = $3 AND completed = FALSE
	`, time.Now(), challengeID, userID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

// Leave drops an unfinished participation.
func (r *challengeRepository) Leave(challengeID, userID string) error {
	result, err := r.db.Exec(`
		DELETE FROM challenge_participants
		WHERE challenge_id = $1 AND user_id = $2 AND completed = FALSE
	`, challengeID, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotParticipating
	}
	return nil
}
