package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/footprint/internal/model"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

type NotificationRepository interface {
	Create(n *model.Notification) error
	List(userID string, unreadOnly bool, limit int) ([]*model.Notification, error)
	UnreadCount(userID string) (int, error)
	MarkRead(userID, id string) error
	MarkAllRead(userID string) (int64, error)
	PurgeRead(olderThan time.Duration) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(n *model.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(`
		INSERT INTO notifications (id, user_id, type, title, message, related_id, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, n.ID, n.UserID, n.Type, n.Title, n.Message, n.RelatedID, n.Read, n.CreatedAt)
	return err
}

func (r *notificationRepository) List(userID string, unreadOnly bool, limit int) ([]*model.Notification, error) {
	var ns []*model.Notification
	query := `SELECT * FROM notifications WHERE user_id = $1`
	if unreadOnly {
		query += ` AND read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $2`

	err := r.db.Select(&ns, query, userID, limit)
	if err != nil {
		return nil, err
	}
	return ns, nil
}

func (r *notificationRepository) UnreadCount(userID string) (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE`, userID)
	return count, err
}

func (r *notificationRepository) MarkRead(userID, id string) error {
	result, err := r.db.Exec(`UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(userID string) (int64, error) {
	result, err := r.db.Exec(`UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// PurgeRead deletes read notifications older than the given duration.
func (r *notificationRepository) PurgeRead(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	result, err := r.db.Exec(`DELETE FROM notifications WHERE read = TRUE AND created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
