package service

import (
	"log/slog"
	"time"

	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/repository"
)

const notificationPageSize = 50

type NotificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Notify stores a notification. Failures are logged, never returned, so a
// notification can't undo the action that caused it.
func (s *NotificationService) Notify(userID, kind, title, message, relatedID string) {
	err := s.repo.Create(&model.Notification{
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Message:   message,
		RelatedID: relatedID,
	})
	if err != nil {
		slog.Error("failed to create notification", "error", err, "user_id", userID, "type", kind)
	}
}

func (s *NotificationService) List(userID string, unreadOnly bool) ([]*model.Notification, error) {
	return s.repo.List(userID, unreadOnly, notificationPageSize)
}

func (s *NotificationService) UnreadCount(userID string) (int, error) {
	return s.repo.UnreadCount(userID)
}

func (s *NotificationService) MarkRead(userID, id string) error {
	return s.repo.MarkRead(userID, id)
}

func (s *NotificationService) MarkAllRead(userID string) (int64, error) {
	return s.repo.MarkAllRead(userID)
}

// Purge deletes read notifications older than age.
func (s *NotificationService) Purge(age time.Duration) (int64, error) {
	return s.repo.PurgeRead(age)
}
