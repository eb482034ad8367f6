package handler

import (
	"net/http"

	"github.com/templui/footprint/internal/ctxkeys"
	"github.com/templui/footprint/internal/service"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List takes ?unread=true to hide read notifications.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	unreadOnly := r.URL.Query().Get("unread") == "true"
	notifications, err := h.notificationService.List(user.ID, unreadOnly)
	if err != nil {
		fail(w, r, "failed to load notifications", err)
		return
	}
	unread, err := h.notificationService.UnreadCount(user.ID)
	if err != nil {
		fail(w, r, "failed to count notifications", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": notifications,
		"unread":        unread,
	})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.notificationService.MarkRead(user.ID, r.PathValue("id"))
	if err != nil {
		fail(w, r, "failed to mark notification read", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	n, err := h.notificationService.MarkAllRead(user.ID)
	if err != nil {
		fail(w, r, "failed to mark notifications read", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"updated": n})
}
