package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/templui/footprint/internal/ctxkeys"
	"github.com/templui/footprint/internal/service"
)

// maxWebhookBytes bounds provider webhook payloads.
const maxWebhookBytes = 1 << 20

type OffsetHandler struct {
	offsetService *service.OffsetService
}

func NewOffsetHandler(offsetService *service.OffsetService) *OffsetHandler {
	return &OffsetHandler{offsetService: offsetService}
}

// Quote prices ?kg= of CO2. It works with payments disabled.
func (h *OffsetHandler) Quote(w http.ResponseWriter, r *http.Request) {
	kg, err := queryFloat(r, "kg")
	if err != nil {
		writeError(w, http.StatusBadRequest, "kg must be a number")
		return
	}

	quote, err := service.Quote(kg)
	if err != nil {
		fail(w, r, "failed to quote offset", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"quote":            quote,
		"purchase_enabled": h.offsetService.Enabled(),
	})
}

func (h *OffsetHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Kg float64 `json:"kg"`
	}
	if !decode(w, r, &req) {
		return
	}

	checkout, err := h.offsetService.Checkout(r.Context(), user.ID, req.Kg)
	if err != nil {
		fail(w, r, "failed to start checkout", err)
		return
	}
	writeJSON(w, http.StatusCreated, checkout)
}

func (h *OffsetHandler) Purchases(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	purchases, err := h.offsetService.Purchases(user.ID)
	if err != nil {
		fail(w, r, "failed to load purchases", err)
		return
	}
	writeJSON(w, http.StatusOK, purchases)
}

func (h *OffsetHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		slog.Error("failed to read webhook payload", "error", err)
		writeError(w, http.StatusBadRequest, "failed to read payload")
		return
	}
	defer func() {
		closeErr := r.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close request body", "error", closeErr)
		}
	}()

	err = h.offsetService.HandleWebhook(payload, r.Header)
	if err != nil {
		slog.Error("failed to handle webhook", "error", err)
		fail(w, r, "failed to process webhook", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
