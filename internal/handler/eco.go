package handler

import (
	"net/http"

	"github.com/templui/footprint/internal/ctxkeys"
	"github.com/templui/footprint/internal/gamification"
	"github.com/templui/footprint/internal/service"
)

// EcoHandler serves the gamified profile: points, actions and achievements.
type EcoHandler struct {
	gamificationService *service.GamificationService
}

func NewEcoHandler(gamificationService *service.GamificationService) *EcoHandler {
	return &EcoHandler{gamificationService: gamificationService}
}

func (h *EcoHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	stats, err := h.gamificationService.Stats(user.ID)
	if err != nil {
		fail(w, r, "failed to load stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Catalog lists the actions that can be logged and what each is worth.
func (h *EcoHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, gamification.Actions())
}

func (h *EcoHandler) LogAction(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		ActionType string `json:"action_type"`
		Quantity   int    `json:"quantity"`
		Details    string `json:"details"`
	}
	if !decode(w, r, &req) {
		return
	}

	outcome, err := h.gamificationService.LogAction(user.ID, req.ActionType, req.Quantity, req.Details)
	if err != nil {
		fail(w, r, "failed to log action", err)
		return
	}
	writeJSON(w, http.StatusCreated, outcome)
}

func (h *EcoHandler) Actions(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	actions, err := h.gamificationService.Actions(user.ID, queryInt(r, "limit", 20))
	if err != nil {
		fail(w, r, "failed to load actions", err)
		return
	}
	writeJSON(w, http.StatusOK, actions)
}

func (h *EcoHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	achievements, err := h.gamificationService.Achievements(user.ID)
	if err != nil {
		fail(w, r, "failed to load achievements", err)
		return
	}
	writeJSON(w, http.StatusOK, achievements)
}
