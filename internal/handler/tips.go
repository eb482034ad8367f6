package handler

import (
	"net/http"

	"github.com/templui/footprint/internal/ctxkeys"
	"github.com/templui/footprint/internal/service"
)

type TipHandler struct {
	tipService *service.TipService
}

func NewTipHandler(tipService *service.TipService) *TipHandler {
	return &TipHandler{tipService: tipService}
}

func (h *TipHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tipService.List(r.URL.Query().Get("category")))
}

func (h *TipHandler) Tip(w http.ResponseWriter, r *http.Request) {
	tip, err := h.tipService.Tip(r.PathValue("slug"))
	if err != nil {
		fail(w, r, "failed to load tip", err)
		return
	}
	writeJSON(w, http.StatusOK, tip)
}

func (h *TipHandler) Implemented(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	tips, err := h.tipService.Implemented(user.ID)
	if err != nil {
		fail(w, r, "failed to load implemented tips", err)
		return
	}
	writeJSON(w, http.StatusOK, tips)
}

func (h *TipHandler) Implement(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Slug string `json:"slug"`
	}
	if !decode(w, r, &req) {
		return
	}

	tip, outcome, err := h.tipService.Implement(user.ID, req.Slug)
	if err != nil {
		fail(w, r, "failed to implement tip", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"tip":     tip,
		"outcome": outcome,
	})
}

func (h *TipHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.tipService.Remove(user.ID, r.PathValue("id"))
	if err != nil {
		fail(w, r, "failed to remove tip", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
