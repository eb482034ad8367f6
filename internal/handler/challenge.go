package handler

import (
	"net/http"

	"github.com/templui/footprint/internal/ctxkeys"
	"github.com/templui/footprint/internal/service"
)

type ChallengeHandler struct {
	challengeService *service.ChallengeService
}

func NewChallengeHandler(challengeService *service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService}
}

// List returns the challenges running today.
func (h *ChallengeHandler) List(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.challengeService.List()
	if err != nil {
		fail(w, r, "failed to load challenges", err)
		return
	}
	writeJSON(w, http.StatusOK, challenges)
}

func (h *ChallengeHandler) Join(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	p, err := h.challengeService.Join(user.ID, r.PathValue("id"))
	if err != nil {
		fail(w, r, "failed to join challenge", err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ChallengeHandler) Leave(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.challengeService.Leave(user.ID, r.PathValue("id"))
	if err != nil {
		fail(w, r, "failed to leave challenge", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChallengeHandler) Mine(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	ps, err := h.challengeService.Mine(user.ID)
	if err != nil {
		fail(w, r, "failed to load challenges", err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}
