package handler

import (
	"net/http"

	"github.com/templui/footprint/internal/ctxkeys"
	"github.com/templui/footprint/internal/service"
)

type RewardHandler struct {
	rewardService *service.RewardService
}

func NewRewardHandler(rewardService *service.RewardService) *RewardHandler {
	return &RewardHandler{rewardService: rewardService}
}

func (h *RewardHandler) List(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.rewardService.List(r.URL.Query().Get("category"))
	if err != nil {
		fail(w, r, "failed to load rewards", err)
		return
	}
	writeJSON(w, http.StatusOK, rewards)
}

func (h *RewardHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	redemption, err := h.rewardService.Redeem(user.ID, r.PathValue("id"))
	if err != nil {
		fail(w, r, "failed to redeem reward", err)
		return
	}
	writeJSON(w, http.StatusCreated, redemption)
}

func (h *RewardHandler) Redemptions(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	redemptions, err := h.rewardService.Redemptions(user.ID)
	if err != nil {
		fail(w, r, "failed to load redemptions", err)
		return
	}
	writeJSON(w, http.StatusOK, redemptions)
}

func (h *RewardHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	redemption, err := h.rewardService.Cancel(user.ID, r.PathValue("id"))
	if err != nil {
		fail(w, r, "failed to cancel redemption", err)
		return
	}
	writeJSON(w, http.StatusOK, redemption)
}

func (h *RewardHandler) Donate(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Points int `json:"points"`
	}
	if !decode(w, r, &req) {
		return
	}

	result, err := h.rewardService.Donate(user.ID, req.Points)
	if err != nil {
		fail(w, r, "failed to donate points", err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *RewardHandler) Donations(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	donations, err := h.rewardService.Donations(user.ID)
	if err != nil {
		fail(w, r, "failed to load donations", err)
		return
	}
	writeJSON(w, http.StatusOK, donations)
}
