package handler

import (
	"net/http"

	"github.com/templui/footprint/internal/ctxkeys"
	"github.com/templui/footprint/internal/service"
)

type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// Standings takes ?category= (workers, students, free) and ?limit=.
func (h *LeaderboardHandler) Standings(w http.ResponseWriter, r *http.Request) {
	board, err := h.leaderboardService.Standings(r.URL.Query().Get("category"), queryInt(r, "limit", 0))
	if err != nil {
		fail(w, r, "failed to load leaderboard", err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *LeaderboardHandler) Rank(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	entry, err := h.leaderboardService.UserRank(user.ID, r.URL.Query().Get("category"))
	if err != nil {
		fail(w, r, "failed to load rank", err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
