package handler

import (
	"net/http"

	"github.com/templui/footprint/internal/ctxkeys"
	"github.com/templui/footprint/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	overview, err := h.dashboardService.Overview(user.ID)
	if err != nil {
		fail(w, r, "failed to load dashboard", err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
