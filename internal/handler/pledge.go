package handler

import (
	"net/http"

	"github.com/templui/footprint/internal/ctxkeys"
	"github.com/templui/footprint/internal/service"
	"github.com/templui/footprint/internal/ui"
)

type PledgeHandler struct {
	pledgeService *service.PledgeService
	appName       string
}

func NewPledgeHandler(pledgeService *service.PledgeService, appName string) *PledgeHandler {
	return &PledgeHandler{
		pledgeService: pledgeService,
		appName:       appName,
	}
}

func (h *PledgeHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.pledgeService.Count()
	if err != nil {
		fail(w, r, "failed to count pledges", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

// Create accepts anonymous pledges. A signed-in pledger is linked to the
// pledge and gets a confirmation email.
func (h *PledgeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		District string `json:"district"`
	}
	if !decode(w, r, &req) {
		return
	}

	userID := ""
	if user := ctxkeys.User(r.Context()); user != nil {
		userID = user.ID
	}

	pledge, err := h.pledgeService.Pledge(req.Name, req.District, userID)
	if err != nil {
		fail(w, r, "failed to save pledge", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"pledge":          pledge,
		"certificate_url": h.pledgeService.CertificateURL(pledge),
	})
}

func (h *PledgeHandler) Certificate(w http.ResponseWriter, r *http.Request) {
	pledge, err := h.pledgeService.ByID(r.PathValue("id"))
	if err != nil {
		fail(w, r, "failed to load pledge", err)
		return
	}
	ui.Render(w, r, ui.PledgeCertificate(h.appName, pledge))
}
