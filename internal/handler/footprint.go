package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/footprint/internal/ctxkeys"
	"github.com/templui/footprint/internal/emissions"
	"github.com/templui/footprint/internal/service"
)

type FootprintHandler struct {
	footprintService *service.FootprintService
}

func NewFootprintHandler(footprintService *service.FootprintService) *FootprintHandler {
	return &FootprintHandler{footprintService: footprintService}
}

// Estimate is the public calculator. Nothing is stored.
func (h *FootprintHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var in emissions.Input
	if !decode(w, r, &in) {
		return
	}

	report, err := h.footprintService.Estimate(in)
	if err != nil {
		fail(w, r, "failed to calculate footprint", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *FootprintHandler) EstimateHousehold(w http.ResponseWriter, r *http.Request) {
	var in emissions.HouseholdInput
	if !decode(w, r, &in) {
		return
	}

	report, err := h.footprintService.EstimateHousehold(in)
	if err != nil {
		fail(w, r, "failed to calculate household footprint", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *FootprintHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var in emissions.Input
	if !decode(w, r, &in) {
		return
	}

	report, err := h.footprintService.Calculate(user.ID, in)
	if err != nil {
		fail(w, r, "failed to calculate footprint", err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

func (h *FootprintHandler) Household(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var in emissions.HouseholdInput
	if !decode(w, r, &in) {
		return
	}

	report, err := h.footprintService.Household(user.ID, in)
	if err != nil {
		fail(w, r, "failed to calculate household footprint", err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

// History lists saved calculations, optionally filtered with ?method=.
func (h *FootprintHandler) History(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	calcs, err := h.footprintService.History(user.ID, r.URL.Query().Get("method"))
	if err != nil {
		fail(w, r, "failed to load history", err)
		return
	}
	writeJSON(w, http.StatusOK, calcs)
}

func (h *FootprintHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	calc, err := h.footprintService.Get(user.ID, r.PathValue("id"))
	if err != nil {
		fail(w, r, "failed to load calculation", err)
		return
	}
	writeJSON(w, http.StatusOK, calc)
}

func (h *FootprintHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.footprintService.Delete(user.ID, r.PathValue("id"))
	if err != nil {
		fail(w, r, "failed to delete calculation", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FootprintHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	n, err := h.footprintService.Clear(user.ID, r.URL.Query().Get("method"))
	if err != nil {
		fail(w, r, "failed to clear history", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

func (h *FootprintHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	summary, err := h.footprintService.Stats(user.ID)
	if err != nil {
		fail(w, r, "failed to summarize history", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *FootprintHandler) Export(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	data, err := h.footprintService.Export(user.ID)
	if err != nil {
		fail(w, r, "failed to export history", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+service.ExportFilename)
	_, err = w.Write(data)
	if err != nil {
		slog.Error("failed to write export", "error", err, "user_id", user.ID)
	}
}
