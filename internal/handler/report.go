package handler

import (
	"net/http"

	"github.com/templui/footprint/internal/ctxkeys"
	"github.com/templui/footprint/internal/service"
	"github.com/templui/footprint/internal/ui"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Preview renders the report as HTML without storing it.
func (h *ReportHandler) Preview(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	data, err := h.reportService.Data(user.ID)
	if err != nil {
		fail(w, r, "failed to build report", err)
		return
	}
	ui.Render(w, r, ui.FootprintReport(data))
}

func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	report, err := h.reportService.Store(r.Context(), user.ID)
	if err != nil {
		fail(w, r, "failed to store report", err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	reports, err := h.reportService.List(user.ID)
	if err != nil {
		fail(w, r, "failed to load reports", err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}
