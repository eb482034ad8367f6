package handler

import (
	"net/http"

	"github.com/templui/footprint/internal/ctxkeys"
	"github.com/templui/footprint/internal/service"
)

type ActivityHandler struct {
	activityService *service.ActivityService
}

func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var in service.ActivityInput
	if !decode(w, r, &in) {
		return
	}

	result, err := h.activityService.Create(user.ID, in)
	if err != nil {
		fail(w, r, "failed to log activity", err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *ActivityHandler) QuickLog(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	result, err := h.activityService.QuickLog(user.ID, r.PathValue("template"))
	if err != nil {
		fail(w, r, "failed to log activity", err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// List takes ?category= and ?limit=.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	activities, err := h.activityService.List(user.ID, r.URL.Query().Get("category"), queryInt(r, "limit", 50))
	if err != nil {
		fail(w, r, "failed to load activities", err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

// Summary takes ?period=day|week|month, day by default.
func (h *ActivityHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	summary, err := h.activityService.Summary(user.ID, r.URL.Query().Get("period"))
	if err != nil {
		fail(w, r, "failed to summarize activities", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *ActivityHandler) Equivalents(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	eq, err := h.activityService.Equivalents(user.ID)
	if err != nil {
		fail(w, r, "failed to load equivalents", err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

// Compare is public: ?distance_km= and ?servings=.
func (h *ActivityHandler) Compare(w http.ResponseWriter, r *http.Request) {
	distance := 10.0
	if r.URL.Query().Has("distance_km") {
		d, err := queryFloat(r, "distance_km")
		if err != nil {
			writeError(w, http.StatusBadRequest, "distance_km must be a number")
			return
		}
		distance = d
	}

	comparison, err := service.Compare(distance, queryInt(r, "servings", 1))
	if err != nil {
		fail(w, r, "failed to compare", err)
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}
