package handler

import (
	"net/http"

	"github.com/templui/footprint/internal/ctxkeys"
	"github.com/templui/footprint/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// List takes ?sort=recent|deadline|title.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.goalService.Goals(user.ID, r.URL.Query().Get("sort"))
	if err != nil {
		fail(w, r, "failed to load goals", err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goal, err := h.goalService.ByID(user.ID, r.PathValue("id"))
	if err != nil {
		fail(w, r, "failed to load goal", err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var in service.GoalInput
	if !decode(w, r, &in) {
		return
	}

	goal, err := h.goalService.Create(user.ID, in)
	if err != nil {
		fail(w, r, "failed to create goal", err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var in service.GoalInput
	if !decode(w, r, &in) {
		return
	}

	goal, err := h.goalService.Update(user.ID, r.PathValue("id"), in)
	if err != nil {
		fail(w, r, "failed to update goal", err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.goalService.Delete(user.ID, r.PathValue("id"))
	if err != nil {
		fail(w, r, "failed to delete goal", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
