package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/templui/footprint/internal/ctxkeys"
	"github.com/templui/footprint/internal/emissions"
	"github.com/templui/footprint/internal/gamification"
	"github.com/templui/footprint/internal/repository"
	"github.com/templui/footprint/internal/service"
	"github.com/templui/footprint/internal/service/payment"
	"github.com/templui/footprint/internal/validation"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

var statusByError = []struct {
	err    error
	status int
}{
	{service.ErrInvalidInput, http.StatusBadRequest},
	{service.ErrUnknownTemplate, http.StatusBadRequest},
	{service.ErrUnknownPeriod, http.StatusBadRequest},
	{service.ErrInvalidEmail, http.StatusBadRequest},
	{service.ErrInvalidLink, http.StatusBadRequest},
	{service.ErrInvalidToken, http.StatusBadRequest},
	{payment.ErrInvalidSignature, http.StatusBadRequest},
	{gamification.ErrUnknownAction, http.StatusBadRequest},
	{gamification.ErrInvalidQuantity, http.StatusBadRequest},
	{emissions.ErrUnknownCategory, http.StatusBadRequest},
	{emissions.ErrUnknownType, http.StatusBadRequest},
	{emissions.ErrNegativeValue, http.StatusBadRequest},
	{emissions.ErrValueTooLarge, http.StatusBadRequest},

	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrEmailNotVerified, http.StatusUnauthorized},
	{service.ErrPasswordlessLogin, http.StatusUnauthorized},
	{service.ErrInvalidCurrentPassword, http.StatusUnauthorized},

	{service.ErrTipNotFound, http.StatusNotFound},
	{service.ErrNotRanked, http.StatusNotFound},
	{repository.ErrCalculationNotFound, http.StatusNotFound},
	{repository.ErrChallengeNotFound, http.StatusNotFound},
	{repository.ErrNotParticipating, http.StatusNotFound},
	{repository.ErrFileNotFound, http.StatusNotFound},
	{repository.ErrGoalNotFound, http.StatusNotFound},
	{repository.ErrNotificationNotFound, http.StatusNotFound},
	{repository.ErrOffsetNotFound, http.StatusNotFound},
	{repository.ErrPledgeNotFound, http.StatusNotFound},
	{repository.ErrRewardNotFound, http.StatusNotFound},
	{repository.ErrRedemptionNotFound, http.StatusNotFound},
	{repository.ErrTipNotFound, http.StatusNotFound},
	{repository.ErrUserNotFound, http.StatusNotFound},
	{repository.ErrProfileNotFound, http.StatusNotFound},

	{service.ErrEmailAlreadyExists, http.StatusConflict},
	{service.ErrPasswordAlreadySet, http.StatusConflict},
	{service.ErrAlreadyPasswordless, http.StatusConflict},
	{service.ErrNotCancellable, http.StatusConflict},
	{service.ErrChallengeClosed, http.StatusConflict},
	{repository.ErrAlreadyJoined, http.StatusConflict},
	{repository.ErrTipAlreadyImplemented, http.StatusConflict},
	{repository.ErrDuplicateEmail, http.StatusConflict},

	{service.ErrNoPassword, http.StatusUnprocessableEntity},
	{service.ErrGoalLimitReached, http.StatusUnprocessableEntity},
	{service.ErrGoalAlreadyCompleted, http.StatusUnprocessableEntity},
	{gamification.ErrInsufficientPoint, http.StatusUnprocessableEntity},
	{gamification.ErrDonationTooSmall, http.StatusUnprocessableEntity},
	{repository.ErrInsufficientPoints, http.StatusUnprocessableEntity},
	{repository.ErrOutOfStock, http.StatusUnprocessableEntity},

	{service.ErrPaymentsDisabled, http.StatusServiceUnavailable},
}

func statusOf(err error) int {
	var fields validation.FieldErrors
	if errors.As(err, &fields) {
		return http.StatusBadRequest
	}
	for _, e := range statusByError {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// fail maps a service error to a response. Unknown errors are logged and
// hidden behind a generic message.
func fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		attrs := []any{"error", err, "path", r.URL.Path}
		if user := ctxkeys.User(r.Context()); user != nil {
			attrs = append(attrs, "user_id", user.ID)
		}
		slog.Error(msg, attrs...)
		writeError(w, status, msg)
		return
	}

	body := errorBody{Error: err.Error()}
	var fields validation.FieldErrors
	if errors.As(err, &fields) {
		body.Fields = fields
	}
	writeJSON(w, status, body)
}

// queryInt reads a positive integer query parameter, falling back to def.
func queryInt(r *http.Request, name string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func queryFloat(r *http.Request, name string) (float64, error) {
	return strconv.ParseFloat(r.URL.Query().Get(name), 64)
}
