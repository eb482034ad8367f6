package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/footprint/internal/ctxkeys"
	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/service"
	"github.com/templui/footprint/internal/validation"
)

// maxAvatarForm bounds the multipart body, the image itself is capped lower
// by validation.ImageConstraints.
const maxAvatarForm = 10 << 20

type me struct {
	User    *model.User    `json:"user"`
	Profile *model.Profile `json:"profile"`
}

type AccountHandler struct {
	authService    *service.AuthService
	userService    *service.UserService
	profileService *service.ProfileService
	fileService    *service.FileService
}

func NewAccountHandler(
	authService *service.AuthService,
	userService *service.UserService,
	profileService *service.ProfileService,
	fileService *service.FileService,
) *AccountHandler {
	return &AccountHandler{
		authService:    authService,
		userService:    userService,
		profileService: profileService,
		fileService:    fileService,
	}
}

func (h *AccountHandler) me(w http.ResponseWriter, r *http.Request, status int) {
	userID := ctxkeys.User(r.Context()).ID

	user, err := h.userService.ByID(userID)
	if err != nil {
		fail(w, r, "failed to load user", err)
		return
	}
	profile, err := h.profileService.ByUserID(userID)
	if err != nil {
		fail(w, r, "failed to load profile", err)
		return
	}
	writeJSON(w, status, me{User: user, Profile: profile})
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	h.me(w, r, http.StatusOK)
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req service.ProfileUpdate
	if !decode(w, r, &req) {
		return
	}

	profile, err := h.profileService.Update(user.ID, req)
	if err != nil {
		fail(w, r, "failed to update profile", err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *AccountHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Theme string `json:"theme"`
	}
	if !decode(w, r, &req) {
		return
	}

	profile, err := h.profileService.SetTheme(user.ID, req.Theme)
	if err != nil {
		fail(w, r, "failed to update preferences", err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *AccountHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarForm)
	err := r.ParseMultipartForm(maxAvatarForm)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer func() {
		closeErr := file.Close()
		if closeErr != nil {
			slog.Error("failed to close file", "error", closeErr)
		}
	}()

	err = validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, err = h.fileService.ReplaceAvatar(service.Upload{
		UserID:       user.ID,
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Size:         header.Size,
		Content:      file,
	})
	if err != nil {
		fail(w, r, "failed to upload avatar", err)
		return
	}

	h.me(w, r, http.StatusCreated)
}

func (h *AccountHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.fileService.DeleteUserAvatar(user.ID)
	if err != nil {
		fail(w, r, "failed to delete avatar", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type passwordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// SetPassword adds a password to a passwordless account.
func (h *AccountHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req passwordRequest
	if !decode(w, r, &req) {
		return
	}

	err := h.authService.SetPassword(user.ID, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		fail(w, r, "failed to set password", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req passwordRequest
	if !decode(w, r, &req) {
		return
	}

	err := h.userService.UpdatePassword(user.ID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		fail(w, r, "failed to change password", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) RemovePassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.authService.RemovePassword(user.ID)
	if err != nil {
		fail(w, r, "failed to remove password", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.userService.DeleteAccount(user.ID)
	if err != nil {
		fail(w, r, "failed to delete account", err)
		return
	}

	h.authService.ClearJWTCookie(w)
	slog.Info("account deleted", "user_id", user.ID)
	w.WriteHeader(http.StatusNoContent)
}
