package handler

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/templui/footprint/internal/config"
	"github.com/templui/footprint/internal/ctxkeys"
	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/service"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

const oauthStateCookie = "oauth_state"

type session struct {
	User            *model.User `json:"user"`
	Token           string      `json:"token"`
	ExpiresAt       time.Time   `json:"expires_at"`
	NeedsOnboarding bool        `json:"needs_onboarding"`
}

// oauthProvider pairs an oauth2 config with the call that reads the
// verified email address.
type oauthProvider struct {
	name   string
	config *oauth2.Config
	email  func(ctx context.Context, client *http.Client) (string, error)
}

type authHandler struct {
	authService *service.AuthService
	userService *service.UserService
	google      *oauthProvider
	github      *oauthProvider
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService, cfg *config.Config) *authHandler {
	return &authHandler{
		authService: authService,
		userService: userService,
		google: &oauthProvider{
			name: "google",
			config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				RedirectURL:  cfg.AppURL + "/auth/google/callback",
				Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email"},
				Endpoint:     google.Endpoint,
			},
			email: googleEmail,
		},
		github: &oauthProvider{
			name: "github",
			config: &oauth2.Config{
				ClientID:     cfg.GitHubClientID,
				ClientSecret: cfg.GitHubClientSecret,
				RedirectURL:  cfg.AppURL + "/auth/github/callback",
				Scopes:       []string{"user:email"},
				Endpoint:     github.Endpoint,
			},
			email: githubEmail,
		},
	}
}

// startSession issues a JWT as both cookie and response body so browser and
// API clients can use the same endpoints.
func (h *authHandler) startSession(w http.ResponseWriter, user *model.User) (*session, error) {
	token, expiry, err := h.authService.GenerateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate JWT: %w", err)
	}
	h.authService.SetJWTCookie(w, token, expiry)

	needsOnboarding, err := h.authService.NeedsOnboarding(user.ID)
	if err != nil {
		slog.Warn("failed to check onboarding status", "error", err, "user_id", user.ID)
	}

	return &session{
		User:            user,
		Token:           token,
		ExpiresAt:       expiry,
		NeedsOnboarding: needsOnboarding,
	}, nil
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
		Name            string `json:"name"`
	}
	if !decode(w, r, &req) {
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.ConfirmPassword, req.Name)
	if err != nil {
		fail(w, r, "failed to register", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user":    user,
		"message": "Check your inbox to verify your email address.",
	})
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			slog.Warn("login refused", "error", err)
		}
		fail(w, r, "failed to log in", err)
		return
	}

	s, err := h.startSession(w, user)
	if err != nil {
		fail(w, r, "failed to log in", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// SendMagicLink always answers 202 so the endpoint can't be used to probe
// for registered addresses.
func (h *authHandler) SendMagicLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decode(w, r, &req) {
		return
	}

	err := h.authService.SendMagicLink(req.Email)
	if errors.Is(err, service.ErrInvalidEmail) {
		fail(w, r, "failed to send magic link", err)
		return
	}
	if err != nil {
		slog.Error("failed to send magic link", "error", err)
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"message": "If the address is valid, a sign in link is on its way.",
	})
}

func (h *authHandler) VerifyMagicLink(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.VerifyMagicLink(r.PathValue("token"))
	if err != nil {
		fail(w, r, "failed to verify magic link", err)
		return
	}

	s, err := h.startSession(w, user)
	if err != nil {
		fail(w, r, "failed to verify magic link", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *authHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decode(w, r, &req) {
		return
	}

	err := h.authService.SendForgotPasswordLink(req.Email)
	if errors.Is(err, service.ErrInvalidEmail) {
		fail(w, r, "failed to send reset link", err)
		return
	}
	if err != nil {
		slog.Error("failed to send forgot password link", "error", err)
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"message": "If an account exists for that address, a reset link is on its way.",
	})
}

// VerifyForgotPassword signs the user in and leaves the account passwordless
// until a new password is set.
func (h *authHandler) VerifyForgotPassword(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.VerifyForgotPassword(r.PathValue("token"))
	if err != nil {
		fail(w, r, "failed to verify reset link", err)
		return
	}

	s, err := h.startSession(w, user)
	if err != nil {
		fail(w, r, "failed to verify reset link", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *authHandler) Onboarding(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Name     string `json:"name"`
		District string `json:"district"`
		Category string `json:"category"`
	}
	if !decode(w, r, &req) {
		return
	}

	err := h.authService.CompleteOnboarding(user.ID, req.Name, req.District, req.Category)
	if err != nil {
		fail(w, r, "failed to complete onboarding", err)
		return
	}

	updated, err := h.userService.ByID(user.ID)
	if err != nil {
		fail(w, r, "failed to load user", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *authHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	h.redirectToProvider(w, r, h.google)
}

func (h *authHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	h.callback(w, r, h.google)
}

func (h *authHandler) GitHubAuth(w http.ResponseWriter, r *http.Request) {
	h.redirectToProvider(w, r, h.github)
}

func (h *authHandler) GitHubCallback(w http.ResponseWriter, r *http.Request) {
	h.callback(w, r, h.github)
}

func (h *authHandler) redirectToProvider(w http.ResponseWriter, r *http.Request, p *oauthProvider) {
	if p.config.ClientID == "" {
		writeError(w, http.StatusNotFound, p.name+" sign in is not configured")
		return
	}

	state := generateOAuthState()

	cfg := ctxkeys.Config(r.Context())
	isProduction := cfg != nil && cfg.IsProduction()

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600,
	})

	http.Redirect(w, r, p.config.AuthCodeURL(state, oauth2.AccessTypeOffline), http.StatusTemporaryRedirect)
}

func (h *authHandler) callback(w http.ResponseWriter, r *http.Request, p *oauthProvider) {
	state := r.URL.Query().Get("state")
	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || state == "" || cookie.Value != state {
		slog.Warn("oauth state validation failed", "provider", p.name, "error", err)
		writeError(w, http.StatusBadRequest, "OAuth authentication failed. Please try again.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:   oauthStateCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		slog.Warn("oauth callback missing code", "provider", p.name)
		writeError(w, http.StatusBadRequest, "OAuth authentication failed. Please try again.")
		return
	}

	ctx := r.Context()
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		slog.Error("oauth token exchange failed", "provider", p.name, "error", err)
		writeError(w, http.StatusBadGateway, "OAuth authentication failed. Please try again.")
		return
	}

	email, err := p.email(ctx, p.config.Client(ctx, token))
	if err != nil {
		slog.Error("failed to read oauth email", "provider", p.name, "error", err)
		writeError(w, http.StatusBadGateway, "Could not retrieve your email address. Please try again.")
		return
	}

	user, err := h.authService.AuthenticateOAuth(email, p.name)
	if err != nil {
		fail(w, r, "oauth authentication failed", err)
		return
	}

	s, err := h.startSession(w, user)
	if err != nil {
		fail(w, r, "oauth authentication failed", err)
		return
	}

	slog.Info("user logged in with oauth", "provider", p.name, "user_id", user.ID)
	writeJSON(w, http.StatusOK, s)
}

func getJSON(ctx context.Context, client *http.Client, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func googleEmail(ctx context.Context, client *http.Client) (string, error) {
	var info struct {
		Email string `json:"email"`
	}
	err := getJSON(ctx, client, "https://www.googleapis.com/oauth2/v2/userinfo", &info)
	if err != nil {
		return "", err
	}
	if info.Email == "" {
		return "", errors.New("google returned no email")
	}
	return info.Email, nil
}

// githubEmail falls back to the primary address when the profile email is
// private.
func githubEmail(ctx context.Context, client *http.Client) (string, error) {
	var info struct {
		Email string `json:"email"`
	}
	err := getJSON(ctx, client, "https://api.github.com/user", &info)
	if err != nil {
		return "", err
	}
	if info.Email != "" {
		return info.Email, nil
	}

	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	err = getJSON(ctx, client, "https://api.github.com/user/emails", &emails)
	if err != nil {
		return "", err
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	return "", errors.New("github account has no verified primary email")
}

func generateOAuthState() string {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		panic("failed to generate oauth state: " + err.Error())
	}
	return base64.URLEncoding.EncodeToString(bytes)
}
