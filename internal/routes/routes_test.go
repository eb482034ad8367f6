package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/footprint/internal/app"
	"github.com/templui/footprint/internal/config"
	"github.com/templui/footprint/internal/service"
	"github.com/templui/footprint/internal/storage"
)

type testServer struct {
	app     *app.App
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		AppName:          "Footprint",
		AppEnv:           "development",
		AppURL:           "http://localhost:8090",
		DBDriver:         "sqlite",
		DBConnection:     filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)",
		JWTSecret:        "test-secret-test-secret-test-secret",
		JWTExpiry:        time.Hour,
		JobsTimezone:     "UTC",
		WeeklyDigestSpec: "0 8 * * MON",
	}

	a, err := app.NewWithStorage(cfg, storage.NewMemory())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(context.Background()) })

	return &testServer{app: a, handler: SetupRoutes(a)}
}

// onboardedToken signs in a fresh verified user with a completed profile.
func (s *testServer) onboardedToken(t *testing.T, email string) string {
	t.Helper()

	token := s.newUserToken(t, email)
	user, err := s.app.AuthService.AuthenticateOAuth(email, "test")
	require.NoError(t, err)
	require.NoError(t, s.app.AuthService.CompleteOnboarding(user.ID, "Asha", "Kathmandu", "students"))
	return token
}

// newUserToken signs in a verified user who has not onboarded yet.
func (s *testServer) newUserToken(t *testing.T, email string) string {
	t.Helper()

	user, err := s.app.AuthService.AuthenticateOAuth(email, "test")
	require.NoError(t, err)
	token, _, err := s.app.AuthService.GenerateJWT(user)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownRouteReturnsJSON(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "default-src 'none'")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	// development never sends HSTS
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestPublicCalculator(t *testing.T) {
	s := newTestServer(t)

	t.Run("valid input", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/calculate", "", map[string]any{
			"car_km": 100,
			"diet":   "vegan",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		body := decodeBody(t, rec)
		result := body["result"].(map[string]any)
		assert.Greater(t, result["total"].(float64), 0.0)
		assert.NotContains(t, body, "record")
	})

	t.Run("negative amount", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/calculate", "", map[string]any{"car_km": -5})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decodeBody(t, rec)
		assert.Contains(t, body["fields"], "car_km")
	})

	t.Run("amount too large", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/calculate", "", map[string]any{"electricity_kwh": 1e19})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decodeBody(t, rec)
		assert.Contains(t, body["fields"], "electricity_kwh")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/calculate", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/me", "/api/me/dashboard", "/api/me/stats"} {
		rec := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := s.do(t, http.MethodGet, "/api/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOnboardingGate(t *testing.T) {
	s := newTestServer(t)
	token := s.newUserToken(t, "new@example.com")

	rec := s.do(t, http.MethodGet, "/api/me/dashboard", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/me/onboarding", token, map[string]string{
		"name":     "Asha",
		"district": "Lalitpur",
		"category": "workers",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/me/dashboard", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestLogActionAwardsPoints(t *testing.T) {
	s := newTestServer(t)
	token := s.onboardedToken(t, "eco@example.com")

	rec := s.do(t, http.MethodPost, "/api/me/actions", token, map[string]any{
		"action_type": "tree",
		"quantity":    1,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/me/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeBody(t, rec)
	assert.NotEmpty(t, stats)

	rec = s.do(t, http.MethodPost, "/api/me/actions", token, map[string]any{
		"action_type": "teleport",
		"quantity":    1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/me/actions", token, map[string]any{
		"action_type": "tree",
		"quantity":    1 << 62,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/me/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, stats["points"], decodeBody(t, rec)["points"])
}

func TestSavedCalculationHistory(t *testing.T) {
	s := newTestServer(t)
	token := s.onboardedToken(t, "calc@example.com")

	rec := s.do(t, http.MethodPost, "/api/me/footprints", token, map[string]any{"car_km": 250})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	record := decodeBody(t, rec)["record"].(map[string]any)
	id := record["id"].(string)

	rec = s.do(t, http.MethodGet, "/api/me/footprints", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Len(t, history, 1)

	rec = s.do(t, http.MethodGet, "/api/me/footprints/export", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), service.ExportFilename)

	rec = s.do(t, http.MethodDelete, "/api/me/footprints/"+id, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/me/footprints/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegisteredUserMustVerifyBeforeLogin(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":            "fresh@example.com",
		"password":         "correct-horse-battery",
		"confirm_password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":            "fresh@example.com",
		"password":         "correct-horse-battery",
		"confirm_password": "correct-horse-battery",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "fresh@example.com",
		"password": "correct-horse-battery",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCookieSessionsNeedCSRFToken(t *testing.T) {
	s := newTestServer(t)
	token := s.onboardedToken(t, "cookie@example.com")
	authCookie := &http.Cookie{Name: service.AuthCookieName, Value: token}

	body := `{"action_type":"recycle","quantity":1}`

	req := httptest.NewRequest(http.MethodPost, "/api/me/actions", bytes.NewBufferString(body))
	req.AddCookie(authCookie)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// fetch a token, then submit it in the header
	req = httptest.NewRequest(http.MethodGet, "/api/csrf", nil)
	req.AddCookie(authCookie)
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	csrf := decodeBody(t, rec)["csrf_token"].(string)
	require.NotEmpty(t, csrf)

	var csrfCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "csrf_token" {
			csrfCookie = c
		}
	}
	require.NotNil(t, csrfCookie)

	req = httptest.NewRequest(http.MethodPost, "/api/me/actions", bytes.NewBufferString(body))
	req.AddCookie(authCookie)
	req.AddCookie(csrfCookie)
	req.Header.Set("X-CSRF-Token", csrf)
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestOffsetQuoteWithoutProvider(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/offsets/quote?kg=1000", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, false, decodeBody(t, rec)["purchase_enabled"])

	token := s.onboardedToken(t, "offset@example.com")
	rec = s.do(t, http.MethodPost, "/api/me/offsets/checkout", token, map[string]any{"kg": 100})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
