package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/footprint/internal/ctxkeys"
	"github.com/templui/footprint/internal/model"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRateLimiterLimit(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Close()
	h := rl.Limit()(ok)

	call := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		rec := httptest.NewRecorder()
		h(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, call("203.0.113.1").Code)
	assert.Equal(t, http.StatusOK, call("203.0.113.1").Code)

	rec := call("203.0.113.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// other clients keep their own budget
	assert.Equal(t, http.StatusOK, call("203.0.113.2").Code)
}

func TestRateLimiterCloseIsIdempotent(t *testing.T) {
	rl := NewAuthRateLimiter()
	rl.Close()
	rl.Close()
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "198.51.100.7, 10.0.0.1"}, "10.0.0.1:1234", "198.51.100.7"},
		{"real ip", map[string]string{"X-Real-IP": " 198.51.100.8 "}, "10.0.0.1:1234", "198.51.100.8"},
		{"remote addr", nil, "192.0.2.1:5678", "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, bearerToken(req))

	req.Header.Set("Authorization", "Bearer abc.def")
	assert.Equal(t, "abc.def", bearerToken(req))

	req.Header.Set("Authorization", "bearer xyz")
	assert.Equal(t, "xyz", bearerToken(req))

	req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
	assert.Empty(t, bearerToken(req))
}

func TestRequireAuth(t *testing.T) {
	h := RequireAuth(ok)

	t.Run("anonymous", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/api/me/stats", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	withUser := func(path, name string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		ctx := ctxkeys.WithUser(req.Context(), &model.User{ID: "u1"})
		ctx = ctxkeys.WithProfile(ctx, &model.Profile{UserID: "u1", Name: name})
		rec := httptest.NewRecorder()
		h(rec, req.WithContext(ctx))
		return rec
	}

	assert.Equal(t, http.StatusForbidden, withUser("/api/me/stats", "").Code)
	assert.Equal(t, http.StatusOK, withUser("/api/me", "").Code)
	assert.Equal(t, http.StatusOK, withUser("/api/me/onboarding", "").Code)
	assert.Equal(t, http.StatusOK, withUser("/api/me/stats", "Asha").Code)
}

func TestCSRFExemptions(t *testing.T) {
	h := CSRFProtection(http.HandlerFunc(ok))

	tests := []struct {
		name  string
		setup func(r *http.Request)
		want  int
	}{
		{"anonymous", func(r *http.Request) {}, http.StatusOK},
		{"bearer", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer t")
			r.AddCookie(&http.Cookie{Name: "auth_token", Value: "t"})
		}, http.StatusOK},
		{"cookie without token", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "auth_token", Value: "t"})
		}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/me/actions", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	t.Run("webhook", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: "t"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequestIDKeepsIncoming(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxkeys.RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rec.Header().Get("X-Request-ID"), 36)
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())

	abort := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.Panics(t, func() {
		abort.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(ok), mark("outer"), mark("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner"}, order)
}
