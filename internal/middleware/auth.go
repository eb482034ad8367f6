package middleware

import (
	"net/http"
	"strings"

	"github.com/templui/footprint/internal/ctxkeys"
	"github.com/templui/footprint/internal/service"
)

// onboardingPaths stay reachable before the user has picked a name.
var onboardingPaths = map[string]bool{
	"/api/me":            true,
	"/api/me/onboarding": true,
}

// bearerToken returns the token of an "Authorization: Bearer" header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// AuthMiddleware loads the user and profile for a valid JWT taken from the
// Authorization header or the auth cookie. Requests without one continue
// anonymously.
func AuthMiddleware(authService *service.AuthService, userService *service.UserService, profileService *service.ProfileService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			fromCookie := false
			if token == "" {
				cookie, err := r.Cookie(service.AuthCookieName)
				if err != nil {
					next.ServeHTTP(w, r)
					return
				}
				token = cookie.Value
				fromCookie = true
			}

			// a stale cookie is dropped, a bad bearer token is the client's problem
			reject := func() {
				if fromCookie {
					authService.ClearJWTCookie(w)
				}
				next.ServeHTTP(w, r)
			}

			userID, err := authService.UserIDFromJWT(token)
			if err != nil {
				reject()
				return
			}

			user, err := userService.ByID(userID)
			if err != nil {
				reject()
				return
			}
			user.PasswordHash = nil

			profile, err := profileService.ByUserID(userID)
			if err != nil {
				reject()
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			ctx = ctxkeys.WithProfile(ctx, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests with 401 and users who haven't
// finished onboarding with 403.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		profile := ctxkeys.Profile(r.Context())
		if (profile == nil || profile.Name == "") && !onboardingPaths[r.URL.Path] {
			writeError(w, http.StatusForbidden, "complete onboarding first")
			return
		}

		next.ServeHTTP(w, r)
	}
}
