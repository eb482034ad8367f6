package middleware

import (
	"net/http"

	"github.com/templui/footprint/internal/config"
	"github.com/templui/footprint/internal/ctxkeys"
)

// Config puts the sanitized configuration, without secrets or connection
// strings, in the request context.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), cfg.Sanitized())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}