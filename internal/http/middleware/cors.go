package middleware

import (
	"net/http"

	"murmur/internal/config"

	"github.com/go-chi/cors"
)

// CORS is off unless CORS_ALLOWED_ORIGINS is set. The pages post forms to
// their own origin, so cross-origin access only matters when another
// front end talks to the same server with the session cookie.
func CORS(cfg config.Config) func(http.Handler) http.Handler {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: cfg.CORSAllowCredentials,
		MaxAge:           300,
	})
}
