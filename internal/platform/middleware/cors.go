package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// DefaultCORSMaxAge is the preflight cache duration in seconds.
const DefaultCORSMaxAge = 300

// CORS returns a middleware allowing the given origins. With no origins every
// origin is allowed.
func CORS(allowedOrigins ...string) func(http.Handler) http.Handler {
	return CORSWithMaxAge(DefaultCORSMaxAge, allowedOrigins...)
}

// CORSWithMaxAge is CORS with a custom preflight cache duration.
func CORSWithMaxAge(maxAge int, allowedOrigins ...string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Request-Id",
			"traceparent",
		},
		ExposedHeaders: []string{"Link", "Location", "Retry-After", "X-RateLimit-Limit", "X-Request-Id"},
		MaxAge:         maxAge,
	})
}
