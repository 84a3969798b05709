// Package middleware provides reusable HTTP middleware for the trip
// application API: CORS policy, the service-secret guard, request logging,
// and body size limiting.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler returns a middleware that applies CORS headers based on
// allowedOrigins. Each entry must be a full origin (scheme + host, no
// trailing slash). Allowed methods and headers cover the full REST surface,
// including the X-Service-Secret header the admin panel sends; preflight
// responses are cacheable for one day.
//
// The handler short-circuits OPTIONS preflights before any route logic runs.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Service-Secret"},
		AllowCredentials: true,
		MaxAge:           86400,
	})
	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}
