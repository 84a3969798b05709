package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// secretHeader is the dedicated header the management service sends.
const secretHeader = "X-Service-Secret"

// NewServiceAuthHandler returns a middleware that rejects requests lacking
// the shared service secret. The secret is read from the X-Service-Secret
// header, falling back to Authorization: Bearer.
//
// An empty configured secret fails closed: every request is rejected and the
// misconfiguration is logged, rather than silently accepting all traffic.
// The guard runs before any body parsing.
func NewServiceAuthHandler(expectedSecret string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if expectedSecret == "" {
				log.ErrorContext(r.Context(), "SERVICE_API_SECRET is not configured")
				unauthorized(w)
				return
			}

			secret := r.Header.Get(secretHeader)
			if secret == "" {
				if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
					secret = strings.TrimPrefix(auth, "Bearer ")
				}
			}
			if secret == "" {
				log.WarnContext(r.Context(), "service secret header not found in request")
				unauthorized(w)
				return
			}

			if subtle.ConstantTimeCompare([]byte(secret), []byte(expectedSecret)) != 1 {
				log.WarnContext(r.Context(), "service secret mismatch")
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// unauthorized writes the fixed 401 body. It leaks nothing about which check
// failed.
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}
