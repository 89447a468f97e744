// Package middleware provides HTTP middleware for API key authentication.
package middleware

import (
	"net/http"
	"strings"
)

// KeyVerifier checks a presented API key against stored credentials.
type KeyVerifier interface {
	VerifyKey(key, storedHash string) bool
}

// openPaths bypass authentication.
var openPaths = map[string]bool{
	"/health": true,
}

// RequireAPIKey creates middleware that validates the X-API-Key header
// against the stored hash. An empty stored hash disables authentication,
// for local development.
func RequireAPIKey(verifier KeyVerifier, storedHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if storedHash == "" || openPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			key := strings.TrimSpace(r.Header.Get("X-API-Key"))
			if key == "" || !verifier.VerifyKey(key, storedHash) {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
