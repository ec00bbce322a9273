package transport

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
)

// BridgeTokenHeader carries the shared secret of the field tools.
const BridgeTokenHeader = "X-Bridge-Token"

// ErrForbidden indicates a bridge token that does not match.
var ErrForbidden = errors.New("invalid bridge token")

// BridgeTokenMiddleware rejects requests whose X-Bridge-Token header does not
// equal the configured secret. An empty secret rejects everything.
func BridgeTokenMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !tokenMatches(r.Header.Get(BridgeTokenHeader), secret) {
				writeJSON(w, http.StatusForbidden, errorBody{Error: ErrForbidden.Error()})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AuthMiddleware enforces bearer token authentication.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			if !tokenMatches(token, secret) {
				http.Error(w, "invalid bearer token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tokenMatches(got, want string) bool {
	if got == "" || want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
