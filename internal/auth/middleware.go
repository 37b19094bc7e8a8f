package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/osse101/Pokemonkey_Go/internal/logger"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// WithClaims stores verified claims in ctx.
func WithClaims(ctx context.Context, c Claims) context.Context {
	ctx = logger.WithUserID(ctx, c.UserID)
	return context.WithValue(ctx, claimsKey, c)
}

// ClaimsFromContext returns the claims stored by RequireToken.
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsKey).(Claims)
	return c, ok
}

// UserIDFromContext returns the authenticated user id, or "".
func UserIDFromContext(ctx context.Context) string {
	c, _ := ClaimsFromContext(ctx)
	return c.UserID
}

// RequireToken rejects requests without a valid "Authorization: Bearer" token.
func RequireToken(m *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found {
				unauthorized(w, "missing bearer token")
				return
			}

			claims, err := m.Verify(token)
			if err != nil {
				logger.FromContext(r.Context()).Warn("Rejected session token", "error", err)
				unauthorized(w, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="pokemonkey"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
