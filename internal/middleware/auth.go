package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/denizokt/spendtrack/internal/auth"
)

type contextKey string

// ClaimsContextKey is the request-context key holding verified token claims.
const ClaimsContextKey contextKey = "claims"

// RequireAuth rejects requests without a valid bearer token and puts
// the verified claims into the request context.
func RequireAuth(tokens *auth.TokenManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			unauthorized(w)
			return
		}

		claims, err := tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext retrieves verified claims placed by RequireAuth,
// or nil on unauthenticated routes.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(ClaimsContextKey).(*auth.Claims)
	return claims
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}
