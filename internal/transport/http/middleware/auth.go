package middleware

import (
	"context"
	"net/http"
	"strings"

	"dayflow/internal/domain/auth"
)

// Auth attaches the token's claims when a valid bearer token is present.
// Requests without one pass through; RequireAuth rejects them later.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyClaims, *claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(ctxKeyClaims).(auth.Claims)
	return claims, ok
}

// GetActor returns the authenticated caller.
func GetActor(ctx context.Context) (auth.Actor, bool) {
	claims, ok := GetClaims(ctx)
	if !ok || claims.UserID == "" {
		return auth.Actor{}, false
	}
	return claims.Actor(), true
}

// WithClaims is used by tests and internal callers that already hold claims.
func WithClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, ctxKeyClaims, claims)
}
