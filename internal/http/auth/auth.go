package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey struct{}

// Middleware validates a bearer token when one is present and stores its
// company_id claim in the request context. Requests without a token pass
// through unscoped: matching still works, only the company-scoped account
// strategy becomes inapplicable. A token that fails validation is rejected.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || secret == "" {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				http.Error(w, "malformed authorization header", http.StatusUnauthorized)
				return
			}

			claims := jwt.MapClaims{}

			_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			if id, ok := claims["company_id"].(string); ok {
				if companyID, err := uuid.Parse(id); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), contextKey{}, companyID))
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CompanyID returns the authenticated company scope, or nil for unscoped
// requests.
func CompanyID(ctx context.Context) *uuid.UUID {
	if id, ok := ctx.Value(contextKey{}).(uuid.UUID); ok {
		return &id
	}

	return nil
}
