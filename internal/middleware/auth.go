package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pliu/parley/internal/auth"
	"github.com/pliu/parley/internal/models"
	"github.com/pliu/parley/internal/store"
)

type contextKey string

const userKey contextKey = "user"

// RequireUser resolves the bearer token to a verified user and stores it
// in the request context, or rejects the request with 401.
func RequireUser(s store.Store, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				unauthenticated(w)
				return
			}
			tokenStr := strings.TrimSpace(authz[len("Bearer "):])
			claims, err := auth.ParseAccessToken(tokenStr, secret)
			if err != nil {
				unauthenticated(w)
				return
			}
			user, err := s.GetUserByID(claims.UserID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					unauthenticated(w)
					return
				}
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom returns the authenticated user placed by RequireUser, or nil.
func UserFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"detail": map[string]any{"type": "unauthenticated"},
	})
}
