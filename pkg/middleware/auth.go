package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/upahaar/upahaar/pkg/auth"
	"github.com/upahaar/upahaar/pkg/response"
)

type authCtxKey string

const (
	userIDKey authCtxKey = "user_id"
	roleKey   authCtxKey = "role"
)

// Auth validates the Bearer token and injects the authenticated user's ID and
// role into the request context for downstream handlers and rbac checks.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			response.Error(w, http.StatusUnauthorized, "Missing token")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, roleKey, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromCtx returns the authenticated user's ObjectID hex, or "".
func UserIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// RoleFromCtx returns the authenticated user's role, or "".
func RoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}
