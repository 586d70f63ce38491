// Package rbac provides role-based access control middleware.
package rbac

import (
	"net/http"
	"strings"

	"github.com/upahaar/upahaar/pkg/auth"
	"github.com/upahaar/upahaar/pkg/middleware"
	"github.com/upahaar/upahaar/pkg/response"
)

// HasRole returns middleware that allows access only to users with one of the
// given roles. Requires middleware.Auth to have already run.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allowed[middleware.RoleFromCtx(r.Context())] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Guest returns middleware that blocks authenticated users (login/signup
// routes). Runs without middleware.Auth, so a presented Bearer token is
// validated here; missing or invalid tokens fall through to the handler.
func Guest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if middleware.UserIDFromCtx(r.Context()) != "" {
			response.Error(w, http.StatusConflict, "Already authenticated")
			return
		}
		if token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "); token != "" {
			if _, err := auth.ValidateToken(token); err == nil {
				response.Error(w, http.StatusConflict, "Already authenticated")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
