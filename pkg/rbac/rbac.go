// Package rbac provides role-based access control middleware.
package rbac

import (
	"net/http"

	"github.com/sheshine/backoffice/pkg/auth"
	"github.com/sheshine/backoffice/pkg/response"
)

// HasRole returns middleware that allows access only to identities with
// one of the given roles. middleware.Protect must run first.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.FromContext(r.Context())
			if !ok || !allowed[id.Role] {
				response.Forbidden(w, forbiddenMessage(roles))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Admin is HasRole(auth.RoleAdmin).
func Admin() func(http.Handler) http.Handler {
	return HasRole(auth.RoleAdmin)
}

func forbiddenMessage(roles []string) string {
	if len(roles) == 1 {
		return "Not authorized as an " + roles[0]
	}
	return "Forbidden"
}
