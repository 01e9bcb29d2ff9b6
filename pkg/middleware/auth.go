package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sheshine/backoffice/pkg/auth"
	"github.com/sheshine/backoffice/pkg/logger"
	"github.com/sheshine/backoffice/pkg/response"
)

// IdentityResolver turns verified token claims into the current identity.
// It reports ok=false when the subject no longer exists.
type IdentityResolver func(ctx context.Context, claims *auth.Claims) (auth.Identity, bool, error)

// ClaimsIdentity trusts the token claims as-is.
func ClaimsIdentity(_ context.Context, claims *auth.Claims) (auth.Identity, bool, error) {
	return auth.Identity{ID: claims.ID, Role: claims.Role}, true, nil
}

// Protect requires a valid "Authorization: Bearer <token>" header and
// attaches the resolved identity to the request context.
func Protect(resolve IdentityResolver) func(http.Handler) http.Handler {
	if resolve == nil {
		resolve = ClaimsIdentity
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				response.Unauthorized(w, "Not authorized, no token")
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if token == "" {
				response.Unauthorized(w, "Not authorized, no token")
				return
			}

			claims, err := auth.ValidateToken(token)
			if err != nil {
				response.Unauthorized(w, "Not authorized, token failed")
				return
			}

			id, ok, err := resolve(r.Context(), claims)
			if err != nil {
				logger.WithCtx(r.Context()).Error("auth: resolve identity", "user_id", claims.ID, "error", err)
				response.Error(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}
			if !ok {
				response.Unauthorized(w, "Not authorized, user not found")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}
