package auth

import (
	"log/slog"
	"net/http"
	"strings"

	internal "github.com/frahmantamala/asset-management/internal"
)

// Authenticator validates the bearer token and attaches the principal to
// the request context.
func Authenticator(gen TokenGeneratorAPI, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r)
			if token == "" {
				logger.Warn("auth middleware: missing authorization token", "path", r.URL.Path)
				http.Error(w, "missing authorization token", http.StatusUnauthorized)
				return
			}

			claims, err := gen.ValidateToken(token)
			if err != nil {
				logger.Warn("auth middleware: token validation failed", "error", err)
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			principal := &internal.Principal{
				ID:    claims.PrincipalID,
				Email: claims.Email,
				Role:  claims.Role,
			}

			ctx := internal.ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects non-admin principals. It must run after
// Authenticator.
func RequireAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := internal.PrincipalFromContext(r.Context())
			if !ok || principal == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !principal.IsAdmin() {
				logger.Warn("access denied: admin required",
					"principal_id", principal.ID,
					"role", principal.Role,
					"path", r.URL.Path)
				http.Error(w, "Forbidden: admin access required", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func extractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}
