package ws

import (
	"net/http"
	"strings"

	"go_backoffice/internal/auth"
	"go_backoffice/internal/rbac"

	"github.com/sirupsen/logrus"
)

// AuthMiddleware validates the JWT during the Socket.IO handshake and
// only admits actors who may view the audit feed. The feed mirrors
// GET /api/audit, so the same role gate applies.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			logrus.WithError(err).Debug("websocket handshake with invalid token")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if !rbac.Allowed(claims.Role, rbac.ViewAudit) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// extractToken reads the JWT from the handshake query (Socket.IO
// clients send auth.token as ?token=) or the Authorization header
func extractToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return ""
}
