package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/digitalburnout/burnout-backend/internal/services"
)

type contextKey string

const userContextKey contextKey = "auth_user"

// AuthUser is the verified identity attached to the request context by
// RequireAuth. Handlers must not re-verify the token downstream.
type AuthUser struct {
	UserID   string
	Username string
}

// RequireAuth gates protected operations behind token verification.
// Missing credential → 401 (the client should log in); credential present but
// invalid or expired → 403 (the session is broken). The response never says
// which verification check failed; that classification is logged only.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if strings.TrimSpace(authHeader) == "" {
			respondAuthError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		// Canonical shape is "Bearer <token>"; bare tokens are malformed.
		token := extractBearerToken(authHeader)
		if token == "" {
			log.Printf("[auth] rejected credential: not in Bearer form")
			respondAuthError(w, http.StatusForbidden, "Invalid or expired session")
			return
		}

		claims, err := services.VerifyToken(token)
		if err != nil {
			log.Printf("[auth] rejected credential: %v", err)
			respondAuthError(w, http.StatusForbidden, "Invalid or expired session")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, AuthUser{
			UserID:   claims.UserID,
			Username: claims.Username,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the identity attached by RequireAuth.
func UserFromContext(ctx context.Context) (AuthUser, bool) {
	user, ok := ctx.Value(userContextKey).(AuthUser)
	return user, ok
}

// extractBearerToken returns the token from an "Authorization: Bearer <token>"
// header value, or "" when the header is not in that shape.
func extractBearerToken(authHeader string) string {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func respondAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
