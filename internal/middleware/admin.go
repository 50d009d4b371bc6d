package middleware

import (
	"net/http"

	"github.com/Shreyam1010/roar-emporium-gradient/internal/domain"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequireAdmin gates a route behind the admin role assignment. The lookup
// runs per request against the role table; a lookup failure is logged and
// treated as non-admin (the gate fails closed).
func RequireAdmin(roleRepo repository.RoleRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDStr, ok := GetUserID(r.Context())
			if !ok {
				logger.Warn("User ID not found in context")
				RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				logger.Warn("Invalid user ID in context", zap.Error(err))
				RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			isAdmin, err := roleRepo.HasRole(r.Context(), userID, domain.RoleAdmin)
			if err != nil {
				logger.Error("Role lookup failed, denying admin access",
					zap.String("user_id", userIDStr),
					zap.Error(err),
				)
				isAdmin = false
			}

			if !isAdmin {
				logger.Warn("Non-admin user attempted to access admin endpoint",
					zap.String("user_id", userIDStr),
				)
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
