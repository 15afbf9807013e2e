package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quidflow/wallet_backend/internal/core/domain"
)

// RequirePermission creates a Gin middleware that rejects requests whose
// authenticated actor does not hold the given permission. It must run after
// AuthMiddleware.
func RequirePermission(perm domain.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		actor, err := GetActorFromContext(c)
		if err != nil {
			logger.Warn("Permission check without authenticated user", "permission", string(perm))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		if !domain.Allowed(actor.Roles, perm) {
			logger.Warn("Permission denied",
				"permission", string(perm),
				"roles", actor.Roles,
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions to perform this action"})
			return
		}

		c.Next()
	}
}
