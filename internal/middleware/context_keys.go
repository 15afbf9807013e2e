package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/quidflow/wallet_backend/internal/apperrors"
	"github.com/quidflow/wallet_backend/internal/core/domain"
)

const (
	// UserIDKey is the gin context key holding the authenticated user id.
	UserIDKey = "userID"
	// UserRolesKey is the gin context key holding the authenticated user's roles.
	UserRolesKey = "userRoles"
)

// GetActorFromContext extracts the authenticated actor set by AuthMiddleware.
func GetActorFromContext(c *gin.Context) (domain.Actor, error) {
	userID, ok := c.Get(UserIDKey)
	if !ok {
		return domain.Actor{}, apperrors.NewAppError(401, "user not authenticated", apperrors.ErrUnauthorized)
	}
	uid, ok := userID.(string)
	if !ok || uid == "" {
		return domain.Actor{}, apperrors.NewAppError(401, "user not authenticated", apperrors.ErrUnauthorized)
	}

	var roles []string
	if raw, ok := c.Get(UserRolesKey); ok {
		if rs, ok := raw.([]string); ok {
			roles = rs
		}
	}
	return domain.Actor{UserID: uid, Roles: roles}, nil
}
