package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "matrimony-backend/internal/common/errors"
	"matrimony-backend/internal/features/profile/models"
)

const profileContextKey = "current_profile"

// RequireSession loads the current session via restore and attaches the
// backing profile to the request context.
func RequireSession(restore func(c *gin.Context) (*models.Profile, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := restore(c)
		if err != nil {
			RespondError(c, err)
			return
		}
		if p == nil {
			RespondError(c, apperrors.New(apperrors.ErrCodeUnauthorized, "authentication required"))
			return
		}

		c.Set(profileContextKey, p)
		c.Next()
	}
}

// RequireAdmin allows only admin sessions through. Must run after
// RequireSession.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := CurrentProfile(c)
		if p == nil || p.Role != models.RoleAdmin {
			RespondError(c, apperrors.New(apperrors.ErrCodeForbidden, "admin access required"))
			return
		}
		c.Next()
	}
}

// CurrentProfile returns the session profile attached by RequireSession.
func CurrentProfile(c *gin.Context) *models.Profile {
	if v, exists := c.Get(profileContextKey); exists {
		if p, ok := v.(*models.Profile); ok {
			return p
		}
	}
	return nil
}
