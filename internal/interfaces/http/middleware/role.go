package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rental/backend/internal/domain/identity"
	"github.com/rental/backend/internal/interfaces/http/dto"
)

// RequireManager rejects requests from accounts without management rights.
// It must run after JWTAuth.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetRole(c).CanManage() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Manager role required"))
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests from everyone but administrators
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != identity.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Admin role required"))
			return
		}
		c.Next()
	}
}
