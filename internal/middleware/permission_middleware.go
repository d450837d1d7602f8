package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huyndo/acadmin/internal/app/models/dto"
	"github.com/huyndo/acadmin/internal/config"
)

// Gate authorizes one symbolic operation name, e.g. "role.index". Routes
// registered without a name pass unguarded. The configured admin role
// bypasses the permission check entirely.
func Gate(appCfg config.App, operation string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if operation == "" || !appCfg.AuthorizationEnabled {
			c.Next()
			return
		}

		user, ok := CurrentUser(c)
		if !ok {
			// Authentication is enforced upstream.
			c.Next()
			return
		}

		if user.HasRole(appCfg.AdminRole) || user.HasPermission(operation) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(dto.ErrorDetail{
			Code:    dto.ErrorCodeForbidden,
			Message: "You don't have permission to do this",
		}))
	}
}
