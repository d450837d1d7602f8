package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huyndo/acadmin/internal/app/models"
	"github.com/huyndo/acadmin/internal/app/models/dto"
	"github.com/huyndo/acadmin/internal/app/repositories"
	"github.com/huyndo/acadmin/internal/pkg/auth"
)

// ContextUserKey holds the authenticated user on the gin context.
const ContextUserKey = "currentUser"

// CurrentUser returns the authenticated user stored by JWTAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// JWTAuth validates the bearer token and loads the principal with roles and
// permissions onto the request context.
func JWTAuth(jwtService *auth.JWTService, users *repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			unauthorized(c, "Authorization header is missing or malformed")
			return
		}

		claims, err := jwtService.ValidateAndExtractClaims(token)
		if err != nil {
			unauthorized(c, "Token is invalid or expired")
			return
		}

		user, err := users.FindWithAccess(c.Request.Context(), claims.UserID)
		if err != nil {
			unauthorized(c, "Token is invalid or expired")
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorDetail{
		Code:    dto.ErrorCodeUnauthorized,
		Message: message,
	}))
}
