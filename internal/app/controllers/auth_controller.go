package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huyndo/acadmin/internal/app/models/dto"
	"github.com/huyndo/acadmin/internal/app/services"
	"github.com/huyndo/acadmin/internal/middleware"
	"github.com/huyndo/acadmin/internal/pkg/apperrors"
)

// AuthController serves login, token refresh and the profile endpoints.
type AuthController struct {
	auth  *services.AuthService
	menus *services.MenuService
}

// NewAuthController creates an AuthController.
func NewAuthController(auth *services.AuthService, menus *services.MenuService) *AuthController {
	return &AuthController{auth: auth, menus: menus}
}

// Login exchanges credentials for a token pair.
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	tokens, err := ctrl.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(tokens))
}

// Refresh rotates a refresh token.
func (ctrl *AuthController) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	tokens, err := ctrl.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(tokens))
}

// Logout revokes the caller's refresh tokens.
func (ctrl *AuthController) Logout(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	if err := ctrl.auth.Logout(c.Request.Context(), user.ID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me returns the caller's profile with permissions and visible menus.
func (ctrl *AuthController) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	menus, err := ctrl.menus.MenusForUser(c.Request.Context(), user)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	permissions := make([]string, 0)
	seen := make(map[string]bool)
	for _, role := range user.Roles {
		for _, perm := range role.Permissions {
			if !seen[perm.Name] {
				seen[perm.Name] = true
				permissions = append(permissions, perm.Name)
			}
		}
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ProfileResponse{
		User:        user,
		Permissions: permissions,
		Menus:       menus,
	}))
}

// UpdateMe updates the caller's name and optionally the password.
func (ctrl *AuthController) UpdateMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	var req dto.ProfileRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	updated, err := ctrl.auth.UpdateProfile(c.Request.Context(), user.ID, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(updated))
}
