package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huyndo/acadmin/internal/app/models/dto"
	"github.com/huyndo/acadmin/internal/app/services"
	"github.com/huyndo/acadmin/internal/middleware"
)

// PermissionController serves the permission catalogue.
type PermissionController struct {
	permissions *services.PermissionService
}

// NewPermissionController creates a PermissionController.
func NewPermissionController(permissions *services.PermissionService) *PermissionController {
	return &PermissionController{permissions: permissions}
}

// Index lists every permission.
func (ctrl *PermissionController) Index(c *gin.Context) {
	permissions, err := ctrl.permissions.List(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(permissions))
}
