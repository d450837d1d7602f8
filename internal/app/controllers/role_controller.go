package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huyndo/acadmin/internal/app/models/dto"
	"github.com/huyndo/acadmin/internal/app/services"
	"github.com/huyndo/acadmin/internal/middleware"
)

// RoleController serves role management.
type RoleController struct {
	roles            *services.RoleService
	encodeConditions bool
}

// NewRoleController creates a RoleController.
func NewRoleController(roles *services.RoleService, encodeConditions bool) *RoleController {
	return &RoleController{roles: roles, encodeConditions: encodeConditions}
}

// Index lists roles.
func (ctrl *RoleController) Index(c *gin.Context) {
	params, err := listParams(c, ctrl.encodeConditions)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	result, err := ctrl.roles.List(c.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(listPayload(c, result)))
}

// Show fetches one role.
func (ctrl *RoleController) Show(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	role, err := ctrl.roles.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(role))
}

// Store creates a role.
func (ctrl *RoleController) Store(c *gin.Context) {
	var req dto.RoleRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	role, err := ctrl.roles.Create(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(role))
}

// Update rewrites a role.
func (ctrl *RoleController) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.RoleRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	role, err := ctrl.roles.Update(c.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(role))
}

// Destroy deletes a role.
func (ctrl *RoleController) Destroy(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.roles.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
