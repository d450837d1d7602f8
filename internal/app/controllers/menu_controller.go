package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huyndo/acadmin/internal/app/models/dto"
	"github.com/huyndo/acadmin/internal/app/services"
	"github.com/huyndo/acadmin/internal/middleware"
)

// MenuController serves menu management including batch repositioning.
type MenuController struct {
	menus            *services.MenuService
	encodeConditions bool
}

// NewMenuController creates a MenuController.
func NewMenuController(menus *services.MenuService, encodeConditions bool) *MenuController {
	return &MenuController{menus: menus, encodeConditions: encodeConditions}
}

// Index lists menus.
func (ctrl *MenuController) Index(c *gin.Context) {
	params, err := listParams(c, ctrl.encodeConditions)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	result, err := ctrl.menus.List(c.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(listPayload(c, result)))
}

// Show fetches one menu.
func (ctrl *MenuController) Show(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	menu, err := ctrl.menus.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(menu))
}

// Store creates a menu at the end of the ordering.
func (ctrl *MenuController) Store(c *gin.Context) {
	var req dto.MenuRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	menu, err := ctrl.menus.Create(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(menu))
}

// Update rewrites a menu and optionally cascades roles over its subtree.
func (ctrl *MenuController) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.MenuRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	menu, err := ctrl.menus.Update(c.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(menu))
}

// Destroy deletes a menu.
func (ctrl *MenuController) Destroy(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.menus.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Move applies a batch of drag-and-drop repositions.
func (ctrl *MenuController) Move(c *gin.Context) {
	var req dto.MoveRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	menus, err := ctrl.menus.Move(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(menus))
}
