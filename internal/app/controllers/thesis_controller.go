package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huyndo/acadmin/internal/app/models/dto"
	"github.com/huyndo/acadmin/internal/app/services"
	"github.com/huyndo/acadmin/internal/middleware"
)

// ThesisController serves thesis record management.
type ThesisController struct {
	theses           *services.ThesisService
	encodeConditions bool
}

// NewThesisController creates a ThesisController.
func NewThesisController(theses *services.ThesisService, encodeConditions bool) *ThesisController {
	return &ThesisController{theses: theses, encodeConditions: encodeConditions}
}

// Index lists theses with their student and lecturer.
func (ctrl *ThesisController) Index(c *gin.Context) {
	params, err := listParams(c, ctrl.encodeConditions)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	result, err := ctrl.theses.List(c.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(listPayload(c, result)))
}

// Show fetches one thesis.
func (ctrl *ThesisController) Show(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	thesis, err := ctrl.theses.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(thesis))
}

// Store creates a thesis.
func (ctrl *ThesisController) Store(c *gin.Context) {
	var req dto.ThesisRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	thesis, err := ctrl.theses.Create(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(thesis))
}

// Update rewrites a thesis.
func (ctrl *ThesisController) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.ThesisRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	thesis, err := ctrl.theses.Update(c.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(thesis))
}

// Destroy deletes a thesis.
func (ctrl *ThesisController) Destroy(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.theses.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
