package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huyndo/acadmin/internal/app/models/dto"
	"github.com/huyndo/acadmin/internal/app/services"
	"github.com/huyndo/acadmin/internal/middleware"
)

// LecturerController serves lecturer record management.
type LecturerController struct {
	lecturers        *services.LecturerService
	encodeConditions bool
}

// NewLecturerController creates a LecturerController.
func NewLecturerController(lecturers *services.LecturerService, encodeConditions bool) *LecturerController {
	return &LecturerController{lecturers: lecturers, encodeConditions: encodeConditions}
}

// Index lists lecturers.
func (ctrl *LecturerController) Index(c *gin.Context) {
	params, err := listParams(c, ctrl.encodeConditions)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	result, err := ctrl.lecturers.List(c.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(listPayload(c, result)))
}

// Show fetches one lecturer.
func (ctrl *LecturerController) Show(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	lecturer, err := ctrl.lecturers.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(lecturer))
}

// Store creates a lecturer.
func (ctrl *LecturerController) Store(c *gin.Context) {
	var req dto.LecturerRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	lecturer, err := ctrl.lecturers.Create(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(lecturer))
}

// Update rewrites a lecturer.
func (ctrl *LecturerController) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.LecturerRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	lecturer, err := ctrl.lecturers.Update(c.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(lecturer))
}

// Destroy deletes a lecturer.
func (ctrl *LecturerController) Destroy(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.lecturers.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
