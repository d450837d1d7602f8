package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huyndo/acadmin/internal/app/models/dto"
	"github.com/huyndo/acadmin/internal/app/services"
	"github.com/huyndo/acadmin/internal/middleware"
)

// StudentController serves student record management.
type StudentController struct {
	students         *services.StudentService
	encodeConditions bool
}

// NewStudentController creates a StudentController.
func NewStudentController(students *services.StudentService, encodeConditions bool) *StudentController {
	return &StudentController{students: students, encodeConditions: encodeConditions}
}

// Index lists students.
func (ctrl *StudentController) Index(c *gin.Context) {
	params, err := listParams(c, ctrl.encodeConditions)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	result, err := ctrl.students.List(c.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(listPayload(c, result)))
}

// Show fetches one student.
func (ctrl *StudentController) Show(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	student, err := ctrl.students.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// Store creates a student.
func (ctrl *StudentController) Store(c *gin.Context) {
	var req dto.StudentRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	student, err := ctrl.students.Create(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(student))
}

// Update rewrites a student.
func (ctrl *StudentController) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.StudentRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	student, err := ctrl.students.Update(c.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// Destroy deletes a student.
func (ctrl *StudentController) Destroy(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.students.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
