package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/huyndo/acadmin/internal/app/models/dto"
	"github.com/huyndo/acadmin/internal/app/repositories"
	"github.com/huyndo/acadmin/internal/pkg/apperrors"
	"github.com/huyndo/acadmin/internal/pkg/helpers"
)

// pathID parses the :id path segment.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("ID is not valid")
	}
	return id, nil
}

// listParams normalizes the query string for a list endpoint.
func listParams(c *gin.Context, encoded bool) (repositories.ListParams, error) {
	return repositories.ParseListParams(helpers.QueryMap(c), encoded)
}

// listPayload wraps a repository page into the list envelope, attaching
// navigation links when the result is paginated.
func listPayload[T any](c *gin.Context, result *repositories.ListResult[T]) dto.ListResponse {
	resp := dto.ListResponse{Items: result.Items}
	if result.Meta != nil {
		resp.Meta = result.Meta
		links := repositories.PageLinksFor(c.Request.URL.Path, *result.Meta)
		resp.Links = &links
	}
	return resp
}

// bindJSON binds the request body, converting gin binding failures into the
// validation error shape.
func bindJSON(c *gin.Context, target interface{}) error {
	if err := c.ShouldBindJSON(target); err != nil {
		return apperrors.NewValidationError("Request body is not valid: " + err.Error())
	}
	return nil
}
