package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huyndo/acadmin/internal/app/models/dto"
	"github.com/huyndo/acadmin/internal/pkg/apperrors"
	"github.com/huyndo/acadmin/internal/pkg/logger"
)

// HandleAPIError maps an application error onto the HTTP error taxonomy and
// writes the envelope. Unknown errors become opaque 500s.
func HandleAPIError(c *gin.Context, err error) {
	status, code := classify(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Unhandled error")
		message = "An unexpected error occurred"
	}

	detail := dto.ErrorDetail{
		Code:    code,
		Message: message,
	}

	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Details != nil {
		detail.Details = custom.Details
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func classify(err error) (int, dto.ErrorCode) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.ErrorCodeValidationFailed
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.ErrorCodeValidationFailed

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return http.StatusUnauthorized, dto.ErrorCodeUnauthorized

	case errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenNotFound),
		errors.Is(err, apperrors.ErrTokenRevoked):
		return http.StatusForbidden, dto.ErrorCodeTokenInvalid

	case errors.Is(err, apperrors.ErrPermissionDenied),
		errors.Is(err, apperrors.ErrSelfDelete),
		errors.Is(err, apperrors.ErrAdminRoleGuarded),
		errors.Is(err, apperrors.ErrPasswordMismatch):
		return http.StatusForbidden, dto.ErrorCodeForbidden

	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrRoleNotFound),
		errors.Is(err, apperrors.ErrMenuNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrLecturerNotFound),
		errors.Is(err, apperrors.ErrThesisNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound

	case errors.Is(err, apperrors.ErrResourceAlreadyExists),
		errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrRoleAlreadyExists):
		return http.StatusConflict, dto.ErrorCodeResourceExists
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.ErrorCodeConflict
	}

	return http.StatusInternalServerError, dto.ErrorCodeInternalServer
}
