package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/huyndo/acadmin/internal/pkg/apperrors"
)

func errorContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/user/1", nil)
	return c, w
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperrors.ErrValidationFailed, http.StatusBadRequest},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"token", apperrors.ErrTokenInvalid, http.StatusForbidden},
		{"forbidden", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"self delete", apperrors.ErrSelfDelete, http.StatusForbidden},
		{"admin role", apperrors.ErrAdminRoleGuarded, http.StatusForbidden},
		{"password", apperrors.ErrPasswordMismatch, http.StatusForbidden},
		{"not found", apperrors.ErrUserNotFound, http.StatusNotFound},
		{"conflict", apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := errorContext(t)
			HandleAPIError(c, tc.err)
			assert.Equal(t, tc.status, w.Code)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestHandleAPIErrorKeepsCustomMessage(t *testing.T) {
	c, w := errorContext(t)

	HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrSelfDelete, "Access denied"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied")
}

func TestHandleAPIErrorHidesInternalDetails(t *testing.T) {
	c, w := errorContext(t)

	HandleAPIError(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Contains(t, w.Body.String(), "An unexpected error occurred")
}

func TestHandleAPIErrorRefreshTokenMessage(t *testing.T) {
	c, w := errorContext(t)

	HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "Refresh token is invalid"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Refresh token is invalid")
}
