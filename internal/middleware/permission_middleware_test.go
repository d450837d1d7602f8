package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huyndo/acadmin/internal/app/models"
	"github.com/huyndo/acadmin/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func gateConfig() config.App {
	return config.App{
		AuthorizationEnabled: true,
		AdminRole:            "admin",
	}
}

func gateContext(t *testing.T, user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/role", nil)
	if user != nil {
		c.Set(ContextUserKey, user)
	}
	return c, w
}

func userWithPermissions(roleName string, permissions ...string) *models.User {
	role := models.Role{ID: 1, Name: roleName}
	for i, name := range permissions {
		role.Permissions = append(role.Permissions, models.Permission{ID: int64(i + 1), Name: name})
	}
	return &models.User{ID: 42, Name: "Test", Roles: []models.Role{role}}
}

func TestGateAdminBypass(t *testing.T) {
	c, _ := gateContext(t, userWithPermissions("admin"))

	Gate(gateConfig(), "role.index")(c)

	assert.False(t, c.IsAborted())
}

func TestGateAllowsMatchingPermission(t *testing.T) {
	c, _ := gateContext(t, userWithPermissions("viewer", "role.index"))

	Gate(gateConfig(), "role.index")(c)

	assert.False(t, c.IsAborted())
}

func TestGateDeniesMissingPermission(t *testing.T) {
	c, w := gateContext(t, userWithPermissions("viewer", "role.index"))

	Gate(gateConfig(), "role.destroy")(c)

	require.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "You don't have permission to do this")
}

func TestGateUnnamedOperationPasses(t *testing.T) {
	c, _ := gateContext(t, userWithPermissions("viewer"))

	Gate(gateConfig(), "")(c)

	assert.False(t, c.IsAborted())
}

func TestGateDisabledAuthorizationPasses(t *testing.T) {
	cfg := gateConfig()
	cfg.AuthorizationEnabled = false
	c, _ := gateContext(t, userWithPermissions("viewer"))

	Gate(cfg, "role.destroy")(c)

	assert.False(t, c.IsAborted())
}

func TestGateMissingPrincipalPasses(t *testing.T) {
	// Authentication is the upstream middleware's job.
	c, _ := gateContext(t, nil)

	Gate(gateConfig(), "role.index")(c)

	assert.False(t, c.IsAborted())
}
