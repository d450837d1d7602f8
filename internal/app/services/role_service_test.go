package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huyndo/acadmin/internal/app/models"
	"github.com/huyndo/acadmin/internal/pkg/apperrors"
)

func TestGuardAdminRejectsConfiguredRole(t *testing.T) {
	svc := NewRoleService(nil, "admin")

	err := svc.guardAdmin(&models.Role{ID: 1, Name: "admin"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAdminRoleGuarded)
	assert.Equal(t, "Access denied", err.Error())
}

func TestGuardAdminAllowsOtherRoles(t *testing.T) {
	svc := NewRoleService(nil, "admin")

	assert.NoError(t, svc.guardAdmin(&models.Role{ID: 2, Name: "editor"}))
	// The comparison is exact, not case-folded.
	assert.NoError(t, svc.guardAdmin(&models.Role{ID: 3, Name: "Admin"}))
}
