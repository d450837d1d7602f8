package services

import (
	"context"

	"github.com/huyndo/acadmin/internal/app/models"
	"github.com/huyndo/acadmin/internal/app/repositories"
)

// PermissionService serves the permission catalogue. The catalogue only
// changes at seed time, so reads go through the repository cache.
type PermissionService struct {
	permissions *repositories.PermissionRepository
}

// NewPermissionService creates a PermissionService.
func NewPermissionService(permissions *repositories.PermissionRepository) *PermissionService {
	return &PermissionService{permissions: permissions}
}

// List returns every permission, cached.
func (s *PermissionService) List(ctx context.Context) ([]*models.Permission, error) {
	return s.permissions.CachedList(ctx)
}
