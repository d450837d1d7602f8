package services

import (
	"context"
	"errors"

	"github.com/huyndo/acadmin/internal/app/models"
	"github.com/huyndo/acadmin/internal/app/models/dto"
	"github.com/huyndo/acadmin/internal/app/repositories"
	"github.com/huyndo/acadmin/internal/pkg/apperrors"
	"github.com/huyndo/acadmin/internal/pkg/dberrors"
)

// guardName tags every role and permission row; the API serves one guard.
const guardName = "api"

// RoleService implements role management. The configured admin role is a
// fixed point: it cannot be shown, renamed or deleted through the API.
type RoleService struct {
	roles     *repositories.RoleRepository
	adminRole string
}

// NewRoleService creates a RoleService.
func NewRoleService(roles *repositories.RoleRepository, adminRole string) *RoleService {
	return &RoleService{roles: roles, adminRole: adminRole}
}

// List returns a page of roles with their permissions.
func (s *RoleService) List(ctx context.Context, params repositories.ListParams) (*repositories.ListResult[models.Role], error) {
	return s.roles.List(ctx, params, "permissions")
}

// Get fetches one role with permissions.
func (s *RoleService) Get(ctx context.Context, id int64) (*models.Role, error) {
	role, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guardAdmin(role); err != nil {
		return nil, err
	}
	return role, nil
}

// Create stores a new role and attaches the submitted permissions.
func (s *RoleService) Create(ctx context.Context, req dto.RoleRequest) (*models.Role, error) {
	if _, err := s.roles.FindByName(ctx, req.Name); err == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrRoleAlreadyExists, "Role already exists")
	} else if !errors.Is(err, apperrors.ErrRoleNotFound) {
		return nil, err
	}

	role, err := s.roles.Create(ctx, map[string]any{
		"name":       req.Name,
		"guard_name": guardName,
	})
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrRoleAlreadyExists, "Role already exists")
		}
		return nil, err
	}

	if err := s.roles.SyncPermissions(ctx, role.ID, req.Permissions); err != nil {
		return nil, err
	}
	return s.roles.Find(ctx, role.ID, "permissions")
}

// Update renames a role and replaces its permission set.
func (s *RoleService) Update(ctx context.Context, id int64, req dto.RoleRequest) (*models.Role, error) {
	role, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guardAdmin(role); err != nil {
		return nil, err
	}

	if existing, err := s.roles.FindByName(ctx, req.Name); err == nil && existing.ID != id {
		return nil, apperrors.NewCustomError(apperrors.ErrRoleAlreadyExists, "Role already exists")
	} else if err != nil && !errors.Is(err, apperrors.ErrRoleNotFound) {
		return nil, err
	}

	if _, err := s.roles.Update(ctx, id, map[string]any{"name": req.Name}); err != nil {
		return nil, err
	}
	if err := s.roles.SyncPermissions(ctx, id, req.Permissions); err != nil {
		return nil, err
	}
	return s.roles.Find(ctx, id, "permissions")
}

// Delete removes a role after detaching it from users, menus and
// permissions.
func (s *RoleService) Delete(ctx context.Context, id int64) error {
	role, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guardAdmin(role); err != nil {
		return err
	}

	if err := s.roles.DetachEverywhere(ctx, id); err != nil {
		return err
	}
	return s.roles.Delete(ctx, id)
}

func (s *RoleService) find(ctx context.Context, id int64) (*models.Role, error) {
	role, err := s.roles.Find(ctx, id, "permissions")
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrRoleNotFound
		}
		return nil, err
	}
	return role, nil
}

func (s *RoleService) guardAdmin(role *models.Role) error {
	if role.Name == s.adminRole {
		return apperrors.NewCustomError(apperrors.ErrAdminRoleGuarded, "Access denied")
	}
	return nil
}
