package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/huyndo/acadmin/internal/app/models"
	"github.com/huyndo/acadmin/internal/pkg/apperrors"
)

// RoleRepository manages the roles table and its permission assignments.
type RoleRepository struct {
	*Base[models.Role]
}

func scanRole(row pgx.Row) (*models.Role, error) {
	var r models.Role
	if err := row.Scan(&r.ID, &r.Name, &r.GuardName, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// NewRoleRepository creates a RoleRepository.
func NewRoleRepository(deps Deps) *RoleRepository {
	return &RoleRepository{
		Base: NewBase(deps, EntityInfo[models.Role]{
			Table:    "roles",
			Singular: "role",
			Columns:  []string{"id", "name", "guard_name", "created_at", "updated_at"},
			Sortable: []string{"id", "name"},
			Fillable: []string{"name", "guard_name"},
			Scan:     scanRole,
			Search: func(b sq.SelectBuilder, key, value string) sq.SelectBuilder {
				if key == "name" {
					return b.Where(ILikeContains("name", value))
				}
				return b
			},
			Loaders: map[string]LoaderFn[models.Role]{
				"permissions": loadRolePermissions,
			},
		}),
	}
}

func loadRolePermissions(ctx context.Context, q Queryer, roles []*models.Role) error {
	ids := make([]int64, 0, len(roles))
	for _, role := range roles {
		ids = append(ids, role.ID)
	}

	byRole, err := permissionsByRoleID(ctx, q, ids)
	if err != nil {
		return err
	}
	for _, role := range roles {
		role.Permissions = byRole[role.ID]
	}
	return nil
}

// FindByName fetches one role by name.
func (r *RoleRepository) FindByName(ctx context.Context, name string) (*models.Role, error) {
	query, args, err := psql.Select(r.info.Columns...).
		From(r.info.Table).
		Where(sq.Eq{"name": name}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build role lookup query: %w", err)
	}

	role, err := r.info.Scan(r.deps.Q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to fetch role by name: %w", err)
	}
	return role, nil
}

// SyncPermissions replaces the role's permission assignments.
func (r *RoleRepository) SyncPermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	return syncPivot(ctx, r.deps.Q, "role_permissions", "role_id", roleID, "permission_id", permissionIDs)
}

// DetachEverywhere removes the role from users, menus and permissions.
// Called before the role row itself is deleted.
func (r *RoleRepository) DetachEverywhere(ctx context.Context, roleID int64) error {
	for _, table := range []string{"user_roles", "menu_roles", "role_permissions"} {
		if err := detachPivotByRelated(ctx, r.deps.Q, table, "role_id", roleID); err != nil {
			return err
		}
	}
	return nil
}
