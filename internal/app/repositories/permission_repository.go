package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/huyndo/acadmin/internal/app/models"
)

// CachedPermissionList is the cache registry method name for the full
// permission listing.
const CachedPermissionList = "list"

// PermissionRepository manages the permissions table.
type PermissionRepository struct {
	*Base[models.Permission]
}

func scanPermission(row pgx.Row) (*models.Permission, error) {
	var p models.Permission
	if err := row.Scan(&p.ID, &p.Name, &p.GuardName, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// NewPermissionRepository creates a PermissionRepository.
func NewPermissionRepository(deps Deps) *PermissionRepository {
	repo := &PermissionRepository{
		Base: NewBase(deps, EntityInfo[models.Permission]{
			Table:    "permissions",
			Singular: "permission",
			Columns:  []string{"id", "name", "guard_name", "created_at", "updated_at"},
			Sortable: []string{"id", "name"},
			Fillable: []string{"name", "guard_name"},
			Scan:     scanPermission,
			Search: func(b sq.SelectBuilder, key, value string) sq.SelectBuilder {
				if key == "name" {
					return b.Where(ILikeContains("name", value))
				}
				return b
			},
		}),
	}
	repo.RegisterCacheMethod(CachedPermissionList, func(ctx context.Context) (interface{}, error) {
		return repo.ListAll(ctx)
	})
	return repo
}

// ListAll returns every permission ordered by name.
func (r *PermissionRepository) ListAll(ctx context.Context) ([]*models.Permission, error) {
	return r.queryMany(ctx, psql.
		Select(r.info.Columns...).
		From(r.info.Table).
		OrderBy("name ASC"))
}

// CachedList serves the full permission listing through the cache store.
func (r *PermissionRepository) CachedList(ctx context.Context) ([]*models.Permission, error) {
	var permissions []*models.Permission
	if err := r.Cached(ctx, CachedPermissionList, &permissions); err != nil {
		return nil, err
	}
	return permissions, nil
}

// permissionsByRoleID loads the permissions attached to each of the given
// roles with one batched query.
func permissionsByRoleID(ctx context.Context, q Queryer, roleIDs []int64) (map[int64][]models.Permission, error) {
	result := make(map[int64][]models.Permission)
	if len(roleIDs) == 0 {
		return result, nil
	}

	query, args, err := psql.
		Select("rp.role_id", "p.id", "p.name", "p.guard_name", "p.created_at", "p.updated_at").
		From("permissions p").
		Join("role_permissions rp ON rp.permission_id = p.id").
		Where(sq.Eq{"rp.role_id": roleIDs}).
		OrderBy("p.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build role permissions query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load role permissions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var roleID int64
		var p models.Permission
		if err := rows.Scan(&roleID, &p.ID, &p.Name, &p.GuardName, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan role permission row: %w", err)
		}
		result[roleID] = append(result[roleID], p)
	}
	return result, rows.Err()
}
