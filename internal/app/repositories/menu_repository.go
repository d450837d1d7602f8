package repositories

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/huyndo/acadmin/internal/app/models"
)

// MenuRepository manages the menus table and its role assignments.
type MenuRepository struct {
	*Base[models.Menu]
}

func scanMenu(row pgx.Row) (*models.Menu, error) {
	var m models.Menu
	if err := row.Scan(&m.ID, &m.Title, &m.Link, &m.Icon, &m.ParentID, &m.Position, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// parseIDList splits a comma separated id string, dropping blanks and
// non-numeric entries.
func parseIDList(raw string) []int64 {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// NewMenuRepository creates a MenuRepository.
func NewMenuRepository(deps Deps) *MenuRepository {
	return &MenuRepository{
		Base: NewBase(deps, EntityInfo[models.Menu]{
			Table:    "menus",
			Singular: "menu",
			Columns:  []string{"id", "title", "link", "icon", "parent_id", "position", "created_at", "updated_at"},
			Sortable: []string{"id", "title", "position", "parent_id"},
			Fillable: []string{"title", "link", "icon", "parent_id", "position"},
			Scan:     scanMenu,
			Search: func(b sq.SelectBuilder, key, value string) sq.SelectBuilder {
				switch key {
				case "ids":
					if ids := parseIDList(value); len(ids) > 0 {
						return b.Where(sq.Eq{"id": ids})
					}
				case "parent_id":
					if id, err := strconv.ParseInt(value, 10, 64); err == nil {
						return b.Where(sq.Eq{"parent_id": id})
					}
				case "title":
					return b.Where(ILikeContains("title", value))
				}
				return b
			},
			Loaders: map[string]LoaderFn[models.Menu]{
				"roles": loadMenuRoles,
			},
		}),
	}
}

func loadMenuRoles(ctx context.Context, q Queryer, menus []*models.Menu) error {
	ids := make([]int64, 0, len(menus))
	for _, menu := range menus {
		ids = append(ids, menu.ID)
	}

	query, args, err := psql.
		Select("mr.menu_id", "r.id", "r.name", "r.guard_name", "r.created_at", "r.updated_at").
		From("roles r").
		Join("menu_roles mr ON mr.role_id = r.id").
		Where(sq.Eq{"mr.menu_id": ids}).
		OrderBy("r.name ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build menu roles query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load menu roles: %w", err)
	}
	defer rows.Close()

	byMenu := make(map[int64][]models.Role)
	for rows.Next() {
		var menuID int64
		var role models.Role
		if err := rows.Scan(&menuID, &role.ID, &role.Name, &role.GuardName, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan menu role row: %w", err)
		}
		byMenu[menuID] = append(byMenu[menuID], role)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, menu := range menus {
		menu.Roles = byMenu[menu.ID]
	}
	return nil
}

// ListOrdered returns every menu ordered for tree assembly.
func (r *MenuRepository) ListOrdered(ctx context.Context) ([]*models.Menu, error) {
	return r.queryMany(ctx, psql.
		Select(r.info.Columns...).
		From(r.info.Table).
		OrderBy("parent_id ASC", "position ASC"))
}

// ListByRoleIDs returns the menus reachable through any of the given roles,
// ordered for tree assembly.
func (r *MenuRepository) ListByRoleIDs(ctx context.Context, roleIDs []int64) ([]*models.Menu, error) {
	if len(roleIDs) == 0 {
		return []*models.Menu{}, nil
	}
	return r.queryMany(ctx, psql.
		Select("DISTINCT m.id", "m.title", "m.link", "m.icon", "m.parent_id", "m.position", "m.created_at", "m.updated_at").
		From("menus m").
		Join("menu_roles mr ON mr.menu_id = m.id").
		Where(sq.Eq{"mr.role_id": roleIDs}).
		OrderBy("m.parent_id ASC", "m.position ASC"))
}

// MaxPosition returns the highest assigned position, zero for an empty table.
func (r *MenuRepository) MaxPosition(ctx context.Context) (int64, error) {
	query, args, err := psql.
		Select("COALESCE(MAX(position), 0)").
		From(r.info.Table).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build menu position query: %w", err)
	}

	var max int64
	if err := r.deps.Q.QueryRow(ctx, query, args...).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to fetch max menu position: %w", err)
	}
	return max, nil
}

// SyncRoles replaces the menu's role assignments.
func (r *MenuRepository) SyncRoles(ctx context.Context, menuID int64, roleIDs []int64) error {
	return syncPivot(ctx, r.deps.Q, "menu_roles", "menu_id", menuID, "role_id", roleIDs)
}
