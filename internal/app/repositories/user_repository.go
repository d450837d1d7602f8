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

// UserRepository manages the users table and its role assignments.
type UserRepository struct {
	*Base[models.User]
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// NewUserRepository creates a UserRepository.
func NewUserRepository(deps Deps) *UserRepository {
	return &UserRepository{
		Base: NewBase(deps, EntityInfo[models.User]{
			Table:    "users",
			Singular: "user",
			Columns:  []string{"id", "name", "email", "password", "created_at", "updated_at"},
			Sortable: []string{"id", "name", "email", "created_at"},
			Fillable: []string{"name", "email", "password"},
			Scan:     scanUser,
			Search: func(b sq.SelectBuilder, key, value string) sq.SelectBuilder {
				switch key {
				case "name", "username":
					return b.Where(ILikeContains("name", value))
				case "email":
					return b.Where(ILikeContains("email", value))
				}
				return b
			},
			Loaders: map[string]LoaderFn[models.User]{
				"roles": loadUserRoles,
			},
		}),
	}
}

func loadUserRoles(ctx context.Context, q Queryer, users []*models.User) error {
	ids := make([]int64, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}

	query, args, err := psql.
		Select("ur.user_id", "r.id", "r.name", "r.guard_name", "r.created_at", "r.updated_at").
		From("roles r").
		Join("user_roles ur ON ur.role_id = r.id").
		Where(sq.Eq{"ur.user_id": ids}).
		OrderBy("r.name ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user roles query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load user roles: %w", err)
	}
	defer rows.Close()

	byUser := make(map[int64][]models.Role)
	for rows.Next() {
		var userID int64
		var role models.Role
		if err := rows.Scan(&userID, &role.ID, &role.Name, &role.GuardName, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan user role row: %w", err)
		}
		byUser[userID] = append(byUser[userID], role)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, user := range users {
		user.Roles = byUser[user.ID]
	}
	return nil
}

// FindByEmail fetches one user by email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query, args, err := psql.Select(r.info.Columns...).
		From(r.info.Table).
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user lookup query: %w", err)
	}

	user, err := r.info.Scan(r.deps.Q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	return user, nil
}

// FindWithAccess fetches one user with roles and their permissions, the
// shape the authentication middleware stores on the request context.
func (r *UserRepository) FindWithAccess(ctx context.Context, id int64) (*models.User, error) {
	user, err := r.Find(ctx, id, "roles")
	if err != nil {
		return nil, err
	}
	if err := attachRolePermissions(ctx, r.deps.Q, user.Roles); err != nil {
		return nil, err
	}
	return user, nil
}

// attachRolePermissions hydrates permissions onto a role slice in place.
func attachRolePermissions(ctx context.Context, q Queryer, roles []models.Role) error {
	ids := make([]int64, 0, len(roles))
	for _, role := range roles {
		ids = append(ids, role.ID)
	}

	byRole, err := permissionsByRoleID(ctx, q, ids)
	if err != nil {
		return err
	}
	for i := range roles {
		roles[i].Permissions = byRole[roles[i].ID]
	}
	return nil
}

// SyncRoles replaces the user's role assignments.
func (r *UserRepository) SyncRoles(ctx context.Context, userID int64, roleIDs []int64) error {
	return syncPivot(ctx, r.deps.Q, "user_roles", "user_id", userID, "role_id", roleIDs)
}

// EmailTaken reports whether another user already holds the email.
func (r *UserRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	query, args, err := psql.Select("1").
		From(r.info.Table).
		Where(sq.Eq{"email": email}).
		Where(sq.NotEq{"id": excludeID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build email check query: %w", err)
	}

	var one int
	if err := r.deps.Q.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	return true, nil
}
