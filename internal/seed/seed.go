package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/huyndo/acadmin/internal/pkg/auth"
	"github.com/huyndo/acadmin/internal/pkg/logger"
)

// Default admin credentials, meant to be changed after first login.
const (
	defaultAdminEmail    = "admin@admin.com"
	defaultAdminPassword = "admin"
)

var resources = []string{"role", "user", "menu", "theses", "students", "lecturers"}
var actions = []string{"index", "store", "show", "update", "destroy"}

// CreateDefaultData seeds the permission catalogue, the admin role and
// account, and the default menu forest. Every step is idempotent.
func CreateDefaultData(ctx context.Context, db *pgxpool.Pool, adminRole string) error {
	permissionIDs, err := seedPermissions(ctx, db)
	if err != nil {
		return err
	}

	roleID, err := seedAdminRole(ctx, db, adminRole, permissionIDs)
	if err != nil {
		return err
	}

	if err := seedAdminUser(ctx, db, roleID); err != nil {
		return err
	}

	if err := seedMenus(ctx, db); err != nil {
		return err
	}

	logger.Info().Msg("Default data ready")
	return nil
}

func seedPermissions(ctx context.Context, db *pgxpool.Pool) ([]int64, error) {
	names := make([]string, 0, len(resources)*len(actions)+2)
	for _, resource := range resources {
		for _, action := range actions {
			names = append(names, resource+"."+action)
		}
	}
	names = append(names, "menu.move", "permission.index")

	ids := make([]int64, 0, len(names))
	for _, name := range names {
		var id int64
		err := db.QueryRow(ctx, `
			INSERT INTO permissions (name, guard_name)
			VALUES ($1, 'api')
			ON CONFLICT (name) DO UPDATE SET guard_name = EXCLUDED.guard_name
			RETURNING id`, name).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to seed permission %s: %w", name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedAdminRole(ctx context.Context, db *pgxpool.Pool, adminRole string, permissionIDs []int64) (int64, error) {
	var roleID int64
	err := db.QueryRow(ctx, `
		INSERT INTO roles (name, guard_name)
		VALUES ($1, 'api')
		ON CONFLICT (name, guard_name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, adminRole).Scan(&roleID)
	if err != nil {
		return 0, fmt.Errorf("failed to seed admin role: %w", err)
	}

	for _, permissionID := range permissionIDs {
		_, err := db.Exec(ctx, `
			INSERT INTO role_permissions (role_id, permission_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, roleID, permissionID)
		if err != nil {
			return 0, fmt.Errorf("failed to attach permission to admin role: %w", err)
		}
	}
	return roleID, nil
}

func seedAdminUser(ctx context.Context, db *pgxpool.Pool, roleID int64) error {
	var exists bool
	err := db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, defaultAdminEmail).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check admin user: %w", err)
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	var userID int64
	err = db.QueryRow(ctx, `
		INSERT INTO users (name, email, password)
		VALUES ('Administrator', $1, $2)
		RETURNING id`, defaultAdminEmail, hashed).Scan(&userID)
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if _, err := db.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, userID, roleID); err != nil {
		return fmt.Errorf("failed to attach admin role to admin user: %w", err)
	}

	logger.Info().Str("email", defaultAdminEmail).Msg("Seeded admin user")
	return nil
}

type menuSeed struct {
	title    string
	link     string
	icon     string
	children []menuSeed
}

var defaultMenus = []menuSeed{
	{
		title: "Module", icon: "mdi-view-module",
		children: []menuSeed{
			{title: "Students", link: "/students", icon: "mdi-school"},
			{title: "Lecturers", link: "/lecturers", icon: "mdi-account-tie"},
			{title: "Theses", link: "/theses", icon: "mdi-book-open-variant"},
		},
	},
	{
		title: "System", icon: "mdi-cog",
		children: []menuSeed{
			{title: "Users", link: "/user", icon: "mdi-account-multiple"},
			{title: "Roles", link: "/role", icon: "mdi-shield-account"},
			{title: "Menus", link: "/menu", icon: "mdi-menu"},
		},
	},
}

func seedMenus(ctx context.Context, db *pgxpool.Pool) error {
	var count int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM menus`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count menus: %w", err)
	}
	if count > 0 {
		return nil
	}

	position := int64(0)
	var insert func(items []menuSeed, parentID int64) error
	insert = func(items []menuSeed, parentID int64) error {
		for _, item := range items {
			position++
			var id int64
			err := db.QueryRow(ctx, `
				INSERT INTO menus (title, link, icon, parent_id, position)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id`, item.title, item.link, item.icon, parentID, position).Scan(&id)
			if err != nil {
				return fmt.Errorf("failed to seed menu %s: %w", item.title, err)
			}
			if err := insert(item.children, id); err != nil {
				return err
			}
		}
		return nil
	}

	if err := insert(defaultMenus, 0); err != nil {
		return err
	}
	logger.Info().Msg("Seeded default menus")
	return nil
}
