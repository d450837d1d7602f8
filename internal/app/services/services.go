package services

import (
	"github.com/huyndo/acadmin/internal/app/repositories"
	"github.com/huyndo/acadmin/internal/config"
	"github.com/huyndo/acadmin/internal/pkg/auth"
)

// Container bundles every service for dependency injection.
type Container struct {
	Auth        *AuthService
	Users       *UserService
	Roles       *RoleService
	Permissions *PermissionService
	Menus       *MenuService
	Students    *StudentService
	Lecturers   *LecturerService
	Theses      *ThesisService
}

// NewContainer wires all services over the repositories.
func NewContainer(repos *repositories.Container, jwtService *auth.JWTService, appCfg config.App) *Container {
	return &Container{
		Auth:        NewAuthService(repos.Users, repos.Tokens, jwtService),
		Users:       NewUserService(repos.Users, repos.Tokens),
		Roles:       NewRoleService(repos.Roles, appCfg.AdminRole),
		Permissions: NewPermissionService(repos.Permissions),
		Menus:       NewMenuService(repos.Menus, appCfg.AdminRole),
		Students:    NewStudentService(repos.Students),
		Lecturers:   NewLecturerService(repos.Lecturers),
		Theses:      NewThesisService(repos.Theses, repos.Students, repos.Lecturers),
	}
}
