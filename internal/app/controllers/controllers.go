package controllers

import (
	"github.com/huyndo/acadmin/internal/app/services"
	"github.com/huyndo/acadmin/internal/config"
)

// Container bundles every controller for route registration.
type Container struct {
	Auth        *AuthController
	Users       *UserController
	Roles       *RoleController
	Permissions *PermissionController
	Menus       *MenuController
	Students    *StudentController
	Lecturers   *LecturerController
	Theses      *ThesisController
}

// NewContainer wires all controllers over the services.
func NewContainer(svcs *services.Container, appCfg config.App) *Container {
	encoded := appCfg.EncodeConditions
	return &Container{
		Auth:        NewAuthController(svcs.Auth, svcs.Menus),
		Users:       NewUserController(svcs.Users, encoded),
		Roles:       NewRoleController(svcs.Roles, encoded),
		Permissions: NewPermissionController(svcs.Permissions),
		Menus:       NewMenuController(svcs.Menus, encoded),
		Students:    NewStudentController(svcs.Students, encoded),
		Lecturers:   NewLecturerController(svcs.Lecturers, encoded),
		Theses:      NewThesisController(svcs.Theses, encoded),
	}
}
