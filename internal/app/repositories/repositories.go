package repositories

// Container bundles every repository for dependency injection.
type Container struct {
	Users       *UserRepository
	Roles       *RoleRepository
	Permissions *PermissionRepository
	Menus       *MenuRepository
	Students    *StudentRepository
	Lecturers   *LecturerRepository
	Theses      *ThesisRepository
	Tokens      *TokenRepository
}

// NewContainer wires all repositories over the shared collaborators.
func NewContainer(deps Deps) *Container {
	return &Container{
		Users:       NewUserRepository(deps),
		Roles:       NewRoleRepository(deps),
		Permissions: NewPermissionRepository(deps),
		Menus:       NewMenuRepository(deps),
		Students:    NewStudentRepository(deps),
		Lecturers:   NewLecturerRepository(deps),
		Theses:      NewThesisRepository(deps),
		Tokens:      NewTokenRepository(deps.Q),
	}
}
