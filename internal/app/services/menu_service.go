package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/huyndo/acadmin/internal/app/models"
	"github.com/huyndo/acadmin/internal/app/models/dto"
	"github.com/huyndo/acadmin/internal/app/repositories"
	"github.com/huyndo/acadmin/internal/pkg/apperrors"
)

// maxTreeDepth bounds tree assembly so corrupted parent links cannot
// recurse forever.
const maxTreeDepth = 32

// MenuService implements menu management and tree assembly.
type MenuService struct {
	menus     *repositories.MenuRepository
	adminRole string

	// syncRoles is the role-assignment writer, a field so the deep
	// cascade is testable without a database.
	syncRoles func(ctx context.Context, menuID int64, roleIDs []int64) error
}

// NewMenuService creates a MenuService.
func NewMenuService(menus *repositories.MenuRepository, adminRole string) *MenuService {
	s := &MenuService{menus: menus, adminRole: adminRole}
	s.syncRoles = menus.SyncRoles
	return s
}

// BuildTree assembles a forest from a flat menu slice. Nodes with parent id
// zero are roots; siblings order ascending by position, ties keeping input
// order. Nodes whose ancestry never reaches a root are left out.
func BuildTree(flat []*models.Menu) []*models.Menu {
	byParent := make(map[int64][]*models.Menu, len(flat))
	for _, menu := range flat {
		menu.Children = nil
		byParent[menu.ParentID] = append(byParent[menu.ParentID], menu)
	}
	for _, group := range byParent {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Position < group[j].Position
		})
	}

	var attach func(nodes []*models.Menu, depth int)
	attach = func(nodes []*models.Menu, depth int) {
		if depth >= maxTreeDepth {
			return
		}
		for _, node := range nodes {
			node.Children = byParent[node.ID]
			attach(node.Children, depth+1)
		}
	}

	roots := byParent[0]
	attach(roots, 0)
	if roots == nil {
		roots = []*models.Menu{}
	}
	return roots
}

// List returns a page of menus with their roles.
func (s *MenuService) List(ctx context.Context, params repositories.ListParams) (*repositories.ListResult[models.Menu], error) {
	return s.menus.List(ctx, params, "roles")
}

// Tree returns every menu assembled into the full forest.
func (s *MenuService) Tree(ctx context.Context) ([]*models.Menu, error) {
	flat, err := s.menus.ListOrdered(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTree(flat), nil
}

// Get fetches one menu with its roles.
func (s *MenuService) Get(ctx context.Context, id int64) (*models.Menu, error) {
	menu, err := s.menus.Find(ctx, id, "roles")
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrMenuNotFound
		}
		return nil, err
	}
	return menu, nil
}

// Create stores a new menu at the end of the ordering and attaches the
// submitted roles.
func (s *MenuService) Create(ctx context.Context, req dto.MenuRequest) (*models.Menu, error) {
	maxPos, err := s.menus.MaxPosition(ctx)
	if err != nil {
		return nil, err
	}

	menu, err := s.menus.Create(ctx, map[string]any{
		"title":     req.Title,
		"link":      req.Link,
		"icon":      req.Icon,
		"parent_id": req.ParentID,
		"position":  maxPos + 1,
	})
	if err != nil {
		return nil, err
	}

	if req.Roles != nil {
		if err := s.syncRoles(ctx, menu.ID, req.Roles); err != nil {
			return nil, err
		}
	}
	return s.menus.Find(ctx, menu.ID, "roles")
}

// Update rewrites a menu. When roles are submitted the assignment replaces
// the old set and cascades over the whole loaded subtree.
func (s *MenuService) Update(ctx context.Context, id int64, req dto.MenuRequest) (*models.Menu, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if _, err := s.menus.Update(ctx, id, map[string]any{
		"title":     req.Title,
		"link":      req.Link,
		"icon":      req.Icon,
		"parent_id": req.ParentID,
	}); err != nil {
		return nil, err
	}

	if req.Roles != nil {
		if err := s.syncRoles(ctx, id, req.Roles); err != nil {
			return nil, err
		}
		subtree, err := s.subtreeChildren(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.SyncRolesDeep(ctx, subtree, req.Roles); err != nil {
			return nil, err
		}
	}
	return s.menus.Find(ctx, id, "roles")
}

// Delete removes a menu and its role assignments. Children keep their
// parent link and drop out of the assembled tree.
func (s *MenuService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.syncRoles(ctx, id, nil); err != nil {
		return err
	}
	return s.menus.Delete(ctx, id)
}

// Move applies a batch of drag-and-drop repositions. Batch entries naming
// unknown menus are skipped; menus outside the batch are untouched.
func (s *MenuService) Move(ctx context.Context, req dto.MoveRequest) ([]*models.Menu, error) {
	ids := make([]string, 0, len(req.List))
	for _, item := range req.List {
		ids = append(ids, fmt.Sprintf("%d", item.ID))
	}

	all := 0
	result, err := s.menus.List(ctx, repositories.ListParams{
		Filters:  map[string]string{"ids": strings.Join(ids, ",")},
		Sort:     "id",
		SortType: 1,
		Limit:    &all,
	})
	if err != nil {
		return nil, err
	}

	known := make(map[int64]bool, len(result.Items))
	for _, menu := range result.Items {
		known[menu.ID] = true
	}

	updated := make([]*models.Menu, 0, len(req.List))
	for _, item := range req.List {
		if !known[item.ID] {
			continue
		}
		menu, err := s.menus.Update(ctx, item.ID, map[string]any{
			"parent_id": item.ParentID,
			"position":  item.Position,
		})
		if err != nil {
			return nil, err
		}
		updated = append(updated, menu)
	}
	return updated, nil
}

// SyncRolesDeep overwrites the role assignment of every node in the given
// subtrees, depth first.
func (s *MenuService) SyncRolesDeep(ctx context.Context, menus []*models.Menu, roleIDs []int64) error {
	for _, menu := range menus {
		if err := s.syncRoles(ctx, menu.ID, roleIDs); err != nil {
			return err
		}
		if err := s.SyncRolesDeep(ctx, menu.Children, roleIDs); err != nil {
			return err
		}
	}
	return nil
}

// MenusForUser returns the navigation forest visible to the user: the full
// tree for admins, otherwise the menus reachable through the user's roles.
func (s *MenuService) MenusForUser(ctx context.Context, user *models.User) ([]*models.Menu, error) {
	if user.HasRole(s.adminRole) {
		return s.Tree(ctx)
	}

	roleIDs := make([]int64, 0, len(user.Roles))
	for _, role := range user.Roles {
		roleIDs = append(roleIDs, role.ID)
	}

	flat, err := s.menus.ListByRoleIDs(ctx, roleIDs)
	if err != nil {
		return nil, err
	}
	return BuildTree(flat), nil
}

// subtreeChildren assembles the full tree and returns the children of the
// node with the given id.
func (s *MenuService) subtreeChildren(ctx context.Context, id int64) ([]*models.Menu, error) {
	roots, err := s.Tree(ctx)
	if err != nil {
		return nil, err
	}
	if node := findNode(roots, id); node != nil {
		return node.Children, nil
	}
	return nil, nil
}

func findNode(nodes []*models.Menu, id int64) *models.Menu {
	for _, node := range nodes {
		if node.ID == id {
			return node
		}
		if found := findNode(node.Children, id); found != nil {
			return found
		}
	}
	return nil
}
