package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huyndo/acadmin/internal/app/models"
)

func menu(id, parentID, position int64) *models.Menu {
	return &models.Menu{ID: id, ParentID: parentID, Position: position}
}

func TestBuildTreeOrdersSiblingsByPosition(t *testing.T) {
	flat := []*models.Menu{
		menu(1, 0, 2),
		menu(2, 0, 1),
		menu(3, 1, 1),
	}

	roots := BuildTree(flat)

	require.Len(t, roots, 2)
	assert.Equal(t, int64(2), roots[0].ID)
	assert.Equal(t, int64(1), roots[1].ID)

	require.Len(t, roots[1].Children, 1)
	assert.Equal(t, int64(3), roots[1].Children[0].ID)
	assert.Empty(t, roots[0].Children)
}

func TestBuildTreeStableOnEqualPositions(t *testing.T) {
	flat := []*models.Menu{
		menu(10, 0, 1),
		menu(11, 0, 1),
		menu(12, 0, 1),
	}

	roots := BuildTree(flat)

	require.Len(t, roots, 3)
	assert.Equal(t, int64(10), roots[0].ID)
	assert.Equal(t, int64(11), roots[1].ID)
	assert.Equal(t, int64(12), roots[2].ID)
}

func TestBuildTreeEmptyInput(t *testing.T) {
	roots := BuildTree(nil)
	assert.NotNil(t, roots)
	assert.Empty(t, roots)
}

func TestBuildTreeDropsCycles(t *testing.T) {
	// 5 and 6 reference each other and never reach a root.
	flat := []*models.Menu{
		menu(1, 0, 1),
		menu(5, 6, 1),
		menu(6, 5, 1),
	}

	roots := BuildTree(flat)

	require.Len(t, roots, 1)
	assert.Equal(t, int64(1), roots[0].ID)
	assert.Nil(t, findNode(roots, 5))
	assert.Nil(t, findNode(roots, 6))
}

func TestBuildTreeBoundsDepth(t *testing.T) {
	var flat []*models.Menu
	parent := int64(0)
	for i := int64(1); i <= maxTreeDepth+10; i++ {
		flat = append(flat, menu(i, parent, 1))
		parent = i
	}

	roots := BuildTree(flat)
	require.Len(t, roots, 1)

	depth := 0
	node := roots[0]
	for len(node.Children) > 0 {
		node = node.Children[0]
		depth++
	}
	assert.LessOrEqual(t, depth, maxTreeDepth)
}

func TestSyncRolesDeepVisitsDepthFirst(t *testing.T) {
	svc := NewMenuService(nil, "admin")

	var visited []int64
	svc.syncRoles = func(ctx context.Context, menuID int64, roleIDs []int64) error {
		visited = append(visited, menuID)
		assert.Equal(t, []int64{7, 8}, roleIDs)
		return nil
	}

	tree := BuildTree([]*models.Menu{
		menu(1, 0, 1),
		menu(2, 1, 1),
		menu(3, 1, 2),
		menu(4, 2, 1),
		menu(9, 0, 2),
	})

	require.NoError(t, svc.SyncRolesDeep(context.Background(), tree, []int64{7, 8}))
	assert.Equal(t, []int64{1, 2, 4, 3, 9}, visited)
}

func TestMenusForUserCollectsRoleIDs(t *testing.T) {
	// Admin detection only needs the role name.
	admin := &models.User{Roles: []models.Role{{ID: 1, Name: "admin"}}}
	assert.True(t, admin.HasRole("admin"))

	viewer := &models.User{Roles: []models.Role{{ID: 2, Name: "viewer"}}}
	assert.False(t, viewer.HasRole("admin"))
}

func TestFindNode(t *testing.T) {
	tree := BuildTree([]*models.Menu{
		menu(1, 0, 1),
		menu(2, 1, 1),
		menu(3, 2, 1),
	})

	require.NotNil(t, findNode(tree, 3))
	assert.Equal(t, int64(3), findNode(tree, 3).ID)
	assert.Nil(t, findNode(tree, 99))
}
