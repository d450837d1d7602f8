package dto

import "github.com/huyndo/acadmin/internal/app/models"

// ProfileResponse is the authenticated user's own view: the account, the
// flattened permission names and the visible menu forest.
type ProfileResponse struct {
	User        *models.User   `json:"user"`
	Permissions []string       `json:"permissions"`
	Menus       []*models.Menu `json:"menus"`
}
