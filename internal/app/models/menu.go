package models

import "time"

// Menu is a node in the navigation hierarchy. ParentID zero marks a root
// entry. Children is only populated when a tree is assembled.
type Menu struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Icon      string    `json:"icon"`
	ParentID  int64     `json:"parent_id"`
	Position  int64     `json:"position"`
	Roles     []Role    `json:"roles,omitempty"`
	Children  []*Menu   `json:"menus,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
