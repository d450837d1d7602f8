package models

import "time"

// Role groups permissions and is assigned to users.
type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	GuardName   string       `json:"guard_name"`
	Permissions []Permission `json:"permissions,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
