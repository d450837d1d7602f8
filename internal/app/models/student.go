package models

import "time"

// Student is an enrolled student record.
type Student struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Specialized string    `json:"specialized"`
	ThesisCount int64     `json:"theses_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
