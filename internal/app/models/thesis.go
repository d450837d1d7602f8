package models

import "time"

// Thesis links a student with a supervising lecturer.
type Thesis struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Attaches    string    `json:"attaches"`
	StudentID   int64     `json:"student_id"`
	LecturerID  int64     `json:"lecturer_id"`
	Student     *Student  `json:"student,omitempty"`
	Lecturer    *Lecturer `json:"lecturer,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
