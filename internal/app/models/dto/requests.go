package dto

// LoginRequest carries sign-in credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ProfileRequest updates the authenticated user's own record. Password is
// only changed when both fields are present and the old password checks out.
type ProfileRequest struct {
	Name        string `json:"name" binding:"required"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// UserRequest creates or updates a user. On update an empty password leaves
// the stored hash untouched.
type UserRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password"`
	Roles    []int64 `json:"roles"`
}

// RoleRequest creates or updates a role together with its permission set.
type RoleRequest struct {
	Name        string  `json:"name" binding:"required"`
	Permissions []int64 `json:"permissions"`
}

// MenuRequest creates or updates a menu entry.
type MenuRequest struct {
	Title    string  `json:"title" binding:"required"`
	Link     string  `json:"link"`
	Icon     string  `json:"icon"`
	ParentID int64   `json:"parent_id"`
	Roles    []int64 `json:"roles"`
}

// MenuMoveItem is one repositioned node in a drag-and-drop submission.
type MenuMoveItem struct {
	ID       int64 `json:"id" binding:"required"`
	ParentID int64 `json:"parent_id"`
	Position int64 `json:"position"`
}

// MoveRequest reorders part of the menu hierarchy in one call.
type MoveRequest struct {
	List []MenuMoveItem `json:"list" binding:"required,min=1,dive"`
}

// StudentRequest creates or updates a student. The same shape serves
// lecturers.
type StudentRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Specialized string `json:"specialized"`
}

// LecturerRequest creates or updates a lecturer.
type LecturerRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Specialized string `json:"specialized"`
}

// ThesisRequest creates or updates a thesis.
type ThesisRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Attaches    string `json:"attaches"`
	StudentID   int64  `json:"student_id" binding:"required"`
	LecturerID  int64  `json:"lecturer_id" binding:"required"`
}
