package services

import (
	"context"
	"errors"

	"github.com/huyndo/acadmin/internal/app/models"
	"github.com/huyndo/acadmin/internal/app/models/dto"
	"github.com/huyndo/acadmin/internal/app/repositories"
	"github.com/huyndo/acadmin/internal/pkg/apperrors"
)

// StudentService implements student record management.
type StudentService struct {
	students *repositories.StudentRepository
}

// NewStudentService creates a StudentService.
func NewStudentService(students *repositories.StudentRepository) *StudentService {
	return &StudentService{students: students}
}

// List returns a page of students with their thesis counts.
func (s *StudentService) List(ctx context.Context, params repositories.ListParams) (*repositories.ListResult[models.Student], error) {
	return s.students.List(ctx, params, "theses_count")
}

// Get fetches one student.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.students.Find(ctx, id, "theses_count")
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

// Create stores a new student.
func (s *StudentService) Create(ctx context.Context, req dto.StudentRequest) (*models.Student, error) {
	return s.students.Create(ctx, map[string]any{
		"name":        req.Name,
		"address":     req.Address,
		"phone":       req.Phone,
		"specialized": req.Specialized,
	})
}

// Update rewrites a student.
func (s *StudentService) Update(ctx context.Context, id int64, req dto.StudentRequest) (*models.Student, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.students.Update(ctx, id, map[string]any{
		"name":        req.Name,
		"address":     req.Address,
		"phone":       req.Phone,
		"specialized": req.Specialized,
	})
}

// Delete removes a student.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.students.Delete(ctx, id)
}
