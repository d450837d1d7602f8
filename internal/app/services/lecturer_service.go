package services

import (
	"context"
	"errors"

	"github.com/huyndo/acadmin/internal/app/models"
	"github.com/huyndo/acadmin/internal/app/models/dto"
	"github.com/huyndo/acadmin/internal/app/repositories"
	"github.com/huyndo/acadmin/internal/pkg/apperrors"
)

// LecturerService implements lecturer record management.
type LecturerService struct {
	lecturers *repositories.LecturerRepository
}

// NewLecturerService creates a LecturerService.
func NewLecturerService(lecturers *repositories.LecturerRepository) *LecturerService {
	return &LecturerService{lecturers: lecturers}
}

// List returns a page of lecturers with their thesis counts.
func (s *LecturerService) List(ctx context.Context, params repositories.ListParams) (*repositories.ListResult[models.Lecturer], error) {
	return s.lecturers.List(ctx, params, "theses_count")
}

// Get fetches one lecturer.
func (s *LecturerService) Get(ctx context.Context, id int64) (*models.Lecturer, error) {
	lecturer, err := s.lecturers.Find(ctx, id, "theses_count")
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrLecturerNotFound
		}
		return nil, err
	}
	return lecturer, nil
}

// Create stores a new lecturer.
func (s *LecturerService) Create(ctx context.Context, req dto.LecturerRequest) (*models.Lecturer, error) {
	return s.lecturers.Create(ctx, map[string]any{
		"name":        req.Name,
		"address":     req.Address,
		"phone":       req.Phone,
		"specialized": req.Specialized,
	})
}

// Update rewrites a lecturer.
func (s *LecturerService) Update(ctx context.Context, id int64, req dto.LecturerRequest) (*models.Lecturer, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.lecturers.Update(ctx, id, map[string]any{
		"name":        req.Name,
		"address":     req.Address,
		"phone":       req.Phone,
		"specialized": req.Specialized,
	})
}

// Delete removes a lecturer.
func (s *LecturerService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.lecturers.Delete(ctx, id)
}
