package services

import (
	"context"
	"errors"

	"github.com/huyndo/acadmin/internal/app/models"
	"github.com/huyndo/acadmin/internal/app/models/dto"
	"github.com/huyndo/acadmin/internal/app/repositories"
	"github.com/huyndo/acadmin/internal/pkg/apperrors"
	"github.com/huyndo/acadmin/internal/pkg/dberrors"
)

// ThesisService implements thesis record management.
type ThesisService struct {
	theses    *repositories.ThesisRepository
	students  *repositories.StudentRepository
	lecturers *repositories.LecturerRepository
}

// NewThesisService creates a ThesisService.
func NewThesisService(theses *repositories.ThesisRepository, students *repositories.StudentRepository, lecturers *repositories.LecturerRepository) *ThesisService {
	return &ThesisService{theses: theses, students: students, lecturers: lecturers}
}

// List returns a page of theses with student and lecturer loaded.
func (s *ThesisService) List(ctx context.Context, params repositories.ListParams) (*repositories.ListResult[models.Thesis], error) {
	return s.theses.List(ctx, params, "student", "lecturer")
}

// Get fetches one thesis with its student and lecturer.
func (s *ThesisService) Get(ctx context.Context, id int64) (*models.Thesis, error) {
	thesis, err := s.theses.Find(ctx, id, "student", "lecturer")
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrThesisNotFound
		}
		return nil, err
	}
	return thesis, nil
}

// Create stores a new thesis after checking both foreign records exist.
func (s *ThesisService) Create(ctx context.Context, req dto.ThesisRequest) (*models.Thesis, error) {
	if err := s.checkLinks(ctx, req); err != nil {
		return nil, err
	}

	thesis, err := s.theses.Create(ctx, thesisData(req))
	if err != nil {
		// The existence checks can race with a concurrent delete.
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.NewValidationError("Student or lecturer no longer exists")
		}
		return nil, err
	}
	return s.Get(ctx, thesis.ID)
}

// Update rewrites a thesis.
func (s *ThesisService) Update(ctx context.Context, id int64, req dto.ThesisRequest) (*models.Thesis, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.checkLinks(ctx, req); err != nil {
		return nil, err
	}

	if _, err := s.theses.Update(ctx, id, thesisData(req)); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.NewValidationError("Student or lecturer no longer exists")
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a thesis.
func (s *ThesisService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.theses.Delete(ctx, id)
}

func (s *ThesisService) checkLinks(ctx context.Context, req dto.ThesisRequest) error {
	ok, err := s.students.Exists(ctx, req.StudentID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrStudentNotFound
	}

	ok, err = s.lecturers.Exists(ctx, req.LecturerID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrLecturerNotFound
	}
	return nil
}

func thesisData(req dto.ThesisRequest) map[string]any {
	return map[string]any{
		"name":        req.Name,
		"description": req.Description,
		"attaches":    req.Attaches,
		"student_id":  req.StudentID,
		"lecturer_id": req.LecturerID,
	}
}
