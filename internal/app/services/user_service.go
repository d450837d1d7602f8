package services

import (
	"context"
	"errors"

	"github.com/huyndo/acadmin/internal/app/models"
	"github.com/huyndo/acadmin/internal/app/models/dto"
	"github.com/huyndo/acadmin/internal/app/repositories"
	"github.com/huyndo/acadmin/internal/pkg/apperrors"
	"github.com/huyndo/acadmin/internal/pkg/auth"
	"github.com/huyndo/acadmin/internal/pkg/dberrors"
)

// UserService implements the account management operations.
type UserService struct {
	users  *repositories.UserRepository
	tokens *repositories.TokenRepository
}

// NewUserService creates a UserService.
func NewUserService(users *repositories.UserRepository, tokens *repositories.TokenRepository) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// List returns a page of users with their roles.
func (s *UserService) List(ctx context.Context, params repositories.ListParams) (*repositories.ListResult[models.User], error) {
	return s.users.List(ctx, params, "roles")
}

// Get fetches one user with roles.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.Find(ctx, id, "roles")
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Create stores a new user and assigns the submitted roles.
func (s *UserService) Create(ctx context.Context, req dto.UserRequest) (*models.User, error) {
	if req.Password == "" {
		return nil, apperrors.NewValidationError("Password is required")
	}

	taken, err := s.users.EmailTaken(ctx, req.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "Email is already taken")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, map[string]any{
		"name":     req.Name,
		"email":    req.Email,
		"password": hashed,
	})
	if err != nil {
		// The uniqueness pre-check can race with a concurrent insert.
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "Email is already taken")
		}
		return nil, err
	}

	if err := s.users.SyncRoles(ctx, user.ID, req.Roles); err != nil {
		return nil, err
	}
	return s.users.Find(ctx, user.ID, "roles")
}

// Update rewrites a user and replaces its role assignments. An empty
// password leaves the stored hash untouched.
func (s *UserService) Update(ctx context.Context, id int64, req dto.UserRequest) (*models.User, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	taken, err := s.users.EmailTaken(ctx, req.Email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "Email is already taken")
	}

	data := map[string]any{
		"name":  req.Name,
		"email": req.Email,
	}
	if req.Password != "" {
		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		data["password"] = hashed
	}

	if _, err := s.users.Update(ctx, id, data); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "Email is already taken")
		}
		return nil, err
	}

	if err := s.users.SyncRoles(ctx, id, req.Roles); err != nil {
		return nil, err
	}
	return s.users.Find(ctx, id, "roles")
}

// Delete removes a user. The authenticated caller cannot delete their own
// account.
func (s *UserService) Delete(ctx context.Context, id, actorID int64) error {
	if id == actorID {
		return apperrors.NewCustomError(apperrors.ErrSelfDelete, "Access denied")
	}

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.users.SyncRoles(ctx, id, nil); err != nil {
		return err
	}
	if err := s.tokens.RevokeAllForUser(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}
