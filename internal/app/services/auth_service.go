package services

import (
	"context"
	"time"

	"github.com/huyndo/acadmin/internal/app/models"
	"github.com/huyndo/acadmin/internal/app/models/dto"
	"github.com/huyndo/acadmin/internal/app/repositories"
	"github.com/huyndo/acadmin/internal/pkg/apperrors"
	"github.com/huyndo/acadmin/internal/pkg/auth"
	"github.com/huyndo/acadmin/internal/pkg/logger"
)

// AuthService handles credential checks and token lifecycle.
type AuthService struct {
	users  *repositories.UserRepository
	tokens *repositories.TokenRepository
	jwt    *auth.JWTService
}

// NewAuthService creates an AuthService.
func NewAuthService(users *repositories.UserRepository, tokens *repositories.TokenRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{users: users, tokens: tokens, jwt: jwtService}
}

// Login verifies credentials and issues a token pair. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Email/Password do not match")
	}

	if err := auth.CheckPassword(password, user.Password); err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Email/Password do not match")
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token, revoking the presented one.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokens.FindActive(ctx, refreshToken)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "Refresh token is invalid")
	}
	if stored.Expired(time.Now()) {
		return nil, apperrors.NewCustomError(apperrors.ErrTokenExpired, "Refresh token is invalid")
	}

	user, err := s.users.Find(ctx, stored.UserID)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "Refresh token is invalid")
	}

	if err := s.tokens.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes every outstanding refresh token of the user.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.tokens.RevokeAllForUser(ctx, userID)
}

// Profile fetches the user with roles and permissions loaded.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.FindWithAccess(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile changes the caller's name and optionally the password. A
// password change requires the current password to verify first.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req dto.ProfileRequest) (*models.User, error) {
	user, err := s.users.Find(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	data := map[string]any{"name": req.Name}

	if req.NewPassword != "" {
		if err := auth.CheckPassword(req.OldPassword, user.Password); err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrPasswordMismatch, "Password doesn't match")
		}
		hashed, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			return nil, err
		}
		data["password"] = hashed
	}

	if _, err := s.users.Update(ctx, userID, data); err != nil {
		return nil, err
	}
	return s.users.FindWithAccess(ctx, userID)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, err := s.jwt.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Store(ctx, user.ID, refreshToken, s.jwt.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	logger.Info().Int64("user_id", user.ID).Msg("Issued token pair")

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
	}, nil
}
