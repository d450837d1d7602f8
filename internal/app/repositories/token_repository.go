package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/huyndo/acadmin/internal/app/models"
	"github.com/huyndo/acadmin/internal/pkg/apperrors"
)

// TokenRepository manages stored refresh tokens.
type TokenRepository struct {
	q Queryer
}

// NewTokenRepository creates a TokenRepository.
func NewTokenRepository(q Queryer) *TokenRepository {
	return &TokenRepository{q: q}
}

var refreshTokenColumns = []string{"id", "user_id", "token", "expiry_date", "is_revoked", "created_at"}

func scanRefreshToken(row pgx.Row) (*models.RefreshToken, error) {
	var t models.RefreshToken
	if err := row.Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiryDate, &t.IsRevoked, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Store persists a freshly issued refresh token.
func (r *TokenRepository) Store(ctx context.Context, userID int64, token string, expiryDate time.Time) error {
	query, args, err := psql.Insert("refresh_tokens").
		Columns("user_id", "token", "expiry_date").
		Values(userID, token, expiryDate).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build token insert query: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// FindActive fetches a token by value. Revoked or unknown tokens map to
// ErrTokenNotFound; the caller checks expiry.
func (r *TokenRepository) FindActive(ctx context.Context, token string) (*models.RefreshToken, error) {
	query, args, err := psql.Select(refreshTokenColumns...).
		From("refresh_tokens").
		Where(sq.Eq{"token": token, "is_revoked": false}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build token lookup query: %w", err)
	}

	stored, err := scanRefreshToken(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to fetch refresh token: %w", err)
	}
	return stored, nil
}

// Revoke marks one token unusable.
func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	query, args, err := psql.Update("refresh_tokens").
		Set("is_revoked", true).
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build token revoke query: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// RevokeAllForUser marks every token of one user unusable.
func (r *TokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	query, args, err := psql.Update("refresh_tokens").
		Set("is_revoked", true).
		Where(sq.Eq{"user_id": userID, "is_revoked": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user token revoke query: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to revoke user refresh tokens: %w", err)
	}
	return nil
}

// DeleteExpired removes tokens past their deadline.
func (r *TokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query, args, err := psql.Delete("refresh_tokens").
		Where(sq.Lt{"expiry_date": time.Now()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build expired token cleanup query: %w", err)
	}

	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
