package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huyndo/acadmin/internal/pkg/apperrors"
)

func TestUserDeleteRejectsOwnAccount(t *testing.T) {
	svc := NewUserService(nil, nil)

	err := svc.Delete(context.Background(), 5, 5)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSelfDelete)
	assert.Equal(t, "Access denied", err.Error())
}
