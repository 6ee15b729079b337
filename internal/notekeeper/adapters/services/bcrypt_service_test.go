package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/notekeeper/adapters/services"
)

func TestBcryptService_HashAndVerify(t *testing.T) {
	ctx := context.Background()
	svc := services.NewBcryptService(4)

	hash, err := svc.Hash(ctx, "admin123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "admin123", hash)

	ok, err := svc.Verify(ctx, "admin123", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBcryptService_WrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := services.NewBcryptService(4)

	hash, err := svc.Hash(ctx, "admin123")
	require.NoError(t, err)

	ok, err := svc.Verify(ctx, "ADMIN123", hash)
	require.NoError(t, err, "mismatch is not an error")
	assert.False(t, ok)
}

func TestBcryptService_HashesAreSalted(t *testing.T) {
	ctx := context.Background()
	svc := services.NewBcryptService(4)

	first, err := svc.Hash(ctx, "admin123")
	require.NoError(t, err)
	second, err := svc.Hash(ctx, "admin123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptService_InvalidCostFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	svc := services.NewBcryptService(-1)

	hash, err := svc.Hash(ctx, "admin123")
	require.NoError(t, err)

	ok, err := svc.Verify(ctx, "admin123", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}
