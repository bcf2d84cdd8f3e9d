package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/supermarket/pkg/result"
	"github.com/ghuser/supermarket/services/product/domain/models"
)

func newProduct(id int, quantity uint) *models.Product {
	return models.NewProduct(id, models.CategoryFood,
		models.NewProductName(result.Some("Oranges")).Value(),
		models.NewManufacturerName(result.Some("Jaffa")).Value(),
		result.None[models.Email](), quantity)
}

func TestProductRepository_AddIsInvisibleUntilCommit(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	repo.Add(ctx, newProduct(1, 10))
	_, stored := repo.Stored(1)
	assert.False(t, stored)

	require.NoError(t, repo.Commit(ctx))
	p, stored := repo.Stored(1)
	require.True(t, stored)
	assert.Equal(t, uint(10), p.Quantity())
	assert.Len(t, repo.Published(), 1)
}

func TestProductRepository_FindMissing(t *testing.T) {
	found, err := NewProductRepository().Find(context.Background(), 9)
	require.NoError(t, err)
	assert.True(t, found.HasNoValue())
}

func TestProductRepository_FindTracksCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	repo.Add(ctx, newProduct(1, 10))
	require.NoError(t, repo.Commit(ctx))

	found, err := repo.Find(ctx, 1)
	require.NoError(t, err)
	found.Value().Debit(4)

	again, err := repo.Find(ctx, 1)
	require.NoError(t, err)
	assert.Same(t, found.Value(), again.Value(), "unit of work must return the tracked instance")

	stored, _ := repo.Stored(1)
	assert.Equal(t, uint(10), stored.Quantity(), "mutation must stay pending until commit")

	require.NoError(t, repo.Commit(ctx))
	stored, _ = repo.Stored(1)
	assert.Equal(t, uint(6), stored.Quantity())
}

func TestProductRepository_Rollback(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	repo.Add(ctx, newProduct(1, 10))
	require.NoError(t, repo.Commit(ctx))

	found, _ := repo.Find(ctx, 1)
	found.Value().Debit(10)
	repo.Rollback(ctx)
	require.NoError(t, repo.Commit(ctx))

	stored, _ := repo.Stored(1)
	assert.Equal(t, uint(10), stored.Quantity())
}

func TestProductRepository_FailedCommitDiscardsPending(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	errStore := errors.New("Failed to store products")
	repo.FailCommits(errStore)

	repo.Add(ctx, newProduct(1, 10))
	assert.ErrorIs(t, repo.Commit(ctx), errStore)

	repo.FailCommits(nil)
	require.NoError(t, repo.Commit(ctx))

	_, stored := repo.Stored(1)
	assert.False(t, stored, "a failed commit must not leak into a later one")
	assert.Empty(t, repo.Published())
}

func TestProductRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProductRepository().Find(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
