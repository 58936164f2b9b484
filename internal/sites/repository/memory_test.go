package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obralog/obralog-admin/internal/sites/domain"
)

func names(sites []domain.ConstructionSite) []string {
	out := make([]string, 0, len(sites))
	for _, s := range sites {
		out = append(out, s.Name)
	}
	return out
}

func TestMemoryRepository_CreateThenList(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	created, err := repo.Create(ctx, "Residencial Flores")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Residencial Flores", items[0].Name)
	assert.False(t, items[0].CreatedAt.IsZero())
}

func TestMemoryRepository_CreateTrimsAndValidates(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	s, err := repo.Create(ctx, "  Torre Norte  ")
	require.NoError(t, err)
	assert.Equal(t, "Torre Norte", s.Name)

	_, err = repo.Create(ctx, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestMemoryRepository_UpdateKeepsIDAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	alpha, err := repo.Create(ctx, "Alpha")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "Beta")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "Gamma")
	require.NoError(t, err)

	updated, err := repo.Update(ctx, alpha.ID, "Zeta")
	require.NoError(t, err)
	assert.Equal(t, alpha.ID, updated.ID)
	assert.Equal(t, alpha.CreatedAt, updated.CreatedAt)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta", "Gamma", "Zeta"}, names(items))
	assert.Equal(t, alpha.ID, items[2].ID)
}

func TestMemoryRepository_UpdateMissing(t *testing.T) {
	_, err := NewMemoryRepository().Update(context.Background(), "nope", "Name")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryRepository_GetMissing(t *testing.T) {
	s, err := NewMemoryRepository().Get(context.Background(), "nope")
	assert.Nil(t, s)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryRepository_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	s, err := repo.Create(ctx, "Edifício Sol")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, s.ID))
	require.NoError(t, repo.Delete(ctx, s.ID))
	require.NoError(t, repo.Delete(ctx, "never-existed"))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemoryRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryRepository().List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryRepository_ByteWiseOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	for _, n := range []string{"alpha", "Beta", "Gamma"} {
		_, err := repo.Create(ctx, n)
		require.NoError(t, err)
	}

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta", "Gamma", "alpha"}, names(items))
}
