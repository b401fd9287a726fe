package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-alerts/internal/domain/repository"
	"github.com/jhoicas/stock-alerts/internal/infrastructure/memory"
	"github.com/jhoicas/stock-alerts/internal/infrastructure/seed"
)

func TestLoader_CargaDatasetEnRun(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()

	var load func(repository.Repositories) error = seed.Demo(now).Loader(ctx)
	require.NoError(t, store.Run(ctx, load))

	err := store.ReadSnapshot(ctx, func(snap repository.Repositories) error {
		p, err := snap.Products.GetByID(ctx, 123)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "WID-001", p.SKU)

		sp, err := snap.Suppliers.GetByID(ctx, 790)
		require.NoError(t, err)
		require.NotNil(t, sp)
		return nil
	})
	require.NoError(t, err)
}

func TestLoader_SegundaCargaFallaPorDuplicados(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	data := seed.Demo(time.Now())

	require.NoError(t, store.Run(ctx, data.Loader(ctx)))
	assert.Error(t, store.Run(ctx, data.Loader(ctx)))
}
