package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-alerts/internal/domain"
	"github.com/jhoicas/stock-alerts/internal/domain/entity"
	"github.com/jhoicas/stock-alerts/internal/domain/repository"
	"github.com/jhoicas/stock-alerts/internal/infrastructure/memory"
	"github.com/jhoicas/stock-alerts/internal/infrastructure/seed"
)

var now = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func demoStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	require.NoError(t, s.Run(context.Background(), seed.Demo(now).Loader(context.Background())))
	return s
}

func TestStore_DatasetDemo(t *testing.T) {
	s := demoStore(t)
	ctx := context.Background()

	err := s.ReadSnapshot(ctx, func(snap repository.Repositories) error {
		whs, err := snap.Warehouses.ListByCompany(ctx, 1)
		require.NoError(t, err)
		require.Len(t, whs, 2)
		assert.Equal(t, int64(456), whs[0].ID)
		assert.Equal(t, int64(457), whs[1].ID)

		stock, err := snap.Stock.ListByWarehouse(ctx, 456)
		require.NoError(t, err)
		require.Len(t, stock, 2)
		assert.Equal(t, int64(123), stock[0].ProductID)
		assert.Equal(t, int64(124), stock[1].ProductID)

		p, err := snap.Products.GetBySKU(ctx, "GAD-002")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, int64(124), p.ID)

		missing, err := snap.Suppliers.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, missing)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_HistorialVentanaSemiabierta(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	from := now.Add(-24 * time.Hour)

	require.NoError(t, s.Run(ctx, func(repos repository.Repositories) error {
		for _, ts := range []time.Time{from, from.Add(time.Second), now, now.Add(time.Second)} {
			if err := repos.History.Create(ctx, &entity.InventoryHistory{ProductID: 1, WarehouseID: 1, Change: -1, Timestamp: ts}); err != nil {
				return err
			}
		}
		return nil
	}))

	err := s.ReadSnapshot(ctx, func(snap repository.Repositories) error {
		list, err := snap.History.ListByProductAndWarehouse(ctx, 1, 1, from, now)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, from.Add(time.Second), list[0].Timestamp)
		assert.Equal(t, now, list[1].Timestamp)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_RunDescartaCambiosSiFalla(t *testing.T) {
	s := demoStore(t)
	ctx := context.Background()

	err := s.Run(ctx, func(repos repository.Repositories) error {
		require.NoError(t, repos.Products.Create(ctx, &entity.Product{Name: "Temp", SKU: "TMP-1"}))
		return errors.New("rollback")
	})
	require.Error(t, err)

	require.NoError(t, s.ReadSnapshot(ctx, func(snap repository.Repositories) error {
		p, err := snap.Products.GetBySKU(ctx, "TMP-1")
		require.NoError(t, err)
		assert.Nil(t, p)
		return nil
	}))
}

func TestStore_SKUYClavesDuplicadas(t *testing.T) {
	s := demoStore(t)
	ctx := context.Background()

	err := s.Run(ctx, func(repos repository.Repositories) error {
		return repos.Products.Create(ctx, &entity.Product{Name: "Otro", SKU: "WID-001"})
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	err = s.Run(ctx, func(repos repository.Repositories) error {
		return repos.Warehouses.Create(ctx, &entity.Warehouse{ID: 456, CompanyID: 2, Name: "Dup"})
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestStore_IDsAutoasignadosPorEncimaDelMaximo(t *testing.T) {
	s := demoStore(t)
	ctx := context.Background()

	p := &entity.Product{Name: "Nuevo", SKU: "NEW-1"}
	require.NoError(t, s.Run(ctx, func(repos repository.Repositories) error {
		return repos.Products.Create(ctx, p)
	}))
	assert.Greater(t, p.ID, int64(790))
}

func TestStore_SnapshotAisladoDeEscriturasConcurrentes(t *testing.T) {
	s := demoStore(t)
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		_ = s.ReadSnapshot(ctx, func(snap repository.Repositories) error {
			close(entered)
			<-release
			stock, err := snap.Stock.ListByWarehouse(ctx, 456)
			assert.NoError(t, err)
			assert.Len(t, stock, 2, "el snapshot no ve el producto creado después")
			return nil
		})
	}()

	<-entered
	require.NoError(t, s.Run(ctx, func(repos repository.Repositories) error {
		p := &entity.Product{Name: "Concurrente", SKU: "CON-1"}
		if err := repos.Products.Create(ctx, p); err != nil {
			return err
		}
		return repos.Stock.Upsert(ctx, &entity.Stock{ProductID: p.ID, WarehouseID: 456, Quantity: 1})
	}))
	close(release)
	wg.Wait()
}

func TestStore_ContextoCancelado(t *testing.T) {
	s := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.ReadSnapshot(ctx, func(repository.Repositories) error { called = true; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
