package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-alerts/internal/application/alerts"
	"github.com/jhoicas/stock-alerts/internal/application/usecase"
	"github.com/jhoicas/stock-alerts/internal/domain/repository"
)

var (
	_ usecase.TxRunner      = (*TxRunner)(nil)
	_ alerts.SnapshotReader = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	return r.inTx(ctx, pgx.TxOptions{}, fn)
}

// ReadSnapshot ejecuta fn en una transacción REPEATABLE READ de solo lectura: todas las
// consultas del cálculo ven el mismo estado aunque haya escrituras concurrentes.
func (r *TxRunner) ReadSnapshot(ctx context.Context, fn func(snap repository.Repositories) error) error {
	return r.inTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

func (r *TxRunner) inTx(ctx context.Context, opts pgx.TxOptions, fn func(repos repository.Repositories) error) error {
	tx, err := r.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepositories construye todos los repositorios sobre el mismo Querier (pool o tx).
func NewRepositories(q Querier) repository.Repositories {
	return repository.Repositories{
		Warehouses:   NewWarehouseRepository(q),
		Stock:        NewStockRepository(q),
		History:      NewInventoryHistoryRepository(q),
		Products:     NewProductRepository(q),
		ProductTypes: NewProductTypeRepository(q),
		Suppliers:    NewSupplierRepository(q),
	}
}
