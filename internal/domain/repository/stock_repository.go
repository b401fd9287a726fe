package repository

import (
	"context"

	"github.com/jhoicas/stock-alerts/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por bodega+producto.
type StockRepository interface {
	// ListByWarehouse devuelve los registros de la bodega ordenados por ProductID ascendente.
	ListByWarehouse(ctx context.Context, warehouseID int64) ([]*entity.Stock, error)
	Upsert(ctx context.Context, stock *entity.Stock) error
}
